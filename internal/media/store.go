package media

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Store persists validated media bytes and removes them again. Save never
// touches the owning database row; callers attach the returned ref themselves.
type Store interface {
	Save(payload []byte, filename, contentType string) (AssetRef, error)
	Delete(ref AssetRef) error
}

// LocalStore writes files into a single upload directory with
// collision-resistant generated names.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %v", dir, err)
	}
	return &LocalStore{Dir: dir}, nil
}

func (s *LocalStore) Save(payload []byte, filename, contentType string) (AssetRef, error) {
	name := fmt.Sprintf("%s_%s", uuid.New().String(), SanitizeFilename(filename))
	path := filepath.Join(s.Dir, name)

	if err := os.WriteFile(path, payload, 0644); err != nil {
		return AssetRef{}, fmt.Errorf("failed to write %s: %v", path, err)
	}
	return AssetRef{Kind: FilePath, Path: path}, nil
}

// Delete unlinks the file behind a filesystem ref. Missing files and unlink
// failures are logged and swallowed; cleanup is best-effort.
func (s *LocalStore) Delete(ref AssetRef) error {
	if ref.Kind != FilePath || ref.Path == "" || ref.IsRemote() {
		return nil
	}
	if _, err := os.Stat(ref.Path); os.IsNotExist(err) {
		return nil
	}
	if err := os.Remove(ref.Path); err != nil {
		log.Printf("⚠️  Failed to delete %s: %v", ref.Path, err)
	}
	return nil
}

// BlobStore keeps payloads in the database: Save returns a Blob ref to be
// attached to the owning row before commit. Deleting the row deletes the
// bytes, so Delete has nothing to do.
type BlobStore struct{}

func NewBlobStore() *BlobStore { return &BlobStore{} }

func (s *BlobStore) Save(payload []byte, filename, contentType string) (AssetRef, error) {
	return AssetRef{
		Kind:        Blob,
		Data:        payload,
		Filename:    filename,
		ContentType: contentType,
	}, nil
}

func (s *BlobStore) Delete(ref AssetRef) error { return nil }

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename reduces an uploaded filename to its base name with unsafe
// characters replaced, keeping the extension intact.
func SanitizeFilename(filename string) string {
	name := filepath.Base(strings.TrimSpace(filename))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}
