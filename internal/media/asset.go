package media

import (
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Resolve when a record carries neither a blob nor
// a readable filesystem path.
var ErrNotFound = errors.New("media: asset not found")

// ErrRemote is returned by Resolve for assets stored under an absolute URL
// (S3/CloudFront); callers should redirect instead of streaming.
var ErrRemote = errors.New("media: asset is remote")

type RefKind int

const (
	Absent RefKind = iota
	FilePath
	Blob
)

// AssetRef is a reference to stored media: a filesystem path, an in-database
// byte blob with metadata, or nothing at all.
type AssetRef struct {
	Kind        RefKind
	Path        string
	Data        []byte
	Filename    string
	ContentType string
}

// RefFromRecord builds an AssetRef from the column triple plus legacy path of
// an owning row. A blob takes priority over a path recorded on the same row.
func RefFromRecord(path string, data []byte, filename, contentType string) AssetRef {
	if len(data) > 0 {
		return AssetRef{Kind: Blob, Data: data, Filename: filename, ContentType: contentType}
	}
	if path != "" {
		return AssetRef{Kind: FilePath, Path: path}
	}
	return AssetRef{Kind: Absent}
}

func (r AssetRef) IsAbsent() bool { return r.Kind == Absent }

// IsRemote reports whether the ref points at an object-store URL rather than a
// local file.
func (r AssetRef) IsRemote() bool {
	return r.Kind == FilePath && (strings.HasPrefix(r.Path, "http://") || strings.HasPrefix(r.Path, "https://"))
}

// Resolve returns the asset bytes and content type. Blob wins over path; a
// recorded path is read only when the file still exists.
func (r AssetRef) Resolve() (data []byte, contentType, filename string, err error) {
	switch r.Kind {
	case Blob:
		ct := r.ContentType
		if ct == "" {
			ct = contentTypeFor(r.Filename)
		}
		return r.Data, ct, r.Filename, nil
	case FilePath:
		if r.IsRemote() {
			return nil, "", "", ErrRemote
		}
		data, err := os.ReadFile(r.Path)
		if err != nil {
			return nil, "", "", ErrNotFound
		}
		name := filepath.Base(r.Path)
		return data, contentTypeFor(name), name, nil
	default:
		return nil, "", "", ErrNotFound
	}
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
