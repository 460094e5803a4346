package media

import (
	"fmt"
	"io"
	"mime/multipart"
)

// ValidationError carries the user-displayable reason an uploaded file was
// rejected before any bytes were persisted.
type ValidationError struct {
	Filename string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Filename == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Filename, e.Reason)
}

// Pipeline runs the full ingestion path for one uploaded file:
// validate, transform, persist.
type Pipeline struct {
	Validator *Validator
	Store     Store
}

func (p *Pipeline) Ingest(fh *multipart.FileHeader) (AssetRef, error) {
	ok, reason := p.Validator.Validate(fh)
	if !ok {
		name := ""
		if fh != nil {
			name = fh.Filename
		}
		return AssetRef{}, &ValidationError{Filename: name, Reason: reason}
	}

	payload, err := readAll(fh)
	if err != nil {
		return AssetRef{}, &ValidationError{Filename: fh.Filename, Reason: "file is empty or unreadable"}
	}

	payload = Transform(payload, Extension(fh.Filename))

	// Browsers send application/octet-stream for unrecognized files; the
	// extension is a better signal in that case.
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFor(fh.Filename)
	}

	ref, err := p.Store.Save(payload, fh.Filename, contentType)
	if err != nil {
		return AssetRef{}, fmt.Errorf("failed to store %s: %v", fh.Filename, err)
	}
	return ref, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
