package media

import (
	"io"
	"log"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLimit bounds how much of a payload is read for signature detection.
const sniffLimit = 1024

// Sniffer infers a file's MIME type from its byte signature. Detect returns
// ok=false when no verdict is available, in which case validation falls back
// to extension-only checks.
type Sniffer interface {
	Detect(fh *multipart.FileHeader) (mimeType string, ok bool)
}

// SignatureSniffer reads a bounded prefix and matches it against known magic
// numbers.
type SignatureSniffer struct{}

func (SignatureSniffer) Detect(fh *multipart.FileHeader) (string, bool) {
	src, err := fh.Open()
	if err != nil {
		log.Printf("⚠️  Content sniffing skipped for %s: %v", fh.Filename, err)
		return "", false
	}
	defer src.Close()

	prefix := make([]byte, sniffLimit)
	n, err := io.ReadFull(src, prefix)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		log.Printf("⚠️  Content sniffing skipped for %s: %v", fh.Filename, err)
		return "", false
	}
	if n == 0 {
		return "", false
	}

	return mimetype.Detect(prefix[:n]).String(), true
}

// ExtensionOnlySniffer never produces a verdict; validation relies on the
// filename extension alone.
type ExtensionOnlySniffer struct{}

func (ExtensionOnlySniffer) Detect(fh *multipart.FileHeader) (string, bool) {
	return "", false
}
