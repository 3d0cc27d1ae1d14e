package capture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Image is a captured photo ready for upload.
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Size returns the payload length in bytes.
func (i Image) Size() int { return len(i.Data) }

// Reader returns a fresh reader over the payload.
func (i Image) Reader() io.Reader { return bytes.NewReader(i.Data) }

// FromFile reads an image chosen through a file picker.
func FromFile(path string) (Image, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return Image{}, newError(KindPermissionDenied, "open", err)
		}
		return Image{}, newError(KindUnavailable, "open", err)
	}
	defer file.Close()
	return FromReader(filepath.Base(path), file)
}

// FromReader reads an image payload and verifies it is an image.
func FromReader(name string, r io.Reader) (Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Image{}, newError(KindUnavailable, "read", err)
	}
	if len(data) == 0 {
		return Image{}, newError(KindUnsupported, "read", errors.New("empty file"))
	}
	mimeType := DetectMIME(name, data)
	if !strings.HasPrefix(mimeType, "image/") {
		return Image{}, newError(KindUnsupported, "read", fmt.Errorf("%s is %s, not an image", name, mimeType))
	}
	return Image{Name: name, MIMEType: mimeType, Data: data}, nil
}

// DetectMIME sniffs the payload and falls back to the file extension when the
// content sniffer cannot decide.
func DetectMIME(name string, data []byte) string {
	sniffed := http.DetectContentType(data)
	if idx := strings.Index(sniffed, ";"); idx >= 0 {
		sniffed = sniffed[:idx]
	}
	if sniffed != "application/octet-stream" {
		return sniffed
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		if idx := strings.Index(byExt, ";"); idx >= 0 {
			byExt = byExt[:idx]
		}
		return byExt
	}
	return sniffed
}
