package model

import (
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// MediaKind is the type of an uploaded document.
type MediaKind string

const (
	MediaKindPDF   MediaKind = "pdf"
	MediaKindPPTX  MediaKind = "pptx"
	MediaKindImage MediaKind = "image"
)

var ErrUnsupportedMedia = goerr.New("unsupported media")

// MediaKindFromFilename detects the kind from the file extension.
func MediaKindFromFilename(name string) (MediaKind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MediaKindPDF, nil
	case ".pptx":
		return MediaKindPPTX, nil
	case ".png", ".jpg", ".jpeg":
		return MediaKindImage, nil
	}
	return "", goerr.Wrap(ErrUnsupportedMedia, "unsupported file extension", goerr.V("filename", name))
}

// ImageMIMEType returns the MIME type of an image file name. Only PNG and
// JPEG are accepted.
func ImageMIMEType(name string) (string, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png", true
	case ".jpg", ".jpeg":
		return "image/jpeg", true
	}
	return "", false
}

// Document is an uploaded file.
type Document struct {
	Filename string
	Kind     MediaKind
	Data     []byte
}
