package interfaces

import (
	"context"

	"github.com/secmon-lab/studymate/pkg/domain/model"
)

// DocumentExtractor pulls plain text out of an uploaded file. Empty text
// with a nil error means the file has no readable content.
type DocumentExtractor interface {
	ExtractText(ctx context.Context, data []byte, kind model.MediaKind) (string, error)
}

// ImageReader recognizes text in an image.
type ImageReader interface {
	ReadImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

// ArchiveStorage keeps a copy of uploaded files.
type ArchiveStorage interface {
	Put(ctx context.Context, key string, data []byte) error
}
