// Package document extracts plain text from uploaded PDF, PPTX and image files.
package document

import (
	"context"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
)

var (
	ErrUnsupportedKind = goerr.New("unsupported document kind")
	ErrNoImageReader   = goerr.New("image reader is not configured")
)

// Extractor dispatches on the media kind. Images need an ImageReader.
type Extractor struct {
	images interfaces.ImageReader
}

var _ interfaces.DocumentExtractor = &Extractor{}

type Option func(*Extractor)

func WithImageReader(r interfaces.ImageReader) Option {
	return func(e *Extractor) {
		e.images = r
	}
}

func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Extractor) ExtractText(ctx context.Context, data []byte, kind model.MediaKind) (string, error) {
	var (
		text string
		err  error
	)

	switch kind {
	case model.MediaKindPDF:
		text, err = extractPDF(data)
	case model.MediaKindPPTX:
		text, err = extractPPTX(data)
	case model.MediaKindImage:
		if e.images == nil {
			return "", goerr.Wrap(ErrNoImageReader, "cannot read image")
		}
		text, err = e.images.ReadImage(ctx, data, http.DetectContentType(data))
	default:
		return "", goerr.Wrap(ErrUnsupportedKind, "cannot extract text", goerr.V("kind", kind))
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to extract text", goerr.V("kind", kind), goerr.V("size", len(data)))
	}

	return strings.TrimSpace(text), nil
}
