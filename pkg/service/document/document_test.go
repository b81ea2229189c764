package document_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/service/document"
)

func slideXML(paragraphs ...string) string {
	var body string
	for _, p := range paragraphs {
		body += fmt.Sprintf(`<a:p><a:r><a:t>%s</a:t></a:r></a:p>`, p)
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:cSld><p:spTree><p:sp><p:txBody>` + body + `</p:txBody></p:sp></p:spTree></p:cSld></p:sld>`
}

func buildPPTX(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		gt.NoError(t, err).Required()
		_, err = w.Write([]byte(content))
		gt.NoError(t, err).Required()
	}
	gt.NoError(t, zw.Close()).Required()
	return buf.Bytes()
}

func TestExtractPPTX(t *testing.T) {
	ctx := context.Background()
	ex := document.New()

	t.Run("reads slides in numeric order", func(t *testing.T) {
		data := buildPPTX(t, map[string]string{
			"ppt/slides/slide10.xml":           slideXML("Conclusion"),
			"ppt/slides/slide2.xml":            slideXML("Cell structure", "Mitochondria"),
			"ppt/slides/slide1.xml":            slideXML("Biology 101"),
			"ppt/slides/_rels/slide1.xml.rels": "<Relationships/>",
			"ppt/notesSlides/notesSlide1.xml":  slideXML("speaker notes"),
			"[Content_Types].xml":              "<Types/>",
		})

		text, err := ex.ExtractText(ctx, data, model.MediaKindPPTX)
		gt.NoError(t, err).Required()
		gt.Value(t, text).Equal("Biology 101\nCell structure\nMitochondria\nConclusion")
	})

	t.Run("text runs in one paragraph are joined", func(t *testing.T) {
		xml := `<p:sld xmlns:a="a" xmlns:p="p"><a:p><a:r><a:t>Photo</a:t></a:r><a:r><a:t>synthesis</a:t></a:r></a:p></p:sld>`
		data := buildPPTX(t, map[string]string{"ppt/slides/slide1.xml": xml})

		text, err := ex.ExtractText(ctx, data, model.MediaKindPPTX)
		gt.NoError(t, err).Required()
		gt.Value(t, text).Equal("Photosynthesis")
	})

	t.Run("deck without text yields empty string", func(t *testing.T) {
		data := buildPPTX(t, map[string]string{"ppt/slides/slide1.xml": slideXML()})

		text, err := ex.ExtractText(ctx, data, model.MediaKindPPTX)
		gt.NoError(t, err).Required()
		gt.Value(t, text).Equal("")
	})

	t.Run("non-zip data is an error", func(t *testing.T) {
		_, err := ex.ExtractText(ctx, []byte("not a zip"), model.MediaKindPPTX)
		gt.Value(t, err).NotNil()
	})
}

func TestExtractPDFRejectsGarbage(t *testing.T) {
	_, err := document.New().ExtractText(context.Background(), []byte("%PDF-1.4 broken"), model.MediaKindPDF)
	gt.Value(t, err).NotNil()
}

type fakeImageReader struct {
	mimeType string
	text     string
	err      error
}

func (f *fakeImageReader) ReadImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	f.mimeType = mimeType
	return f.text, f.err
}

func TestExtractImage(t *testing.T) {
	ctx := context.Background()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	t.Run("delegates to image reader with detected MIME type", func(t *testing.T) {
		reader := &fakeImageReader{text: "  Newton's laws \n"}
		ex := document.New(document.WithImageReader(reader))

		text, err := ex.ExtractText(ctx, png, model.MediaKindImage)
		gt.NoError(t, err).Required()
		gt.Value(t, text).Equal("Newton's laws")
		gt.Value(t, reader.mimeType).Equal("image/png")
	})

	t.Run("reader failure is wrapped", func(t *testing.T) {
		ex := document.New(document.WithImageReader(&fakeImageReader{err: goerr.New("vision failed")}))
		_, err := ex.ExtractText(ctx, png, model.MediaKindImage)
		gt.Value(t, err).NotNil()
	})

	t.Run("missing reader is an error", func(t *testing.T) {
		_, err := document.New().ExtractText(ctx, png, model.MediaKindImage)
		gt.Bool(t, errors.Is(err, document.ErrNoImageReader)).True()
	})
}

func TestExtractUnsupportedKind(t *testing.T) {
	_, err := document.New().ExtractText(context.Background(), []byte("x"), model.MediaKind("docx"))
	gt.Bool(t, errors.Is(err, document.ErrUnsupportedKind)).True()
}
