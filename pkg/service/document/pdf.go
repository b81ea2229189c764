package document

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/m-mizutani/goerr/v2"
)

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to open PDF")
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", goerr.Wrap(err, "failed to read PDF text", goerr.V("pages", r.NumPage()))
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", goerr.Wrap(err, "failed to copy PDF text")
	}
	return buf.String(), nil
}
