package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const maxSlideSize = 16 << 20

// slideNumber returns N for "ppt/slides/slideN.xml", or -1.
func slideNumber(name string) int {
	if path.Dir(name) != "ppt/slides" {
		return -1
	}
	base := path.Base(name)
	if !strings.HasPrefix(base, "slide") || !strings.HasSuffix(base, ".xml") {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(base, "slide"), ".xml"))
	if err != nil {
		return -1
	}
	return n
}

// extractPPTX reads the text runs of every slide in slide order. Each
// paragraph becomes one line.
func extractPPTX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to open PPTX archive")
	}

	type slide struct {
		num  int
		file *zip.File
	}
	var slides []slide
	for _, f := range zr.File {
		if n := slideNumber(f.Name); n >= 0 {
			slides = append(slides, slide{num: n, file: f})
		}
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var out []string
	for _, s := range slides {
		lines, err := slideText(s.file)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read slide", goerr.V("slide", s.num))
		}
		out = append(out, lines...)
	}
	return strings.Join(out, "\n"), nil
}

func slideText(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open slide entry")
	}
	defer func() { _ = rc.Close() }()

	dec := xml.NewDecoder(io.LimitReader(rc, maxSlideSize))

	var (
		lines  []string
		para   strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse slide XML")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if line := strings.TrimSpace(para.String()); line != "" {
					lines = append(lines, line)
				}
				para.Reset()
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}
	if line := strings.TrimSpace(para.String()); line != "" {
		lines = append(lines, line)
	}
	return lines, nil
}
