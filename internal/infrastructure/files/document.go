package files

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/macrolens/capture/internal/domain"
)

// DocumentDecoder reads pdf, docx and plain-text documents
type DocumentDecoder struct {
	logger *zap.Logger
}

// NewDocumentDecoder creates a document decoder
func NewDocumentDecoder(logger *zap.Logger) *DocumentDecoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentDecoder{logger: logger.Named("document")}
}

// DecodeDocument implements domain.DocumentDecoder
func (d *DocumentDecoder) DecodeDocument(ctx context.Context, data []byte, ext string) (domain.DocumentText, error) {
	if err := ctx.Err(); err != nil {
		return domain.DocumentText{}, err
	}

	var (
		pages []string
		err   error
	)
	switch ext {
	case "pdf":
		pages, err = d.readPDF(data)
	case "docx":
		pages, err = readDOCX(data)
	case "txt", "md", "markdown", "text":
		pages = []string{plainText(data)}
	default:
		return domain.DocumentText{}, fmt.Errorf("%w: document extension %q", domain.ErrUnsupportedInput, ext)
	}
	if err != nil {
		return domain.DocumentText{}, err
	}

	return domain.DocumentText{Text: strings.TrimSpace(strings.Join(pages, "\n\n")), Pages: pages}, nil
}

// readPDF returns the plain text of every page. The pdf reader panics on
// some malformed files, which is reported as a corrupt file.
func (d *DocumentDecoder) readPDF(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: pdf reader panic: %v", domain.ErrCorruptFile, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %v", domain.ErrCorruptFile, err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			d.logger.Debug("skip unreadable pdf page", zap.Int("page", i), zap.Error(err))
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}
	return pages, nil
}

// readDOCX walks word/document.xml, emitting text runs, tabs and breaks
// with one line per paragraph
func readDOCX(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open docx: %v", domain.ErrCorruptFile, err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return nil, fmt.Errorf("%w: docx has no word/document.xml", domain.ErrCorruptFile)
	}

	rc, err := body.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open document.xml: %v", domain.ErrCorruptFile, err)
	}
	defer rc.Close()

	var (
		sb     strings.Builder
		inText bool
	)
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parse document.xml: %v", domain.ErrCorruptFile, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return []string{strings.TrimSpace(sb.String())}, nil
}

func plainText(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "")
}
