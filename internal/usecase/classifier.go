package usecase

import (
	"path/filepath"
	"strings"

	"github.com/macrolens/capture/internal/domain"
)

var spreadsheetExtensions = map[string]bool{
	"xlsx": true, "xlsm": true, "xltx": true, "xltm": true, "xls": true, "csv": true, "tsv": true, "ods": true,
}

var documentExtensions = map[string]bool{
	"pdf": true, "docx": true, "doc": true, "txt": true, "md": true, "rtf": true, "odt": true,
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "heic": true, "heif": true, "webp": true, "bmp": true, "gif": true, "tif": true, "tiff": true,
}

var spreadsheetMimeTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel.sheet.macroenabled.12":                   true,
	"application/vnd.ms-excel":                                         true,
	"application/vnd.oasis.opendocument.spreadsheet":                    true,
	"text/csv":                  true,
	"text/tab-separated-values": true,
}

var documentMimeTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/msword":                      true,
	"application/rtf":                         true,
	"application/vnd.oasis.opendocument.text": true,
	"text/plain":                              true,
	"text/markdown":                           true,
}

// ClassifyInput decides what kind of input a payload is from its MIME
// type, falling back to the file extension. Images are split by source.
func ClassifyInput(filename, mimeType string, source domain.InputSource) domain.InputType {
	mime := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	ext := FileExtension(filename)

	switch {
	case strings.HasPrefix(mime, "image/") || imageExtensions[ext]:
		if source == domain.SourceCamera {
			return domain.InputCameraImage
		}
		return domain.InputGalleryImage
	case spreadsheetMimeTypes[mime] || spreadsheetExtensions[ext]:
		return domain.InputSpreadsheet
	case documentMimeTypes[mime] || documentExtensions[ext]:
		return domain.InputDocument
	}

	return domain.InputUnknown
}

// FileExtension returns the lowercase extension of filename without the dot
func FileExtension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}
