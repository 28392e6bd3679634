package domain

import "context"

// Symbology identifies the encoding of a decoded barcode
type Symbology string

const (
	SymbologyEAN13   Symbology = "ean13"
	SymbologyEAN8    Symbology = "ean8"
	SymbologyUPCA    Symbology = "upca"
	SymbologyUPCE    Symbology = "upce"
	SymbologyISBN    Symbology = "isbn"
	SymbologyCode128 Symbology = "code128"
	SymbologyQR      Symbology = "qr"
	SymbologyUnknown Symbology = "unknown"
)

// IsProduct reports whether the symbology identifies a retail product.
// Product barcodes take priority over any recognized text.
func (s Symbology) IsProduct() bool {
	switch s {
	case SymbologyEAN13, SymbologyEAN8, SymbologyUPCA, SymbologyUPCE, SymbologyISBN:
		return true
	}
	return false
}

// BarcodeCandidate is a single barcode returned by a decoder
type BarcodeCandidate struct {
	Value     string    `json:"value"`
	Symbology Symbology `json:"symbology"`
}

// TextBlock is one block of text found by the recognizer
type TextBlock struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// TextRecognition is the raw output of an optical text recognizer
type TextRecognition struct {
	Text   string      `json:"text"`
	Blocks []TextBlock `json:"blocks"`
}

// RecognitionResult combines both capabilities for one invocation
type RecognitionResult struct {
	RawText           string             `json:"rawText"`
	BlockCount        int                `json:"blockCount"`
	BarcodeCandidates []BarcodeCandidate `json:"barcodeCandidates"`
}

// InputSource tells where an image came from
type InputSource string

const (
	SourceCamera  InputSource = "camera"
	SourceGallery InputSource = "gallery"
	SourceUpload  InputSource = "upload"
)

// InputType is the classified kind of a captured input
type InputType string

const (
	InputCameraImage  InputType = "camera_image"
	InputGalleryImage InputType = "gallery_image"
	InputSpreadsheet  InputType = "spreadsheet"
	InputDocument     InputType = "document"
	InputUnknown      InputType = "unknown"
)

// Image is an encoded image payload
type Image struct {
	Data     []byte
	MimeType string
	Source   InputSource
}

// Frame is a single live-preview camera frame. Callers that receive a
// Frame own it and must Close it exactly once.
type Frame interface {
	Image() Image
	Close() error
}

// TextRecognizer performs optical text recognition on an image
type TextRecognizer interface {
	Recognize(ctx context.Context, img Image) (TextRecognition, error)
}

// BarcodeDecoder finds barcodes in an image
type BarcodeDecoder interface {
	Decode(ctx context.Context, img Image) ([]BarcodeCandidate, error)
}

// CaptureInput is a raw captured or uploaded payload awaiting classification
type CaptureInput struct {
	Data     []byte
	Filename string
	MimeType string
	Source   InputSource
}

// FileText is the text extracted from an uploaded file
type FileText struct {
	Type      InputType  `json:"type"`
	Text      string     `json:"text"`
	Rows      [][]string `json:"rows,omitempty"`
	Pages     []string   `json:"pages,omitempty"`
	Recovered bool       `json:"recovered"` // produced by raw-byte recovery
}
