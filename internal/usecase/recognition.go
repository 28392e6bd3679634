package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/macrolens/capture/internal/domain"
)

// recognition is the combined output of both capabilities for one image
type recognition struct {
	text       domain.TextRecognition
	textErr    error
	barcodes   []domain.BarcodeCandidate
	barcodeErr error
}

func (r recognition) result() domain.RecognitionResult {
	return domain.RecognitionResult{
		RawText:           r.text.Text,
		BlockCount:        len(r.text.Blocks),
		BarcodeCandidates: r.barcodes,
	}
}

// recognizeConcurrently runs barcode decoding and text recognition in
// parallel and waits for both. Capability failures are recorded, never
// returned. decoder may be nil.
func recognizeConcurrently(
	ctx context.Context,
	recognizer domain.TextRecognizer,
	decoder domain.BarcodeDecoder,
	img domain.Image,
	logger *zap.Logger,
) recognition {
	var (
		out recognition
		g   errgroup.Group
	)

	g.Go(func() error {
		out.text, out.textErr = safeRecognize(ctx, recognizer, img)
		return nil
	})
	if decoder != nil {
		g.Go(func() error {
			out.barcodes, out.barcodeErr = safeDecode(ctx, decoder, img)
			return nil
		})
	}
	_ = g.Wait()

	if out.textErr != nil {
		logger.Warn("text recognition failed", zap.Error(out.textErr))
	}
	if out.barcodeErr != nil {
		logger.Warn("barcode decoding failed", zap.Error(out.barcodeErr))
	}
	logger.Debug("recognition complete",
		zap.Int("text_length", len(out.text.Text)),
		zap.Int("blocks", len(out.text.Blocks)),
		zap.Int("barcodes", len(out.barcodes)),
	)

	return out
}

// safeRecognize converts a panicking recognizer into an error
func safeRecognize(ctx context.Context, recognizer domain.TextRecognizer, img domain.Image) (res domain.TextRecognition, err error) {
	if recognizer == nil {
		return domain.TextRecognition{}, fmt.Errorf("%w: no text recognizer configured", domain.ErrRecognitionFailed)
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = domain.TextRecognition{}, fmt.Errorf("%w: text recognizer panic: %v", domain.ErrRecognitionFailed, r)
		}
	}()
	res, err = recognizer.Recognize(ctx, img)
	if err != nil {
		return domain.TextRecognition{}, fmt.Errorf("%w: %v", domain.ErrRecognitionFailed, err)
	}
	return res, nil
}

// safeDecode converts a panicking barcode decoder into an error
func safeDecode(ctx context.Context, decoder domain.BarcodeDecoder, img domain.Image) (res []domain.BarcodeCandidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: barcode decoder panic: %v", domain.ErrRecognitionFailed, r)
		}
	}()
	res, err = decoder.Decode(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecognitionFailed, err)
	}
	return res, nil
}

// productBarcode returns the first product barcode among candidates
func productBarcode(candidates []domain.BarcodeCandidate) (domain.BarcodeCandidate, bool) {
	for _, c := range candidates {
		if c.Symbology.IsProduct() && strings.TrimSpace(c.Value) != "" {
			return domain.BarcodeCandidate{Value: strings.TrimSpace(c.Value), Symbology: c.Symbology}, true
		}
	}
	return domain.BarcodeCandidate{}, false
}

// barcodeConfidence is 1.0 for a verified check digit and 0.85 otherwise
func barcodeConfidence(c domain.BarcodeCandidate) float64 {
	if validCheckDigit(c) {
		return 1.0
	}
	return 0.85
}

func validCheckDigit(c domain.BarcodeCandidate) bool {
	code := c.Value
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	switch c.Symbology {
	case domain.SymbologyUPCE:
		if len(code) != 8 {
			return false
		}
		expanded, ok := expandUPCE(code)
		return ok && gtinValid(expanded)
	case domain.SymbologyEAN13, domain.SymbologyEAN8, domain.SymbologyUPCA, domain.SymbologyISBN:
		switch len(code) {
		case 8, 12, 13, 14:
			return gtinValid(code)
		}
	}
	return false
}

// gtinValid checks the GS1 mod-10 check digit
func gtinValid(code string) bool {
	sum := 0
	n := len(code)
	for i := 0; i < n-1; i++ {
		d := int(code[n-2-i] - '0')
		if i%2 == 0 {
			d *= 3
		}
		sum += d
	}
	check := (10 - sum%10) % 10
	return check == int(code[n-1]-'0')
}

// expandUPCE converts an 8-digit UPC-E code to its 12-digit UPC-A form
func expandUPCE(code string) (string, bool) {
	ns, d, check := code[0:1], code[1:7], code[7:8]
	if ns != "0" && ns != "1" {
		return "", false
	}
	var body string
	switch d[5] {
	case '0', '1', '2':
		body = d[0:2] + string(d[5]) + "0000" + d[2:5]
	case '3':
		body = d[0:3] + "00000" + d[3:5]
	case '4':
		body = d[0:4] + "00000" + d[4:5]
	default:
		body = d[0:5] + "0000" + d[5:6]
	}
	return ns + body + check, true
}
