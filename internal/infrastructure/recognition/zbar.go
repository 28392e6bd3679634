package recognition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/macrolens/capture/internal/domain"
)

// zbarNoSymbols is the zbarimg exit status when the image holds no barcode
const zbarNoSymbols = 4

var zbarSymbologies = map[string]domain.Symbology{
	"EAN-13":   domain.SymbologyEAN13,
	"EAN-8":    domain.SymbologyEAN8,
	"UPC-A":    domain.SymbologyUPCA,
	"UPC-E":    domain.SymbologyUPCE,
	"ISBN-13":  domain.SymbologyISBN,
	"ISBN-10":  domain.SymbologyISBN,
	"CODE-128": domain.SymbologyCode128,
	"QR-Code":  domain.SymbologyQR,
}

// ZbarDecoder finds barcodes with the zbarimg CLI
type ZbarDecoder struct {
	binary string
	runner Runner
	logger *zap.Logger
}

// NewZbarDecoder creates a decoder. A nil runner executes on the host.
func NewZbarDecoder(binary string, runner Runner, logger *zap.Logger) *ZbarDecoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if binary == "" {
		binary = "zbarimg"
	}
	if runner == nil {
		runner = ExecRunner{Logger: logger}
	}
	return &ZbarDecoder{binary: binary, runner: runner, logger: logger.Named("zbar")}
}

// Decode implements domain.BarcodeDecoder
func (z *ZbarDecoder) Decode(ctx context.Context, img domain.Image) ([]domain.BarcodeCandidate, error) {
	path, cleanup, err := writeTemp(img)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, errb, err := z.runner.Run(ctx, z.binary, "--quiet", path)
	if err != nil {
		var ec exitCoder
		if errors.As(err, &ec) && ec.ExitCode() == zbarNoSymbols {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: zbarimg: %v: %s", domain.ErrRecognitionFailed, err, truncate(string(errb), 512))
	}

	candidates := ParseZbarOutput(string(out))
	z.logger.Debug("decoded barcodes", zap.Int("count", len(candidates)))
	return candidates, nil
}

// ParseZbarOutput reads "TYPE:value" lines as printed by zbarimg
func ParseZbarOutput(out string) []domain.BarcodeCandidate {
	var candidates []domain.BarcodeCandidate
	for _, ln := range strings.Split(out, "\n") {
		kind, value, ok := strings.Cut(strings.TrimSpace(ln), ":")
		if !ok || value == "" {
			continue
		}
		symbology, known := zbarSymbologies[kind]
		if !known {
			symbology = domain.SymbologyUnknown
		}
		candidates = append(candidates, domain.BarcodeCandidate{Value: value, Symbology: symbology})
	}
	return candidates
}
