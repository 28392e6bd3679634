package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/macrolens/capture/internal/domain"
)

// NutritionServiceConfig holds configuration for the nutrition service
type NutritionServiceConfig struct {
	Detection DetectionConfig
}

// NutritionService routes nutrition captures between barcode lookup,
// local label parsing and AI escalation
type NutritionService struct {
	recognizer domain.TextRecognizer
	barcodes   domain.BarcodeDecoder
	lexicon    *Lexicon
	extractor  *NutritionExtractor
	aggregator *ConfidenceAggregator
	logger     *zap.Logger
}

// NewNutritionService creates a new nutrition service with dependencies
func NewNutritionService(
	recognizer domain.TextRecognizer,
	barcodes domain.BarcodeDecoder,
	lexicon *Lexicon,
	extractor *NutritionExtractor,
	config NutritionServiceConfig,
	logger *zap.Logger,
) *NutritionService {
	if lexicon == nil {
		lexicon = NewLexicon()
	}
	if extractor == nil {
		extractor = NewNutritionExtractor()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &NutritionService{
		recognizer: recognizer,
		barcodes:   barcodes,
		lexicon:    lexicon,
		extractor:  extractor,
		aggregator: NewConfidenceAggregator(config.Detection),
		logger:     logger.Named("nutrition"),
	}
}

// AnalyzeImage classifies a nutrition photo.
// Priority: product barcode -> trusted label text -> prepared food -> unknown
func (s *NutritionService) AnalyzeImage(ctx context.Context, img domain.Image) domain.NutritionOutcome {
	rec := recognizeConcurrently(ctx, s.recognizer, s.barcodes, img, s.logger)

	if code, ok := productBarcode(rec.barcodes); ok {
		s.logger.Debug("product barcode detected",
			zap.String("code", code.Value),
			zap.String("symbology", string(code.Symbology)),
		)
		return domain.BarcodeDetected{
			Code:       code.Value,
			Symbology:  code.Symbology,
			Confidence: barcodeConfidence(code),
		}
	}

	if rec.textErr != nil {
		return domain.UnknownInput{}
	}

	return s.classifyText(rec.result())
}

// classifyText routes recognized text to a label or a prepared-food outcome
func (s *NutritionService) classifyText(result domain.RecognitionResult) domain.NutritionOutcome {
	matches := s.lexicon.Nutrition.CountMatches(result.RawText)
	parsed := s.extractor.Parse(result.RawText)

	composite := s.aggregator.Composite(Signals{
		BlockCount:     result.BlockCount,
		TextLength:     len(parsed.RawText),
		KeywordMatches: matches,
		Completeness:   parsed.Confidence,
	}, s.aggregator.Config().NutritionWeights)

	s.logger.Debug("label evaluation",
		zap.Int("keyword_matches", matches),
		zap.Float64("parse_confidence", parsed.Confidence),
		zap.Float64("composite", composite),
	)

	if !s.aggregator.Trustworthy(matches, composite) {
		return domain.PreparedFood{Confidence: clamp01(1 - composite)}
	}

	label := domain.NutritionLabel{
		RawText:    parsed.RawText,
		Confidence: composite,
	}
	if parsed.IsValid() {
		label.Parsed = &parsed
	}
	return label
}

// FindStructuredText recognizes text and returns parsed nutrition when the
// image holds a label with all core fields. Otherwise it returns nil.
func (s *NutritionService) FindStructuredText(ctx context.Context, img domain.Image) *domain.ParsedNutrition {
	text, err := safeRecognize(ctx, s.recognizer, img)
	if err != nil {
		s.logger.Warn("text recognition failed", zap.Error(err))
		return nil
	}

	outcome := s.classifyText(domain.RecognitionResult{
		RawText:    text.Text,
		BlockCount: len(text.Blocks),
	})
	if label, ok := outcome.(domain.NutritionLabel); ok {
		return label.Parsed
	}
	return nil
}

// ParseText parses label text supplied directly by the caller
func (s *NutritionService) ParseText(text string) domain.NutritionParseResult {
	parsed := s.extractor.Parse(text)
	return domain.NutritionParseResult{
		Nutrition: parsed,
		Valid:     parsed.IsValid(),
		Missing:   parsed.MissingFields(),
		Warnings:  parsed.Warnings(),
	}
}

// IsLabelCandidate reports whether text mentions enough nutrition keywords
func (s *NutritionService) IsLabelCandidate(text string) bool {
	return s.aggregator.DomainPresent(s.lexicon.Nutrition.CountMatches(text))
}

// QuickCheck gives a cheap live-preview signal for one frame. Barcode
// decoding runs first and skips text recognition on a hit. The frame is
// always closed.
func (s *NutritionService) QuickCheck(ctx context.Context, frame domain.Frame) domain.NutritionSignal {
	defer func() {
		if err := frame.Close(); err != nil {
			s.logger.Debug("frame close failed", zap.Error(err))
		}
	}()
	img := frame.Image()

	if s.barcodes != nil {
		candidates, err := safeDecode(ctx, s.barcodes, img)
		if err != nil {
			s.logger.Debug("quick check barcode decoding failed", zap.Error(err))
		}
		if _, ok := productBarcode(candidates); ok {
			return domain.NutritionSignal{HasBarcode: true}
		}
	}

	text, err := safeRecognize(ctx, s.recognizer, img)
	if err != nil {
		s.logger.Debug("quick check text recognition failed", zap.Error(err))
		return domain.NutritionSignal{}
	}
	return domain.NutritionSignal{HasLabel: s.IsLabelCandidate(text.Text)}
}
