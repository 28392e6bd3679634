package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/macrolens/capture/internal/domain"
)

// WorkoutServiceConfig holds configuration for the workout service
type WorkoutServiceConfig struct {
	Detection DetectionConfig
}

// WorkoutService routes workout captures between local parsing, file
// extraction and AI escalation
type WorkoutService struct {
	recognizer domain.TextRecognizer
	lexicon    *Lexicon
	parser     *WorkoutParser
	files      *FileService
	aggregator *ConfidenceAggregator
	logger     *zap.Logger
}

// NewWorkoutService creates a new workout service with dependencies
func NewWorkoutService(
	recognizer domain.TextRecognizer,
	lexicon *Lexicon,
	parser *WorkoutParser,
	files *FileService,
	config WorkoutServiceConfig,
	logger *zap.Logger,
) *WorkoutService {
	if lexicon == nil {
		lexicon = NewLexicon()
	}
	if parser == nil {
		parser = NewWorkoutParser(NewMovementCatalog())
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WorkoutService{
		recognizer: recognizer,
		lexicon:    lexicon,
		parser:     parser,
		files:      files,
		aggregator: NewConfidenceAggregator(config.Detection),
		logger:     logger.Named("workout"),
	}
}

// Process classifies a captured input and routes it
func (s *WorkoutService) Process(ctx context.Context, input domain.CaptureInput) domain.WorkoutOutcome {
	inputType := ClassifyInput(input.Filename, input.MimeType, input.Source)
	s.logger.Debug("input classified",
		zap.String("filename", input.Filename),
		zap.String("type", string(inputType)),
	)

	switch inputType {
	case domain.InputCameraImage, domain.InputGalleryImage:
		return s.analyze(ctx, domain.Image{Data: input.Data, MimeType: input.MimeType, Source: input.Source}, inputType)
	case domain.InputSpreadsheet, domain.InputDocument:
		return s.ProcessFile(ctx, input.Data, input.Filename, input.MimeType)
	default:
		return domain.ExtractionFailed{Message: fmt.Sprintf("%s: %q", domain.ErrUnsupportedInput, input.Filename)}
	}
}

// AnalyzeImage recognizes text on a workout photo and decides whether it
// can be parsed locally
func (s *WorkoutService) AnalyzeImage(ctx context.Context, img domain.Image) domain.WorkoutOutcome {
	inputType := domain.InputGalleryImage
	if img.Source == domain.SourceCamera {
		inputType = domain.InputCameraImage
	}
	return s.analyze(ctx, img, inputType)
}

func (s *WorkoutService) analyze(ctx context.Context, img domain.Image, inputType domain.InputType) domain.WorkoutOutcome {
	rec := recognizeConcurrently(ctx, s.recognizer, nil, img, s.logger)
	if rec.textErr != nil {
		return domain.RequiresVisionAI{Reason: "text recognition failed"}
	}
	return s.classifyText(rec.result(), inputType)
}

func (s *WorkoutService) classifyText(result domain.RecognitionResult, inputType domain.InputType) domain.WorkoutOutcome {
	if len(Normalize(result.RawText)) == 0 {
		return domain.RequiresVisionAI{Reason: "no text recognized"}
	}

	patterns := s.lexicon.Workout.FindMatchedKeywords(result.RawText)
	if !s.aggregator.DomainPresent(len(patterns)) {
		return domain.RequiresVisionAI{
			Reason: fmt.Sprintf("only %d workout keywords found", len(patterns)),
		}
	}

	parsed := s.parser.Parse(result.RawText)
	composite := s.aggregator.Composite(Signals{
		BlockCount:     result.BlockCount,
		TextLength:     len(result.RawText),
		KeywordMatches: len(patterns),
		Completeness:   parsed.Confidence,
	}, s.aggregator.Config().WorkoutWeights)

	s.logger.Debug("workout evaluation",
		zap.Strings("patterns", patterns),
		zap.Float64("parse_confidence", parsed.Confidence),
		zap.Float64("composite", composite),
	)

	if !s.aggregator.Trustworthy(len(patterns), composite) {
		return domain.RequiresVisionAI{
			Reason: fmt.Sprintf("low confidence (%.2f)", composite),
		}
	}

	return domain.TextExtracted{
		RawText:     Normalize(result.RawText),
		Confidence:  composite,
		Source:      inputType,
		RecommendAI: parsed.RequiresAIReview,
		Patterns:    patterns,
	}
}

// FindStructuredText recognizes and parses a workout photo. It returns nil
// when the text is not trustworthy enough to parse locally.
func (s *WorkoutService) FindStructuredText(ctx context.Context, img domain.Image) *domain.WorkoutParseResult {
	text, err := safeRecognize(ctx, s.recognizer, img)
	if err != nil {
		s.logger.Warn("text recognition failed", zap.Error(err))
		return nil
	}

	outcome := s.classifyText(domain.RecognitionResult{RawText: text.Text, BlockCount: len(text.Blocks)}, domain.InputGalleryImage)
	extracted, ok := outcome.(domain.TextExtracted)
	if !ok {
		return nil
	}
	result := s.parser.Parse(extracted.RawText)
	return &result
}

// ParseText parses workout text supplied directly by the caller
func (s *WorkoutService) ParseText(text string) domain.WorkoutParseResult {
	return s.parser.Parse(text)
}

// ProcessFile extracts text from a spreadsheet or document. Failures are
// reported as an ExtractionFailed outcome, never escalated.
func (s *WorkoutService) ProcessFile(ctx context.Context, data []byte, filename, mimeType string) domain.WorkoutOutcome {
	if s.files == nil {
		return domain.ExtractionFailed{Message: "file extraction is not configured"}
	}

	file, err := s.files.ProcessFile(ctx, data, filename, mimeType)
	if err != nil {
		s.logger.Info("file extraction failed", zap.String("filename", filename), zap.Error(err))
		return domain.ExtractionFailed{Message: fileErrorMessage(err)}
	}

	return domain.FileParsed{RawText: file.Text, Rows: file.Rows}
}

// QuickCheck gives a cheap live-preview signal for one frame using only
// the keyword heuristic. The frame is always closed.
func (s *WorkoutService) QuickCheck(ctx context.Context, frame domain.Frame) domain.WorkoutSignal {
	defer func() {
		if err := frame.Close(); err != nil {
			s.logger.Debug("frame close failed", zap.Error(err))
		}
	}()

	text, err := safeRecognize(ctx, s.recognizer, frame.Image())
	if err != nil {
		s.logger.Debug("quick check text recognition failed", zap.Error(err))
		return domain.WorkoutSignal{}
	}

	matches := s.lexicon.Workout.CountMatches(text.Text)
	cfg := s.aggregator.Config()
	return domain.WorkoutSignal{
		HasWodText: s.aggregator.DomainPresent(matches),
		Confidence: ratio(matches, cfg.KeywordSaturation),
	}
}

func fileErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedInput):
		return "unsupported file type"
	case errors.Is(err, domain.ErrInsufficientText):
		return "not enough readable text in file"
	case errors.Is(err, domain.ErrCorruptFile):
		return "file could not be read"
	default:
		return err.Error()
	}
}
