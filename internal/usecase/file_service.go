package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/macrolens/capture/internal/domain"
)

// FileServiceConfig holds configuration for file extraction
type FileServiceConfig struct {
	// MinRecoveredChars is the least usable text a raw-byte recovery must yield
	MinRecoveredChars int
	// MinRunLength is the shortest printable run kept by recovery
	MinRunLength int
	// CacheTTL is how long extracted text is cached by content hash
	CacheTTL time.Duration
}

// FileService extracts text from spreadsheets and documents. Extraction is
// always local.
type FileService struct {
	spreadsheets domain.SpreadsheetDecoder
	documents    domain.DocumentDecoder
	cache        domain.CacheRepository
	config       FileServiceConfig
	logger       *zap.Logger
}

// NewFileService creates a new file service with dependencies
func NewFileService(
	spreadsheets domain.SpreadsheetDecoder,
	documents domain.DocumentDecoder,
	cache domain.CacheRepository,
	config FileServiceConfig,
	logger *zap.Logger,
) *FileService {
	if config.MinRecoveredChars <= 0 {
		config.MinRecoveredChars = 50
	}
	if config.MinRunLength <= 0 {
		config.MinRunLength = 4
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileService{
		spreadsheets: spreadsheets,
		documents:    documents,
		cache:        cache,
		config:       config,
		logger:       logger.Named("files"),
	}
}

// ProcessFile decodes a spreadsheet or document. When the decoder fails,
// printable text is recovered from the raw bytes instead; too little
// recovered text yields ErrInsufficientText. Successful results are cached
// by content hash.
func (s *FileService) ProcessFile(ctx context.Context, data []byte, filename, mimeType string) (domain.FileText, error) {
	inputType := ClassifyInput(filename, mimeType, domain.SourceUpload)
	ext := FileExtension(filename)
	if inputType != domain.InputSpreadsheet && inputType != domain.InputDocument {
		return domain.FileText{}, fmt.Errorf("%w: %q (%s)", domain.ErrUnsupportedInput, filename, mimeType)
	}

	cacheKey := fileCacheKey(data, inputType, ext)
	if s.cache != nil {
		var cached domain.FileText
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			s.logger.Debug("file cache hit", zap.String("filename", filename))
			return cached, nil
		}
	}

	result, err := s.extract(ctx, data, filename, inputType, ext)
	if err != nil {
		return domain.FileText{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.config.CacheTTL); err != nil {
			s.logger.Warn("failed to cache file text", zap.String("filename", filename), zap.Error(err))
		}
	}
	return result, nil
}

func (s *FileService) extract(ctx context.Context, data []byte, filename string, inputType domain.InputType, ext string) (domain.FileText, error) {
	var (
		result domain.FileText
		err    error
	)
	switch inputType {
	case domain.InputSpreadsheet:
		result, err = s.decodeSpreadsheet(ctx, data, ext)
	default:
		result, err = s.decodeDocument(ctx, data, ext)
	}

	if err == nil && strings.TrimSpace(result.Text) != "" {
		return result, nil
	}
	if err != nil {
		s.logger.Info("decoder failed, recovering raw text",
			zap.String("filename", filename),
			zap.Error(err),
		)
	}

	recovered, usable := RecoverPrintableText(data, s.config.MinRunLength)
	if usable < s.config.MinRecoveredChars {
		if err == nil {
			err = errors.New("decoder returned no text")
		}
		return domain.FileText{}, fmt.Errorf("%w: %d usable characters (%v)", domain.ErrInsufficientText, usable, err)
	}

	return domain.FileText{Type: inputType, Text: recovered, Recovered: true}, nil
}

func fileCacheKey(data []byte, inputType domain.InputType, ext string) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("file:%s:%s:%s", inputType, ext, hex.EncodeToString(sum[:]))
}

func (s *FileService) decodeSpreadsheet(ctx context.Context, data []byte, ext string) (domain.FileText, error) {
	if s.spreadsheets == nil {
		return domain.FileText{}, fmt.Errorf("%w: no spreadsheet decoder", domain.ErrUnsupportedInput)
	}
	sheet, err := s.spreadsheets.DecodeSpreadsheet(ctx, data, ext)
	if err != nil {
		return domain.FileText{}, err
	}
	return domain.FileText{Type: domain.InputSpreadsheet, Text: sheet.Text, Rows: sheet.Rows}, nil
}

func (s *FileService) decodeDocument(ctx context.Context, data []byte, ext string) (domain.FileText, error) {
	if s.documents == nil {
		return domain.FileText{}, fmt.Errorf("%w: no document decoder", domain.ErrUnsupportedInput)
	}
	doc, err := s.documents.DecodeDocument(ctx, data, ext)
	if err != nil {
		return domain.FileText{}, err
	}
	return domain.FileText{Type: domain.InputDocument, Text: doc.Text, Pages: doc.Pages}, nil
}

// RecoverPrintableText keeps runs of printable ASCII at least minRun bytes
// long, one run per line. It returns the text and its count of
// non-whitespace characters.
func RecoverPrintableText(data []byte, minRun int) (string, int) {
	var (
		runs    []string
		current []byte
		usable  int
	)

	flush := func() {
		run := strings.TrimSpace(string(current))
		if len(run) >= minRun {
			runs = append(runs, run)
			for i := 0; i < len(run); i++ {
				if run[i] != ' ' && run[i] != '\t' {
					usable++
				}
			}
		}
		current = current[:0]
	}

	for _, b := range data {
		if (b >= 0x20 && b <= 0x7e) || b == '\t' {
			current = append(current, b)
			continue
		}
		flush()
	}
	flush()

	return strings.Join(runs, "\n"), usable
}
