package recognition

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/macrolens/capture/internal/domain"
)

// TesseractConfig configures the tesseract recognizer
type TesseractConfig struct {
	Binary   string // binary name or absolute path; if empty -> "tesseract"
	Language string // default "eng+deu"
	PSM      int    // page segmentation mode, 0 = tesseract default
}

// TesseractRecognizer recognizes text with the tesseract CLI in TSV mode
type TesseractRecognizer struct {
	cfg    TesseractConfig
	runner Runner
	logger *zap.Logger
}

// NewTesseractRecognizer creates a recognizer. A nil runner executes on the host.
func NewTesseractRecognizer(cfg TesseractConfig, runner Runner, logger *zap.Logger) *TesseractRecognizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng+deu"
	}
	if runner == nil {
		runner = ExecRunner{Logger: logger}
	}
	return &TesseractRecognizer{cfg: cfg, runner: runner, logger: logger.Named("tesseract")}
}

// Recognize implements domain.TextRecognizer
func (t *TesseractRecognizer) Recognize(ctx context.Context, img domain.Image) (domain.TextRecognition, error) {
	path, cleanup, err := writeTemp(img)
	if err != nil {
		return domain.TextRecognition{}, err
	}
	defer cleanup()

	// tesseract <file> stdout -l <lang> [--psm N] tsv
	args := []string{path, "stdout", "-l", t.cfg.Language}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.cfg.PSM))
	}
	args = append(args, "tsv")

	out, errb, err := t.runner.Run(ctx, t.cfg.Binary, args...)
	if err != nil {
		return domain.TextRecognition{}, fmt.Errorf("%w: tesseract: %v: %s", domain.ErrRecognitionFailed, err, truncate(string(errb), 512))
	}

	result := ParseTSV(string(out))
	t.logger.Debug("recognized text",
		zap.Int("blocks", len(result.Blocks)),
		zap.Int("chars", len(result.Text)),
	)
	return result, nil
}

type tsvLine struct {
	words []string
}

type tsvBlock struct {
	lines    []*tsvLine
	confSum  float64
	confN    int
	position int
}

// ParseTSV rebuilds text lines and blocks from tesseract TSV output. Words
// with confidence -1 are layout rows and are skipped.
func ParseTSV(tsv string) domain.TextRecognition {
	blocks := make(map[int]*tsvBlock)
	lines := make(map[[3]int]*tsvLine)

	for i, ln := range strings.Split(tsv, "\n") {
		if i == 0 || strings.TrimSpace(ln) == "" {
			continue
		} // skip header
		cols := strings.Split(strings.TrimRight(ln, "\r"), "\t")
		if len(cols) < 12 {
			continue
		}
		word := strings.TrimSpace(cols[11])
		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil || conf < 0 || word == "" {
			continue
		}
		page, _ := strconv.Atoi(cols[1])
		blockNum, _ := strconv.Atoi(cols[2])
		par, _ := strconv.Atoi(cols[3])
		lineNum, _ := strconv.Atoi(cols[4])
		blockKey := page*10000 + blockNum

		b, ok := blocks[blockKey]
		if !ok {
			b = &tsvBlock{position: len(blocks)}
			blocks[blockKey] = b
		}
		key := [3]int{blockKey, par, lineNum}
		l, ok := lines[key]
		if !ok {
			l = &tsvLine{}
			lines[key] = l
			b.lines = append(b.lines, l)
		}
		l.words = append(l.words, word)
		b.confSum += conf
		b.confN++
	}

	ordered := make([]*tsvBlock, 0, len(blocks))
	for _, b := range blocks {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].position < ordered[j].position })

	var (
		result   domain.TextRecognition
		allLines []string
	)
	for _, b := range ordered {
		blockLines := make([]string, 0, len(b.lines))
		for _, l := range b.lines {
			blockLines = append(blockLines, strings.Join(l.words, " "))
		}
		allLines = append(allLines, blockLines...)
		result.Blocks = append(result.Blocks, domain.TextBlock{
			Text:       strings.Join(blockLines, "\n"),
			Confidence: b.confSum / float64(b.confN) / 100,
		})
	}
	result.Text = strings.Join(allLines, "\n")
	return result
}
