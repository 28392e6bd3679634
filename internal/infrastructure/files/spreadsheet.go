package files

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/macrolens/capture/internal/domain"
)

// SpreadsheetDecoder reads xlsx/xlsm workbooks and csv/tsv tables
type SpreadsheetDecoder struct {
	logger *zap.Logger
}

// NewSpreadsheetDecoder creates a spreadsheet decoder
func NewSpreadsheetDecoder(logger *zap.Logger) *SpreadsheetDecoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpreadsheetDecoder{logger: logger.Named("spreadsheet")}
}

// DecodeSpreadsheet implements domain.SpreadsheetDecoder. Empty rows are skipped.
func (d *SpreadsheetDecoder) DecodeSpreadsheet(ctx context.Context, data []byte, ext string) (domain.SpreadsheetText, error) {
	if err := ctx.Err(); err != nil {
		return domain.SpreadsheetText{}, err
	}

	var (
		rows [][]string
		err  error
	)
	switch ext {
	case "xlsx", "xlsm", "xltx", "xltm":
		rows, err = d.readWorkbook(data)
	case "csv":
		rows, err = readDelimited(data, ',')
	case "tsv":
		rows, err = readDelimited(data, '\t')
	default:
		return domain.SpreadsheetText{}, fmt.Errorf("%w: spreadsheet extension %q", domain.ErrUnsupportedInput, ext)
	}
	if err != nil {
		return domain.SpreadsheetText{}, err
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, "\t"))
	}
	return domain.SpreadsheetText{Text: strings.Join(lines, "\n"), Rows: rows}, nil
}

// readWorkbook returns the formatted cell values of every sheet. A formula
// cell without a cached value contributes its formula text.
func (d *SpreadsheetDecoder) readWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", domain.ErrCorruptFile, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			d.logger.Debug("close workbook", zap.Error(cerr))
		}
	}()

	var out [][]string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: read sheet %q: %v", domain.ErrCorruptFile, sheet, err)
		}
		for r, row := range rows {
			for c, value := range row {
				if value != "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					continue
				}
				if formula, err := f.GetCellFormula(sheet, cell); err == nil && formula != "" {
					row[c] = "=" + formula
				}
			}
			if cleaned := trimRow(row); cleaned != nil {
				out = append(out, cleaned)
			}
		}
		d.logger.Debug("read sheet", zap.String("sheet", sheet), zap.Int("rows", len(rows)))
	}
	return out, nil
}

func readDelimited(data []byte, comma rune) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var out [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read delimited text: %v", domain.ErrCorruptFile, err)
		}
		if cleaned := trimRow(record); cleaned != nil {
			out = append(out, cleaned)
		}
	}
	return out, nil
}

// trimRow trims cells and drops trailing empty cells; nil means the row is empty
func trimRow(row []string) []string {
	cells := make([]string, len(row))
	last := -1
	for i, cell := range row {
		cells[i] = strings.TrimSpace(cell)
		if cells[i] != "" {
			last = i
		}
	}
	if last < 0 {
		return nil
	}
	return cells[:last+1]
}
