package files

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/macrolens/capture/internal/domain"
)

func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Movement"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Reps"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Thrusters"))
	require.NoError(t, f.SetCellValue(sheet, "B2", 21))
	// row 3 left empty
	require.NoError(t, f.SetCellValue(sheet, "A4", "Pull-ups"))
	require.NoError(t, f.SetCellFormula(sheet, "B4", "SUM(10,5)"))
	require.NoError(t, f.SetCellValue(sheet, "C4", "reps"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	return buildZip(t, "word/document.xml", documentXML)
}

func buildZip(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestSpreadsheetDecoder_Workbook(t *testing.T) {
	dec := NewSpreadsheetDecoder(nil)

	got, err := dec.DecodeSpreadsheet(context.Background(), buildWorkbook(t), "xlsx")
	require.NoError(t, err)

	require.Len(t, got.Rows, 3, "empty row should be skipped")
	assert.Equal(t, []string{"Thrusters", "21"}, got.Rows[1])
	assert.Equal(t, "Pull-ups", got.Rows[2][0])
	assert.Equal(t, "=SUM(10,5)", got.Rows[2][1])
	assert.Contains(t, got.Text, "Movement\tReps\nThrusters\t21")
}

func TestSpreadsheetDecoder_Delimited(t *testing.T) {
	dec := NewSpreadsheetDecoder(nil)

	tests := []struct {
		name string
		data string
		ext  string
		want [][]string
	}{
		{
			name: "csv with bom and blank line",
			data: "\xef\xbb\xbfNutrient,Amount\n\n,\nProtein, 9 g\n",
			ext:  "csv",
			want: [][]string{{"Nutrient", "Amount"}, {"Protein", "9 g"}},
		},
		{
			name: "tsv ragged rows",
			data: "Calories\t230\nFat\t9\tg\n",
			ext:  "tsv",
			want: [][]string{{"Calories", "230"}, {"Fat", "9", "g"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dec.DecodeSpreadsheet(context.Background(), []byte(tt.data), tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Rows)
		})
	}
}

func TestSpreadsheetDecoder_Errors(t *testing.T) {
	dec := NewSpreadsheetDecoder(nil)

	_, err := dec.DecodeSpreadsheet(context.Background(), []byte("not a zip"), "xlsx")
	assert.ErrorIs(t, err, domain.ErrCorruptFile)

	_, err = dec.DecodeSpreadsheet(context.Background(), []byte("a,b"), "ods")
	assert.ErrorIs(t, err, domain.ErrUnsupportedInput)

	// legacy BIFF workbooks are left to printable-text recovery
	_, err = dec.DecodeSpreadsheet(context.Background(), []byte{0xd0, 0xcf, 0x11, 0xe0}, "xls")
	assert.ErrorIs(t, err, domain.ErrUnsupportedInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dec.DecodeSpreadsheet(ctx, []byte("a,b"), "csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDocumentDecoder_DOCX(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>21-15-9 For Time</w:t></w:r></w:p>
<w:p><w:r><w:t>Thrusters</w:t></w:r><w:r><w:tab/><w:t>95 lb</w:t></w:r></w:p>
<w:p><w:r><w:t>Pull-ups</w:t></w:r></w:p>
</w:body></w:document>`

	dec := NewDocumentDecoder(nil)
	got, err := dec.DecodeDocument(context.Background(), buildDOCX(t, xml), "docx")
	require.NoError(t, err)

	assert.Equal(t, "21-15-9 For Time\nThrusters\t95 lb\nPull-ups", got.Text)
	assert.Len(t, got.Pages, 1)
}

func TestDocumentDecoder_PlainText(t *testing.T) {
	dec := NewDocumentDecoder(nil)

	got, err := dec.DecodeDocument(context.Background(), []byte("\xef\xbb\xbfAMRAP 12\n\xff10 Burpees"), "txt")
	require.NoError(t, err)
	assert.Equal(t, "AMRAP 12\n10 Burpees", got.Text)
}

func TestDocumentDecoder_Errors(t *testing.T) {
	dec := NewDocumentDecoder(nil)

	tests := []struct {
		name string
		data []byte
		ext  string
		want error
	}{
		{"corrupt pdf", []byte("%PDF-1.4 garbage"), "pdf", domain.ErrCorruptFile},
		{"corrupt docx", []byte("PK garbage"), "docx", domain.ErrCorruptFile},
		{"docx without body", buildZip(t, "word/styles.xml", "<w:styles/>"), "docx", domain.ErrCorruptFile},
		{"unknown", []byte("x"), "odt", domain.ErrUnsupportedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dec.DecodeDocument(context.Background(), tt.data, tt.ext)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
