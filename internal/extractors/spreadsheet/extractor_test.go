package spreadsheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

func TestExtractor_Metadata(t *testing.T) {
	e := New()

	assert.Equal(t, domain.SourceKindSpreadsheet, e.Kind())
	assert.Contains(t, e.Extensions(), ".csv")
	assert.Contains(t, e.Extensions(), ".xlsx")
}

func TestExtract_CSV(t *testing.T) {
	content := "Term,Definition\n\"ATP\",\"Energy, stored\"\n,,\nDNA,Genetic code,\n"

	res, err := New().Extract(context.Background(), &domain.RawFile{Name: "terms.csv", Content: []byte(content)})

	require.NoError(t, err)
	assert.Equal(t, "Term | Definition\nATP | Energy, stored\nDNA | Genetic code", res.Text)
	assert.Zero(t, res.Pages)
}

func TestExtract_TSVByMIME(t *testing.T) {
	content := "a\tb\n1\t2\n"

	res, err := New().Extract(context.Background(), &domain.RawFile{
		Name:     "upload",
		MIMEType: "text/tab-separated-values",
		Content:  []byte(content),
	})

	require.NoError(t, err)
	assert.Equal(t, "a | b\n1 | 2", res.Text)
}

func TestExtract_Workbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Element"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "Symbol"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Oxygen"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "O"))
	_, err := f.NewSheet("Empty")
	require.NoError(t, err)
	_, err = f.NewSheet("Scores")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Scores", "A1", 42))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res, err := New().Extract(context.Background(), &domain.RawFile{Name: "chem.xlsx", Content: buf.Bytes()})

	require.NoError(t, err)
	assert.Equal(t, "## Sheet: Sheet1\nElement | Symbol\nOxygen | O\n\n## Sheet: Scores\n42", res.Text)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawFile
		want string
	}{
		{"csv extension", domain.RawFile{Name: "a.csv"}, ".csv"},
		{"xlsm is a workbook", domain.RawFile{Name: "a.XLSM"}, ".xlsx"},
		{"extension wins over hint", domain.RawFile{Name: "a.tsv", MIMEType: "text/csv"}, ".tsv"},
		{"unknown extension uses hint", domain.RawFile{Name: "a.dat", MIMEType: "text/csv"}, ".csv"},
		{"hint parameters ignored", domain.RawFile{Name: "a", MIMEType: "text/tab-separated-values; charset=utf-8"}, ".tsv"},
		{"no hint", domain.RawFile{Name: "a.dat"}, ".xlsx"},
		{"unknown hint", domain.RawFile{Name: "a", MIMEType: "application/octet-stream"}, ".xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format(&tt.raw))
		})
	}
}

func TestExtract_InvalidWorkbook(t *testing.T) {
	_, err := New().Extract(context.Background(), &domain.RawFile{Name: "bad.xlsx", Content: []byte("not a zip")})

	assert.Error(t, err)
}

func TestFormatRow(t *testing.T) {
	assert.Equal(t, "", formatRow(nil))
	assert.Equal(t, "", formatRow([]string{" ", ""}))
	assert.Equal(t, "a |  | c", formatRow([]string{" a", "", "c ", ""}))
}
