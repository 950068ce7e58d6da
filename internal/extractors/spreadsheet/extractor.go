// Package spreadsheet renders CSV, TSV and Excel workbooks as text, one
// line per row.
package spreadsheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/extractors/plaintext"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// CellSeparator joins the cells of one row.
const CellSeparator = " | "

// Extractor handles .csv, .tsv and .xlsx files.
type Extractor struct{}

// New creates a new spreadsheet extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the source kind.
func (e *Extractor) Kind() domain.SourceKind {
	return domain.SourceKindSpreadsheet
}

// Extensions returns the handled extensions.
func (e *Extractor) Extensions() []string {
	return []string{".csv", ".tsv", ".xlsx", ".xlsm"}
}

// MIMETypes returns the handled MIME types.
func (e *Extractor) MIMETypes() []string {
	return []string{
		"text/csv",
		"text/tab-separated-values",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
}

// Extract dumps every non-empty row. Workbooks get a "## Sheet: <name>"
// heading per sheet.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	switch format(raw) {
	case ".tsv":
		return delimited(raw.Content, '\t')
	case ".csv":
		return delimited(raw.Content, ',')
	default:
		return workbook(ctx, raw.Content)
	}
}

// format picks the parser from a known extension, then the MIME hint,
// and falls back to a workbook.
func format(raw *domain.RawFile) string {
	switch raw.Extension() {
	case ".csv", ".tsv", ".xlsx":
		return raw.Extension()
	case ".xlsm":
		return ".xlsx"
	}
	mediaType, _, err := mime.ParseMediaType(raw.MIMEType)
	if err != nil {
		return ".xlsx"
	}
	switch mediaType {
	case "text/csv":
		return ".csv"
	case "text/tab-separated-values":
		return ".tsv"
	default:
		return ".xlsx"
	}
}

func delimited(content []byte, comma rune) (*driven.ExtractResult, error) {
	r := csv.NewReader(strings.NewReader(plaintext.Decode(content)))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var lines []string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse delimited text: %w", err)
		}
		if line := formatRow(record); line != "" {
			lines = append(lines, line)
		}
	}
	return &driven.ExtractResult{Text: strings.Join(lines, "\n")}, nil
}

func workbook(ctx context.Context, content []byte) (*driven.ExtractResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var blocks []string
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		var lines []string
		for _, row := range rows {
			if line := formatRow(row); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, "## Sheet: "+sheet+"\n"+strings.Join(lines, "\n"))
	}

	return &driven.ExtractResult{Text: strings.Join(blocks, "\n\n")}, nil
}

// formatRow joins trimmed cells, dropping trailing empty cells. A row of
// only empty cells yields "".
func formatRow(cells []string) string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	if end == 0 {
		return ""
	}
	trimmed := make([]string, end)
	for i := range trimmed {
		trimmed[i] = strings.TrimSpace(cells[i])
	}
	return strings.Join(trimmed, CellSeparator)
}
