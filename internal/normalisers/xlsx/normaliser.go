package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/specforge/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Excel workbooks.
type Normaliser struct{}

// New creates a new Excel normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".xlsx", ".xls"}
}

// Extract returns one text segment per sheet. Each segment starts with the
// sheet name followed by its rows, cells joined with " | ".
func (n *Normaliser) Extract(_ context.Context, name string, content []byte) ([]string, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer workbook.Close()

	var segments []string
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q in %s: %w", sheet, name, err)
		}

		lines := make([]string, 0, len(rows)+1)
		lines = append(lines, sheet)
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " | "))
			if line != "" {
				lines = append(lines, line)
			}
		}

		// Skip sheets that hold no cell data at all.
		if len(lines) > 1 {
			segments = append(segments, strings.Join(lines, "\n"))
		}
	}

	return segments, nil
}
