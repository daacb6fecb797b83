package xlsx

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/specforge/internal/core/ports/driven"
)

// createTestXLSX builds a workbook in memory with the given sheet rows.
func createTestXLSX(t *testing.T, sheets map[string][][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf := new(bytes.Buffer)
	require.NoError(t, f.Write(buf))
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestExtensions(t *testing.T) {
	normaliser := New()
	exts := normaliser.Extensions()

	require.NotEmpty(t, exts)
	assert.Contains(t, exts, ".xlsx")
	assert.Contains(t, exts, ".xls")
}

func TestExtract_Success(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	content := createTestXLSX(t, map[string][][]string{
		"Requirements": {
			{"ID", "Description"},
			{"R1", "Users can log in"},
		},
	})

	segments, err := normaliser.Extract(ctx, "features.xlsx", content)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Contains(t, segments[0], "Requirements")
	assert.Contains(t, segments[0], "ID | Description")
	assert.Contains(t, segments[0], "R1 | Users can log in")
}

func TestExtract_InvalidWorkbook(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	segments, err := normaliser.Extract(ctx, "broken.xlsx", []byte("not a workbook"))
	assert.Error(t, err)
	assert.Nil(t, segments)
}

func TestExtract_EmptySheetSkipped(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	content := createTestXLSX(t, map[string][][]string{
		"Empty": {},
	})

	segments, err := normaliser.Extract(ctx, "empty.xlsx", content)
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
