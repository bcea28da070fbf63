package excel

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		values := r
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", axis, &values))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseProductLines_AliasEnEspanol(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Nombre", "Categoría", "Unidad", "Precio", "Stock", "Stock mínimo"},
		{"Tornillo", "Ferretería", "und", "250", "100", "20"},
		{"", "", "", "", "", ""},
		{"Cemento", "Construcción", "bulto", "32000,50", "15", ""},
	})

	got, err := ParseProductLines(buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Tornillo", got[0].Name)
	assert.Equal(t, "Ferretería", got[0].Category)
	assert.True(t, got[0].MinStock.Equal(decimal.NewFromInt(20)))
	assert.True(t, got[1].UnitPrice.Equal(decimal.RequireFromString("32000.5")))
	assert.True(t, got[1].MinStock.IsZero())
}

func TestParseProductRows_FaltaColumna(t *testing.T) {
	_, err := ParseProductRows([][]string{{"name", "category", "unite", "unit_price"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current_stock")
}

func TestParseProductRows_ValorInvalido(t *testing.T) {
	_, err := ParseProductRows([][]string{
		{"name", "category", "unite", "unit_price", "current_stock"},
		{"Tornillo", "Ferretería", "und", "abc", "1"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fila 2")
}

func TestParseProductRows_SinFilas(t *testing.T) {
	_, err := ParseProductRows([][]string{{"name", "category", "unite", "unit_price", "current_stock"}})
	assert.ErrorIs(t, err, ErrEmptyImport)
}

func TestParseDecimal(t *testing.T) {
	for in, want := range map[string]string{
		"1234.5":   "1234.5",
		"1234,5":   "1234.5",
		"1.234,5":  "1234.5",
		" 10 000 ": "10000",
	} {
		got, err := parseDecimal(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), in)
	}
}
