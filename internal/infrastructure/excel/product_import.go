package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-analytics/internal/application/dto"
)

// ErrEmptyImport la planilla no trae ninguna fila de datos.
var ErrEmptyImport = errors.New("la planilla no contiene productos")

var headerAliases = map[string]string{
	"name":            "name",
	"nombre":          "name",
	"producto":        "name",
	"product":         "name",
	"category":        "category",
	"categoria":       "category",
	"categoría":       "category",
	"unite":           "unite",
	"unit":            "unite",
	"unidad":          "unite",
	"unit_price":      "unit_price",
	"unit price":      "unit_price",
	"precio":          "unit_price",
	"precio unitario": "unit_price",
	"current_stock":   "current_stock",
	"stock":           "current_stock",
	"stock inicial":   "current_stock",
	"cantidad":        "current_stock",
	"min_stock":       "min_stock",
	"stock minimo":    "min_stock",
	"stock mínimo":    "min_stock",
}

var requiredColumns = []string{"name", "category", "unite", "unit_price", "current_stock"}

// ParseProductLines lee la primera hoja del XLSX y devuelve una solicitud de alta por fila.
// La primera fila es el encabezado; se aceptan alias en español e inglés.
// Las filas sin nombre se ignoran. min_stock es opcional (0 si falta).
func ParseProductLines(reader io.Reader) ([]dto.CreateProductLineRequest, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("abrir planilla: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyImport
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer filas: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}
	return ParseProductRows(rows)
}

// ParseProductRows interpreta filas ya leídas (encabezado incluido). Lo usa también el
// generador de seeds para archivos CSV.
func ParseProductRows(rows [][]string) ([]dto.CreateProductLineRequest, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}
	colMap := mapColumns(rows[0])
	for _, c := range requiredColumns {
		if _, ok := colMap[c]; !ok {
			return nil, fmt.Errorf("falta la columna requerida: %s", c)
		}
	}

	result := make([]dto.CreateProductLineRequest, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		name := strings.TrimSpace(readCell(cells, colMap["name"]))
		if name == "" {
			continue
		}

		price, err := parseDecimal(readCell(cells, colMap["unit_price"]))
		if err != nil {
			return nil, fmt.Errorf("fila %d precio inválido: %w", index+1, err)
		}
		stock, err := parseDecimal(readCell(cells, colMap["current_stock"]))
		if err != nil {
			return nil, fmt.Errorf("fila %d stock inválido: %w", index+1, err)
		}
		minStock := decimal.Zero
		if idx, ok := colMap["min_stock"]; ok {
			if raw := strings.TrimSpace(readCell(cells, idx)); raw != "" {
				minStock, err = parseDecimal(raw)
				if err != nil {
					return nil, fmt.Errorf("fila %d stock mínimo inválido: %w", index+1, err)
				}
			}
		}

		result = append(result, dto.CreateProductLineRequest{
			Name:         name,
			Category:     strings.TrimSpace(readCell(cells, colMap["category"])),
			Unite:        strings.TrimSpace(readCell(cells, colMap["unite"])),
			UnitPrice:    price,
			CurrentStock: stock,
			MinStock:     minStock,
		})
	}
	if len(result) == 0 {
		return nil, ErrEmptyImport
	}
	return result, nil
}

func mapColumns(header []string) map[string]int {
	out := make(map[string]int, len(header))
	for i, h := range header {
		key, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := out[key]; !dup {
			out[key] = i
		}
	}
	return out
}

func readCell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// parseDecimal acepta "1234.5", "1234,5" y "1.234,5".
func parseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if s == "" {
		return decimal.Zero, errors.New("valor vacío")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
