// seed_products genera un script SQL para cargar líneas de producto a partir de una planilla
// (XLSX o CSV exportado desde Excel) a nombre de un usuario existente.
//
// Uso: go run ./cmd/seed_products <planilla.xlsx|planilla.csv> <email-dueño> [salida.sql]
// Por defecto escribe: seeds/product_lines.sql en la raíz del módulo.
// Los CSV pueden venir en UTF-8 o ISO-8859-1 y separados por coma o punto y coma.
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/infrastructure/excel"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Uso: seed_products <planilla.xlsx|planilla.csv> <email-dueño> [salida.sql]")
		os.Exit(2)
	}
	inPath, ownerEmail := os.Args[1], os.Args[2]
	outPath := filepath.Join(findModuleRoot(), "seeds", "product_lines.sql")
	if len(os.Args) > 3 {
		outPath = os.Args[3]
	}

	lines, err := readLines(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer planilla: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, filepath.Base(inPath), ownerEmail, lines, uuid.NewString); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d líneas de producto para %s\n", outPath, len(lines), ownerEmail)
}

func readLines(path string) ([]dto.CreateProductLineRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows, err := readCSV(f)
		if err != nil {
			return nil, err
		}
		return excel.ParseProductRows(rows)
	}
	return excel.ParseProductLines(f)
}

// readCSV lee todas las filas. Si el contenido no es UTF-8 válido se decodifica como ISO-8859-1.
func readCSV(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")) // BOM de Excel

	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	firstLine, _, _ := bytes.Cut(raw, []byte("\n"))
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		reader.Comma = ';'
	}
	return reader.ReadAll()
}

// writeSQL escribe un INSERT por línea. El dueño se resuelve por email al ejecutar el script.
func writeSQL(w io.Writer, source, ownerEmail string, lines []dto.CreateProductLineRequest, newID func() string) error {
	var b strings.Builder
	b.WriteString("-- Líneas de producto iniciales\n")
	fmt.Fprintf(&b, "-- Generado desde %s para %s\n\n", source, ownerEmail)
	b.WriteString("BEGIN;\n\n")
	for _, l := range lines {
		b.WriteString("INSERT INTO product_lines (id, user_id, name, category, unite, unit_price, current_stock, min_stock, initial_stock)\n")
		fmt.Fprintf(&b, "SELECT '%s', id, '%s', '%s', '%s', %s, %s, %s, %s FROM users WHERE email = '%s';\n",
			newID(),
			escapeSQL(l.Name), escapeSQL(l.Category), escapeSQL(l.Unite),
			l.UnitPrice.String(), l.CurrentStock.String(), l.MinStock.String(), l.CurrentStock.String(),
			escapeSQL(ownerEmail),
		)
	}
	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
