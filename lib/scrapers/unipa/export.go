package unipa

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// utf8bom in front of the data keeps Excel from mangling the Japanese
// columns when the file is double-clicked open.
const utf8bom = "\xEF\xBB\xBF"

var csvHeader = []string{"年度", "学部", "科目名", "教員名", "曜日時限"}

// FileName builds the export name for one search. Slashes and spaces in
// the department name would break paths, so they are dropped.
func FileName(year, department string) string {
	safe := strings.NewReplacer("/", "", " ", "").Replace(department)
	return fmt.Sprintf("syllabus_%s_%s_search.csv", year, safe)
}

// WriteCSV writes rows as a BOM-prefixed utf-8 csv.
func WriteCSV(w io.Writer, rows []Row) error {
	if _, err := io.WriteString(w, utf8bom); err != nil {
		return fmt.Errorf("failed to write byte order mark: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Year, row.Department, row.Subject, row.Teacher, row.Period}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes rows into dir under the conventional name and returns
// the full path.
func ExportFile(dir, year, department string, rows []Row) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(dir, FileName(year, department))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}
