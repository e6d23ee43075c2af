package instructions

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"yakugen/ports"
)

// DataReader loads instruction lists from CSV and XLSX files. Both formats
// carry an "instruction" column; extra columns are ignored.
type DataReader struct {
	Sheet string // XLSX sheet name, defaults to Sheet1
}

var _ ports.InstructionSource = (*DataReader)(nil)

// NewDataReader creates a reader that handles both CSV and XLSX files.
func NewDataReader() *DataReader {
	return &DataReader{Sheet: "Sheet1"}
}

// Load reads every instruction from the file, dispatching on extension.
func (r *DataReader) Load(path string) ([]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("instruction file not found: %s", path)
	}

	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = r.readCSVRows(path)
	case ".xlsx":
		rows, err = r.readExcelRows(path)
	default:
		return nil, fmt.Errorf("unsupported instruction file type: %s", ext)
	}
	if err != nil {
		return nil, err
	}

	instructions, err := extractInstructionColumn(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Printf("[DataReader] loaded %d instructions from %s", len(instructions), path)
	return instructions, nil
}

func (r *DataReader) readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func (r *DataReader) readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// extractInstructionColumn finds the "instruction" header and returns the
// non-empty cells under it. A headerless single-column file is accepted
// as-is.
func extractInstructionColumn(rows [][]string) ([]string, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no rows")
	}

	col := -1
	for i, header := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(header), "instruction") {
			col = i
			break
		}
	}

	start := 1
	if col == -1 {
		if len(rows[0]) != 1 {
			return nil, fmt.Errorf("no instruction column found")
		}
		col = 0
		start = 0
	}

	var out []string
	for _, row := range rows[start:] {
		if col >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[col])
		if text != "" {
			out = append(out, text)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("instruction column is empty")
	}
	return out, nil
}

// Sample returns n instructions drawn without replacement. When n is zero,
// negative, or at least the list length the full list is returned in order.
func Sample(list []string, n int, rng *rand.Rand) []string {
	if n <= 0 || n >= len(list) {
		return list
	}
	perm := rng.Perm(len(list))
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, list[i])
	}
	return out
}
