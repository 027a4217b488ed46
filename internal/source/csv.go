package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/citypulse/crimes-backend-go/internal/dataset"
)

// CSVSource loads incidents from one delimited file per year, named
// Crimes_<year>.csv under the data directory.
type CSVSource struct {
	dir string
}

// NewCSVSource creates a CSV-backed source rooted at dir.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

// Path returns the file path that backs the given year.
func (s *CSVSource) Path(year int) string {
	return filepath.Join(s.dir, fmt.Sprintf("Crimes_%d.csv", year))
}

// Load reads the year's file wholesale into a table. Cells are typed by a
// single inference rule: empty string becomes missing, numeric-looking text
// becomes a number, everything else stays a string. A missing file maps to
// ErrSourceUnavailable; a structurally unreadable file is a real error.
func (s *CSVSource) Load(year int) (*dataset.Table, error) {
	path := s.Path(year)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("year %d (%s): %w", year, path, ErrSourceUnavailable)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return dataset.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := dataset.New(header...)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		row := make([]dataset.Value, len(record))
		for i, cell := range record {
			row[i] = inferCell(cell)
		}
		t.AppendRow(row)
	}
	return t, nil
}

// inferCell types a raw CSV cell.
func inferCell(cell string) dataset.Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return dataset.Missing()
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return dataset.Num(n)
	}
	return dataset.Str(trimmed)
}
