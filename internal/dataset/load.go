package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Options controls how a source is read.
type Options struct {
	// Delimiter between fields. If 0, picked from the file extension
	// ('\t' for .tsv, ',' otherwise).
	Delimiter rune
}

// LoadFile opens path and loads it as a Table. The table's source identity
// is the cleaned absolute path.
func LoadFile(path string, opt Options) (*Table, error) {
	id, err := SourceID(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(id)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()
	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(id)
	}
	return load(f, id, opt)
}

// Load reads a table from r. The source identity is left empty.
func Load(r io.Reader, opt Options) (*Table, error) {
	if opt.Delimiter == 0 {
		opt.Delimiter = ','
	}
	return load(r, "", opt)
}

// SourceID normalizes a path into the key used for memoization.
func SourceID(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", ErrSourceUnavailable)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %v", ErrSourceUnavailable, path, err)
	}
	return filepath.Clean(abs), nil
}

func load(in io.Reader, source string, opt Options) (*Table, error) {
	r := csv.NewReader(in)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.Comma = opt.Delimiter

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Reason: "empty source"}
		}
		return nil, readError(0, err)
	}
	layout, err := resolveHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, readError(line, err)
		}
		if isBlank(rec) {
			continue
		}
		row, err := layout.parse(line, rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return NewTable(source, rows)
}

// columnLayout maps header positions onto the key and type columns.
type columnLayout struct {
	country int
	types   [NumTypes]int
	width   int
}

func resolveHeader(header []string) (*columnLayout, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, seen := pos[h]; !seen {
			pos[h] = i
		}
	}
	var missing []string
	l := &columnLayout{width: len(header)}
	if i, ok := pos[CountryColumn]; ok {
		l.country = i
	} else {
		missing = append(missing, CountryColumn)
	}
	for t, label := range typeLabels {
		if i, ok := pos[label]; ok {
			l.types[t] = i
		} else {
			missing = append(missing, label)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Reason: "missing columns " + strings.Join(missing, ", ")}
	}
	return l, nil
}

func (l *columnLayout) parse(line int, rec []string) (Row, error) {
	if len(rec) < l.width {
		return Row{}, &SchemaError{Row: line, Reason: fmt.Sprintf("expected %d fields, got %d", l.width, len(rec))}
	}
	row := Row{Country: rec[l.country]}
	if strings.TrimSpace(row.Country) == "" {
		return Row{}, &SchemaError{Row: line, Column: CountryColumn, Reason: "empty country"}
	}
	for t, idx := range l.types {
		raw := strings.TrimSpace(rec[idx])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Row{}, &SchemaError{Row: line, Column: typeLabels[t], Reason: fmt.Sprintf("not a ratio: %q", raw)}
		}
		row.Ratios[t] = v
	}
	return row, nil
}

func readError(line int, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &SchemaError{Row: line, Reason: pe.Err.Error()}
	}
	return fmt.Errorf("%w: read: %v", ErrSourceUnavailable, err)
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
