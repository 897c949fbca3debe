package dataset

import (
	"fmt"
	"sort"
)

// CountryColumn is the header name of the key column.
const CountryColumn = "Country"

// Row is one country's ratios, indexed by Type.
type Row struct {
	Country string
	Ratios  [NumTypes]float64
}

// Ratio returns the value of the given type column.
func (r Row) Ratio(t Type) float64 { return r.Ratios[t] }

// Sum returns the total of all 16 ratios.
func (r Row) Sum() float64 {
	var s float64
	for _, v := range r.Ratios {
		s += v
	}
	return s
}

// Table is the loaded dataset. It is never mutated after Load returns,
// so one instance can be shared between goroutines.
type Table struct {
	source string
	rows   []Row
	index  map[string]int
}

// NewTable builds a Table from rows kept in the given order.
// Duplicate or empty country keys are rejected.
func NewTable(source string, rows []Row) (*Table, error) {
	t := &Table{
		source: source,
		rows:   make([]Row, len(rows)),
		index:  make(map[string]int, len(rows)),
	}
	copy(t.rows, rows)
	for i, r := range t.rows {
		if r.Country == "" {
			return nil, &SchemaError{Row: i + 1, Column: CountryColumn, Reason: "empty country"}
		}
		if prev, dup := t.index[r.Country]; dup {
			return nil, &SchemaError{Row: i + 1, Column: CountryColumn, Reason: fmt.Sprintf("duplicate country %q (first seen at row %d)", r.Country, prev+1)}
		}
		t.index[r.Country] = i
	}
	return t, nil
}

// Source returns the identity of the source the table was loaded from.
func (t *Table) Source() string { return t.source }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of all rows in source order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// At returns the i-th row in source order.
func (t *Table) At(i int) Row { return t.rows[i] }

// Head returns up to n rows from the top of the table.
func (t *Table) Head(n int) []Row {
	if n < 0 {
		n = 0
	}
	if n > len(t.rows) {
		n = len(t.rows)
	}
	out := make([]Row, n)
	copy(out, t.rows[:n])
	return out
}

// Lookup finds a row by exact country key.
func (t *Table) Lookup(country string) (Row, error) {
	i, ok := t.index[country]
	if !ok {
		return Row{}, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}
	return t.rows[i], nil
}

// Countries returns the country keys in source order.
func (t *Table) Countries() []string {
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Country
	}
	return out
}

// SortedCountries returns the country keys in lexical order.
func (t *Table) SortedCountries() []string {
	out := t.Countries()
	sort.Strings(out)
	return out
}
