package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable indicates the source file could not be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSchemaMismatch indicates missing columns or malformed rows.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrUnknownType indicates a label outside the 16 known types.
	ErrUnknownType = errors.New("unknown personality type")
	// ErrUnknownCountry indicates a country key absent from the table.
	ErrUnknownCountry = errors.New("unknown country")
)

// SchemaError describes where a source violated the expected layout.
// Row is 1-based over data rows; 0 means the header.
type SchemaError struct {
	Row    int
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Row == 0 && e.Column != "":
		return fmt.Sprintf("%s: header: %s: %s", ErrSchemaMismatch, e.Column, e.Reason)
	case e.Row == 0:
		return fmt.Sprintf("%s: header: %s", ErrSchemaMismatch, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("%s: row %d, column %s: %s", ErrSchemaMismatch, e.Row, e.Column, e.Reason)
	default:
		return fmt.Sprintf("%s: row %d: %s", ErrSchemaMismatch, e.Row, e.Reason)
	}
}

func (e *SchemaError) Unwrap() error { return ErrSchemaMismatch }
