package harvest

import "context"

// Format names an output encoding.
type Format string

// Supported output formats.
const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatDatabase Format = "database"
)

// Valid reports whether f is a recognized format.
func (f Format) Valid() bool {
	switch f {
	case FormatCSV, FormatJSON, FormatDatabase:
		return true
	}
	return false
}

// RecordWriter persists extracted records. Write may be called once with
// all records or repeatedly per page; Close flushes and releases the
// underlying resource.
type RecordWriter interface {
	Write(ctx context.Context, records []Record) error
	Close() error
}

// RecordReader loads previously written records, used by the preview
// command and round-trip tests.
type RecordReader interface {
	Read(ctx context.Context) ([]Record, error)
}
