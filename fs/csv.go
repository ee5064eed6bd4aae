package fs

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"sync"

	"github.com/abrsjh/harvest"
)

// Ensure interfaces are implemented at compile time.
var (
	_ harvest.RecordWriter = (*CSVWriter)(nil)
	_ harvest.RecordReader = (*CSVReader)(nil)
)

// CSVWriter writes records to a CSV file. The header row is the sorted
// union of all field names seen across the buffered records.
type CSVWriter struct {
	path   string
	append bool

	mu      sync.Mutex
	records []harvest.Record
	closed  bool
}

// NewCSVWriter creates a writer targeting path. When append is true and
// the file already exists, new rows are added after the existing ones.
func NewCSVWriter(path string, append bool) *CSVWriter {
	return &CSVWriter{path: path, append: append}
}

// Write buffers records for the final flush on Close.
func (w *CSVWriter) Write(ctx context.Context, records []harvest.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return harvest.Errorf(harvest.EINTERNAL, "writer is closed")
	}
	w.records = append(w.records, records...)
	return nil
}

// Close flushes the buffered records to disk.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	records := w.records
	if w.append {
		existing, err := readCSVFile(w.path)
		if err != nil && harvest.ErrorCode(err) != harvest.ENOTFOUND {
			return err
		}
		records = append(existing, records...)
	}

	fields := fieldOrder(records)

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(fields); err != nil {
		return harvest.Errorf(harvest.EINTERNAL, "write CSV header: %v", err)
	}
	row := make([]string, len(fields))
	for _, rec := range records {
		for i, field := range fields {
			row[i] = stringify(rec[field])
		}
		if err := cw.Write(row); err != nil {
			return harvest.Errorf(harvest.EINTERNAL, "write CSV row: %v", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return harvest.Errorf(harvest.EINTERNAL, "flush CSV: %v", err)
	}

	return writeAtomic(w.path, buf.Bytes())
}

// CSVReader reads records back from a CSV file. All values come back as
// strings.
type CSVReader struct {
	path string
}

// NewCSVReader creates a reader for path.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// Read loads all records from the file.
func (r *CSVReader) Read(ctx context.Context) ([]harvest.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readCSVFile(r.path)
}

func readCSVFile(path string) ([]harvest.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, harvest.Errorf(harvest.ENOTFOUND, "CSV file not found: %s", path)
		}
		return nil, harvest.Errorf(harvest.EINTERNAL, "open CSV file: %v", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, harvest.Errorf(harvest.EINTERNAL, "read CSV header: %v", err)
	}

	var records []harvest.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, harvest.Errorf(harvest.EINTERNAL, "read CSV row: %v", err)
		}
		rec := make(harvest.Record, len(header))
		for i, field := range header {
			if i < len(row) && row[i] != "" {
				rec[field] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
