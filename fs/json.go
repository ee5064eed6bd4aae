package fs

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/abrsjh/harvest"
)

// Ensure interfaces are implemented at compile time.
var (
	_ harvest.RecordWriter = (*JSONWriter)(nil)
	_ harvest.RecordReader = (*JSONReader)(nil)
)

// JSONWriter writes records to a file as a JSON array.
type JSONWriter struct {
	path   string
	indent bool
	append bool

	mu      sync.Mutex
	records []harvest.Record
	closed  bool
}

// NewJSONWriter creates a writer targeting path. When indent is true the
// output is pretty-printed. When append is true and the file already
// holds a JSON array, new records are added after the existing ones.
func NewJSONWriter(path string, indent, append bool) *JSONWriter {
	return &JSONWriter{path: path, indent: indent, append: append}
}

// Write buffers records for the final flush on Close.
func (w *JSONWriter) Write(ctx context.Context, records []harvest.Record) error {
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
func (w *JSONWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	records := w.records
	if w.append {
		existing, err := readJSONFile(w.path)
		if err != nil && harvest.ErrorCode(err) != harvest.ENOTFOUND {
			return err
		}
		records = append(existing, records...)
	}
	if records == nil {
		records = []harvest.Record{}
	}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(records, "", "  ")
	} else {
		data, err = json.Marshal(records)
	}
	if err != nil {
		return harvest.Errorf(harvest.EINTERNAL, "encode records: %v", err)
	}
	data = append(data, '\n')

	return writeAtomic(w.path, data)
}

// JSONReader reads records back from a JSON array file.
type JSONReader struct {
	path string
}

// NewJSONReader creates a reader for path.
func NewJSONReader(path string) *JSONReader {
	return &JSONReader{path: path}
}

// Read loads all records from the file.
func (r *JSONReader) Read(ctx context.Context) ([]harvest.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readJSONFile(r.path)
}

func readJSONFile(path string) ([]harvest.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, harvest.Errorf(harvest.ENOTFOUND, "JSON file not found: %s", path)
		}
		return nil, harvest.Errorf(harvest.EINTERNAL, "read JSON file: %v", err)
	}

	var records []harvest.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "JSON file is not a record array: %v", err)
	}
	return records, nil
}
