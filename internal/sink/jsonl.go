package sink

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/wegman-software/osmclean/internal/reshape"
)

// JSONL writes one JSON document per line, keys in insertion order.
// With pretty set, documents are indented and separated by newlines.
type JSONL struct {
	w      *bufio.Writer
	closer io.Closer
	pretty bool
	count  int64
}

// NewJSONL writes to w
func NewJSONL(w io.Writer, pretty bool) *JSONL {
	return &JSONL{w: bufio.NewWriterSize(w, 256*1024), pretty: pretty}
}

// CreateJSONL creates (or truncates) the file at path
func CreateJSONL(path string, pretty bool) (*JSONL, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	s := NewJSONL(f, pretty)
	s.closer = f
	return s, nil
}

// Count returns the number of documents written
func (s *JSONL) Count() int64 {
	return s.count
}

func (s *JSONL) Write(_ context.Context, doc *reshape.Document) error {
	b, err := marshal(doc)
	if err != nil {
		return err
	}
	if s.pretty {
		var out bytes.Buffer
		if err := json.Indent(&out, b, "", "  "); err != nil {
			return err
		}
		b = out.Bytes()
	}
	if _, err := s.w.Write(b); err != nil {
		return err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	s.count++
	return nil
}

func (s *JSONL) Flush(context.Context) error {
	return s.w.Flush()
}

func (s *JSONL) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
