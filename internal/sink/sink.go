// Package sink stores reshaped documents
package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wegman-software/osmclean/internal/reshape"
)

// Sink receives documents one at a time. Flush persists anything buffered;
// Close releases resources without flushing.
type Sink interface {
	Write(ctx context.Context, doc *reshape.Document) error
	Flush(ctx context.Context) error
	Close() error
}

// DefaultBatchSize is the number of documents buffered by batching sinks
const DefaultBatchSize = 1000

// field returns a top-level string field, or "" if absent or not a string
func field(doc *reshape.Document, key string) string {
	v, ok := doc.Get(key)
	if !ok {
		return ""
	}
	s, ok := v.(reshape.String)
	if !ok {
		return ""
	}
	return string(s)
}

func elementKey(doc *reshape.Document) (elemType, id string) {
	return field(doc, reshape.FieldElementType), field(doc, "id")
}

func marshal(doc *reshape.Document) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		t, id := elementKey(doc)
		return nil, fmt.Errorf("failed to encode %s %s: %w", t, id, err)
	}
	return b, nil
}
