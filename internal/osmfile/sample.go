package osmfile

import (
	"context"
	"fmt"

	"github.com/wegman-software/osmclean/internal/element"
)

// ElementWriter receives elements, e.g. *Writer
type ElementWriter interface {
	Write(e *element.Element) error
}

// Sample writes every k-th element of src (the 1st, (k+1)th, ...) to w.
// It returns the number of elements written.
func Sample(ctx context.Context, src Source, w ElementWriter, k int) (int64, error) {
	if k < 1 {
		return 0, fmt.Errorf("sample interval must be at least 1, got %d", k)
	}

	var read, written int64
	for src.Scan() {
		if read%256 == 0 {
			if err := ctx.Err(); err != nil {
				return written, err
			}
		}
		if read%int64(k) == 0 {
			if err := w.Write(src.Element()); err != nil {
				return written, fmt.Errorf("failed to write sample: %w", err)
			}
			written++
		}
		read++
	}
	if err := src.Err(); err != nil {
		return written, err
	}
	return written, nil
}
