// Package osmfile reads and writes OSM element streams
package osmfile

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wegman-software/osmclean/internal/element"
)

// Source yields elements one at a time. The element returned by Element is
// only valid until the next call to Scan.
type Source interface {
	Scan() bool
	Element() *element.Element
	Err() error
	Close() error
}

// Format identifies the encoding of an input file
type Format int

const (
	FormatXML Format = iota
	FormatPBF
)

// DetectFormat picks the format from the file name
func DetectFormat(path string) (Format, error) {
	name := strings.TrimSuffix(strings.ToLower(path), ".gz")
	switch {
	case strings.HasSuffix(name, ".osm"), strings.HasSuffix(name, ".xml"):
		return FormatXML, nil
	case strings.HasSuffix(name, ".pbf"):
		if strings.HasSuffix(strings.ToLower(path), ".gz") {
			return 0, fmt.Errorf("gzip-compressed PBF is not supported: %s", path)
		}
		return FormatPBF, nil
	}
	return 0, fmt.Errorf("unrecognized input format: %s", path)
}

// Open opens a file for streaming. Supports plain XML, gzip-compressed
// XML and PBF.
func Open(ctx context.Context, path string) (Source, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	if format == FormatPBF {
		return newPBFSource(ctx, f), nil
	}

	var reader io.Reader = f
	closers := []io.Closer{f}

	// Check if gzip compressed
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gzReader, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		reader = gzReader
		closers = append([]io.Closer{gzReader}, closers...)
	}

	return &closingSource{Source: NewXMLSource(reader), closers: closers}, nil
}

type closingSource struct {
	Source
	closers []io.Closer
}

func (s *closingSource) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
