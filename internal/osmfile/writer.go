package osmfile

import (
	"bufio"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/wegman-software/osmclean/internal/element"
)

const generator = "osmclean"

// Writer writes elements as an OSM XML document
type Writer struct {
	buf     *bufio.Writer
	enc     *xml.Encoder
	closers []io.Closer
	started bool
	count   int64
}

// NewWriter creates a writer on top of w. Close must be called to finish the document.
func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriterSize(w, 256*1024)
	enc := xml.NewEncoder(buf)
	enc.Indent("", "  ")
	return &Writer{buf: buf, enc: enc}
}

// Create opens path for writing, gzip-compressing when it ends in .gz
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz := gzip.NewWriter(f)
		w := NewWriter(gz)
		w.closers = []io.Closer{gz, f}
		return w, nil
	}

	w := NewWriter(f)
	w.closers = []io.Closer{f}
	return w, nil
}

// Count returns the number of elements written
func (w *Writer) Count() int64 {
	return w.count
}

func (w *Writer) start() error {
	if w.started {
		return nil
	}
	w.started = true
	if _, err := w.buf.WriteString(xml.Header); err != nil {
		return err
	}
	return w.enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Local: "osm"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "version"}, Value: "0.6"},
			{Name: xml.Name{Local: "generator"}, Value: generator},
		},
	})
}

// Write appends one element
func (w *Writer) Write(e *element.Element) error {
	if err := w.start(); err != nil {
		return err
	}

	start := xml.StartElement{Name: xml.Name{Local: string(e.Kind)}}
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return fmt.Errorf("failed to write %s %s: %w", e.Kind, e.ID(), err)
	}

	for _, ref := range e.NodeRefs {
		if err := w.empty("nd", xml.Attr{Name: xml.Name{Local: "ref"}, Value: ref}); err != nil {
			return err
		}
	}
	for _, m := range e.Members {
		if err := w.empty("member", memberAttrs(m)...); err != nil {
			return err
		}
	}
	for _, t := range e.Tags {
		var attrs []xml.Attr
		if !t.NoKey {
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "k"}, Value: t.Key})
		}
		if !t.NoValue {
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "v"}, Value: t.Value})
		}
		if err := w.empty("tag", attrs...); err != nil {
			return err
		}
	}

	if err := w.enc.EncodeToken(start.End()); err != nil {
		return err
	}
	w.count++
	return nil
}

// memberAttrs leaves out the attributes the source record did not have
func memberAttrs(m element.Member) []xml.Attr {
	fields := []struct{ name, value string }{{"type", m.Type}, {"ref", m.Ref}, {"role", m.Role}}
	attrs := make([]xml.Attr, 0, len(fields))
	for _, f := range fields {
		if slices.Contains(m.Missing, f.name) {
			continue
		}
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: f.name}, Value: f.value})
	}
	return attrs
}

func (w *Writer) empty(name string, attrs ...xml.Attr) error {
	start := xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	return w.enc.EncodeToken(start.End())
}

// Close finishes the document, flushes buffers and closes any file opened by Create
func (w *Writer) Close() error {
	err := w.start()
	if err == nil {
		err = w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "osm"}})
	}
	if err == nil {
		err = w.enc.Flush()
	}
	if err == nil {
		_, err = w.buf.WriteString("\n")
	}
	if err == nil {
		err = w.buf.Flush()
	}
	for _, c := range w.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
