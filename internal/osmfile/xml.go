package osmfile

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/wegman-software/osmclean/internal/element"
)

// XMLSource decodes OSM XML with a streaming token decoder
type XMLSource struct {
	decoder *xml.Decoder
	current *element.Element
	err     error
	done    bool
}

// NewXMLSource creates a source reading OSM XML from r
func NewXMLSource(r io.Reader) *XMLSource {
	return &XMLSource{decoder: xml.NewDecoder(r)}
}

// Scan advances to the next top-level node, way or relation
func (s *XMLSource) Scan() bool {
	if s.done {
		return false
	}
	s.current = nil

	for {
		token, err := s.decoder.Token()
		if err == io.EOF {
			s.done = true
			return false
		}
		if err != nil {
			s.fail(fmt.Errorf("XML parse error: %w", err))
			return false
		}

		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		kind, ok := element.ParseKind(se.Name.Local)
		if !ok {
			continue
		}

		e, err := s.parseElement(kind, se)
		if err != nil {
			s.fail(err)
			return false
		}
		s.current = e
		return true
	}
}

// Element returns the element read by the last successful Scan
func (s *XMLSource) Element() *element.Element {
	return s.current
}

// Err returns the first decoding error, if any
func (s *XMLSource) Err() error {
	return s.err
}

// Close is a no-op; the caller owns the reader
func (s *XMLSource) Close() error {
	return nil
}

func (s *XMLSource) fail(err error) {
	s.err = err
	s.done = true
}

// parseElement consumes the children of an element up to its end tag
func (s *XMLSource) parseElement(kind element.Kind, start xml.StartElement) (*element.Element, error) {
	e := &element.Element{
		Kind:  kind,
		Attrs: make([]element.Attr, 0, len(start.Attr)),
	}
	for _, attr := range start.Attr {
		e.Attrs = append(e.Attrs, element.Attr{Name: attr.Name.Local, Value: attr.Value})
	}

	depth := 0
	for {
		token, err := s.decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of input inside %s %s", kind, e.ID())
		}
		if err != nil {
			return nil, fmt.Errorf("XML parse error: %w", err)
		}

		switch se := token.(type) {
		case xml.StartElement:
			depth++
			if depth > 1 {
				continue
			}
			switch se.Name.Local {
			case "tag":
				e.Tags = append(e.Tags, parseTag(se))
			case "nd":
				if kind != element.KindWay {
					continue
				}
				if ref, ok := attrValue(se, "ref"); ok {
					e.NodeRefs = append(e.NodeRefs, ref)
				}
			case "member":
				if kind == element.KindRelation {
					e.Members = append(e.Members, parseMember(se))
				}
			}
		case xml.EndElement:
			if depth == 0 {
				return e, nil
			}
			depth--
		}
	}
}

func parseTag(se xml.StartElement) element.Tag {
	k, hasKey := attrValue(se, "k")
	v, hasValue := attrValue(se, "v")
	return element.Tag{Key: k, Value: v, NoKey: !hasKey, NoValue: !hasValue}
}

func parseMember(se xml.StartElement) element.Member {
	var m element.Member
	var seen [3]bool
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "type":
			m.Type, seen[0] = attr.Value, true
		case "ref":
			m.Ref, seen[1] = attr.Value, true
		case "role":
			m.Role, seen[2] = attr.Value, true
		}
	}
	for i, name := range []string{"type", "ref", "role"} {
		if !seen[i] {
			m.Missing = append(m.Missing, name)
		}
	}
	return m
}

func attrValue(se xml.StartElement, name string) (string, bool) {
	for _, attr := range se.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}
