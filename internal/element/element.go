package element

import "strings"

// Kind is the OSM element type of a record
type Kind string

const (
	KindNode     Kind = "node"
	KindWay      Kind = "way"
	KindRelation Kind = "relation"
)

// ParseKind maps an XML element name to a Kind
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindNode, KindWay, KindRelation:
		return Kind(s), true
	}
	return "", false
}

// Attr is a single raw attribute of an element, kept as the source wrote it
type Attr struct {
	Name  string
	Value string
}

// Tag is a key/value pair attached to an element
type Tag struct {
	Key   string
	Value string
	// NoValue marks a tag whose source record carried no value at all
	NoValue bool
	// NoKey marks a tag whose source record carried no key
	NoKey bool
}

// Segments splits the tag key on ':' (e.g. "addr:street" -> ["addr", "street"])
func (t Tag) Segments() []string {
	return strings.Split(t.Key, ":")
}

// Member is one member of a relation
type Member struct {
	Type string // "node", "way", "relation"
	Ref  string
	Role string
	// Missing lists the required member attributes absent from the source record
	Missing []string
}

// Element is one node, way or relation record.
//
// Elements are treated as values: transformation stages return a modified
// copy (see WithTags) and never write through a shared Element.
type Element struct {
	Kind     Kind
	Attrs    []Attr
	Tags     []Tag
	NodeRefs []string // ways only
	Members  []Member // relations only
}

// Attr returns the value of the named attribute
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ID returns the id attribute, or "" if the element has none
func (e *Element) ID() string {
	id, _ := e.Attr("id")
	return id
}

// Tag returns the value of the first tag with the given key
func (e *Element) Tag(key string) (string, bool) {
	for _, t := range e.Tags {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// TagMap flattens the tags into a map. Later duplicates win; keyless tags are left out.
func (e *Element) TagMap() map[string]string {
	m := make(map[string]string, len(e.Tags))
	for _, t := range e.Tags {
		if t.NoKey {
			continue
		}
		m[t.Key] = t.Value
	}
	return m
}

// WithTags returns a shallow copy of the element carrying the given tag list
func (e *Element) WithTags(tags []Tag) *Element {
	c := *e
	c.Tags = tags
	return &c
}

// CloneTags returns a copy of the tag list that is safe to modify
func (e *Element) CloneTags() []Tag {
	tags := make([]Tag, len(e.Tags))
	copy(tags, e.Tags)
	return tags
}
