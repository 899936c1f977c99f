// Package reshape folds an element's flat, colon-delimited tag keys into a
// nested Document suitable for a document store.
//
// Given the tags
//
//	addr:street = Main St
//	addr:city   = Richmond
//	name        = Library
//
// the reshaper produces
//
//	{"addr": {"street": "Main St", "city": "Richmond"}, "name": "Library"}
//
// alongside the structural fields of the element (element_type, raw
// attributes, coordinates, node_refs, members).
//
// Collisions are resolved per slot with a three-way rule keyed on what the
// slot already holds: nothing (store a fresh nested document), a nested
// document (merge one level down with the same rule) or a scalar (collapse
// into a two-element list). Single-segment keys always overwrite. What happens
// when a multi-segment key reaches a list built by an earlier collision is
// selected by CollisionPolicy; structural lists (coordinates, node_refs,
// members) are treated like scalars.
package reshape

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wegman-software/osmclean/internal/element"
)

// Structural field names
const (
	FieldElementType = "element_type"
	FieldCoordinates = "coordinates"
	FieldNodeRefs    = "node_refs"
	FieldMembers     = "members"
)

// ErrAmbiguousCollision is returned under the Strict policy when a tag has to
// be merged into a list built by an earlier collision
var ErrAmbiguousCollision = errors.New("ambiguous tag collision")

// CollisionPolicy selects the handling of a multi-segment tag whose prefix
// slot already holds a collision list
type CollisionPolicy int

const (
	// Accumulate appends the new nested value to the existing list
	Accumulate CollisionPolicy = iota
	// Strict fails the element with ErrAmbiguousCollision
	Strict
)

// ParseCollisionPolicy parses "accumulate" or "strict"
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch strings.ToLower(s) {
	case "", "accumulate":
		return Accumulate, nil
	case "strict":
		return Strict, nil
	}
	return Accumulate, fmt.Errorf("unknown collision policy %q", s)
}

func (p CollisionPolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "accumulate"
}

// Reshaper converts elements into documents. It holds no per-element state
// and may be reused for any number of elements.
type Reshaper struct {
	policy CollisionPolicy
}

// New creates a reshaper with the given list collision policy
func New(policy CollisionPolicy) *Reshaper {
	return &Reshaper{policy: policy}
}

// Reshape builds the document for one element
func (r *Reshaper) Reshape(e *element.Element) (*Document, error) {
	if _, ok := element.ParseKind(string(e.Kind)); !ok {
		return nil, element.Invalid(e, "unknown element type %q", e.Kind)
	}

	doc := NewDocument()
	doc.Set(FieldElementType, String(e.Kind))

	for _, a := range e.Attrs {
		if a.Name == "lat" || a.Name == "lon" {
			continue
		}
		doc.Set(a.Name, String(a.Value))
	}

	switch e.Kind {
	case element.KindNode:
		coords, err := coordinates(e)
		if err != nil {
			return nil, err
		}
		doc.Set(FieldCoordinates, coords)
	case element.KindWay:
		if len(e.NodeRefs) > 0 {
			refs := make(List, len(e.NodeRefs))
			for i, ref := range e.NodeRefs {
				refs[i] = String(ref)
			}
			doc.Set(FieldNodeRefs, refs)
		}
	case element.KindRelation:
		if len(e.Members) > 0 {
			members := make(List, len(e.Members))
			for i, m := range e.Members {
				if len(m.Missing) > 0 {
					return nil, element.Invalid(e, "member %d missing %s", i, strings.Join(m.Missing, ", "))
				}
				md := NewDocument()
				md.Set("ref", String(m.Ref))
				md.Set("role", String(m.Role))
				md.Set("type", String(m.Type))
				members[i] = md
			}
			doc.Set(FieldMembers, members)
		}
	}

	collisions := make(collisionSlots)
	for _, t := range e.Tags {
		if t.NoKey {
			return nil, element.Invalid(e, "tag with value %q has no key", t.Value)
		}
		if t.NoValue {
			return nil, element.Invalid(e, "tag %q has no value", t.Key)
		}
		if err := r.insert(doc, t.Segments(), t.Value, t.Key, collisions); err != nil {
			return nil, fmt.Errorf("%s %s: %w", e.Kind, e.ID(), err)
		}
	}

	return doc, nil
}

// collisionSlots records the slots whose list was built by a tag collision
type collisionSlots map[*Document]map[string]bool

func (c collisionSlots) has(d *Document, key string) bool {
	return c[d][key]
}

func (c collisionSlots) set(d *Document, key string, on bool) {
	if !on {
		delete(c[d], key)
		return
	}
	if c[d] == nil {
		c[d] = make(map[string]bool)
	}
	c[d][key] = true
}

// insert applies the three-way collision rule for segs[0] in d and recurses
// into nested documents
func (r *Reshaper) insert(d *Document, segs []string, value, key string, collisions collisionSlots) error {
	head := segs[0]
	if len(segs) == 1 {
		d.Set(head, String(value))
		collisions.set(d, head, false)
		return nil
	}

	existing, ok := d.Get(head)
	if !ok {
		d.Set(head, nest(segs[1:], value))
		return nil
	}

	if sub, ok := existing.(*Document); ok {
		return r.insert(sub, segs[1:], value, key, collisions)
	}
	if list, ok := existing.(List); ok && collisions.has(d, head) {
		if r.policy == Strict {
			return fmt.Errorf("%w: %q reaches list at %q", ErrAmbiguousCollision, key, head)
		}
		d.Set(head, append(list, nest(segs[1:], value)))
		return nil
	}

	// scalars and structural lists
	d.Set(head, List{existing, nest(segs[1:], value)})
	collisions.set(d, head, true)
	return nil
}

// nest builds {segs[0]: {segs[1]: ... {segs[n]: value}}}
func nest(segs []string, value string) *Document {
	d := NewDocument()
	if len(segs) == 1 {
		d.Set(segs[0], String(value))
		return d
	}
	d.Set(segs[0], nest(segs[1:], value))
	return d
}

func coordinates(e *element.Element) (List, error) {
	latStr, ok := e.Attr("lat")
	if !ok {
		return nil, element.Invalid(e, "node has no lat")
	}
	lonStr, ok := e.Attr("lon")
	if !ok {
		return nil, element.Invalid(e, "node has no lon")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return nil, element.Invalid(e, "bad lat %q", latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return nil, element.Invalid(e, "bad lon %q", lonStr)
	}
	return List{Float(lat), Float(lon)}, nil
}
