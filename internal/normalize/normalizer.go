// Package normalize rewrites inconsistent tag values to canonical forms
// using static lookup tables.
package normalize

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wegman-software/osmclean/internal/element"
)

const defaultCacheSize = 4096

// Rewriter is an additional per-tag rewrite applied after the table rules
type Rewriter interface {
	Rewrite(key, value string) (string, error)
}

// Observer is told every time a rule changes a value
type Observer func(rule string)

// Option configures a Normalizer
type Option func(*Normalizer)

// WithRewriter appends a custom rewrite step
func WithRewriter(r Rewriter) Option {
	return func(n *Normalizer) { n.hook = r }
}

// WithObserver registers a callback for changed values
func WithObserver(o Observer) Option {
	return func(n *Normalizer) { n.observe = o }
}

// WithoutCountyTags disables derivation of the missing county name/number tag
func WithoutCountyTags() Option {
	return func(n *Normalizer) { n.deriveCounties = false }
}

// Normalizer applies the rule chain to every tag of an element
type Normalizer struct {
	rules          []Rule
	derivations    []derivation
	deriveCounties bool
	hook           Rewriter
	observe        Observer
	streets        *lru.Cache[string, cachedStreet]
}

type cachedStreet struct {
	value     string
	changedBy []string
}

// New creates a normalizer for the given tables
func New(t *Tables, opts ...Option) (*Normalizer, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	streets, err := lru.New[string, cachedStreet](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create street cache: %w", err)
	}

	n := &Normalizer{
		rules:          BuildRules(t),
		derivations:    countyDerivations(t),
		deriveCounties: true,
		streets:        streets,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Rewrite runs one tag through the whole rule chain
func (n *Normalizer) Rewrite(key, value string) (string, error) {
	return n.rewriteHook(key, n.applyRules(key, value))
}

// applyRules runs the table rules. Street results are memoized.
func (n *Normalizer) applyRules(key, value string) string {
	street := n.isStreet(key)
	if street {
		if hit, ok := n.streets.Get(value); ok {
			for _, rule := range hit.changedBy {
				n.notify(rule)
			}
			return hit.value
		}
	}

	orig := value
	var changedBy []string
	for _, r := range n.rules {
		if !r.Applies(key) {
			continue
		}
		next := r.Rewrite(value)
		if next != value {
			n.notify(r.Name)
			changedBy = append(changedBy, r.Name)
			value = next
		}
	}
	if street {
		n.streets.Add(orig, cachedStreet{value: value, changedBy: changedBy})
	}
	return value
}

// Normalize returns a new element with every tag rewritten and the derived
// county tags added. Derived tags also pass through the custom rewriter.
// The input element is not modified.
func (n *Normalizer) Normalize(e *element.Element) (*element.Element, error) {
	tags := e.CloneTags()
	for i, t := range tags {
		if t.NoValue || t.NoKey {
			continue
		}
		tags[i].Value = n.applyRules(t.Key, t.Value)
	}

	if n.deriveCounties {
		for _, d := range n.derivations {
			tags = d.apply(tags)
		}
	}

	if n.hook != nil {
		for i, t := range tags {
			if t.NoValue || t.NoKey {
				continue
			}
			v, err := n.hook.Rewrite(t.Key, t.Value)
			if err != nil {
				return nil, fmt.Errorf("rewrite %s %s tag %q: %w", e.Kind, e.ID(), t.Key, err)
			}
			tags[i].Value = v
		}
	}
	return e.WithTags(tags), nil
}

func (n *Normalizer) isStreet(key string) bool {
	return key == StreetKeys[0]
}

func (n *Normalizer) rewriteHook(key, value string) (string, error) {
	if n.hook == nil {
		return value, nil
	}
	return n.hook.Rewrite(key, value)
}

func (n *Normalizer) notify(rule string) {
	if n.observe != nil {
		n.observe(rule)
	}
}
