package osmfile

import (
	"context"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/wegman-software/osmclean/internal/element"
)

// pbfSource adapts the osmpbf scanner to Source
type pbfSource struct {
	file    *os.File
	scanner *osmpbf.Scanner
	current *element.Element
}

func newPBFSource(ctx context.Context, f *os.File) *pbfSource {
	procs := runtime.GOMAXPROCS(-1) - 1
	if procs < 1 {
		procs = 1
	}
	scanner := osmpbf.New(ctx, f, procs)
	return &pbfSource{file: f, scanner: scanner}
}

func (s *pbfSource) Scan() bool {
	for s.scanner.Scan() {
		switch o := s.scanner.Object().(type) {
		case *osm.Node:
			s.current = fromNode(o)
			return true
		case *osm.Way:
			s.current = fromWay(o)
			return true
		case *osm.Relation:
			s.current = fromRelation(o)
			return true
		}
	}
	s.current = nil
	return false
}

func (s *pbfSource) Element() *element.Element { return s.current }

func (s *pbfSource) Err() error { return s.scanner.Err() }

func (s *pbfSource) Close() error {
	s.scanner.Close()
	return s.file.Close()
}

// metaAttrs mirrors the attribute order of an OSM XML export
func metaAttrs(id int64, visible bool, version int, changeset int64, ts time.Time, user string, uid int64) []element.Attr {
	attrs := []element.Attr{{Name: "id", Value: strconv.FormatInt(id, 10)}}
	if visible {
		attrs = append(attrs, element.Attr{Name: "visible", Value: "true"})
	}
	if version > 0 {
		attrs = append(attrs, element.Attr{Name: "version", Value: strconv.Itoa(version)})
	}
	if changeset > 0 {
		attrs = append(attrs, element.Attr{Name: "changeset", Value: strconv.FormatInt(changeset, 10)})
	}
	if !ts.IsZero() {
		attrs = append(attrs, element.Attr{Name: "timestamp", Value: ts.UTC().Format(time.RFC3339)})
	}
	if user != "" {
		attrs = append(attrs, element.Attr{Name: "user", Value: user})
	}
	if uid > 0 {
		attrs = append(attrs, element.Attr{Name: "uid", Value: strconv.FormatInt(uid, 10)})
	}
	return attrs
}

func fromTags(tags osm.Tags) []element.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]element.Tag, len(tags))
	for i, t := range tags {
		out[i] = element.Tag{Key: t.Key, Value: t.Value}
	}
	return out
}

func fromNode(n *osm.Node) *element.Element {
	attrs := metaAttrs(int64(n.ID), n.Visible, n.Version, int64(n.ChangesetID), n.Timestamp, n.User, int64(n.UserID))
	attrs = append(attrs,
		element.Attr{Name: "lat", Value: strconv.FormatFloat(n.Lat, 'f', -1, 64)},
		element.Attr{Name: "lon", Value: strconv.FormatFloat(n.Lon, 'f', -1, 64)},
	)
	return &element.Element{Kind: element.KindNode, Attrs: attrs, Tags: fromTags(n.Tags)}
}

func fromWay(w *osm.Way) *element.Element {
	e := &element.Element{
		Kind:  element.KindWay,
		Attrs: metaAttrs(int64(w.ID), w.Visible, w.Version, int64(w.ChangesetID), w.Timestamp, w.User, int64(w.UserID)),
		Tags:  fromTags(w.Tags),
	}
	for _, wn := range w.Nodes {
		e.NodeRefs = append(e.NodeRefs, strconv.FormatInt(int64(wn.ID), 10))
	}
	return e
}

func fromRelation(r *osm.Relation) *element.Element {
	e := &element.Element{
		Kind:  element.KindRelation,
		Attrs: metaAttrs(int64(r.ID), r.Visible, r.Version, int64(r.ChangesetID), r.Timestamp, r.User, int64(r.UserID)),
		Tags:  fromTags(r.Tags),
	}
	for _, m := range r.Members {
		e.Members = append(e.Members, element.Member{
			Type: string(m.Type),
			Ref:  strconv.FormatInt(m.Ref, 10),
			Role: m.Role,
		})
	}
	return e
}
