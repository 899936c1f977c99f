package osmfile

import (
	"testing"
	"time"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"

	"github.com/wegman-software/osmclean/internal/element"
)

func TestFromNode(t *testing.T) {
	n := &osm.Node{
		ID:          42,
		Lat:         37.55,
		Lon:         -77.45,
		Visible:     true,
		Version:     3,
		ChangesetID: 900,
		Timestamp:   time.Date(2016, 5, 1, 12, 0, 0, 0, time.UTC),
		User:        "mapper",
		UserID:      7,
		Tags:        osm.Tags{{Key: "addr:street", Value: "Broad St"}},
	}

	e := fromNode(n)

	assert.Equal(t, element.KindNode, e.Kind)
	assert.Equal(t, []element.Attr{
		{Name: "id", Value: "42"},
		{Name: "visible", Value: "true"},
		{Name: "version", Value: "3"},
		{Name: "changeset", Value: "900"},
		{Name: "timestamp", Value: "2016-05-01T12:00:00Z"},
		{Name: "user", Value: "mapper"},
		{Name: "uid", Value: "7"},
		{Name: "lat", Value: "37.55"},
		{Name: "lon", Value: "-77.45"},
	}, e.Attrs)
	assert.Equal(t, []element.Tag{{Key: "addr:street", Value: "Broad St"}}, e.Tags)
}

func TestFromWayAndRelation(t *testing.T) {
	w := fromWay(&osm.Way{
		ID:    10,
		Nodes: osm.WayNodes{{ID: 1}, {ID: 2}},
	})
	assert.Equal(t, []element.Attr{{Name: "id", Value: "10"}}, w.Attrs)
	assert.Equal(t, []string{"1", "2"}, w.NodeRefs)
	assert.Nil(t, w.Tags)

	r := fromRelation(&osm.Relation{
		ID: 5,
		Members: osm.Members{
			{Type: osm.TypeWay, Ref: 10, Role: "outer"},
			{Type: osm.TypeNode, Ref: 1, Role: ""},
		},
	})
	assert.Equal(t, element.KindRelation, r.Kind)
	assert.Equal(t, []element.Member{
		{Type: "way", Ref: "10", Role: "outer"},
		{Type: "node", Ref: "1", Role: ""},
	}, r.Members)
}
