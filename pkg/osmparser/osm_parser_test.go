package osmparser

import (
	"context"
	"strings"
	"testing"

	"github.com/lintang-b-s/roadnav/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="0.0" lon="0.0"/>
  <node id="2" lat="0.0" lon="0.001"/>
  <node id="3" lat="0.0" lon="0.002"/>
  <node id="4" lat="0.001" lon="0.002">
    <tag k="amenity" v="cafe"/>
    <tag k="name" v="Warung"/>
  </node>
  <node id="5" lat="0.002" lon="0.002"/>
  <node id="6" lat="0.003" lon="0.002"/>
  <way id="100">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="residential"/>
    <tag k="name" v="Jalan Slamet Riyadi"/>
  </way>
  <way id="101">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="primary"/>
    <tag k="oneway" v="yes"/>
    <tag k="ref" v="N1"/>
  </way>
  <way id="102">
    <nd ref="5"/>
    <nd ref="4"/>
    <tag k="highway" v="service"/>
    <tag k="oneway" v="-1"/>
  </way>
  <way id="103">
    <nd ref="5"/>
    <nd ref="6"/>
    <tag k="highway" v="motorway"/>
  </way>
  <way id="104">
    <nd ref="1"/>
    <nd ref="6"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="105">
    <nd ref="1"/>
    <nd ref="99"/>
    <nd ref="2"/>
    <tag k="highway" v="road"/>
  </way>
</osm>`

func edgeByID(snap graph.Snapshot, id string) (graph.SnapshotEdge, bool) {
	for _, e := range snap.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return graph.SnapshotEdge{}, false
}

func TestParseXML(t *testing.T) {
	p := NewOSMParser(zap.NewNop())
	snap, err := p.Parse(context.Background(), strings.NewReader(sampleOSM), FormatXML)
	require.NoError(t, err)

	assert.Len(t, snap.Nodes, 6)
	assert.Len(t, snap.Edges, 6)

	t.Run("consecutive way nodes become edges", func(t *testing.T) {
		e, ok := edgeByID(snap, "w100-1")
		require.True(t, ok)
		assert.Equal(t, "2", e.From)
		assert.Equal(t, "3", e.To)
		assert.True(t, e.Bidirectional)
		assert.Equal(t, "Jalan Slamet Riyadi", e.Name)
		assert.InDelta(t, 111.2, e.Distance, 0.2)
	})

	t.Run("oneway tags", func(t *testing.T) {
		e, _ := edgeByID(snap, "w101-0")
		assert.False(t, e.Bidirectional)
		assert.Equal(t, "N1", e.Name)

		e, _ = edgeByID(snap, "w102-0")
		assert.False(t, e.Bidirectional)
		assert.Equal(t, "4", e.From)
		assert.Equal(t, "5", e.To)
		assert.Equal(t, "Way 102", e.Name)

		e, _ = edgeByID(snap, "w103-0")
		assert.False(t, e.Bidirectional)
	})

	t.Run("footways are skipped and missing nodes are dropped", func(t *testing.T) {
		_, ok := edgeByID(snap, "w104-0")
		assert.False(t, ok)

		e, ok := edgeByID(snap, "w105-0")
		require.True(t, ok)
		assert.Equal(t, "1", e.From)
		assert.Equal(t, "2", e.To)
	})

	t.Run("named amenities are points of interest", func(t *testing.T) {
		for _, n := range snap.Nodes {
			if n.ID == "4" {
				assert.True(t, n.IsPOI)
				assert.Equal(t, "Warung", n.Name)
			}
		}
	})

	st := p.Stats()
	assert.Equal(t, 6, st.TotalWays)
	assert.Equal(t, 5, st.IncludedWays)
	assert.Equal(t, 1, st.ExcludedWays)
	assert.Equal(t, 1, st.MissingNodes)
	assert.Equal(t, 1, st.POIs)

	g, err := graph.FromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, 6, g.NodeCount())
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatXML, FormatFromPath("data/solo.osm"))
	assert.Equal(t, FormatXML, FormatFromPath("data/solo.XML"))
	assert.Equal(t, FormatPBF, FormatFromPath("data/solo.osm.pbf"))
}
