package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wegman-software/osmclean/internal/element"
	"github.com/wegman-software/osmclean/internal/filter"
	"github.com/wegman-software/osmclean/internal/normalize"
	"github.com/wegman-software/osmclean/internal/osmfile"
	"github.com/wegman-software/osmclean/internal/reshape"
	"github.com/wegman-software/osmclean/internal/sink"
)

const pipelineOSM = `<osm version="0.6">
  <node id="1" lat="37.55" lon="-77.45">
    <tag k="addr:street" v="W Broad St"/>
    <tag k="addr:state" v="Virginia"/>
    <tag k="addr:postcode" v="23220-1234"/>
  </node>
  <node id="2" lat="38.9" lon="-77.0">
    <tag k="addr:state" v="MD"/>
  </node>
  <node id="3" lon="-77.4">
    <tag k="name" v="no latitude"/>
  </node>
  <way id="10">
    <nd ref="1"/>
    <tag k="tiger:zip" v="23220"/>
    <tag k="tiger:zip:county" v="Henrico"/>
  </way>
</osm>`

func newPipeline(t *testing.T, strict bool) *Pipeline {
	t.Helper()
	n, err := normalize.New(normalize.DefaultTables())
	require.NoError(t, err)
	return New(Options{
		Normalizer: n,
		Filter:     filter.New(filter.DefaultConfig(), nil),
		Reshaper:   reshape.New(reshape.Accumulate),
		Strict:     strict,
		Output:     "test",
		Logger:     zap.NewNop(),
	})
}

func source() osmfile.Source {
	return osmfile.NewXMLSource(strings.NewReader(pipelineOSM))
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	out := sink.NewJSONL(&buf, false)

	stats, err := newPipeline(t, false).Build(ctx, source(), out)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Read)
	assert.Equal(t, int64(1), stats.Dropped)
	assert.Equal(t, int64(1), stats.Invalid)
	assert.Equal(t, int64(2), stats.Written)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		`{"element_type":"node","id":"1","coordinates":[37.55,-77.45],"addr":{"street":"West Broad Street","state":"VA","postcode":"23220"}}`,
		lines[0])
	assert.Equal(t,
		`{"element_type":"way","id":"10","node_refs":["1"],"tiger":{"zip":["23220",{"county":"Henrico"}]}}`,
		lines[1])
}

func TestBuildStrict(t *testing.T) {
	var buf bytes.Buffer
	_, err := newPipeline(t, true).Build(context.Background(), source(), sink.NewJSONL(&buf, false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, element.ErrInvalidRecord))

	var recErr *element.RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, "3", recErr.ID)
}

func TestBuildWithoutStages(t *testing.T) {
	var buf bytes.Buffer
	p := New(Options{Reshaper: reshape.New(reshape.Accumulate), Logger: zap.NewNop()})
	stats, err := p.Build(context.Background(), source(), sink.NewJSONL(&buf, false))
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.Dropped)
	assert.Equal(t, int64(3), stats.Written)
	assert.Contains(t, buf.String(), `"state":"Virginia"`)
	assert.Contains(t, buf.String(), `"state":"MD"`)
}

func TestBuildRequiresReshaper(t *testing.T) {
	_, err := New(Options{Logger: zap.NewNop()}).Build(context.Background(), source(), sink.NewJSONL(&bytes.Buffer{}, false))
	assert.Error(t, err)
}

func TestClean(t *testing.T) {
	var buf bytes.Buffer
	w := osmfile.NewWriter(&buf)
	stats, err := newPipeline(t, false).Clean(context.Background(), source(), w)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, int64(2), stats.Written)

	var elems []*element.Element
	src := osmfile.NewXMLSource(&buf)
	for src.Scan() {
		elems = append(elems, src.Element())
	}
	require.NoError(t, src.Err())
	require.Len(t, elems, 2)

	street, _ := elems[0].Tag("addr:street")
	assert.Equal(t, "West Broad Street", street)
	state, _ := elems[0].Tag("addr:state")
	assert.Equal(t, "VA", state)
	assert.Equal(t, "10", elems[1].ID())
}

type failingSink struct{ err error }

func (f failingSink) Write(context.Context, *reshape.Document) error { return f.err }
func (f failingSink) Flush(context.Context) error                   { return nil }
func (f failingSink) Close() error                                  { return nil }

func TestBuildSinkError(t *testing.T) {
	boom := errors.New("disk full")
	_, err := newPipeline(t, false).Build(context.Background(), source(), failingSink{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestProgressTracker(t *testing.T) {
	p := NewProgressTracker("Shaping", time.Second)
	start := p.startTime

	assert.False(t, p.Due(start.Add(500*time.Millisecond)))
	assert.True(t, p.Due(start.Add(2*time.Second)))

	pr := p.Calculate(2000, start.Add(2*time.Second))
	assert.Equal(t, int64(2000), pr.Current)
	assert.InDelta(t, 1000, pr.Throughput, 0.001)
	assert.InDelta(t, 1000, pr.Rate, 0.001)

	pr = p.Calculate(2500, start.Add(3*time.Second))
	assert.InDelta(t, 500, pr.Rate, 0.001)
	assert.False(t, NewProgressTracker("x", 0).Due(start.Add(time.Hour)))
}

func TestFormatThroughput(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12, "12/s"},
		{1500, "1.5K/s"},
		{2_500_000, "2.5M/s"},
	}
	for _, tt := range tests {
		if got := FormatThroughput(tt.in); got != tt.want {
			t.Errorf("FormatThroughput(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
