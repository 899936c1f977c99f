package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paulmach/orb"
)

func TestQuery(t *testing.T) {
	got := Query(RichmondBound)
	want := "[out:xml];node(37.3729,-77.5999,37.7039,-77.2689);out meta;"
	if got != want {
		t.Errorf("Query() = %q, want %q", got, want)
	}

	got = Query(orb.Bound{Min: orb.Point{7, 43.5}, Max: orb.Point{7.25, 44}})
	want = "[out:xml];node(43.5,7,44,7.25);out meta;"
	if got != want {
		t.Errorf("Query() = %q, want %q", got, want)
	}
}

func fastClient(endpoint string) *Client {
	return NewClient(
		WithEndpoint(endpoint),
		WithRateLimit(1000, 10),
		WithRetries(2, time.Millisecond),
	)
}

func TestDownload(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotQuery = r.FormValue("data")
		w.Write([]byte(`<osm version="0.6"><node id="1" lat="37.5" lon="-77.4"/></osm>`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "sub", "richmond.osm")
	n, err := fastClient(srv.URL).Download(context.Background(), RichmondBound, path)
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}

	if gotQuery != Query(RichmondBound) {
		t.Errorf("server got query %q", gotQuery)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if int64(len(data)) != n {
		t.Errorf("wrote %d bytes, reported %d", len(data), n)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}
}

func TestDownloadRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusGatewayTimeout)
			return
		}
		w.Write([]byte(`<osm/>`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "out.osm")
	if _, err := fastClient(srv.URL).Download(context.Background(), RichmondBound, path); err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDownloadGivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "out.osm")
	if _, err := fastClient(srv.URL).Download(context.Background(), RichmondBound, path); err == nil {
		t.Fatal("expected error after retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no output file should be written on failure")
	}
}

func TestDownloadClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad query", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).Download(context.Background(), RichmondBound, filepath.Join(t.TempDir(), "x.osm"))
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
}
