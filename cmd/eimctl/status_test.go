package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/eim-dev/eim-client/pkg/client"
	"github.com/eim-dev/eim-client/pkg/model"
	"github.com/eim-dev/eim-client/pkg/protocol"
)

// pipeTransport feeds frames to a client and discards what it writes.
type pipeTransport struct {
	in     chan []byte
	closed chan struct{}
	once   sync.Once
}

func newPipeTransport() *pipeTransport {
	return &pipeTransport{in: make(chan []byte, 4), closed: make(chan struct{})}
}

func (p *pipeTransport) ReadFrame() ([]byte, error) {
	select {
	case b := <-p.in:
		return b, nil
	case <-p.closed:
		return nil, io.EOF
	}
}

func (p *pipeTransport) WriteFrame([]byte) error { return nil }

func (p *pipeTransport) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

func newStatusClient(t *testing.T, reg *prometheus.Registry) (*client.Client, *pipeTransport) {
	t.Helper()
	cfg := client.DefaultConfig()
	if reg != nil {
		cfg.Metrics = client.NewMetrics(client.WithRegistry(reg), client.WithNamespace("eim"))
	}
	tr := newPipeTransport()
	c := client.New(tr, cfg)
	t.Cleanup(func() { c.Close() })

	applied := make(chan struct{}, 1)
	sub := c.Watch(protocol.ClientboundTrackInfo, func() { applied <- struct{}{} })
	defer sub.Close()

	e := protocol.NewEncoder()
	if err := protocol.EncodeTrackTable(e, []protocol.TrackRecord{
		{ID: 0, Name: "Master", Color: 0xFFFFFF, Volume: 1},
		{ID: 42, Name: "Keys", Color: 0x336699, Volume: 0.25},
	}); err != nil {
		t.Fatalf("EncodeTrackTable() error = %v", err)
	}
	tr.in <- protocol.NewPacket(protocol.ClientboundTrackInfo, e).Encode()

	select {
	case <-applied:
	case <-time.After(2 * time.Second):
		t.Fatal("TrackInfo was not applied")
	}
	return c, tr
}

func TestStatusState(t *testing.T) {
	c, _ := newStatusClient(t, nil)
	srv := httptest.NewServer(newStatusRouter(c, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/state")
	if err != nil {
		t.Fatalf("GET /state error = %v", err)
	}
	defer resp.Body.Close()

	var state model.State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if len(state.Tracks) != 2 || state.Tracks[1].Name != "Keys" {
		t.Errorf("tracks = %+v", state.Tracks)
	}
}

func TestStatusTrack(t *testing.T) {
	c, _ := newStatusClient(t, nil)
	srv := httptest.NewServer(newStatusRouter(c, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/tracks/" + model.EntityID(42).String())
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"Keys"`) {
		t.Errorf("status = %d, body = %s", resp.StatusCode, body)
	}

	for path, want := range map[string]int{
		"/tracks/zzzzzzzzzzzzzzzz": http.StatusBadRequest,
		"/tracks/7":                http.StatusNotFound,
	} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s error = %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != want {
			t.Errorf("GET %s status = %d, want %d", path, resp.StatusCode, want)
		}
	}
}

func TestStatusHealth(t *testing.T) {
	c, tr := newStatusClient(t, nil)
	srv := httptest.NewServer(newStatusRouter(c, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	tr.Close()
	<-c.Done()

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status after close = %d, want 503", resp.StatusCode)
	}
}

func TestStatusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, _ := newStatusClient(t, reg)
	srv := httptest.NewServer(newStatusRouter(c, reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "eim_") {
		t.Errorf("metrics body has no eim_ series:\n%s", body)
	}
}
