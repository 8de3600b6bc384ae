package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/gmjoseph/fluid-sim-p/internal/fluid"
)

func newTestSim(t *testing.T) *fluid.Sim {
	t.Helper()
	cfg := fluid.DefaultConfig()
	cfg.N = 4
	cfg.Diffusion = 0
	cfg.Viscosity = 0
	cfg.Decay = 0
	sim, err := fluid.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sim
}

func TestHandshakeSendsInitialFrame(t *testing.T) {
	sim := newTestSim(t)
	sim.Density().Set(2, 2, 10)
	s := New(sim, 60)
	s.publish(s.snapshot())

	ts := httptest.NewServer(http.HandlerFunc(s.handleWS))
	defer ts.Close()

	url := "ws://" + strings.TrimPrefix(ts.URL, "http://")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read initial frame: %v", err)
	}
	if f.Type != "density" {
		t.Fatalf("frame type = %q, want %q", f.Type, "density")
	}
	if f.N != 4 {
		t.Fatalf("frame n = %d, want 4", f.N)
	}
	if len(f.Density) != 16 {
		t.Fatalf("frame has %d cells, want 16", len(f.Density))
	}
	// Interior is row-major with j=1 first, so (2,2) lands at index 5.
	if f.Density[5] != 10 {
		t.Fatalf("density at (2,2) = %v, want 10", f.Density[5])
	}
}

// The handshake must serve the cached frame, never the live fields: the loop
// goroutine may be mid-step, so a handler reading the sim directly races the
// solver's writes.
func TestHandshakeServesCachedFrameNotLiveState(t *testing.T) {
	sim := newTestSim(t)
	sim.Density().Set(2, 2, 10)
	s := New(sim, 60)
	s.tick = 3
	s.publish(s.snapshot())

	// Mutate the sim after publishing; the connect frame must not see it.
	sim.Density().Set(2, 2, 99)

	ts := httptest.NewServer(http.HandlerFunc(s.handleWS))
	defer ts.Close()

	url := "ws://" + strings.TrimPrefix(ts.URL, "http://")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read initial frame: %v", err)
	}
	if f.Tick != 3 {
		t.Fatalf("frame tick = %d, want the published tick 3", f.Tick)
	}
	if f.Density[5] != 10 {
		t.Fatalf("density at (2,2) = %v, want the cached 10, not the unpublished 99", f.Density[5])
	}
}

func TestInjectControlIsAppliedOnStep(t *testing.T) {
	sim := newTestSim(t)
	s := New(sim, 60)

	s.ctlMu.Lock()
	c := control{}
	c.Inject = &struct {
		I int `json:"i"`
		J int `json:"j"`
	}{I: 2, J: 2}
	s.pending = append(s.pending, c)
	s.ctlMu.Unlock()

	sim.Step()

	if got := sim.Density().At(2, 2); got <= 0 {
		t.Fatalf("density at injection cell = %v, want > 0", got)
	}
	if len(s.pending) != 0 {
		t.Fatalf("pending queue not drained: %d left", len(s.pending))
	}
}

func TestInjectOutsideInteriorIsIgnored(t *testing.T) {
	sim := newTestSim(t)
	s := New(sim, 60)

	for _, pos := range [][2]int{{0, 2}, {5, 2}, {2, 0}, {2, 5}} {
		c := control{}
		c.Inject = &struct {
			I int `json:"i"`
			J int `json:"j"`
		}{I: pos[0], J: pos[1]}
		s.ctlMu.Lock()
		s.pending = append(s.pending, c)
		s.ctlMu.Unlock()
	}

	sim.Step()

	for _, cell := range sim.Density().Cells() {
		if cell != 0 {
			t.Fatalf("out-of-range injections changed the field: found %v", cell)
		}
	}
}

func TestResetRequestClearsStateNextTick(t *testing.T) {
	sim := newTestSim(t)
	s := New(sim, 60)
	sim.Density().Set(2, 2, 42)

	s.resetRequested.Store(true)
	if s.resetRequested.Swap(false) {
		sim.Reset()
	}
	sim.Step()

	if got := sim.Density().At(2, 2); got != 0 {
		t.Fatalf("density after reset = %v, want 0", got)
	}
}
