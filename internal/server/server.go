// Package server streams density frames to websocket clients so a headless
// run can still be watched. The server owns the simulation exclusively: it
// steps it on its own loop at a fixed tick rate, and client control messages
// are queued and applied through the sim's forcing hook, never concurrently
// with a tick.
package server

import (
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gmjoseph/fluid-sim-p/internal/core"
	"github.com/gmjoseph/fluid-sim-p/internal/fluid"
)

// Frame is one density snapshot pushed to every connected client.
type Frame struct {
	Type    string    `json:"type"`
	N       int       `json:"n"`
	Tick    uint64    `json:"tick"`
	Density []float64 `json:"density"` // interior cells, row-major
	MaxDiv  float64   `json:"maxDivergence"`
}

// control is what clients may send back: a reset request and/or an additive
// injection at an interior cell. Injection magnitudes come from the sim
// configuration, not the wire.
type control struct {
	Reset  bool `json:"reset"`
	Inject *struct {
		I int `json:"i"`
		J int `json:"j"`
	} `json:"inject"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// Server steps a simulation at a fixed rate and fans frames out to
// websocket clients.
type Server struct {
	sim *fluid.Sim
	tps int

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex

	ctlMu   sync.Mutex
	pending []control

	// latest is the most recent frame, built on the loop goroutine. Handlers
	// serve it on connect instead of reading the sim, which the loop may be
	// stepping concurrently.
	frameMu sync.RWMutex
	latest  *Frame

	resetRequested atomic.Bool
	tick           uint64 // touched only by the loop goroutine after Run primes it
}

// New constructs a Server around sim, replacing any forcing previously
// registered on it.
func New(sim *fluid.Sim, tps int) *Server {
	s := &Server{
		sim:     sim,
		tps:     tps,
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
	sim.SetForcing(s.applyPending)
	return s
}

// Run starts the simulation loop and serves websocket clients on addr until
// the listener fails.
func (s *Server) Run(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	// Prime the frame cache before the loop starts so every handshake finds
	// one without ever touching the live sim.
	s.publish(s.snapshot())
	go s.loop()
	log.Printf("serving density frames on ws://%s/ws", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) loop() {
	t := core.NewTicker(s.tps)
	for {
		if !t.Tick() {
			time.Sleep(time.Millisecond)
			continue
		}
		if s.resetRequested.Swap(false) {
			s.sim.Reset()
		}
		s.sim.Step()
		s.tick++
		s.publish(s.snapshot())
	}
}

// applyPending drains queued client controls. Invoked by the sim at tick
// start; writes are additive only.
func (s *Server) applyPending(dens, u, v *fluid.Field) {
	s.ctlMu.Lock()
	pending := s.pending
	s.pending = nil
	s.ctlMu.Unlock()

	cfg := s.sim.Config()
	n := s.sim.Resolution()
	for _, c := range pending {
		if c.Inject == nil {
			continue
		}
		i, j := c.Inject.I, c.Inject.J
		if i < 1 || i > n || j < 1 || j > n {
			continue
		}
		dens.Add(i, j, cfg.SourceDensity)
		u.Add(i, j, cfg.SourceVelocity*cfg.Dt)
	}
}

// snapshot builds a frame from the sim's current state. It must only run
// where no tick can be in flight: on the loop goroutine, or before the loop
// starts.
func (s *Server) snapshot() *Frame {
	n := s.sim.Resolution()
	cells := s.sim.Density().Cells()
	interior := make([]float64, 0, n*n)
	w := n + 2
	for j := 1; j <= n; j++ {
		interior = append(interior, cells[1+j*w:n+1+j*w]...)
	}
	return &Frame{
		Type:    "density",
		N:       n,
		Tick:    s.tick,
		Density: interior,
		MaxDiv:  s.sim.MaxDivergence(),
	}
}

// publish caches f as the latest frame and pushes it to every client.
func (s *Server) publish(f *Frame) {
	s.frameMu.Lock()
	s.latest = f
	s.frameMu.Unlock()
	s.broadcast(f)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("websocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	s.mu.Lock()
	s.clients[conn] = connMu
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	// Send the cached frame immediately so clients need not wait a tick.
	s.frameMu.RLock()
	latest := s.latest
	s.frameMu.RUnlock()
	if latest != nil {
		connMu.Lock()
		err = conn.WriteJSON(latest)
		connMu.Unlock()
		if err != nil {
			return
		}
	}

	for {
		var c control
		if err := conn.ReadJSON(&c); err != nil {
			return
		}
		if c.Reset {
			s.resetRequested.Store(true)
		}
		if c.Inject != nil {
			s.ctlMu.Lock()
			s.pending = append(s.pending, c)
			s.ctlMu.Unlock()
		}
	}
}

func (s *Server) broadcast(f *Frame) {
	s.mu.RLock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(s.clients))
	for c, mu := range s.clients {
		conns[c] = mu
	}
	s.mu.RUnlock()

	for conn, mu := range conns {
		mu.Lock()
		err := conn.WriteJSON(f)
		mu.Unlock()
		if err != nil {
			conn.Close()
		}
	}
}
