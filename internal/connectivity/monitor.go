// Package connectivity tracks whether the content service is reachable.
package connectivity

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/zambezi-learn/zambezi/internal/logger"
)

// Config controls probing.
type Config struct {
	// Address is dialed over TCP to test reachability (host:port).
	Address string

	// Interval between scheduled probes.
	Interval time.Duration

	// Timeout for a single dial.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Address:  "8.8.8.8:53",
		Interval: 15 * time.Second,
		Timeout:  3 * time.Second,
	}
}

// Prober reports reachability.
type Prober interface {
	Probe(ctx context.Context) bool
}

// DialProber succeeds when a TCP connection to Address opens.
type DialProber struct {
	Address string
	Timeout time.Duration
}

func (p DialProber) Probe(ctx context.Context) bool {
	d := net.Dialer{Timeout: p.Timeout}
	conn, err := d.DialContext(ctx, "tcp", p.Address)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Change is a transition between online and offline.
type Change struct {
	Online bool
	At     time.Time
}

// Monitor samples reachability on a schedule and tells subscribers when
// it flips.
type Monitor struct {
	prober   Prober
	interval time.Duration
	log      *logger.Logger
	now      func() time.Time

	mu     sync.Mutex
	online bool
	known  bool
	subs   map[int]chan Change
	nextID int

	scheduler *gocron.Scheduler
}

// NewMonitor creates a monitor. Until the first sample it reports offline.
func NewMonitor(cfg Config, prober Prober, log *logger.Logger) *Monitor {
	if prober == nil {
		prober = DialProber{Address: cfg.Address, Timeout: cfg.Timeout}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Monitor{
		prober:   prober,
		interval: cfg.Interval,
		log:      log,
		now:      time.Now,
		subs:     map[int]chan Change{},
	}
}

// Online reports the last sampled state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Sample probes now and publishes a Change if the state flipped. The
// first sample establishes the state without publishing.
func (m *Monitor) Sample(ctx context.Context) bool {
	online := m.prober.Probe(ctx)

	m.mu.Lock()
	changed := m.known && online != m.online
	m.online = online
	m.known = true
	var targets []chan Change
	if changed {
		for _, ch := range m.subs {
			targets = append(targets, ch)
		}
	}
	m.mu.Unlock()

	if changed {
		m.log.Info("connectivity changed", "online", online)
		c := Change{Online: online, At: m.now()}
		for _, ch := range targets {
			// Subscribers only need the latest state; drop a stale one.
			select {
			case ch <- c:
			default:
				select {
				case <-ch:
				default:
				}
				select {
				case ch <- c:
				default:
				}
			}
		}
	}
	return online
}

// Subscribe returns a channel of changes and a func to stop receiving.
func (m *Monitor) Subscribe() (<-chan Change, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	ch := make(chan Change, 1)
	m.subs[id] = ch
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Start samples once, then keeps sampling every interval until ctx is
// done or Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	m.Sample(ctx)

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	if _, err := s.Every(m.interval).WaitForSchedule().Do(func() { m.Sample(ctx) }); err != nil {
		return err
	}
	s.StartAsync()

	m.mu.Lock()
	m.scheduler = s
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.Stop()
	}()
	return nil
}

// Stop halts scheduled sampling.
func (m *Monitor) Stop() {
	m.mu.Lock()
	s := m.scheduler
	m.scheduler = nil
	m.mu.Unlock()
	if s != nil {
		s.Stop()
	}
}
