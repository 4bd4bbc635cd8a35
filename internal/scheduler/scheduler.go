package scheduler

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/earthlens/nasa-data-proxy/internal/upstream"
)

// Monitor periodically probes the upstream and caches the result for the
// advisory health gate, so bulk requests don't fan out against a backend that
// is known to be down.
type Monitor struct {
	scheduler *gocron.Scheduler
	gate      *upstream.Gate
	interval  time.Duration
	timeout   time.Duration
	reachable atomic.Bool

	// onProbe, when set, receives every probe outcome (feeds the
	// reachability gauge).
	onProbe func(bool)
}

// New creates a Monitor around the given gate.
func New(gate *upstream.Gate, interval, timeout time.Duration, onProbe func(bool)) *Monitor {
	return &Monitor{
		scheduler: gocron.NewScheduler(time.UTC),
		gate:      gate,
		interval:  interval,
		timeout:   timeout,
		onProbe:   onProbe,
	}
}

// Start primes the reachability state with an immediate probe and schedules
// periodic refreshes.
func (m *Monitor) Start() error {
	m.refresh()

	seconds := int(m.interval.Seconds())
	if seconds <= 0 {
		seconds = 60
	}

	_, err := m.scheduler.Every(seconds).Seconds().Do(m.refresh)
	if err != nil {
		return err
	}

	m.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels future probes.
func (m *Monitor) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}

// Reachable reports the most recent probe outcome.
func (m *Monitor) Reachable() bool {
	return m.reachable.Load()
}

func (m *Monitor) refresh() {
	ok := m.gate.Probe(context.Background(), m.timeout)
	previous := m.reachable.Swap(ok)
	if previous != ok {
		log.Printf("monitor: upstream reachability changed to %v", ok)
	}
	if m.onProbe != nil {
		m.onProbe(ok)
	}
}
