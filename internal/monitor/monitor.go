// Package monitor drives the snapshot reader in a poll loop. The core
// itself never polls; this is the external collaborator that compares
// successive change counts and materializes a snapshot when they differ.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.klb.dev/pbsnap/internal/item"
	"go.klb.dev/pbsnap/internal/snapshot"
)

const eventBuffer = 64

// Monitor polls the change counter at a fixed interval and emits a fresh
// item on each observed mutation. Items whose source bundle id is listed
// in the config are discarded here; the snapshot core never filters.
type Monitor struct {
	reader  *snapshot.Reader
	cfg     item.MonitorConfig
	events  chan *item.Item
	running atomic.Bool
	stop    chan struct{}
}

// New returns a stopped Monitor over reader.
func New(reader *snapshot.Reader, cfg item.MonitorConfig) *Monitor {
	return &Monitor{
		reader: reader,
		cfg:    cfg,
		events: make(chan *item.Item, eventBuffer),
		stop:   make(chan struct{}),
	}
}

// Events returns the channel new items are delivered on. Slow consumers
// lose items rather than stalling the poll loop.
func (m *Monitor) Events() <-chan *item.Item { return m.events }

// Start begins polling until ctx is cancelled or Stop is called.
// A Monitor is single-use: once stopped it cannot be restarted.
func (m *Monitor) Start(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return fmt.Errorf("monitor already running")
	}
	slog.Info("clipboard monitor started", "interval", m.cfg.Interval())
	go m.loop(ctx)
	return nil
}

// Stop cooperatively ends the poll loop. A read already in flight
// completes; the flag is only checked between iterations.
func (m *Monitor) Stop() {
	if m.running.CompareAndSwap(true, false) {
		close(m.stop)
		slog.Info("clipboard monitor stopped")
	}
}

func (m *Monitor) loop(ctx context.Context) {
	last := m.reader.ChangeCount()
	t := time.NewTicker(m.cfg.Interval())
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stop:
			return
		case <-t.C:
			if !m.running.Load() {
				return
			}
			cc := m.reader.ChangeCount()
			if cc == last {
				continue
			}
			last = cc
			m.capture()
		}
	}
}

func (m *Monitor) capture() {
	it := m.reader.Read()
	if it == nil {
		return
	}
	if it.SourceAppBundleID != nil && m.cfg.Excluded(*it.SourceAppBundleID) {
		slog.Debug("snapshot excluded", "bundle_id", *it.SourceAppBundleID)
		return
	}
	select {
	case m.events <- it:
	default:
		slog.Warn("event channel full, dropping snapshot", "id", it.ID)
	}
}
