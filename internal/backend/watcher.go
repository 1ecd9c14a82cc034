// Package backend subscribes to MPD idle notifications and republishes them
// as discrete events for the UI event loop.
package backend

import (
	"context"
	"sync"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"

	"github.com/discstack/discstack/internal/logging/events"
)

// Kind represents the type of event emitted by the watcher.
type Kind int

const (
	// KindDatabase signals that the catalog contents changed.
	KindDatabase Kind = iota
	// KindQueue signals that the play queue changed.
	KindQueue
	// KindReconnect signals that the idle connection was re-established
	// after being lost.
	KindReconnect
)

// Event conveys a subsystem change or an error from the idle connection.
type Event struct {
	Kind Kind
	Err  error
}

// Watcher maintains a dedicated idle connection to MPD and publishes events.
// A lost connection is retried at a fixed interval; re-establishment is
// reported as a KindReconnect event so the UI can reinitialise.
type Watcher struct {
	network  string
	addr     string
	password string
	retry    time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching the database and playlist subsystems.
func NewWatcher(network, addr, password string, retry time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		network:  network,
		addr:     addr,
		password: password,
		retry:    retry,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns the channel of watcher events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The run loop exits after its current wait
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the run loop has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	// lost stays true across failed retries: however long the outage, the
	// next successful dial is reported as a reconnect.
	lost := false
	for {
		if w.ctx.Err() != nil {
			return
		}
		mw, err := gompd.NewWatcher(w.network, w.addr, w.password, "database", "playlist")
		if err != nil {
			lost = true
			if !w.emit(Event{Kind: KindReconnect, Err: err}) {
				return
			}
			if !w.sleep(w.retry) {
				return
			}
			continue
		}
		if lost {
			lost = false
			events.App.Reconnected(w.addr)
			if !w.emit(Event{Kind: KindReconnect}) {
				mw.Close()
				return
			}
		}
		keepGoing := w.watch(mw)
		mw.Close()
		// watch only returns once the idle connection is gone.
		lost = true
		if !keepGoing {
			return
		}
		if !w.sleep(w.retry) {
			return
		}
	}
}

// watch consumes idle notifications until the connection breaks or the
// watcher is stopped. Returns false when the watcher should shut down.
func (w *Watcher) watch(mw *gompd.Watcher) bool {
	for {
		select {
		case <-w.ctx.Done():
			return false
		case subsystem, ok := <-mw.Event:
			if !ok {
				return true
			}
			switch subsystem {
			case "database":
				if !w.emit(Event{Kind: KindDatabase}) {
					return false
				}
			case "playlist":
				if !w.emit(Event{Kind: KindQueue}) {
					return false
				}
			}
		case err, ok := <-mw.Error:
			if !ok {
				return true
			}
			if !w.emit(Event{Kind: KindReconnect, Err: err}) {
				return false
			}
			return true
		}
	}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

func (w *Watcher) sleep(d time.Duration) bool {
	if d <= 0 {
		d = time.Second
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-w.ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
