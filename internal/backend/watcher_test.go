package backend

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeMPD is a minimal MPD endpoint: banner on connect, "OK" to every
// command. "idle" is held open unless a scripted change is queued, matching
// the real protocol where idle blocks until a subsystem changes.
type fakeMPD struct {
	ln          net.Listener
	idleReplies chan string
	accepted    chan struct{}

	mu    sync.Mutex
	conns []net.Conn
	wg    sync.WaitGroup
}

func newFakeMPD(t *testing.T, addr string) *fakeMPD {
	t.Helper()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		t.Fatalf("listen %s: %v", addr, err)
	}
	s := &fakeMPD{
		ln:          ln,
		idleReplies: make(chan string, 8),
		accepted:    make(chan struct{}, 8),
	}
	s.wg.Add(1)
	go s.serve()
	return s
}

func (s *fakeMPD) addr() string {
	return s.ln.Addr().String()
}

func (s *fakeMPD) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()
		select {
		case s.accepted <- struct{}{}:
		default:
		}
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *fakeMPD) handle(conn net.Conn) {
	defer s.wg.Done()
	fmt.Fprint(conn, "OK MPD 0.23.5\n")
	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), "idle") {
			select {
			case changed := <-s.idleReplies:
				fmt.Fprintf(conn, "changed: %s\nOK\n", changed)
			default:
				// Hold until noidle or the connection drops.
			}
			continue
		}
		fmt.Fprint(conn, "OK\n")
	}
}

// stop closes the listener and every open connection, simulating the server
// going away mid-idle.
func (s *fakeMPD) stop() {
	s.ln.Close()
	s.mu.Lock()
	for _, c := range s.conns {
		c.Close()
	}
	s.conns = nil
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *fakeMPD) waitAccepted(t *testing.T) {
	t.Helper()
	select {
	case <-s.accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("no connection accepted")
	}
}

func waitForEvent(t *testing.T, w *Watcher, want func(Event) bool, desc string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed while waiting for %s", desc)
			}
			if want(evt) {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", desc)
		}
	}
}

func TestWatcherForwardsSubsystemChanges(t *testing.T) {
	srv := newFakeMPD(t, "127.0.0.1:0")
	defer srv.stop()
	srv.idleReplies <- "database"
	srv.idleReplies <- "playlist"

	w := NewWatcher("tcp", srv.addr(), "", 50*time.Millisecond)
	defer w.Stop()

	waitForEvent(t, w, func(e Event) bool {
		return e.Kind == KindDatabase && e.Err == nil
	}, "database event")
	waitForEvent(t, w, func(e Event) bool {
		return e.Kind == KindQueue && e.Err == nil
	}, "queue event")
}

func TestWatcherSignalsReconnectAfterFailedRetry(t *testing.T) {
	srv := newFakeMPD(t, "127.0.0.1:0")
	addr := srv.addr()

	w := NewWatcher("tcp", addr, "", 50*time.Millisecond)
	defer w.Stop()

	srv.waitAccepted(t)
	srv.stop()

	// The connection is gone; the first sign is an error event, either from
	// the broken idle or from a failed re-dial.
	waitForEvent(t, w, func(e Event) bool {
		return e.Kind == KindReconnect && e.Err != nil
	}, "connection-lost error")

	// Keep the server down well past the retry interval so at least one
	// re-dial fails before it comes back.
	time.Sleep(200 * time.Millisecond)

	restarted := newFakeMPD(t, addr)
	defer restarted.stop()

	waitForEvent(t, w, func(e Event) bool {
		return e.Kind == KindReconnect && e.Err == nil
	}, "reconnect event after restart")
}

func TestWatcherStopClosesEvents(t *testing.T) {
	srv := newFakeMPD(t, "127.0.0.1:0")
	defer srv.stop()

	w := NewWatcher("tcp", srv.addr(), "", 50*time.Millisecond)
	srv.waitAccepted(t)
	w.Stop()
	w.Wait()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel not closed after Stop")
		}
	}
}
