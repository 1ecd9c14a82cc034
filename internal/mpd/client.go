// Package mpd wraps the gompd protocol client with the catalog and queue
// operations the browser needs.
package mpd

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	gompd "github.com/fhs/gompd/v2/mpd"
)

// Tag names used in find expressions.
const (
	TagAlbum = "album"
	TagFile  = "file"
)

// Filter is one attribute-equality term of a find expression. Terms combine
// as a conjunction.
type Filter struct {
	Tag   string
	Value string
}

// Client is a thread-safe MPD connection. Commands may be issued from worker
// goroutines; a single underlying connection is shared behind a mutex and
// re-dialled lazily after connection failures.
type Client struct {
	network  string
	addr     string
	password string

	mu   sync.Mutex
	conn *gompd.Client
}

// Dial connects to the MPD server, authenticating when a password is set.
func Dial(network, addr, password string) (*Client, error) {
	c := &Client{network: network, addr: addr, password: password}
	if err := c.withConn(func(conn *gompd.Client) error { return conn.Ping() }); err != nil {
		return nil, err
	}
	return c, nil
}

// Close terminates the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Addr returns the configured server address.
func (c *Client) Addr() string {
	return c.addr
}

func (c *Client) withConn(fn func(*gompd.Client) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		conn, err := gompd.DialAuthenticated(c.network, c.addr, c.password)
		if err != nil {
			return fmt.Errorf("dial mpd at %s: %w", c.addr, err)
		}
		c.conn = conn
	}
	err := fn(c.conn)
	if err != nil {
		// Drop connections that no longer respond so the next command
		// re-dials instead of failing forever.
		if pingErr := c.conn.Ping(); pingErr != nil {
			c.conn.Close()
			c.conn = nil
		}
	}
	return err
}

// ListAlbums returns the distinct album names known to the catalog.
func (c *Client) ListAlbums() ([]string, error) {
	var names []string
	err := c.withConn(func(conn *gompd.Client) error {
		var err error
		names, err = conn.List(TagAlbum)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return names, nil
}

// Find returns all songs matching the conjunction of the given filters.
func (c *Client) Find(filters ...Filter) ([]Song, error) {
	args := filterArgs(filters)
	var attrs []gompd.Attrs
	err := c.withConn(func(conn *gompd.Client) error {
		var err error
		attrs, err = conn.Find(args...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", describeFilters(filters), err)
	}
	songs := make([]Song, 0, len(attrs))
	for _, a := range attrs {
		songs = append(songs, songFromAttrs(a))
	}
	return songs, nil
}

// FindAdd appends every song matching the filters to the play queue. A
// non-nil position inserts at that queue index instead of appending.
func (c *Client) FindAdd(position *int, filters ...Filter) error {
	format := "findadd" + strings.Repeat(" %s %s", len(filters))
	args := make([]interface{}, 0, len(filters)*2+1)
	for _, f := range filters {
		args = append(args, f.Tag, f.Value)
	}
	if position != nil {
		format += " position %d"
		args = append(args, *position)
	}
	err := c.withConn(func(conn *gompd.Client) error {
		return conn.Command(format, args...).OK()
	})
	if err != nil {
		return fmt.Errorf("findadd %s: %w", describeFilters(filters), err)
	}
	return nil
}

// AddAll appends the entire catalog to the play queue.
func (c *Client) AddAll() error {
	err := c.withConn(func(conn *gompd.Client) error {
		return conn.Add("/")
	})
	if err != nil {
		return fmt.Errorf("add catalog: %w", err)
	}
	return nil
}

// Play begins playback at the given queue index.
func (c *Client) Play(index int) error {
	err := c.withConn(func(conn *gompd.Client) error {
		return conn.Play(index)
	})
	if err != nil {
		return fmt.Errorf("play index %d: %w", index, err)
	}
	return nil
}

// QueueLen reports the current play queue length.
func (c *Client) QueueLen() (int, error) {
	var status gompd.Attrs
	err := c.withConn(func(conn *gompd.Client) error {
		var err error
		status, err = conn.Status()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("queue length: %w", err)
	}
	n, err := strconv.Atoi(status["playlistlength"])
	if err != nil {
		return 0, fmt.Errorf("queue length: bad playlistlength %q", status["playlistlength"])
	}
	return n, nil
}

func filterArgs(filters []Filter) []string {
	args := make([]string, 0, len(filters)*2)
	for _, f := range filters {
		args = append(args, f.Tag, f.Value)
	}
	return args
}

func describeFilters(filters []Filter) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, fmt.Sprintf("%s=%q", f.Tag, f.Value))
	}
	if len(parts) == 0 {
		return "(unfiltered)"
	}
	return strings.Join(parts, " ")
}
