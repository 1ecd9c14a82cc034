// Package query submits named asynchronous catalog lookups and tracks, per
// supersession slot, which submission is the most recent one. Supersession is
// cooperative: a superseded query still runs to completion on its worker, but
// its result arrives carrying a stale generation and is dropped by the
// receiver. At most one result per slot is ever applied.
package query

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/discstack/discstack/internal/logging/events"
)

// ID names a query's purpose within a pane.
type ID string

// Slot identifies a mutually exclusive submission slot. Submitting a new
// query under a slot logically supersedes any query still outstanding there.
type Slot string

// Work is the deferred remote computation. It runs off the interactive
// goroutine and must capture only immutable snapshots of the state it needs,
// never live references into pane state.
type Work func() (interface{}, error)

// Query describes one asynchronous lookup.
type Query struct {
	ID     ID
	Slot   Slot
	Origin []string // path snapshot at submission; nil when not path-sensitive
	Work   Work
}

// Done is delivered back to the interactive goroutine when a query's work
// completes, in any order relative to submission.
type Done struct {
	ID      ID
	Slot    Slot
	Gen     uint64
	Owner   string
	Origin  []string
	Payload interface{}
	Err     error
}

// Correlator hands queries to the Bubble Tea runtime and stamps each with a
// monotonically increasing generation per slot so stale completions can be
// recognised on arrival.
type Correlator struct {
	owner string
	gens  map[Slot]uint64
}

// New creates a correlator whose results are tagged with the given owner.
func New(owner string) *Correlator {
	return &Correlator{owner: owner, gens: make(map[Slot]uint64)}
}

// Owner returns the tag applied to every result this correlator produces.
func (c *Correlator) Owner() string {
	return c.owner
}

// Submit registers the query under its slot and returns the command that runs
// its work off the interactive goroutine. Submission is fire-and-forget: the
// caller never waits on the work.
func (c *Correlator) Submit(q Query) tea.Cmd {
	c.gens[q.Slot]++
	gen := c.gens[q.Slot]
	events.Query.Submit(string(q.ID), string(q.Slot), gen, q.Origin)

	owner := c.owner
	origin := append([]string(nil), q.Origin...)
	if q.Origin == nil {
		origin = nil
	}
	work := q.Work
	id, slot := q.ID, q.Slot
	return func() tea.Msg {
		payload, err := work()
		events.Query.Done(string(id), string(slot), gen, err)
		return Done{
			ID:      id,
			Slot:    slot,
			Gen:     gen,
			Owner:   owner,
			Origin:  origin,
			Payload: payload,
			Err:     err,
		}
	}
}

// Current reports whether gen is still the latest submission for slot.
func (c *Correlator) Current(slot Slot, gen uint64) bool {
	return c.gens[slot] == gen
}

// Generation returns the latest generation recorded for slot.
func (c *Correlator) Generation(slot Slot) uint64 {
	return c.gens[slot]
}
