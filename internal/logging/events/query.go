package events

import "github.com/discstack/discstack/internal/logging"

type QueryTracer struct{}

var Query = QueryTracer{}

func (QueryTracer) Submit(id, slot string, gen uint64, origin []string) {
	logging.Trace("query.submit", map[string]interface{}{
		"id":     id,
		"slot":   slot,
		"gen":    gen,
		"origin": origin,
	})
}

func (QueryTracer) Done(id, slot string, gen uint64, err error) {
	payload := map[string]interface{}{"id": id, "slot": slot, "gen": gen}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("query.done", payload)
}

// DroppedSuperseded records a completion that lost the race for its slot.
// These drops are expected control flow, never errors.
func (QueryTracer) DroppedSuperseded(id, slot string, gen, current uint64) {
	logging.Trace("query.drop-superseded", map[string]interface{}{
		"id":      id,
		"slot":    slot,
		"gen":     gen,
		"current": current,
	})
}

// DroppedPath records a completion whose origin path no longer matches the
// live navigation path.
func (QueryTracer) DroppedPath(id string, origin, current []string) {
	logging.Trace("query.drop-path", map[string]interface{}{
		"id":      id,
		"origin":  origin,
		"current": current,
	})
}
