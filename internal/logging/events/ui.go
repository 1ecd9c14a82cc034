package events

import "github.com/discstack/discstack/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
)

func (UITracer) Open(path []string, item string) {
	logging.Trace("browser.open", map[string]interface{}{"path": path, "item": item})
}

func (UITracer) Back(path []string) {
	logging.Trace("browser.back", map[string]interface{}{"path": path})
}

func (UITracer) Cursor(depth, cursor int) {
	logging.Trace("browser.cursor", map[string]interface{}{"depth": depth, "cursor": cursor})
}

func (UITracer) Enqueue(album, file string) {
	logging.Trace("browser.enqueue", map[string]interface{}{"album": album, "file": file})
}

func (UITracer) Play(index int) {
	logging.Trace("browser.play", map[string]interface{}{"index": index})
}

func (FilterTracer) Active(active bool) {
	logging.Trace("filter.active", map[string]interface{}{"active": active})
}

func (FilterTracer) Cleared(depth int) {
	logging.Trace("filter.clear", map[string]interface{}{"depth": depth})
}

func (FilterTracer) Append(depth int, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"depth": depth, "filter": filter})
}

func (FilterTracer) Backspace(depth int, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"depth": depth, "filter": filter})
}

func (FilterTracer) WordBackspace(depth int, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"depth": depth, "filter": filter})
}

func (FilterTracer) Cursor(depth, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"depth": depth, "cursor": pos})
}
