// Package browser owns the navigation state of a catalog pane: the stack of
// browse levels, the cursor and filter of each level, and the preview slot.
// The stack is mutated only from the interactive goroutine; asynchronous
// lookups receive immutable snapshots (paths, names) and never a live
// reference into it.
package browser

// Stack is an ordered sequence of browse levels plus an optional preview.
type Stack struct {
	levels  []*Level
	preview *Preview
}

// NewStack builds a stack with the given root level.
func NewStack(root *Level) *Stack {
	return &Stack{levels: []*Level{root}}
}

// Depth reports the number of levels on the stack.
func (s *Stack) Depth() int {
	return len(s.levels)
}

// Current returns the top level.
func (s *Stack) Current() *Level {
	if len(s.levels) == 0 {
		return nil
	}
	return s.levels[len(s.levels)-1]
}

// Push appends a level when drilling down. Used optimistically with an empty
// placeholder level before the fetch for its contents resolves.
func (s *Stack) Push(l *Level) {
	s.levels = append(s.levels, l)
}

// Pop removes the top level when navigating up. The root level is never
// removed; popped levels are dropped, not cached.
func (s *Stack) Pop() bool {
	if len(s.levels) <= 1 {
		return false
	}
	s.levels = s.levels[:len(s.levels)-1]
	s.preview = nil
	return true
}

// ReplaceCurrent overwrites the top level's contents once a fetch resolves.
// The cursor is clamped by the level itself.
func (s *Stack) ReplaceCurrent(items []Item) {
	if current := s.Current(); current != nil {
		current.UpdateItems(items)
	}
}

// Path returns the selected directory names from the root level up to, but
// not including, the current level. Its length is always Depth()-1.
func (s *Stack) Path() []string {
	if len(s.levels) <= 1 {
		return nil
	}
	path := make([]string, 0, len(s.levels)-1)
	for _, l := range s.levels[:len(s.levels)-1] {
		item, ok := l.Selected()
		if !ok {
			break
		}
		path = append(path, item.EntryName())
	}
	return path
}

// NextPath returns Path extended with the name of the currently selected
// item: where the user would stand after drilling down.
func (s *Stack) NextPath() ([]string, bool) {
	current := s.Current()
	if current == nil {
		return nil, false
	}
	item, ok := current.Selected()
	if !ok {
		return nil, false
	}
	return append(s.Path(), item.EntryName()), true
}

// SetPreview stores the preview when its origin still matches the live path.
// Stale previews are dropped silently; the caller traces the drop.
func (s *Stack) SetPreview(p *Preview) bool {
	if p != nil && !PathEqual(p.Origin, s.Path()) {
		return false
	}
	s.preview = p
	return true
}

// Preview returns the current preview, re-validating its origin against the
// live path so a stale preview is never displayed.
func (s *Stack) Preview() *Preview {
	if s.preview == nil {
		return nil
	}
	if !PathEqual(s.preview.Origin, s.Path()) {
		s.preview = nil
		return nil
	}
	return s.preview
}

// ClearPreview discards the preview slot.
func (s *Stack) ClearPreview() {
	s.preview = nil
}

// PathEqual reports whether two navigation paths denote the same place.
func PathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
