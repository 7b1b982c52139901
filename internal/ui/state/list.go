// Package state holds the pure data containers the application state machine
// is built on: cursor-tracked lists, the per-slot dispatch ledger, and the
// search debounce rule. Nothing here touches the network or the terminal.
package state

// NoSelection is the cursor value of an empty list.
const NoSelection = -1

// List is an ordered collection with a selection cursor, a loading flag, and
// the last error recorded for its slot. The cursor is NoSelection exactly
// when the list is empty; every mutation clamps it back into range.
type List[T any] struct {
	Items   []T
	Cursor  int
	Loading bool
	Err     string
}

// NewList returns an empty list.
func NewList[T any]() List[T] {
	return List[T]{Cursor: NoSelection}
}

// Replace swaps the items wholesale. The cursor resets to 0 for a non-empty
// list and NoSelection otherwise; loading and error state are cleared.
func (l *List[T]) Replace(items []T) {
	l.Items = items
	l.Loading = false
	l.Err = ""
	if len(items) == 0 {
		l.Cursor = NoSelection
		return
	}
	l.Cursor = 0
}

// Fail records a fetch failure without disturbing the current items.
func (l *List[T]) Fail(msg string) {
	l.Loading = false
	l.Err = msg
}

// Len returns the number of items.
func (l *List[T]) Len() int { return len(l.Items) }

// Selected returns the item under the cursor, or the zero value and false
// when nothing is selected.
func (l *List[T]) Selected() (T, bool) {
	var zero T
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return zero, false
	}
	return l.Items[l.Cursor], true
}

// Next moves the cursor down one row, wrapping to the top.
func (l *List[T]) Next() {
	if len(l.Items) == 0 {
		l.Cursor = NoSelection
		return
	}
	l.Cursor = (l.Cursor + 1) % len(l.Items)
}

// Prev moves the cursor up one row, wrapping to the bottom.
func (l *List[T]) Prev() {
	if len(l.Items) == 0 {
		l.Cursor = NoSelection
		return
	}
	l.Cursor--
	if l.Cursor < 0 {
		l.Cursor = len(l.Items) - 1
	}
}

// Clamp forces the cursor back into range after any external mutation of
// Items. It never panics on out-of-range cursors.
func (l *List[T]) Clamp() {
	if len(l.Items) == 0 {
		l.Cursor = NoSelection
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
}

// Set overwrites the item at index i when it is in range.
func (l *List[T]) Set(i int, item T) {
	if i < 0 || i >= len(l.Items) {
		return
	}
	l.Items[i] = item
}
