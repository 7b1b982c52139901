package state

import "time"

// Debounce parameters for search-as-you-type. The quiet period must elapse
// with no keystrokes before a query is sent, and queries shorter than the
// minimum are never sent.
const (
	DebounceQuiet  = 500 * time.Millisecond
	DebounceMinLen = 3
)

// ShouldDispatch decides, once per timer tick, whether the search buffer is
// ready to go out. It is pure: the caller owns lastDispatched and must set
// it to buffer immediately when this returns true, before the result comes
// back, so later ticks do not re-send the same query.
func ShouldDispatch(buffer, lastDispatched string, sinceKeystroke time.Duration) bool {
	if sinceKeystroke < DebounceQuiet {
		return false
	}
	if len([]rune(buffer)) < DebounceMinLen {
		return false
	}
	return buffer != lastDispatched
}
