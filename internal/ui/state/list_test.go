package state

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceResetsCursor(t *testing.T) {
	l := NewList[string]()
	require.Equal(t, NoSelection, l.Cursor)

	l.Replace([]string{"a", "b", "c"})
	assert.Equal(t, 0, l.Cursor)

	l.Replace(nil)
	assert.Equal(t, NoSelection, l.Cursor)
}

func TestReplaceClearsLoadingAndError(t *testing.T) {
	l := NewList[int]()
	l.Loading = true
	l.Err = "boom"
	l.Replace([]int{1})
	assert.False(t, l.Loading)
	assert.Empty(t, l.Err)
}

func TestFailKeepsItems(t *testing.T) {
	l := NewList[int]()
	l.Replace([]int{1, 2})
	l.Loading = true
	l.Fail("timeout")
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "timeout", l.Err)
	assert.False(t, l.Loading)
}

func TestWrapAroundNavigation(t *testing.T) {
	l := NewList[string]()
	l.Replace([]string{"Zeta", "Alpha", "Mid"})
	require.Equal(t, 0, l.Cursor)

	l.Next()
	l.Next()
	assert.Equal(t, 2, l.Cursor)
	l.Next()
	assert.Equal(t, 0, l.Cursor, "down past the last row wraps to the top")

	l.Prev()
	assert.Equal(t, 2, l.Cursor, "up past the first row wraps to the bottom")
}

func TestNavigationOnEmptyList(t *testing.T) {
	l := NewList[string]()
	l.Next()
	assert.Equal(t, NoSelection, l.Cursor)
	l.Prev()
	assert.Equal(t, NoSelection, l.Cursor)
	_, ok := l.Selected()
	assert.False(t, ok)
}

func TestClampAfterShrink(t *testing.T) {
	l := NewList[int]()
	l.Replace([]int{1, 2, 3, 4, 5})
	l.Cursor = 4
	l.Items = l.Items[:2]
	l.Clamp()
	assert.Equal(t, 1, l.Cursor)

	l.Items = nil
	l.Clamp()
	assert.Equal(t, NoSelection, l.Cursor)
}

// Property: after any sequence of replace/navigate/clamp operations the
// cursor is NoSelection for an empty list and otherwise within [0, len).
func TestCursorInvariantRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	l := NewList[int]()

	checkInvariant := func(step int) {
		if l.Len() == 0 {
			require.Equal(t, NoSelection, l.Cursor, "step %d: empty list cursor", step)
			return
		}
		require.GreaterOrEqual(t, l.Cursor, 0, "step %d", step)
		require.Less(t, l.Cursor, l.Len(), "step %d", step)
	}

	for step := 0; step < 10_000; step++ {
		switch rng.Intn(5) {
		case 0:
			n := rng.Intn(8)
			items := make([]int, n)
			for i := range items {
				items[i] = rng.Int()
			}
			l.Replace(items)
		case 1:
			l.Next()
		case 2:
			l.Prev()
		case 3:
			// Shrink or grow in place, then clamp as every caller must.
			n := rng.Intn(8)
			items := make([]int, n)
			l.Items = items
			l.Clamp()
		case 4:
			l.Fail(fmt.Sprintf("err-%d", step))
		}
		checkInvariant(step)
	}
}

func TestSelectedAndSet(t *testing.T) {
	l := NewList[string]()
	l.Replace([]string{"a", "b"})
	l.Next()
	got, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", got)

	l.Set(1, "bb")
	got, _ = l.Selected()
	assert.Equal(t, "bb", got)

	// Out-of-range writes are ignored.
	l.Set(7, "nope")
	assert.Equal(t, 2, l.Len())
}
