package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextMarksLoadingAndClearsError(t *testing.T) {
	tbl := NewSlotTable()
	tbl.Fail("sites", "old failure")

	corr := tbl.Next("sites")
	assert.Equal(t, "sites", corr.Key)
	assert.Equal(t, uint64(1), corr.Ordinal)
	assert.True(t, tbl.Loading("sites"))
	assert.Empty(t, tbl.Err("sites"))
}

func TestAcceptDropsStaleCompletions(t *testing.T) {
	tbl := NewSlotTable()
	o1 := tbl.Next("search")
	o2 := tbl.Next("search")

	// o2 arrives first and is applied; o1 is stale and must be dropped.
	assert.True(t, tbl.Accept(o2))
	assert.False(t, tbl.Accept(o1))
}

// Property from the dispatch contract: for ordinals o1 < o2 on one slot, the
// applied state is o2's payload no matter the arrival order.
func TestOrdinalIdempotentUnderReordering(t *testing.T) {
	for _, arrival := range [][2]int{{0, 1}, {1, 0}} {
		tbl := NewSlotTable()
		corrs := []Correlation{tbl.Next("devices:site-1"), tbl.Next("devices:site-1")}
		payloads := []string{"old", "new"}

		applied := ""
		for _, idx := range arrival {
			if tbl.Accept(corrs[idx]) {
				applied = payloads[idx]
			}
		}
		require.Equal(t, "new", applied, "arrival order %v", arrival)
	}
}

func TestAcceptUnknownSlot(t *testing.T) {
	tbl := NewSlotTable()
	assert.False(t, tbl.Accept(Correlation{Key: "ghost", Ordinal: 1}))
}

func TestSlotsAreIndependent(t *testing.T) {
	tbl := NewSlotTable()
	a := tbl.Next("vars:site-a")
	b := tbl.Next("vars:site-b")

	tbl.Fail("vars:site-a", "boom")
	assert.Equal(t, "boom", tbl.Err("vars:site-a"))
	assert.Empty(t, tbl.Err("vars:site-b"))

	// The failure on one slot does not invalidate the other's dispatch.
	assert.True(t, tbl.Accept(b))
	assert.True(t, tbl.Accept(a), "Fail leaves the ordinal alone; a is still current")
}

func TestAcceptIsCurrentAfterFail(t *testing.T) {
	// A failed completion still counts as the slot's outcome; a retry gets a
	// new ordinal and supersedes it.
	tbl := NewSlotTable()
	first := tbl.Next("site-update:x")
	require.True(t, tbl.Accept(first))
	tbl.Fail("site-update:x", "write refused")

	second := tbl.Next("site-update:x")
	assert.Empty(t, tbl.Err("site-update:x"))
	assert.True(t, tbl.Accept(second))
}
