package state

// Correlation identifies which slot and which dispatch a completion message
// answers. It is attached to every dispatched command and echoed back.
type Correlation struct {
	Key     string
	Ordinal uint64
}

type slot struct {
	ordinal uint64
	loading bool
	err     string
}

// SlotTable tracks every logical fetch/write slot: its monotonically
// increasing dispatch ordinal, loading flag, and last error. A completion is
// applied only when its ordinal is still the slot's current one, which is
// what makes out-of-order arrival safe for every slot, not just search.
type SlotTable struct {
	slots map[string]*slot
}

// NewSlotTable returns an empty table.
func NewSlotTable() *SlotTable {
	return &SlotTable{slots: make(map[string]*slot)}
}

// Next issues a fresh correlation for a slot: the ordinal advances, the slot
// is marked loading, and any previous error is cleared.
func (t *SlotTable) Next(key string) Correlation {
	s := t.slot(key)
	s.ordinal++
	s.loading = true
	s.err = ""
	return Correlation{Key: key, Ordinal: s.ordinal}
}

// Accept reports whether a completion is current. Stale completions (any
// ordinal below the slot's newest dispatch) return false and must be
// dropped without side effects. A current completion clears loading.
func (t *SlotTable) Accept(corr Correlation) bool {
	s, ok := t.slots[corr.Key]
	if !ok || corr.Ordinal != s.ordinal {
		return false
	}
	s.loading = false
	return true
}

// Fail records a slot error. Callers should only pass correlations that
// Accept already approved.
func (t *SlotTable) Fail(key, msg string) {
	s := t.slot(key)
	s.loading = false
	s.err = msg
}

// Loading reports whether a slot has an outstanding dispatch.
func (t *SlotTable) Loading(key string) bool {
	s, ok := t.slots[key]
	return ok && s.loading
}

// Err returns the slot's last error, empty when none.
func (t *SlotTable) Err(key string) string {
	s, ok := t.slots[key]
	if !ok {
		return ""
	}
	return s.err
}

func (t *SlotTable) slot(key string) *slot {
	if t.slots == nil {
		t.slots = make(map[string]*slot)
	}
	s, ok := t.slots[key]
	if !ok {
		s = &slot{}
		t.slots[key] = s
	}
	return s
}
