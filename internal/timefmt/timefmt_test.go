package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat_Nil(t *testing.T) {
	assert.Equal(t, "N/A", Format(nil))
	assert.Equal(t, "N/A", Format(""))
	assert.Equal(t, "N/A", Format(struct{}{}))
}

func TestFormat_Millis(t *testing.T) {
	ref := time.Date(2026, 1, 15, 9, 30, 0, 0, time.Local)
	got := Format(float64(ref.UnixMilli()))
	assert.Equal(t, ref.Format(display), got)
}

func TestFormat_Seconds(t *testing.T) {
	ref := time.Date(2024, 6, 1, 18, 5, 0, 0, time.Local)
	got := Format(float64(ref.Unix()))
	assert.Equal(t, ref.Format(display), got)
}

func TestFormat_RFC3339(t *testing.T) {
	ref := time.Date(2025, 3, 10, 14, 45, 0, 0, time.UTC)
	got := Format(ref.Format(time.RFC3339))
	assert.Equal(t, ref.Local().Format(display), got)
}

func TestFormat_UnparseableStringPassesThrough(t *testing.T) {
	assert.Equal(t, "yesterday", Format("yesterday"))
}
