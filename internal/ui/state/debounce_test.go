package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldDispatchRules(t *testing.T) {
	tests := []struct {
		name           string
		buffer         string
		lastDispatched string
		since          time.Duration
		want           bool
	}{
		{"quiet period not elapsed", "server01", "", 300 * time.Millisecond, false},
		{"exactly at quiet period", "server01", "", 500 * time.Millisecond, true},
		{"buffer too short", "se", "", time.Second, false},
		{"minimum length boundary", "ser", "", time.Second, true},
		{"already dispatched", "server01", "server01", time.Second, false},
		{"buffer changed since dispatch", "server012", "server01", time.Second, true},
		{"multibyte runes counted as runes", "日本語", "", time.Second, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldDispatch(tt.buffer, tt.lastDispatched, tt.since))
		})
	}
}

// The reference timeline: keystrokes at t, t+100ms, t+150ms, then silence.
// Ticks every 250ms must produce exactly one dispatch, carrying the buffer
// as of t+150ms.
func TestDebounceTimeline(t *testing.T) {
	type keystroke struct {
		at     time.Duration
		buffer string
	}
	strokes := []keystroke{
		{0, "srv"},
		{100 * time.Millisecond, "srv0"},
		{150 * time.Millisecond, "srv01"},
	}

	lastDispatched := ""
	dispatches := []string{}

	for tick := 250 * time.Millisecond; tick <= 1500*time.Millisecond; tick += 250 * time.Millisecond {
		buffer := ""
		lastKey := time.Duration(0)
		for _, s := range strokes {
			if s.at <= tick {
				buffer = s.buffer
				lastKey = s.at
			}
		}
		if ShouldDispatch(buffer, lastDispatched, tick-lastKey) {
			lastDispatched = buffer
			dispatches = append(dispatches, buffer)
		}
	}

	assert.Equal(t, []string{"srv01"}, dispatches)
}
