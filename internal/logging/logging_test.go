package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_DisabledByDefault(t *testing.T) {
	Configure("")
	// Must not create anything or panic.
	Event("noop", map[string]int{"n": 1})
}

func TestEvent_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "kyber.log")
	Configure(path)
	defer Configure("")

	Event("request", map[string]string{"url": "https://example.test"})
	Event("response", map[string]int{"status": 200})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"event":"request"`)
	assert.Contains(t, lines[1], `"status":200`)
}

func TestError_NilIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kyber.log")
	Configure(path)
	defer Configure("")

	Error("request", nil)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nil error must not write")
}
