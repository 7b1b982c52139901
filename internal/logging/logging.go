// Package logging is an optional debug sink for backend request paths. It is
// never used for control flow: every function is a no-op unless a log file
// has been configured, and failures to write are swallowed after a single
// stderr note.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logPath string
)

// Configure sets the log destination. An empty path disables logging.
// Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = ""
		return
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
			logPath = ""
			return
		}
	}
	logPath = path
}

// Event appends a structured JSON entry when logging is enabled.
func Event(event string, payload any) {
	mu.Lock()
	path := logPath
	mu.Unlock()
	if path == "" {
		return
	}

	entry := struct {
		Time    time.Time `json:"time"`
		Event   string    `json:"event"`
		Payload any       `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug logging failed: %v\n", err)
		return
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "debug log encoding failed: %v\n", err)
	}
}

// Error records an error when logging is enabled. Nil errors are ignored.
func Error(event string, err error) {
	if err == nil {
		return
	}
	Event(event, map[string]string{"error": err.Error()})
}
