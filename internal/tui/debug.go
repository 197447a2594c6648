package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/huddlehq/huddle/internal/dateutil"
)

// DebugLogPath is where --debug writes its JSON-lines trace.
const DebugLogPath = "huddle-debug.log"

// fields are the event-specific keys of a trace line.
type fields map[string]any

// debugLogger appends one JSON object per line to its writer. A nil logger
// or one without a writer drops everything.
type debugLogger struct {
	mu  sync.Mutex
	w   io.WriteCloser
	enc *json.Encoder
	seq int
}

var debugLog *debugLogger

// InitDebugLogger starts tracing to DebugLogPath when enabled.
func InitDebugLogger(enabled bool) error {
	return initDebugLoggerAt(DebugLogPath, enabled)
}

func initDebugLoggerAt(path string, enabled bool) error {
	debugLog = nil
	if !enabled {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}
	debugLog = &debugLogger{w: f, enc: json.NewEncoder(f)}
	debugLog.log("DEBUG_START", fields{"log_file": path, "time": time.Now().Format(time.RFC3339)})
	return nil
}

// CloseDebugLogger writes the closing entry and releases the file.
func CloseDebugLogger() {
	if debugLog == nil || debugLog.w == nil {
		return
	}
	debugLog.log("DEBUG_END", fields{"time": time.Now().Format(time.RFC3339)})

	debugLog.mu.Lock()
	defer debugLog.mu.Unlock()
	_ = debugLog.w.Close()
	debugLog.w, debugLog.enc = nil, nil
}

func (d *debugLogger) log(event string, f fields) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enc == nil {
		return
	}

	d.seq++
	entry := fields{"seq": d.seq, "ts": time.Now().Format("15:04:05.000"), "event": event}
	for k, v := range f {
		entry[k] = v
	}
	_ = d.enc.Encode(entry)
}

// LogKeyPress records a key press.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.log("KEY_PRESS", fields{"key": msg.String(), "alt": msg.Alt})
}

// LogNavigation records a window change and why it happened.
func LogNavigation(reason string, anchor time.Time) {
	debugLog.log("NAVIGATE", fields{"reason": reason, "anchor": anchor.Format(dateutil.DateLayout)})
}

// LogWindowLoaded records a finished window load. Stale loads were dropped
// because the user navigated away before they arrived.
func LogWindowLoaded(anchor time.Time, events int, stale bool) {
	debugLog.log("WINDOW_LOADED", fields{
		"anchor": anchor.Format(dateutil.DateLayout),
		"events": events,
		"stale":  stale,
	})
}

// LogError records an error with the operation that produced it.
func LogError(op string, err error) {
	debugLog.log("ERROR", fields{"op": op, "error": err.Error()})
}
