// Package logging provides leveled logging and transition decision logs for jiggle.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A DecisionLogger that appends one JSON line per MH decision (.jiggle/decisions.jsonl)
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nvandessel/jiggle/internal/constants"
)

// LevelTrace is a custom slog level below Debug. At this level every
// random-walk proposal is logged.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w. format is "json" or
// "text"; anything else means text.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Decision is one accept/reject outcome as written to the decision log.
type Decision struct {
	Run        string  `json:"run"`
	Generation uint64  `json:"generation"`
	Accepted   bool    `json:"accepted"`
	Before     float64 `json:"before"`
	After      float64 `json:"after"`
	NewSites   int     `json:"new_sites,omitempty"`
}

// DecisionLogger writes transition decisions to a JSONL file.
// It is safe for concurrent use. A nil DecisionLogger is safe to use;
// all methods are no-ops on nil receiver.
type DecisionLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewDecisionLogger creates a decision logger writing to dir/decisions.jsonl.
// At "info" level (the default), returns nil and no file is created.
// At "debug" or "trace" level, the file is opened for append.
// Returns nil if the file cannot be opened. All methods are nil-safe.
func NewDecisionLogger(dir string, level string) *DecisionLogger {
	if ParseLevel(level) == slog.LevelInfo {
		return nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}

	path := filepath.Join(dir, constants.DecisionsFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}

	return &DecisionLogger{file: f}
}

// LogDecision appends d with a "time" field.
func (dl *DecisionLogger) LogDecision(d Decision) {
	if dl == nil {
		return
	}
	// -Inf is not representable in JSON; log it as null.
	dl.Log(map[string]any{
		"event":      "transition",
		"run":        d.Run,
		"generation": d.Generation,
		"accepted":   d.Accepted,
		"before":     finiteOrNil(d.Before),
		"after":      finiteOrNil(d.After),
		"new_sites":  d.NewSites,
	})
}

// Log writes an arbitrary event as a single JSONL line.
// A "time" field is added automatically. The caller's map is not mutated.
// Safe to call on nil receiver.
func (dl *DecisionLogger) Log(event map[string]any) {
	if dl == nil {
		return
	}

	entry := make(map[string]any, len(event)+1)
	for k, v := range event {
		entry[k] = v
	}
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')

	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.file == nil {
		return
	}
	_, _ = dl.file.Write(data)
}

// Close closes the underlying file. Safe to call on nil receiver.
func (dl *DecisionLogger) Close() {
	if dl == nil {
		return
	}

	dl.mu.Lock()
	defer dl.mu.Unlock()

	if dl.file != nil {
		dl.file.Close()
		dl.file = nil
	}
}

func finiteOrNil(x float64) any {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return x
}
