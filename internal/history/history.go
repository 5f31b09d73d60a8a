package history

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"sceneforge/internal/scene"
)

// Record is one generation attempt: what was asked, how it went, how long it
// took.
type Record struct {
	ID       string        `json:"id"`
	Prompt   string        `json:"prompt"`
	Outcome  string        `json:"outcome"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
	At       time.Time     `json:"at"`
}

// Log stores generation records in memory and appends a summary line per
// record to a file on disk. File writes are best-effort: a failed open or
// write never disturbs the in-memory log.
type Log struct {
	mu      sync.Mutex
	records []Record
	path    string
}

// New returns a Log appending to the file at path, creating the parent
// directory if needed. An empty path keeps the log in memory only.
func New(path string) *Log {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Log{path: path}
}

// Add appends rec and writes its summary line to the log file. Each line is
// prefixed with [timestamp] using computer time.
func (l *Log) Add(rec Record) {
	if rec.At.IsZero() {
		rec.At = time.Now()
	}
	l.mu.Lock()
	l.records = append(l.records, rec)
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	line := "[" + rec.At.Format("2006-01-02 15:04:05") + "] " + rec.Prompt + " -> " + rec.Outcome
	if rec.Error != "" {
		line += " (" + rec.Error + ")"
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(line + "\n")
	_ = f.Close()
}

// Records returns a copy of all records, oldest first.
func (l *Log) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Tail returns the most recent n records, oldest first. n <= 0 or n beyond
// the log length returns everything.
func (l *Log) Tail(n int) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > len(l.records) {
		n = len(l.records)
	}
	out := make([]Record, n)
	copy(out, l.records[len(l.records)-n:])
	return out
}

// Summarize renders the outcome column for a completed description:
// the model file name for a reference, the shape count otherwise.
func Summarize(desc scene.SceneDescription) string {
	if desc.HasModel() {
		return "model " + path.Base(desc.ModelReference)
	}
	return fmt.Sprintf("%d shapes", len(desc.Shapes))
}
