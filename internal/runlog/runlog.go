// Package runlog writes the per-subscription audit trail: one run section
// per execution, one line per decision. The file is opened, appended, and
// closed for every line, so a crash mid-run loses at most the line being
// written.
package runlog

import (
	"fmt"
	"log"
	"os"
	"time"
)

const separator = "------------------------------------------------------"

// Logger appends run decisions to a subscription's log file.
type Logger struct {
	path string
}

func New(path string) *Logger {
	return &Logger{path: path}
}

// Start opens a new run section: separator, start timestamp, and the size
// of the archive loaded for this run.
func (l *Logger) Start(existingEntries int) {
	l.line(separator)
	l.line("Started: %s", time.Now().Format(time.RFC3339))
	l.line("Existing entries: %d", existingEntries)
}

// Printf records one decision line.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.line(format, args...)
}

// Finish closes the run section with a completion timestamp.
func (l *Logger) Finish() {
	l.line("Finished: %s", time.Now().Format(time.RFC3339))
}

func (l *Logger) line(format string, args ...interface{}) {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("scribe: cannot open run log %s: %v", l.path, err)
		return
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, format+"\n", args...); err != nil {
		log.Printf("scribe: run log write failed: %v", err)
	}
}
