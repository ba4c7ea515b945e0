// Package transcript writes the human-readable record of a scenario run.
//
// A transcript starts with a header line stamped with the run time, followed by one block per
// step:
//
//	==== API TEST RUN 2024-05-01 12:00:00 ====
//
//	### Create Supplier
//	HTTP 201
//	{"id":1,...}
//
// Every write reopens the file and holds an exclusive lock while writing, so entries from
// concurrent writers cannot interleave.
package transcript

import (
	"fmt"
	"os"
	"sync"
	"time"
)

const headerTimeFormat = "2006-01-02 15:04:05"

type Logger struct {
	path string
	now  func() time.Time
	lock sync.Mutex
}

// New returns a Logger for the file at path. Nothing is written until Initialize is called.
func New(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

func (l *Logger) Path() string {
	return l.path
}

// Initialize truncates the transcript, creating it if necessary, and writes the run header.
func (l *Logger) Initialize() error {
	header := fmt.Sprintf("==== API TEST RUN %s ====\n", l.now().Format(headerTimeFormat))
	return l.write(os.O_WRONLY|os.O_CREATE, true, header)
}

// Record appends the outcome of one step.
func (l *Logger) Record(title, body string, status int) error {
	return l.write(os.O_WRONLY|os.O_CREATE|os.O_APPEND, false, FormatEntry(title, body, status))
}

// FormatEntry returns the block that Record appends for a step.
func FormatEntry(title, body string, status int) string {
	return fmt.Sprintf("\n### %s\nHTTP %d\n%s\n", title, status, body)
}

// write truncates, when asked to, only after the lock is held.
func (l *Logger) write(flag int, truncate bool, text string) (err error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	f, err := os.OpenFile(l.path, flag, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open transcript: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("cannot close transcript: %w", closeErr)
		}
	}()

	if err := lockFile(f); err != nil {
		return fmt.Errorf("cannot lock transcript: %w", err)
	}
	defer unlockFile(f)

	if truncate {
		if err := f.Truncate(0); err != nil {
			return fmt.Errorf("cannot truncate transcript: %w", err)
		}
	}

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("cannot write transcript: %w", err)
	}
	return nil
}
