// Package ledger persists per-task crawl progress and drives resume
// decisions.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Entry records how one task went: how many books were scraped against
// how many the frontier promised.
type Entry struct {
	Scraped  int `json:"scraped"`
	Expected int `json:"expected"`
}

// Ratio reports the scraped fraction of the task. An empty frontier
// counts as fully processed.
func (e Entry) Ratio() float64 {
	if e.Expected == 0 {
		return 1.0
	}
	return float64(e.Scraped) / float64(e.Expected)
}

// Complete reports whether the entry meets the completeness threshold.
func (e Entry) Complete(threshold float64) bool {
	return e.Ratio() >= threshold
}

// Ledger is the single progress document shared by every task, keyed by
// "{category}_{page}". Each update rewrites the whole document, so task
// execution must stay sequential; the internal lock only makes reads from
// the ops listener safe while a crawl is running.
type Ledger struct {
	path string

	mu      sync.RWMutex
	entries map[string]Entry
}

// Load reads the ledger document at path. A missing file yields an empty
// ledger so a first crawl needs no setup.
func Load(path string) (*Ledger, error) {
	l := &Ledger{path: path, entries: map[string]Entry{}}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if err := json.Unmarshal(data, &l.entries); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", path, err)
	}
	return l, nil
}

// Get returns the entry for a task key.
func (l *Ledger) Get(key string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[key]
	return e, ok
}

// Set records progress for a task key in memory. Call Save to persist.
func (l *Ledger) Set(key string, e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[key] = e
}

// Len reports how many tasks have been ledgered.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Snapshot returns a copy of every entry, for reporting.
func (l *Ledger) Snapshot() map[string]Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]Entry, len(l.entries))
	for k, v := range l.entries {
		out[k] = v
	}
	return out
}

// Save rewrites the whole ledger document on disk.
func (l *Ledger) Save() error {
	l.mu.RLock()
	data, err := json.MarshalIndent(l.entries, "", "  ")
	l.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o600); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
