package sinks

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shelfdata/bookharvest/internal/progress"
)

// JournalSink appends every event to a JSON-lines run journal, one object
// per line, so past crawl activity can be inspected or replayed without
// any database. The file grows across runs; run_id separates them.
type JournalSink struct {
	mu     sync.Mutex
	file   *os.File
	buf    *bufio.Writer
	logger *zap.Logger
}

type journalLine struct {
	RunID    string    `json:"run_id"`
	TS       time.Time `json:"ts"`
	Stage    string    `json:"stage"`
	Category string    `json:"category,omitempty"`
	Page     int       `json:"page,omitempty"`
	URL      string    `json:"url,omitempty"`
	Books    int64     `json:"books,omitempty"`
	Expected int64     `json:"expected,omitempty"`
	Bytes    int64     `json:"bytes,omitempty"`
	Status   string    `json:"status,omitempty"`
	Ms       int64     `json:"ms,omitempty"`
	Note     string    `json:"note,omitempty"`
}

// NewJournalSink opens (or creates) the journal at path in append mode.
func NewJournalSink(path string, logger *zap.Logger) (*JournalSink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open run journal: %w", err)
	}
	return &JournalSink{file: file, buf: bufio.NewWriter(file), logger: logger}, nil
}

// Consume appends the batch and flushes it, so a crash loses at most the
// events of the batch being written.
func (s *JournalSink) Consume(_ context.Context, batch []progress.Event) error {
	if s == nil || s.file == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	enc := json.NewEncoder(s.buf)
	for _, evt := range batch {
		line := journalLine{
			RunID:    evt.RunUUID().String(),
			TS:       evt.TS,
			Stage:    string(evt.Stage),
			Category: evt.Category,
			Page:     evt.Page,
			URL:      evt.URL,
			Books:    evt.Books,
			Expected: evt.Expected,
			Bytes:    evt.Bytes,
			Status:   string(evt.StatusClass),
			Ms:       evt.Dur.Milliseconds(),
		}
		if evt.Note != "" {
			line.Note = evt.Note
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("encode journal line: %w", err)
		}
	}
	if err := s.buf.Flush(); err != nil {
		return fmt.Errorf("flush run journal: %w", err)
	}
	return nil
}

// Close flushes any buffered lines and closes the journal file.
func (s *JournalSink) Close(context.Context) error {
	if s == nil || s.file == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.buf.Flush(); err != nil {
		s.logger.Warn("flush run journal on close", zap.Error(err))
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close run journal: %w", err)
	}
	s.file = nil
	return nil
}
