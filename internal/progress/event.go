package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage denotes the milestone represented by an Event.
type Stage string

// Supported progress stages. Task stages follow the shelf crawler outcome
// set; book stages are emitted once per frontier URL.
const (
	StageTaskStart Stage = "TASK_START"
	StageTaskSkip  Stage = "TASK_SKIP"
	StageTaskDone  Stage = "TASK_DONE"
	StageTaskAbort Stage = "TASK_ABORT"
	StageBookDone  Stage = "BOOK_DONE"
	StageBookDrop  Stage = "BOOK_DROP"
)

// StatusClass is a coarse grouping of how a document was obtained.
type StatusClass string

// Status classes tracked for book completions. StatusCache marks documents
// served from the disk cache without a network round trip.
const (
	Status2xx   StatusClass = "2xx"
	Status3xx   StatusClass = "3xx"
	Status4xx   StatusClass = "4xx"
	Status5xx   StatusClass = "5xx"
	StatusCache StatusClass = "cache"
	StatusOther StatusClass = "other"
)

// Event captures a single milestone of harvest progress.
type Event struct {
	// RunID identifies one crawl invocation in 16-byte UUID form.
	RunID [16]byte
	// TS is the UTC timestamp recorded by the emitter.
	TS time.Time
	// Stage denotes which task or book milestone occurred.
	Stage Stage
	// Category and Page identify the task the event belongs to.
	Category string
	Page     int
	// URL is the book URL for book-level events.
	URL string
	// Books carries the persisted record count on TASK_DONE.
	Books int64
	// Expected carries the frontier size on TASK_DONE.
	Expected int64
	// Bytes is the document size for BOOK_DONE events.
	Bytes int64
	// StatusClass records how the document was obtained (2xx, cache, ...).
	StatusClass StatusClass
	// Dur captures latency for book fetches and task completions.
	Dur time.Duration
	// Note lets emitters attach low-volume context (e.g. abort reason).
	Note string
}

// Validate performs coarse validation on Event payloads.
func (e Event) Validate() error {
	if e.RunID == [16]byte{} {
		return errors.New("run id is required")
	}
	if e.TS.IsZero() {
		return errors.New("timestamp is required")
	}
	switch e.Stage {
	case StageTaskStart, StageTaskSkip, StageTaskDone, StageTaskAbort:
		if e.Category == "" || e.Page < 1 {
			return errors.New("task events require category and page")
		}
	case StageBookDone:
		if e.URL == "" {
			return errors.New("book done requires url")
		}
		if e.StatusClass == "" {
			return errors.New("book done requires status class")
		}
	case StageBookDrop:
		if e.URL == "" {
			return errors.New("book drop requires url")
		}
	default:
		return fmt.Errorf("unknown stage %q", e.Stage)
	}
	if e.Dur < 0 {
		return errors.New("duration must be >= 0")
	}
	return nil
}

// RunUUID converts the binary run ID to uuid.UUID for display.
func (e Event) RunUUID() uuid.UUID {
	return uuid.UUID(e.RunID)
}

// UUIDToBytes encodes a uuid.UUID into the Event form.
func UUIDToBytes(id uuid.UUID) [16]byte {
	var dest [16]byte
	copy(dest[:], id[:])
	return dest
}

// ClassifyStatus groups HTTP status codes for book events.
func ClassifyStatus(code int) StatusClass {
	switch {
	case code >= 200 && code < 300:
		return Status2xx
	case code >= 300 && code < 400:
		return Status3xx
	case code >= 400 && code < 500:
		return Status4xx
	case code >= 500 && code < 600:
		return Status5xx
	default:
		return StatusOther
	}
}
