package progress

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

// TestHubBatchBySize verifies the hub flushes immediately once the batch size limit is reached.
func TestHubBatchBySize(t *testing.T) {
	t.Parallel()

	sink := newStubSink()
	hub := NewHub(Options{
		Buffer:     8,
		BatchSize:  2,
		FlushEvery: time.Minute,
	}, sink)
	defer func() {
		require.NoError(t, hub.Close(context.Background()))
	}()

	evt := sampleEvent(StageTaskStart)
	hub.Emit(evt)
	hub.Emit(evt)
	require.Eventually(t, func() bool {
		return len(sink.Batches()) == 1 && len(sink.Batches()[0]) == 2
	}, time.Second, 10*time.Millisecond)
}

// TestHubBatchByTimer verifies the periodic flush kicks in when the batch is small.
func TestHubBatchByTimer(t *testing.T) {
	t.Parallel()

	sink := newStubSink()
	hub := NewHub(Options{
		Buffer:     4,
		BatchSize:  10,
		FlushEvery: 25 * time.Millisecond,
	}, sink)
	defer func() {
		require.NoError(t, hub.Close(context.Background()))
	}()

	hub.Emit(sampleEvent(StageTaskStart))
	require.Eventually(t, func() bool {
		return len(sink.Batches()) == 1
	}, time.Second, 5*time.Millisecond)
}

// TestHubEmitNonBlockingWithoutConsumers asserts Emit never blocks callers, even without sinks.
func TestHubEmitNonBlockingWithoutConsumers(t *testing.T) {
	t.Parallel()

	hub := &Hub{
		opts:   Options{},
		events: make(chan Event),
		logger: zap.NewNop(),
	}
	start := time.Now()
	hub.Emit(sampleEvent(StageTaskStart))
	require.Less(t, time.Since(start), 50*time.Millisecond)
}

// TestHubFlushOnClose ensures Close drains any buffered events before returning.
func TestHubFlushOnClose(t *testing.T) {
	t.Parallel()

	sink := newStubSink()
	hub := NewHub(Options{
		Buffer:     4,
		BatchSize:  100,
		FlushEvery: time.Minute,
	}, sink)

	evt := sampleEvent(StageTaskDone)
	hub.Emit(evt)

	require.NoError(t, hub.Close(context.Background()))
	require.Len(t, sink.Batches(), 1)
	require.Len(t, sink.Batches()[0], 1)
}

// TestHubDiscardsInvalidEvents covers the validation gate on Emit.
func TestHubDiscardsInvalidEvents(t *testing.T) {
	t.Parallel()

	sink := newStubSink()
	hub := NewHub(Options{
		Buffer:     4,
		BatchSize:  1,
		FlushEvery: 10 * time.Millisecond,
	}, sink)
	defer func() {
		require.NoError(t, hub.Close(context.Background()))
	}()

	evt := sampleEvent(StageTaskStart)
	evt.Category = ""
	hub.Emit(evt)

	time.Sleep(50 * time.Millisecond)
	require.Empty(t, sink.Batches())
}

func TestEventValidate(t *testing.T) {
	t.Parallel()

	t.Run("RequiresRunID", func(t *testing.T) {
		evt := sampleEvent(StageTaskStart)
		evt.RunID = [16]byte{}
		require.ErrorContains(t, evt.Validate(), "run id")
	})

	t.Run("BookDoneRequiresStatusClass", func(t *testing.T) {
		evt := sampleEvent(StageBookDone)
		evt.StatusClass = ""
		require.ErrorContains(t, evt.Validate(), "status class")
	})

	t.Run("BookDropRequiresURL", func(t *testing.T) {
		evt := sampleEvent(StageBookDrop)
		evt.URL = ""
		require.ErrorContains(t, evt.Validate(), "url")
	})

	t.Run("RejectsUnknownStage", func(t *testing.T) {
		evt := sampleEvent(StageTaskStart)
		evt.Stage = Stage("BANANAS")
		require.ErrorContains(t, evt.Validate(), "unknown stage")
	})

	t.Run("CacheIsAValidStatusClass", func(t *testing.T) {
		evt := sampleEvent(StageBookDone)
		evt.StatusClass = StatusCache
		require.NoError(t, evt.Validate())
	})
}

func TestClassifyStatus(t *testing.T) {
	t.Parallel()
	require.Equal(t, Status2xx, ClassifyStatus(200))
	require.Equal(t, Status3xx, ClassifyStatus(302))
	require.Equal(t, Status4xx, ClassifyStatus(404))
	require.Equal(t, Status5xx, ClassifyStatus(503))
	require.Equal(t, StatusOther, ClassifyStatus(0))
}

type stubSink struct {
	mu      sync.Mutex
	batches [][]Event
}

func newStubSink() *stubSink {
	return &stubSink{batches: [][]Event{}}
}

func (s *stubSink) Consume(_ context.Context, batch []Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copyBatch := append([]Event(nil), batch...)
	s.batches = append(s.batches, copyBatch)
	return nil
}

func (s *stubSink) Close(context.Context) error {
	return nil
}

func (s *stubSink) Batches() [][]Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]Event, len(s.batches))
	for i, b := range s.batches {
		out[i] = append([]Event(nil), b...)
	}
	return out
}

func sampleEvent(stage Stage) Event {
	id := uuid.New()
	evt := Event{
		RunID:    UUIDToBytes(id),
		TS:       time.Now(),
		Stage:    stage,
		Category: "history",
		Page:     1,
	}
	switch stage {
	case StageBookDone:
		evt.URL = "https://example.com/book/show/1"
		evt.StatusClass = Status2xx
	case StageBookDrop:
		evt.URL = "https://example.com/book/show/1"
		evt.Note = "extract failed"
	}
	return evt
}
