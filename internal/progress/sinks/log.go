package sinks

import (
	"context"

	"go.uber.org/zap"

	"github.com/shelfdata/bookharvest/internal/progress"
)

// LogSink emits structured logs for the progress stream. Task milestones
// log at info; per-book events log at debug to keep fan-out noise down.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wires a Zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Consume logs each event in the batch using structured fields.
func (s *LogSink) Consume(_ context.Context, batch []progress.Event) error {
	for _, evt := range batch {
		fields := []zap.Field{
			zap.String("run_id", evt.RunUUID().String()),
			zap.String("stage", string(evt.Stage)),
			zap.String("category", evt.Category),
			zap.Int("page", evt.Page),
			zap.Duration("dur", evt.Dur),
		}
		switch evt.Stage {
		case progress.StageBookDone, progress.StageBookDrop:
			fields = append(fields,
				zap.String("url", evt.URL),
				zap.String("status_class", string(evt.StatusClass)),
				zap.Int64("bytes", evt.Bytes),
			)
			if evt.Note != "" {
				fields = append(fields, zap.String("note", evt.Note))
			}
			s.logger.Debug("book progress", fields...)
		default:
			fields = append(fields,
				zap.Int64("books", evt.Books),
				zap.Int64("expected", evt.Expected),
			)
			if evt.Note != "" {
				fields = append(fields, zap.String("note", evt.Note))
			}
			s.logger.Info("task progress", fields...)
		}
	}
	return nil
}

// Close implements the Sink interface; it performs no action.
func (s *LogSink) Close(context.Context) error {
	return nil
}
