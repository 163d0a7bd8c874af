package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// UseCaseEvent captures lightweight execution telemetry for one intent
// handled by the session machine.
type UseCaseEvent struct {
	ID        string
	Name      string
	Phase     string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewSlogUseCaseObserver writes use-case events through an existing logger.
func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 12+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"intent_id", event.ID,
		"phase", event.Phase,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_use_case", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// intentSpan records one intent; finish is deferred by the caller.
type intentSpan struct {
	observer  UseCaseObserver
	event     UseCaseEvent
	startedAt time.Time
}

func startIntent(observer UseCaseObserver, name string, phase string) *intentSpan {
	now := time.Now()
	return &intentSpan{
		observer:  observer,
		startedAt: now,
		event: UseCaseEvent{
			ID:        uuid.New().String(),
			Name:      name,
			Phase:     phase,
			StartedAt: now,
			Fields:    map[string]any{},
		},
	}
}

func (s *intentSpan) set(key string, value any) {
	s.event.Fields[key] = value
}

func (s *intentSpan) finish(ctx context.Context, err error) {
	s.event.Duration = time.Since(s.startedAt)
	s.event.Success = err == nil
	s.event.Err = err
	s.observer.ObserveUseCase(ctx, s.event)
}
