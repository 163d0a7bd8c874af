package service

import (
	"context"

	"github.com/alexanderramin/lumina/internal/domain"
)

// triggerPrefetch generates the next day's module in the background from a
// hypothetical profile that assumes the session completes with score.
// Callers hold mu.
func (m *SessionMachine) triggerPrefetch(score float64) {
	current := m.profile
	next := current.CurrentDay + 1

	if m.prefetchInFlight {
		m.logger.Debug("prefetch skipped: already in flight", "day", next)
		return
	}
	if current.ContentBuffer != nil && current.ContentBuffer.Day == next {
		m.logger.Debug("prefetch skipped: buffer already holds day", "day", next)
		return
	}
	if m.curriculum == nil {
		m.logger.Debug("prefetch skipped: no curriculum", "day", next)
		return
	}
	topic, ok := m.curriculum.TopicFor(next)
	if !ok {
		m.logger.Debug("prefetch skipped: day not scheduled", "day", next)
		return
	}

	hypothetical := current.Clone()
	hypothetical.ExpertiseLevel = domain.AdjustExpertise(current.ExpertiseLevel, score)
	hypothetical.LastQuizScore = score
	hypothetical.CurrentDay = next
	hypothetical.ContentBuffer = nil

	m.prefetchInFlight = true
	m.prefetchWG.Add(1)
	epoch := m.resetEpoch
	m.logger.Info("prefetch started", "day", next, "topic", topic, "expertise", hypothetical.ExpertiseLevel)

	go m.runPrefetch(hypothetical, topic, epoch)
}

// runPrefetch is not cancelled when the intent that started it returns.
func (m *SessionMachine) runPrefetch(hypothetical domain.UserProfile, topic string, epoch uint64) {
	defer m.prefetchWG.Done()
	ctx := context.Background()
	target := hypothetical.CurrentDay

	content := m.content.GenerateDailyContent(ctx, hypothetical, topic)

	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.prefetchInFlight = false }()

	if content.IsUnavailable() {
		m.logger.Warn("prefetch produced no content", "day", target, "topic", topic)
		return
	}
	if epoch != m.resetEpoch {
		m.logger.Info("prefetch discarded: learner reset", "day", target)
		return
	}
	current := m.profile.CurrentDay
	if target != current && target != current+1 {
		m.logger.Info("prefetch discarded: stale target", "day", target, "current_day", current)
		return
	}

	key := domain.CacheKey{Role: hypothetical.Role, Objective: hypothetical.Objective, Day: target, Topic: topic}
	if err := m.cache.Put(ctx, key, content); err != nil {
		m.logger.Warn("caching prefetched content failed", "key", key.String(), "error", err)
	}

	next := m.profile.Clone()
	next.ContentBuffer = &domain.ContentBuffer{Day: target, Topic: topic, Data: content}
	if err := m.commitProfile(ctx, next); err != nil {
		m.logger.Error("persisting prefetched content failed", "day", target, "error", err)
		return
	}
	m.logger.Info("prefetch buffered", "day", target, "topic", topic)
}

// PrefetchInFlight reports whether a background generation is running.
func (m *SessionMachine) PrefetchInFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefetchInFlight
}

// WaitForPrefetch blocks until any in-flight prefetch has finished or ctx
// is done.
func (m *SessionMachine) WaitForPrefetch(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.prefetchWG.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
