package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/repository"
	"github.com/alexanderramin/lumina/internal/validate"
)

// DefaultTopic is used when the schedule has no entry for the day.
const DefaultTopic = "Introduction to AI"

// ContentSource names where a daily module came from.
type ContentSource string

const (
	SourceStatic    ContentSource = "static"
	SourceBuffer    ContentSource = "buffer"
	SourceCache     ContentSource = "cache"
	SourceGenerated ContentSource = "generated"
)

// DailyModule is the resolved content for one day.
type DailyModule struct {
	Day         int
	Topic       string
	Content     domain.DailyContent
	Source      ContentSource
	Unavailable bool
}

// QuizResult is the outcome of a submitted quiz.
type QuizResult struct {
	Score   float64
	Correct int
	Total   int
	Answers map[int]int
}

// LoadDailyContent resolves content for the current day: static day one,
// then the prefetch buffer, then the cache, then fresh generation. force
// skips the buffer and the cache and evicts the cache entry.
func (m *SessionMachine) LoadDailyContent(ctx context.Context, force bool) (module *DailyModule, err error) {
	m.mu.Lock()
	span := startIntent(m.observer, "load-daily-content", string(m.phase))
	defer func() { span.finish(ctx, err) }()

	if err := m.requirePhase(domain.PhaseDailyLoop); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	profile := m.profile.Clone()
	curriculum := m.curriculum
	epoch := m.resetEpoch
	m.mu.Unlock()

	resolved, err := m.resolveContent(ctx, profile, curriculum, force)
	if err != nil {
		return nil, err
	}
	span.set("day", resolved.Day)
	span.set("source", string(resolved.Source))
	span.set("force", force)
	span.set("unavailable", resolved.Unavailable)

	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.resetEpoch || m.phase != domain.PhaseDailyLoop {
		return nil, fmt.Errorf("%w: learner state changed while loading content", ErrInvalidPhase)
	}
	m.module = &resolved
	m.quizAnswers = make(map[int]int, len(resolved.Content.Quiz))
	m.result = nil

	out := resolved
	out.Content = resolved.Content.Clone()
	return &out, nil
}

func topicFor(curriculum *domain.Curriculum, day int) string {
	if curriculum != nil {
		if topic, ok := curriculum.TopicFor(day); ok {
			return topic
		}
	}
	return DefaultTopic
}

// resolveContent runs the resolution order for profile's upcoming day
// without touching machine state.
func (m *SessionMachine) resolveContent(ctx context.Context, profile domain.UserProfile, curriculum *domain.Curriculum, force bool) (DailyModule, error) {
	day := profile.UpcomingDay()
	topic := topicFor(curriculum, day)
	module := DailyModule{Day: day, Topic: topic}

	if day == 1 {
		if content, ok := m.static.Lookup(profile.Role, day, profile.Objective, profile.ExpertiseLevel); ok {
			module.Content = content
			module.Source = SourceStatic
			return module, nil
		}
	}

	if !force && profile.ContentBuffer.Matches(day, topic) {
		module.Content = profile.ContentBuffer.Data.Clone()
		module.Source = SourceBuffer
		return module, nil
	}

	key := domain.CacheKey{Role: profile.Role, Objective: profile.Objective, Day: day, Topic: topic}
	if force {
		if err := m.cache.Delete(ctx, key); err != nil {
			m.logger.Warn("evicting cached content failed", "key", key.String(), "error", err)
		}
	} else {
		cached, err := m.cache.Get(ctx, key)
		switch {
		case err == nil:
			module.Content = *cached
			module.Source = SourceCache
			module.Unavailable = cached.IsUnavailable()
			return module, nil
		case !errors.Is(err, repository.ErrNotFound):
			m.logger.Warn("reading cached content failed", "key", key.String(), "error", err)
		}
	}

	started := time.Now()
	content := m.content.GenerateDailyContent(ctx, profile, topic)
	if profile.ContentBuffer == nil && m.minLatency > 0 {
		if remaining := m.minLatency - time.Since(started); remaining > 0 {
			if err := m.sleep(ctx, remaining); err != nil {
				return DailyModule{}, err
			}
		}
	}

	module.Content = content
	module.Source = SourceGenerated
	module.Unavailable = content.IsUnavailable()
	if !module.Unavailable {
		if err := m.cache.Put(ctx, key, content); err != nil {
			m.logger.Warn("caching content failed", "key", key.String(), "error", err)
		}
	}
	return module, nil
}

// SubmitQuizAnswer records the chosen option for one question. Answers are
// sparse until the quiz is submitted.
func (m *SessionMachine) SubmitQuizAnswer(ctx context.Context, index, option int) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	span := startIntent(m.observer, "submit-quiz-answer", string(m.phase))
	defer func() { span.finish(ctx, err) }()

	if err := m.requirePhase(domain.PhaseDailyLoop); err != nil {
		return err
	}
	if m.module == nil {
		return ErrNoContent
	}
	if m.result != nil {
		return fmt.Errorf("%w: quiz already submitted", ErrInvalidPhase)
	}
	quiz := m.module.Content.Quiz
	if index < 0 || index >= len(quiz) {
		return fmt.Errorf("%w: question %d out of range", validate.ErrValidation, index)
	}
	if option < 0 || option >= len(quiz[index].Options) {
		return fmt.Errorf("%w: option %d out of range for question %d", validate.ErrValidation, option, index)
	}
	m.quizAnswers[index] = option
	return nil
}

// SubmitQuiz scores the quiz and starts the speculative prefetch of the
// next day. Submitting again returns the same result without another
// prefetch.
func (m *SessionMachine) SubmitQuiz(ctx context.Context) (result *QuizResult, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	span := startIntent(m.observer, "submit-quiz", string(m.phase))
	defer func() { span.finish(ctx, err) }()

	if err := m.requirePhase(domain.PhaseDailyLoop); err != nil {
		return nil, err
	}
	if m.module == nil {
		return nil, ErrNoContent
	}
	if m.result != nil {
		r := *m.result
		return &r, nil
	}

	quiz := m.module.Content.Quiz
	if len(m.quizAnswers) < len(quiz) {
		return nil, fmt.Errorf("%w: %d of %d answered", ErrQuizIncomplete, len(m.quizAnswers), len(quiz))
	}

	correct := 0
	answers := make(map[int]int, len(m.quizAnswers))
	for i, q := range quiz {
		answers[i] = m.quizAnswers[i]
		if m.quizAnswers[i] == q.CorrectIndex {
			correct++
		}
	}
	m.result = &QuizResult{
		Score:   domain.ScoreQuiz(quiz, m.quizAnswers),
		Correct: correct,
		Total:   len(quiz),
		Answers: answers,
	}
	span.set("score", m.result.Score)

	m.triggerPrefetch(m.result.Score)

	r := *m.result
	return &r, nil
}

// QuizResult returns the submitted result, if any.
func (m *SessionMachine) QuizResult() *QuizResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.result == nil {
		return nil
	}
	r := *m.result
	return &r
}

// CompleteSession applies the adaptive rule, advances the day and returns to
// LOGIN. The quiz must have been submitted and score must lie in [0,100].
// The buffer survives only if it holds the new current day.
func (m *SessionMachine) CompleteSession(ctx context.Context, score float64) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	span := startIntent(m.observer, "complete-session", string(m.phase))
	defer func() { span.finish(ctx, err) }()

	if err := m.requirePhase(domain.PhaseDailyLoop); err != nil {
		return err
	}
	if m.result == nil {
		return fmt.Errorf("%w: submit the quiz before completing the day", ErrQuizIncomplete)
	}
	if score < 0 || score > 100 || math.IsNaN(score) {
		return fmt.Errorf("%w: score %v outside 0-100", validate.ErrValidation, score)
	}

	next := m.profile.Clone()
	next.ExpertiseLevel = domain.AdjustExpertise(next.ExpertiseLevel, score)
	next.CurrentDay++
	next.LastQuizScore = score
	if next.ContentBuffer != nil && next.ContentBuffer.Day != next.CurrentDay {
		next.ContentBuffer = nil
	}
	span.set("score", score)
	span.set("expertise_from", m.profile.ExpertiseLevel)
	span.set("expertise_to", next.ExpertiseLevel)
	span.set("day", next.CurrentDay)
	span.set("buffer_kept", next.ContentBuffer != nil)

	if err := m.commitProfile(ctx, next); err != nil {
		return err
	}
	m.enterLogin()
	return nil
}
