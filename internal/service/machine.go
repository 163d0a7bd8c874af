// Package service holds the session state machine that drives a learner
// through login, onboarding, curriculum reveal and the daily loop.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/lumina/internal/db"
	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/intelligence"
	"github.com/alexanderramin/lumina/internal/repository"
	"github.com/alexanderramin/lumina/internal/validate"
)

// DefaultMinContentLatency is the floor applied to fresh generation when no
// buffer exists, so the generation interstitial is readable.
const DefaultMinContentLatency = 3 * time.Second

// StaticContent serves hand-authored day-one modules.
type StaticContent interface {
	Lookup(role domain.Role, day int, objective string, expertise int) (domain.DailyContent, bool)
}

// Option configures a SessionMachine.
type Option func(*SessionMachine)

// WithMinContentLatency overrides DefaultMinContentLatency. Zero disables it.
func WithMinContentLatency(d time.Duration) Option {
	return func(m *SessionMachine) { m.minLatency = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *SessionMachine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithObserver(observers ...UseCaseObserver) Option {
	return func(m *SessionMachine) { m.observer = useCaseObserverOrNoop(observers) }
}

// WithTotalDays sets the track length given to fresh profiles.
func WithTotalDays(days int) Option {
	return func(m *SessionMachine) {
		if days > 0 {
			m.totalDays = days
		}
	}
}

// SessionMachine owns the in-memory learner state and the phase. Intents
// are expected from one caller at a time; the background prefetch is the
// only concurrent writer and synchronizes through mu.
type SessionMachine struct {
	profiles   repository.ProfileRepo
	curricula  repository.CurriculumRepo
	cache      repository.ContentCache
	uow        db.UnitOfWork
	content    intelligence.ContentService
	static     StaticContent
	validator  *validate.Validator
	logger     *slog.Logger
	observer   UseCaseObserver
	minLatency time.Duration
	totalDays  int
	sleep      func(ctx context.Context, d time.Duration) error

	mu          sync.Mutex
	phase       domain.Phase
	profile     domain.UserProfile
	curriculum  *domain.Curriculum
	answers     domain.OnboardingAnswers
	module      *DailyModule
	quizAnswers map[int]int
	result      *QuizResult
	// resetEpoch increments on every logout so late prefetch results
	// addressed to a discarded profile are dropped.
	resetEpoch       uint64
	prefetchInFlight bool
	prefetchWG       sync.WaitGroup
}

// NewSessionMachine wires the machine. Call Load before issuing intents.
func NewSessionMachine(
	profiles repository.ProfileRepo,
	curricula repository.CurriculumRepo,
	cache repository.ContentCache,
	uow db.UnitOfWork,
	content intelligence.ContentService,
	static StaticContent,
	opts ...Option,
) *SessionMachine {
	m := &SessionMachine{
		profiles:   profiles,
		curricula:  curricula,
		cache:      cache,
		uow:        uow,
		content:    content,
		static:     static,
		validator:  validate.New(),
		logger:     slog.Default(),
		observer:   NoopUseCaseObserver{},
		minLatency: DefaultMinContentLatency,
		totalDays:  domain.DefaultTotalDays,
		sleep:      sleepCtx,
		phase:      domain.PhaseLogin,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.profile = m.freshProfile()
	return m
}

func (m *SessionMachine) freshProfile() domain.UserProfile {
	p := domain.DefaultProfile()
	p.TotalDays = m.totalDays
	return p
}

// Load restores the persisted profile and curriculum and enters LOGIN.
// A missing profile yields defaults; a stored one is always a returning
// learner.
func (m *SessionMachine) Load(ctx context.Context) (err error) {
	span := startIntent(m.observer, "load", string(domain.PhaseLogin))
	defer func() { span.finish(ctx, err) }()

	profile, err := m.profiles.Get(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		p := m.freshProfile()
		profile = &p
	case err != nil:
		return fmt.Errorf("loading profile: %w", err)
	default:
		// Only onboarded learners are persisted.
		profile.IsReturningUser = true
	}
	if profile.TotalDays <= 0 {
		profile.TotalDays = m.totalDays
	}

	curriculum, err := m.curricula.Get(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		curriculum = nil
	case err != nil:
		return fmt.Errorf("loading curriculum: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = *profile
	m.curriculum = curriculum
	m.enterLogin()
	span.set("returning", profile.IsReturningUser)
	span.set("current_day", profile.CurrentDay)
	return nil
}

// enterLogin resets transient state. Callers hold mu.
func (m *SessionMachine) enterLogin() {
	m.phase = domain.PhaseLogin
	m.answers = domain.OnboardingAnswers{}
	m.clearDaily()
}

func (m *SessionMachine) clearDaily() {
	m.module = nil
	m.quizAnswers = nil
	m.result = nil
}

// Phase returns the current phase.
func (m *SessionMachine) Phase() domain.Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Profile returns a copy of the in-memory profile.
func (m *SessionMachine) Profile() domain.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile.Clone()
}

// Curriculum returns a copy of the active curriculum, or nil.
func (m *SessionMachine) Curriculum() *domain.Curriculum {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.curriculum == nil {
		return nil
	}
	c := *m.curriculum
	c.Schedule = append([]domain.CurriculumDay(nil), m.curriculum.Schedule...)
	return &c
}

// Logout clears the persisted profile and curriculum, restores defaults in
// memory and returns to LOGIN. Cached content is kept.
func (m *SessionMachine) Logout(ctx context.Context) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	span := startIntent(m.observer, "logout", string(m.phase))
	defer func() { span.finish(ctx, err) }()

	err = m.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProfileRepo(tx).Delete(ctx); err != nil {
			return err
		}
		return repository.NewSQLiteCurriculumRepo(tx).Delete(ctx)
	})
	if err != nil {
		return fmt.Errorf("clearing learner state: %w", err)
	}

	m.resetEpoch++
	m.profile = m.freshProfile()
	m.curriculum = nil
	m.enterLogin()
	return nil
}

// commitProfile persists next and, on success, makes it the in-memory
// profile. Callers hold mu.
func (m *SessionMachine) commitProfile(ctx context.Context, next domain.UserProfile) error {
	if err := m.profiles.Save(ctx, &next); err != nil {
		return fmt.Errorf("persisting profile: %w", err)
	}
	m.profile = next
	return nil
}

func (m *SessionMachine) requirePhase(want domain.Phase) error {
	if m.phase != want {
		return fmt.Errorf("%w: in %s, want %s", ErrInvalidPhase, m.phase, want)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
