package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/lumina/internal/db"
	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/intelligence"
	"github.com/alexanderramin/lumina/internal/repository"
	"github.com/alexanderramin/lumina/internal/validate"
)

// SubmitLogin records the learner's identity and starts onboarding. A
// returning learner stays on LOGIN, where the resume view is shown instead.
func (m *SessionMachine) SubmitLogin(ctx context.Context, in validate.LoginInput) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	span := startIntent(m.observer, "submit-login", string(m.phase))
	defer func() { span.finish(ctx, err) }()

	if err := m.requirePhase(domain.PhaseLogin); err != nil {
		return err
	}
	if m.profile.HasResumeView() {
		span.set("resume_view", true)
		return nil
	}
	if err := m.validator.Login(in); err != nil {
		return err
	}

	// Identity stays in memory until FinishOnboarding persists the whole
	// profile; a learner who quits mid-questionnaire starts over.
	m.profile.Name = strings.TrimSpace(in.Name)
	m.profile.Email = strings.TrimSpace(in.Email)
	m.answers = domain.OnboardingAnswers{}
	m.phase = domain.PhaseOnboarding
	return nil
}

// SelectOnboardingOption records one questionnaire answer. freeText, when
// present, is appended to the custom context sent for persona analysis.
func (m *SessionMachine) SelectOnboardingOption(ctx context.Context, stepID, value, freeText string) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	span := startIntent(m.observer, "select-onboarding-option", string(m.phase))
	defer func() { span.finish(ctx, err) }()
	span.set("step", stepID)

	if err := m.requirePhase(domain.PhaseOnboarding); err != nil {
		return err
	}
	if err := m.validator.Pick(validate.OnboardingPick{StepID: stepID, Value: value}); err != nil {
		return err
	}
	m.answers.Record(stepID, value, freeText)
	return nil
}

// CompleteOnboarding runs persona analysis over the recorded answers and
// then FinishOnboarding with the result.
func (m *SessionMachine) CompleteOnboarding(ctx context.Context) (result *domain.OnboardingResult, err error) {
	m.mu.Lock()
	span := startIntent(m.observer, "complete-onboarding", string(m.phase))
	defer func() { span.finish(ctx, err) }()

	if err := m.requirePhase(domain.PhaseOnboarding); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if missing := m.answers.Missing(); len(missing) > 0 {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrOnboardingIncomplete, strings.Join(missing, ", "))
	}
	answers := m.answers
	m.mu.Unlock()

	// The role label is normalized once here; everything downstream sees
	// the canonical enum.
	picked := domain.NormalizeRole(answers.Picks[domain.StepRole])
	in := intelligence.PersonaInput{
		Role:          string(picked),
		Objective:     answers.Picks[domain.StepObjective],
		Expertise:     answers.Picks[domain.StepExpertise],
		Commitment:    answers.Picks[domain.StepTime],
		CustomContext: answers.CustomContext,
	}
	persona := m.content.GeneratePersona(ctx, in)
	span.set("persona", persona.PersonaName)

	res := domain.OnboardingResult{
		Role:               persona.Role,
		ExpertiseLevel:     persona.Expertise,
		DailyCommitment:    domain.CoalesceStr(answers.Picks[domain.StepTime], domain.DefaultDailyCommitment),
		PersonaName:        persona.PersonaName,
		PersonaDescription: persona.PersonaDescription,
		Objective:          answers.Objective(),
	}
	// HR has its own track; persona analysis may not override it.
	if picked == domain.RoleHR {
		res.Role = domain.RoleHR
	}
	if err := m.FinishOnboarding(ctx, res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FinishOnboarding merges the onboarding result into the profile, marks the
// learner as returning, generates the curriculum and persists profile and
// curriculum together. Generation blocks.
func (m *SessionMachine) FinishOnboarding(ctx context.Context, result domain.OnboardingResult) (err error) {
	m.mu.Lock()
	span := startIntent(m.observer, "finish-onboarding", string(m.phase))
	defer func() { span.finish(ctx, err) }()

	if err := m.requirePhase(domain.PhaseOnboarding); err != nil {
		m.mu.Unlock()
		return err
	}
	if err := m.validator.Result(result); err != nil {
		m.mu.Unlock()
		return err
	}
	epoch := m.resetEpoch
	m.mu.Unlock()

	curriculum := m.content.GenerateCurriculum(ctx, result.Role, result.Objective, result.ExpertiseLevel)
	span.set("track", curriculum.TrackName)
	span.set("scheduled_days", len(curriculum.Schedule))

	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.resetEpoch || m.phase != domain.PhaseOnboarding {
		return fmt.Errorf("%w: learner state changed during curriculum generation", ErrInvalidPhase)
	}

	next := m.profile.Clone()
	next.Role = result.Role
	next.ExpertiseLevel = domain.ClampExpertise(result.ExpertiseLevel)
	next.DailyCommitment = result.DailyCommitment
	next.PersonaName = result.PersonaName
	next.PersonaDescription = result.PersonaDescription
	next.Objective = result.Objective
	next.IsReturningUser = true

	err = m.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProfileRepo(tx).Save(ctx, &next); err != nil {
			return err
		}
		return repository.NewSQLiteCurriculumRepo(tx).Save(ctx, &curriculum)
	})
	if err != nil {
		return fmt.Errorf("persisting onboarding: %w", err)
	}

	m.profile = next
	m.curriculum = &curriculum
	m.phase = domain.PhaseCurriculumReveal
	return nil
}

// StartJourney leaves the curriculum reveal for the daily loop, moving the
// learner onto day one if they have not started yet.
func (m *SessionMachine) StartJourney(ctx context.Context) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	span := startIntent(m.observer, "start-journey", string(m.phase))
	defer func() { span.finish(ctx, err) }()

	if err := m.requirePhase(domain.PhaseCurriculumReveal); err != nil {
		return err
	}
	if m.curriculum == nil {
		return ErrNoCurriculum
	}
	if _, ok := m.curriculum.DayEntry(1); !ok {
		return ErrNoCurriculum
	}

	next := m.profile.Clone()
	next.CurrentDay = next.UpcomingDay()
	if err := m.commitProfile(ctx, next); err != nil {
		return err
	}
	m.clearDaily()
	m.phase = domain.PhaseDailyLoop
	span.set("day", m.profile.CurrentDay)
	return nil
}
