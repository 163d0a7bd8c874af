package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/lumina/internal/domain"
)

const resumeFallbackTopic = "Fundamentals"

const (
	StatusOnline   = "Online"
	StatusAdapting = "Adapting"
)

// ResumeView is the greeting shown to a returning learner on LOGIN.
type ResumeView struct {
	FirstName string
	Day       int
	Topic     string
	Ready     bool
	Status    string
}

// Label renders "Day N: topic".
func (v ResumeView) Label() string {
	return fmt.Sprintf("Day %d: %s", v.Day, v.Topic)
}

// ProfileView summarizes progress for the status screen.
type ProfileView struct {
	Profile         domain.UserProfile
	TrackName       string
	ProgressPercent float64
	Upcoming        []domain.CurriculumDay
}

// DayLabel renders "Day N of M".
func (v ProfileView) DayLabel() string {
	return fmt.Sprintf("Day %d of %d", v.Profile.CurrentDay, v.Profile.TotalDays)
}

// ResumeView describes the upcoming day. ok is false when the learner is not
// returning and the login form should be shown.
func (m *SessionMachine) ResumeView() (view ResumeView, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != domain.PhaseLogin || !m.profile.HasResumeView() {
		return ResumeView{}, false
	}
	day := m.profile.UpcomingDay()
	topic := resumeFallbackTopic
	if m.curriculum != nil {
		if t, found := m.curriculum.TopicFor(day); found {
			topic = t
		}
	}
	view = ResumeView{
		FirstName: m.profile.FirstName(),
		Day:       day,
		Topic:     topic,
		Ready:     m.profile.BufferReady(),
		Status:    StatusAdapting,
	}
	if view.Ready {
		view.Status = StatusOnline
	}
	return view, true
}

// ProfileView returns the learner's progress and the schedule from the
// current day onward.
func (m *SessionMachine) ProfileView() ProfileView {
	m.mu.Lock()
	defer m.mu.Unlock()
	view := ProfileView{
		Profile:         m.profile.Clone(),
		ProgressPercent: m.profile.ProgressPercent(),
	}
	if m.curriculum != nil {
		view.TrackName = m.curriculum.TrackName
		view.Upcoming = m.curriculum.Upcoming(m.profile.CurrentDay)
	}
	return view
}

// Resume enters the daily loop from the resume view. The buffer must hold
// the upcoming day.
func (m *SessionMachine) Resume(ctx context.Context) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	span := startIntent(m.observer, "resume", string(m.phase))
	defer func() { span.finish(ctx, err) }()

	if err := m.requirePhase(domain.PhaseLogin); err != nil {
		return err
	}
	if !m.profile.HasResumeView() {
		return fmt.Errorf("%w: no returning learner", ErrInvalidPhase)
	}
	if !m.profile.BufferReady() {
		return ErrResumeNotReady
	}

	// A learner who onboarded but never started sits on day 0.
	if m.profile.CurrentDay < 1 {
		next := m.profile.Clone()
		next.CurrentDay = 1
		if err := m.commitProfile(ctx, next); err != nil {
			return err
		}
	}
	span.set("day", m.profile.CurrentDay)
	m.clearDaily()
	m.phase = domain.PhaseDailyLoop
	return nil
}

// PrepareUpcoming fills the buffer for the upcoming day through the normal
// resolution order so that Resume can proceed. It is a no-op when the buffer
// is already ready. The returned module reports whether content was found.
func (m *SessionMachine) PrepareUpcoming(ctx context.Context) (module *DailyModule, err error) {
	m.mu.Lock()
	span := startIntent(m.observer, "prepare-upcoming", string(m.phase))
	defer func() { span.finish(ctx, err) }()

	if err := m.requirePhase(domain.PhaseLogin); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if !m.profile.HasResumeView() {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: no returning learner", ErrInvalidPhase)
	}
	profile := m.profile.Clone()
	curriculum := m.curriculum
	epoch := m.resetEpoch
	m.mu.Unlock()

	if profile.BufferReady() {
		buf := profile.ContentBuffer
		span.set("source", string(SourceBuffer))
		return &DailyModule{Day: buf.Day, Topic: buf.Topic, Content: buf.Data, Source: SourceBuffer}, nil
	}

	resolved, err := m.resolveContent(ctx, profile, curriculum, false)
	if err != nil {
		return nil, err
	}
	span.set("day", resolved.Day)
	span.set("source", string(resolved.Source))
	span.set("unavailable", resolved.Unavailable)
	if resolved.Unavailable {
		return &resolved, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.resetEpoch {
		return nil, fmt.Errorf("%w: learner reset while preparing", ErrInvalidPhase)
	}
	if m.profile.BufferReady() {
		return &resolved, nil
	}
	next := m.profile.Clone()
	next.ContentBuffer = &domain.ContentBuffer{
		Day:   resolved.Day,
		Topic: resolved.Topic,
		Data:  resolved.Content.Clone(),
	}
	if err := m.commitProfile(ctx, next); err != nil {
		return nil, err
	}
	return &resolved, nil
}
