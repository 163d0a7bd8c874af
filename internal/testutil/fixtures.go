package testutil

import (
	"fmt"

	"github.com/alexanderramin/lumina/internal/domain"
)

// ProfileOption customizes a test profile.
type ProfileOption func(*domain.UserProfile)

func WithDay(day int) ProfileOption {
	return func(p *domain.UserProfile) { p.CurrentDay = day }
}

func WithExpertise(level int) ProfileOption {
	return func(p *domain.UserProfile) { p.ExpertiseLevel = level }
}

func WithRole(role domain.Role) ProfileOption {
	return func(p *domain.UserProfile) { p.Role = role }
}

func WithObjective(objective string) ProfileOption {
	return func(p *domain.UserProfile) { p.Objective = objective }
}

func WithLastScore(score float64) ProfileOption {
	return func(p *domain.UserProfile) { p.LastQuizScore = score }
}

func WithBuffer(day int, topic string, data domain.DailyContent) ProfileOption {
	return func(p *domain.UserProfile) {
		p.ContentBuffer = &domain.ContentBuffer{Day: day, Topic: topic, Data: data}
	}
}

func Returning() ProfileOption {
	return func(p *domain.UserProfile) { p.IsReturningUser = true }
}

// NewTestProfile returns an onboarded developer on day 0.
func NewTestProfile(opts ...ProfileOption) *domain.UserProfile {
	p := domain.DefaultProfile()
	p.Name = "Ada Lovelace"
	p.Email = "ada@example.com"
	p.Role = domain.RoleDeveloper
	p.Objective = "Build AI Agents"
	p.PersonaName = "The Pragmatic Builder"
	p.PersonaDescription = "Learns by shipping."
	p.ExpertiseLevel = 3
	for _, opt := range opts {
		opt(&p)
	}
	return &p
}

// NewTestCurriculum returns a curriculum with topics "Topic 1".."Topic n".
func NewTestCurriculum(days int) *domain.Curriculum {
	c := &domain.Curriculum{
		TrackName:   "Builder Track",
		Description: "Ship agents end to end.",
	}
	for d := 1; d <= days; d++ {
		c.Schedule = append(c.Schedule, domain.CurriculumDay{
			Day:   d,
			Title: fmt.Sprintf("Day %d", d),
			Topic: fmt.Sprintf("Topic %d", d),
		})
	}
	return c
}

// NewTestContent returns a valid module with the given title and three quiz
// items whose correct answer is always option 0.
func NewTestContent(title string) domain.DailyContent {
	quiz := make([]domain.QuizItem, 3)
	for i := range quiz {
		quiz[i] = domain.QuizItem{
			Question:     fmt.Sprintf("%s question %d", title, i+1),
			Options:      []string{"right", "wrong", "also wrong"},
			CorrectIndex: 0,
		}
	}
	return domain.DailyContent{
		DayTitle:      title,
		VisualConcept: "pipeline",
		Sections: []domain.ContentSection{
			{Header: "Overview", Body: title + " overview."},
		},
		Quiz:    quiz,
		Summary: title + " summary.",
	}
}
