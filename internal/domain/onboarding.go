package domain

import (
	"fmt"
	"strings"
)

const (
	StepRole      = "role"
	StepObjective = "objective"
	StepExpertise = "expertise"
	StepTime      = "time"

	DefaultObjective = "General Growth"
)

// OnboardingStep is one question of the calibration questionnaire.
type OnboardingStep struct {
	ID       string
	Question string
	Insight  string
	Options  []string
}

// Questionnaire is the ordered list of onboarding steps.
var Questionnaire = []OnboardingStep{
	{
		ID:       StepRole,
		Question: "What is your primary focus?",
		Insight:  "Your role defines the architectural complexity of the models.",
		Options: []string{
			"Business Strategy & Ops",
			"Product Management",
			"Engineering / Dev",
			"Executive Leadership",
			"System Architecture",
			"HR / People Ops",
		},
	},
	{
		ID:       StepObjective,
		Question: "Primary Goal?",
		Insight:  "Lumina filters noise to focus on impact.",
		Options: []string{
			"Boost Personal Productivity",
			"Build AI-Powered Products",
			"Strategic Decision Making",
			"Deep Technical Mastery",
		},
	},
	{
		ID:       StepExpertise,
		Question: "GenAI Familiarity?",
		Insight:  "Calibrating technical depth...",
		Options: []string{
			"Beginner (What is GenAI?)",
			"Intermediate (I use ChatGPT)",
			"Advanced (I build models)",
		},
	},
	{
		ID:       StepTime,
		Question: "Daily Availability?",
		Insight:  "Consistency matters more than intensity.",
		Options: []string{
			"5-10 mins (Micro-learning)",
			"15-20 mins (Standard)",
			"30+ mins (Deep Dive)",
		},
	},
}

// FindStep returns the questionnaire step with id.
func FindStep(id string) (OnboardingStep, bool) {
	for _, s := range Questionnaire {
		if s.ID == id {
			return s, true
		}
	}
	return OnboardingStep{}, false
}

// HasOption reports whether value is one of the step's options.
func (s OnboardingStep) HasOption(value string) bool {
	for _, o := range s.Options {
		if o == value {
			return true
		}
	}
	return false
}

// OnboardingAnswers accumulates questionnaire picks.
type OnboardingAnswers struct {
	Picks         map[string]string
	CustomContext string
}

// Record stores a pick for stepID. Non-blank free text is appended to the
// custom context tagged with the step id.
func (a *OnboardingAnswers) Record(stepID, value, freeText string) {
	if a.Picks == nil {
		a.Picks = make(map[string]string, len(Questionnaire))
	}
	a.Picks[stepID] = value
	if text := strings.TrimSpace(freeText); text != "" {
		a.CustomContext += fmt.Sprintf(" [%s: %s]", stepID, text)
	}
}

// Missing returns the ids of steps that have not been answered, in order.
func (a OnboardingAnswers) Missing() []string {
	var out []string
	for _, s := range Questionnaire {
		if a.Picks[s.ID] == "" {
			out = append(out, s.ID)
		}
	}
	return out
}

// Objective returns the chosen objective or DefaultObjective.
func (a OnboardingAnswers) Objective() string {
	return CoalesceStr(a.Picks[StepObjective], DefaultObjective)
}

// OnboardingResult carries the fields merged into the profile when
// onboarding completes.
type OnboardingResult struct {
	Role               Role
	ExpertiseLevel     int
	DailyCommitment    string
	PersonaName        string
	PersonaDescription string
	Objective          string
}
