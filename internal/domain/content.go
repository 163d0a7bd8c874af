package domain

import (
	"errors"
	"fmt"
	"strings"
)

// UnavailableMarker is the title fragment that identifies failed generation.
const UnavailableMarker = "Unavailable"

type VisualStepType string

const (
	StepInput    VisualStepType = "input"
	StepProcess  VisualStepType = "process"
	StepDecision VisualStepType = "decision"
	StepOutput   VisualStepType = "output"
	StepStorage  VisualStepType = "storage"
)

// ValidVisualStepTypes is the accepted set of visual step types.
var ValidVisualStepTypes = map[VisualStepType]bool{
	StepInput: true, StepProcess: true, StepDecision: true, StepOutput: true, StepStorage: true,
}

type ContentSection struct {
	Header string `json:"header" yaml:"header"`
	Body   string `json:"body" yaml:"body"`
}

type VisualStep struct {
	ID       string         `json:"id" yaml:"id"`
	Label    string         `json:"label" yaml:"label"`
	SubLabel string         `json:"subLabel,omitempty" yaml:"subLabel,omitempty"`
	Type     VisualStepType `json:"type" yaml:"type"`
}

type DeepDive struct {
	Title       string       `json:"title" yaml:"title"`
	Explanation string       `json:"explanation" yaml:"explanation"`
	VisualSteps []VisualStep `json:"visualSteps" yaml:"visualSteps"`
}

type PracticalTask struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	ActionItems []string `json:"actionItems" yaml:"actionItems"`
}

type QuizItem struct {
	Question     string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correctIndex" yaml:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// DailyContent is the material for one day of the track.
type DailyContent struct {
	DayTitle      string           `json:"dayTitle" yaml:"dayTitle"`
	VisualConcept string           `json:"visualConcept" yaml:"visualConcept"`
	Sections      []ContentSection `json:"sections" yaml:"sections"`
	DeepDive      *DeepDive        `json:"deepDive,omitempty" yaml:"deepDive,omitempty"`
	PracticalTask *PracticalTask   `json:"practicalTask,omitempty" yaml:"practicalTask,omitempty"`
	Quiz          []QuizItem       `json:"quiz" yaml:"quiz"`
	Summary       string           `json:"summary" yaml:"summary"`
}

// UnavailableContent returns the well-known value that stands in for a
// generation failure. It must never be cached.
func UnavailableContent() DailyContent {
	return DailyContent{
		DayTitle:      "Module " + UnavailableMarker,
		VisualConcept: "System Maintenance",
		Sections:      []ContentSection{},
		DeepDive: &DeepDive{
			Title:       "Error",
			Explanation: "Retry later.",
			VisualSteps: []VisualStep{},
		},
		PracticalTask: &PracticalTask{
			Title:       "System Check",
			Description: "Please refresh.",
			ActionItems: []string{},
		},
		Quiz:    []QuizItem{},
		Summary: UnavailableMarker,
	}
}

// IsUnavailable reports whether c is the generation-failure sentinel.
func (c DailyContent) IsUnavailable() bool {
	return strings.Contains(c.DayTitle, UnavailableMarker)
}

// Validate checks the structural shape required before content is shown.
func (c DailyContent) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DayTitle) == "" {
		errs = append(errs, errors.New("dayTitle is required"))
	}
	if len(c.Sections) == 0 {
		errs = append(errs, errors.New("at least one section is required"))
	}
	for i, s := range c.Sections {
		if strings.TrimSpace(s.Body) == "" {
			errs = append(errs, fmt.Errorf("sections[%d]: body is required", i))
		}
	}
	if c.DeepDive != nil {
		for i, step := range c.DeepDive.VisualSteps {
			if !ValidVisualStepTypes[step.Type] {
				errs = append(errs, fmt.Errorf("deepDive.visualSteps[%d]: unknown type %q", i, step.Type))
			}
		}
	}
	for i, q := range c.Quiz {
		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, fmt.Errorf("quiz[%d]: question is required", i))
		}
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Errorf("quiz[%d]: at least 2 options required", i))
			continue
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			errs = append(errs, fmt.Errorf("quiz[%d]: correctIndex %d out of range", i, q.CorrectIndex))
		}
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy of c.
func (c DailyContent) Clone() DailyContent {
	out := c
	out.Sections = append([]ContentSection(nil), c.Sections...)
	if c.DeepDive != nil {
		dd := *c.DeepDive
		dd.VisualSteps = append([]VisualStep(nil), c.DeepDive.VisualSteps...)
		out.DeepDive = &dd
	}
	if c.PracticalTask != nil {
		pt := *c.PracticalTask
		pt.ActionItems = append([]string(nil), c.PracticalTask.ActionItems...)
		out.PracticalTask = &pt
	}
	if c.Quiz != nil {
		out.Quiz = make([]QuizItem, len(c.Quiz))
		for i, q := range c.Quiz {
			q.Options = append([]string(nil), q.Options...)
			out.Quiz[i] = q
		}
	}
	return out
}

// ContentBuffer is the single prefetch slot holding the next day's content.
type ContentBuffer struct {
	Day   int          `json:"day"`
	Topic string       `json:"topic"`
	Data  DailyContent `json:"data"`
}

// Matches reports whether the buffer is valid for day and topic.
func (b *ContentBuffer) Matches(day int, topic string) bool {
	return b != nil && b.Day == day && b.Topic == topic
}

// CacheKey identifies a durable content cache entry.
type CacheKey struct {
	Role      Role
	Objective string
	Day       int
	Topic     string
}

func (k CacheKey) String() string {
	return fmt.Sprintf("content:%s:%s:day:%d:%s", k.Role, k.Objective, k.Day, k.Topic)
}
