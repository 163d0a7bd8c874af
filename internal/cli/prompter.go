package cli

import (
	"context"
	"errors"

	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/service"
	"github.com/alexanderramin/lumina/internal/validate"
)

// ErrQuit is returned by a Prompter when the learner leaves the session.
var ErrQuit = errors.New("quit")

// ResumeChoice is picked from the menu shown to a returning learner.
type ResumeChoice int

const (
	ResumeContinue ResumeChoice = iota
	ResumePrepare
	ResumeReset
	ResumeQuit
)

// LessonAction is how the learner leaves the lesson reader.
type LessonAction int

const (
	LessonQuiz LessonAction = iota
	LessonRegenerate
	LessonQuit
)

// Prompter collects every piece of learner input the interactive session
// needs. The terminal implementation uses huh forms and a bubbletea reader.
type Prompter interface {
	Login(ctx context.Context) (validate.LoginInput, error)
	ResumeMenu(ctx context.Context, view service.ResumeView) (ResumeChoice, error)
	OnboardingStep(ctx context.Context, step domain.OnboardingStep) (value, freeText string, err error)
	Confirm(ctx context.Context, title string) (bool, error)
	QuizQuestion(ctx context.Context, index, total int, item domain.QuizItem) (int, error)
	ReadLesson(ctx context.Context, module *service.DailyModule) (LessonAction, error)
}
