package service

import "errors"

var (
	// ErrInvalidPhase is returned when an intent is not accepted in the
	// machine's current phase.
	ErrInvalidPhase = errors.New("intent not allowed in current phase")

	// ErrOnboardingIncomplete is returned by CompleteOnboarding while
	// questionnaire steps are unanswered.
	ErrOnboardingIncomplete = errors.New("onboarding questionnaire incomplete")

	// ErrQuizIncomplete is returned by SubmitQuiz while questions are unanswered.
	ErrQuizIncomplete = errors.New("quiz has unanswered questions")

	// ErrNoContent is returned by quiz intents before a module is loaded.
	ErrNoContent = errors.New("no daily content loaded")

	// ErrResumeNotReady is returned by Resume when the buffer does not hold
	// the upcoming day.
	ErrResumeNotReady = errors.New("upcoming day is not buffered")

	// ErrNoCurriculum is returned by StartJourney without a day-one entry.
	ErrNoCurriculum = errors.New("no curriculum with a first day")
)
