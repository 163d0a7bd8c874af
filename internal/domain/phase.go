package domain

// Phase is a state of the learning session.
type Phase string

const (
	PhaseLogin            Phase = "LOGIN"
	PhaseOnboarding       Phase = "ONBOARDING"
	PhaseCurriculumReveal Phase = "CURRICULUM_REVEAL"
	PhaseDailyLoop        Phase = "DAILY_LOOP"
)
