package domain

const (
	MinExpertise = 1
	MaxExpertise = 10

	DefaultDailyCommitment = "15 mins"
	DefaultTotalDays       = 30
)

// UserProfile holds identity and progress for the single local learner.
type UserProfile struct {
	Name               string         `json:"name"`
	Email              string         `json:"email"`
	Role               Role           `json:"role"`
	Objective          string         `json:"objective"`
	PersonaName        string         `json:"personaName,omitempty"`
	PersonaDescription string         `json:"personaDescription,omitempty"`
	ExpertiseLevel     int            `json:"expertiseLevel"`
	DailyCommitment    string         `json:"dailyCommitment"`
	CurrentDay         int            `json:"currentDay"`
	TotalDays          int            `json:"totalDays"`
	LastQuizScore      float64        `json:"lastQuizScore"`
	IsReturningUser    bool           `json:"isReturningUser"`
	ContentBuffer      *ContentBuffer `json:"contentBuffer,omitempty"`
}

// DefaultProfile returns the profile of a learner who has never logged in.
func DefaultProfile() UserProfile {
	return UserProfile{
		Role:            RoleUnassigned,
		ExpertiseLevel:  MinExpertise,
		DailyCommitment: DefaultDailyCommitment,
		TotalDays:       DefaultTotalDays,
	}
}

// UpcomingDay is the day that should be presented next. Day 0 means the
// journey has not started, so the next day is always at least 1.
func (p UserProfile) UpcomingDay() int {
	if p.CurrentDay > 1 {
		return p.CurrentDay
	}
	return 1
}

// HasResumeView reports whether a login screen should instead greet the
// learner and offer to resume.
func (p UserProfile) HasResumeView() bool {
	return p.IsReturningUser && p.Name != ""
}

// BufferReady reports whether the prefetch slot holds the upcoming day.
func (p UserProfile) BufferReady() bool {
	return p.ContentBuffer != nil && p.ContentBuffer.Day == p.UpcomingDay()
}

// ProgressPercent returns currentDay/totalDays as a percentage.
func (p UserProfile) ProgressPercent() float64 {
	if p.TotalDays <= 0 {
		return 0
	}
	return float64(p.CurrentDay) / float64(p.TotalDays) * 100
}

// FirstName returns the first word of the learner's name.
func (p UserProfile) FirstName() string {
	for i, r := range p.Name {
		if r == ' ' {
			return p.Name[:i]
		}
	}
	return p.Name
}

// Clone returns a deep copy so callers cannot alias the buffer.
func (p UserProfile) Clone() UserProfile {
	out := p
	if p.ContentBuffer != nil {
		buf := *p.ContentBuffer
		buf.Data = p.ContentBuffer.Data.Clone()
		out.ContentBuffer = &buf
	}
	return out
}

// ClampExpertise bounds level to [MinExpertise, MaxExpertise].
func ClampExpertise(level int) int {
	if level < MinExpertise {
		return MinExpertise
	}
	if level > MaxExpertise {
		return MaxExpertise
	}
	return level
}
