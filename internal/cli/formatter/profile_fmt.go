package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/service"
)

const (
	profileProgressBarWidth = 20
	topicColumnWidth        = 40
)

// FormatProfile renders the status screen: identity, persona, expertise,
// progress and the schedule still ahead.
func FormatProfile(view service.ProfileView) string {
	p := view.Profile
	var b strings.Builder

	b.WriteString(Bold(domain.CoalesceStr(p.Name, "Guest")))
	if p.Email != "" {
		b.WriteString(Dim("  " + p.Email))
	}
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-11s", label)), value))
	}
	field("Role", StyleBlue.Render(string(p.Role)))
	if p.PersonaName != "" {
		field("Persona", StylePurple.Render(p.PersonaName))
	}
	field("Objective", domain.CoalesceStr(p.Objective, Dim("--")))
	field("Commitment", p.DailyCommitment)
	field("Expertise", RenderExpertise(p.ExpertiseLevel))
	field("Progress", RenderProgress(view.ProgressPercent/100, profileProgressBarWidth)+"  "+Dim(view.DayLabel()))
	if p.CurrentDay > 1 {
		field("Last quiz", ScoreStyle(p.LastQuizScore).Render(fmt.Sprintf("%.0f%%", p.LastQuizScore)))
	}
	if p.PersonaDescription != "" {
		b.WriteString("\n" + Dim(Wrap(p.PersonaDescription, lessonWidth-8)) + "\n")
	}

	if len(view.Upcoming) > 0 {
		b.WriteString("\n" + Header("Up next") + "\n")
		b.WriteString(scheduleTable(view.Upcoming, p.UpcomingDay()))
	}
	return RenderBox(domain.CoalesceStr(view.TrackName, "Lumina"), b.String())
}

// FormatCurriculum renders the track header and full schedule, marking the
// learner's upcoming day.
func FormatCurriculum(c *domain.Curriculum, currentDay int) string {
	if c == nil {
		return Dim("No curriculum yet. Run lumina to complete onboarding.") + "\n"
	}
	var b strings.Builder
	if c.Description != "" {
		b.WriteString(Wrap(c.Description, lessonWidth-8) + "\n\n")
	}
	upcoming := currentDay
	if upcoming < 1 {
		upcoming = 1
	}
	b.WriteString(scheduleTable(c.Schedule, upcoming))
	return RenderBox(c.TrackName, b.String())
}

func scheduleTable(days []domain.CurriculumDay, highlightDay int) string {
	highlight := -1
	rows := make([][]string, 0, len(days))
	for i, d := range days {
		if d.Day == highlightDay {
			highlight = i
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", d.Day),
			Truncate(d.Title, topicColumnWidth),
			Dim(Truncate(d.Topic, topicColumnWidth)),
		})
	}
	return RenderTable([]string{"DAY", "TITLE", "TOPIC"}, rows, highlight)
}

// FormatResume renders the greeting shown to a returning learner.
func FormatResume(view service.ResumeView) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Welcome back, %s.\n\n", Bold(view.FirstName)))
	b.WriteString(Dim("Next up  ") + StyleFg.Render(view.Label()) + "\n")
	b.WriteString(Dim("System   ") + StatusIndicator(view.Ready, view.Status) + "\n")
	return RenderBox("Lumina", b.String())
}

// FormatPersona renders the onboarding result before the curriculum reveal.
func FormatPersona(result domain.OnboardingResult) string {
	var b strings.Builder
	b.WriteString(StylePurple.Render(result.PersonaName) + "\n")
	if result.PersonaDescription != "" {
		b.WriteString(Wrap(result.PersonaDescription, lessonWidth-8) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-11s", "Role")), StyleBlue.Render(string(result.Role))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-11s", "Expertise")), RenderExpertise(result.ExpertiseLevel)))
	return RenderBox("Your learning persona", b.String())
}
