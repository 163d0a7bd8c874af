package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/service"
	"github.com/charmbracelet/lipgloss"
)

const lessonWidth = 76

var stepIcons = map[domain.VisualStepType]string{
	domain.StepInput:    "▶",
	domain.StepProcess:  "⚙",
	domain.StepDecision: "◆",
	domain.StepOutput:   "■",
	domain.StepStorage:  "▤",
}

var stepColors = map[domain.VisualStepType]lipgloss.Color{
	domain.StepInput:    ColorBlue,
	domain.StepProcess:  ColorPurple,
	domain.StepDecision: ColorYellow,
	domain.StepOutput:   ColorGreen,
	domain.StepStorage:  ColorDim,
}

var sourceLabels = map[service.ContentSource]string{
	service.SourceStatic:    "curated",
	service.SourceBuffer:    "prepared in advance",
	service.SourceCache:     "from cache",
	service.SourceGenerated: "freshly generated",
}

// FormatLesson renders a day's module for the lesson reader: title and
// visual concept, sections, the deep dive with its flow, the practical task
// and the summary. The quiz is asked separately.
func FormatLesson(module *service.DailyModule) string {
	c := module.Content
	var b strings.Builder

	b.WriteString(StyleHeader.Render(fmt.Sprintf("DAY %d", module.Day)))
	b.WriteString(Dim("  " + module.Topic + " · " + sourceLabels[module.Source]))
	b.WriteString("\n")
	b.WriteString(Bold(c.DayTitle) + "\n")
	if c.VisualConcept != "" {
		b.WriteString(StylePurple.Render(c.VisualConcept) + "\n")
	}

	if module.Unavailable {
		b.WriteString("\n" + StyleRed.Render("This module could not be prepared.") + "\n")
		b.WriteString(Dim("Press r to try again.") + "\n")
		return b.String()
	}

	for _, s := range c.Sections {
		b.WriteString("\n" + Header(s.Header) + "\n")
		b.WriteString(Wrap(Emphasize(s.Body), lessonWidth) + "\n")
	}

	if dd := c.DeepDive; dd != nil {
		b.WriteString("\n" + Header("Deep dive: "+dd.Title) + "\n")
		b.WriteString(Wrap(Emphasize(dd.Explanation), lessonWidth) + "\n")
		if len(dd.VisualSteps) > 0 {
			b.WriteString("\n" + FormatFlow(dd.VisualSteps) + "\n")
		}
	}

	if pt := c.PracticalTask; pt != nil {
		var task strings.Builder
		task.WriteString(Wrap(Emphasize(pt.Description), lessonWidth-8) + "\n")
		for i, item := range pt.ActionItems {
			task.WriteString(fmt.Sprintf("\n%s %s", StyleGreen.Render(fmt.Sprintf("%d.", i+1)), item))
		}
		b.WriteString("\n" + RenderBox(pt.Title, task.String()) + "\n")
	}

	if c.Summary != "" {
		b.WriteString("\n" + Header("Summary") + "\n")
		b.WriteString(Wrap(Emphasize(c.Summary), lessonWidth) + "\n")
	}
	if n := len(c.Quiz); n > 0 {
		b.WriteString("\n" + Dim(fmt.Sprintf("%d quiz questions follow.", n)) + "\n")
	}
	return b.String()
}

// FormatFlow draws visual steps top to bottom, joined by arrows.
func FormatFlow(steps []domain.VisualStep) string {
	blocks := make([]string, 0, len(steps)*2)
	for i, step := range steps {
		if i > 0 {
			blocks = append(blocks, Dim("│\n▼"))
		}
		blocks = append(blocks, renderStep(step))
	}
	return lipgloss.JoinVertical(lipgloss.Center, blocks...)
}

func renderStep(step domain.VisualStep) string {
	color, ok := stepColors[step.Type]
	if !ok {
		color = ColorFg
	}
	label := stepIcons[step.Type] + " " + step.Label
	if step.SubLabel != "" {
		label += "\n" + Dim(step.SubLabel)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2).
		Align(lipgloss.Center).
		Render(label)
}

// FormatQuizReview lists every question with the learner's answer, the
// correct answer when they differ, and the explanation.
func FormatQuizReview(quiz []domain.QuizItem, result *service.QuizResult) string {
	var b strings.Builder
	score := ScoreStyle(result.Score).Render(fmt.Sprintf("%.0f%%", result.Score))
	b.WriteString(fmt.Sprintf("%s  %s\n", score, Dim(fmt.Sprintf("%d of %d correct", result.Correct, result.Total))))

	for i, q := range quiz {
		chosen, answered := result.Answers[i]
		correct := answered && chosen == q.CorrectIndex

		mark := StyleRed.Render("✗")
		if correct {
			mark = StyleGreen.Render("✓")
		}
		b.WriteString(fmt.Sprintf("\n%s %s\n", mark, Bold(q.Question)))
		if answered && chosen >= 0 && chosen < len(q.Options) {
			b.WriteString("  " + Dim("your answer: ") + q.Options[chosen] + "\n")
		}
		if !correct && q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
			b.WriteString("  " + Dim("correct: ") + StyleGreen.Render(q.Options[q.CorrectIndex]) + "\n")
		}
		if q.Explanation != "" {
			b.WriteString("  " + Dim(Wrap(q.Explanation, lessonWidth-2)) + "\n")
		}
	}

	b.WriteString("\n" + Dim(adaptiveHint(result.Score)) + "\n")
	return RenderBox("Quiz results", b.String())
}

func adaptiveHint(score float64) string {
	switch {
	case score >= domain.PromoteThreshold:
		return "Tomorrow's module steps up a level."
	case score <= domain.DemoteThreshold:
		return "Tomorrow's module eases off a level."
	default:
		return "Tomorrow's module stays at this level."
	}
}
