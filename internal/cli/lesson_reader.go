package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/lumina/internal/cli/formatter"
	"github.com/alexanderramin/lumina/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const readerFooterHeight = 2

type lessonKeys struct {
	Quiz       key.Binding
	Regenerate key.Binding
	Quit       key.Binding
}

func defaultLessonKeys() lessonKeys {
	return lessonKeys{
		Quiz:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "take quiz")),
		Regenerate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "regenerate")),
		Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// lessonReader is a scrollable full-screen view of one day's module.
type lessonReader struct {
	module  *service.DailyModule
	content string
	keys    lessonKeys
	vp      viewport.Model
	ready   bool
	action  LessonAction
	notice  string
}

func newLessonReader(module *service.DailyModule) *lessonReader {
	return &lessonReader{
		module:  module,
		content: formatter.FormatLesson(module),
		keys:    defaultLessonKeys(),
		action:  LessonQuit,
	}
}

func (r *lessonReader) quizAvailable() bool {
	return !r.module.Unavailable && len(r.module.Content.Quiz) > 0
}

func (r *lessonReader) Init() tea.Cmd { return nil }

func (r *lessonReader) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-readerFooterHeight, 1)
		if !r.ready {
			r.vp = viewport.New(msg.Width, height)
			r.vp.SetContent(r.content)
			r.ready = true
		} else {
			r.vp.Width = msg.Width
			r.vp.Height = height
		}
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, r.keys.Quiz):
			if !r.quizAvailable() {
				r.notice = "No quiz for this module. Press r to regenerate."
				return r, nil
			}
			r.action = LessonQuiz
			return r, tea.Quit
		case key.Matches(msg, r.keys.Regenerate):
			r.action = LessonRegenerate
			return r, tea.Quit
		case key.Matches(msg, r.keys.Quit):
			r.action = LessonQuit
			return r, tea.Quit
		}
	}

	if !r.ready {
		return r, nil
	}
	var cmd tea.Cmd
	r.vp, cmd = r.vp.Update(msg)
	return r, cmd
}

func (r *lessonReader) View() string {
	if !r.ready {
		return formatter.Dim("Loading lesson...")
	}
	var b strings.Builder
	b.WriteString(r.vp.View())
	b.WriteString("\n")

	hints := []string{scrollIndicator(r.vp)}
	for _, k := range []key.Binding{r.keys.Quiz, r.keys.Regenerate, r.keys.Quit} {
		h := k.Help()
		hints = append(hints, formatter.Dim(h.Key+": "+h.Desc))
	}
	if r.notice != "" {
		hints = append(hints, formatter.StyleYellow.Render(r.notice))
	}
	b.WriteString(strings.Join(hints, "  "))
	return b.String()
}

// scrollIndicator returns a dim scroll position string for the footer.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}

// runLessonReader shows module full-screen until the learner picks an action.
func runLessonReader(ctx context.Context, module *service.DailyModule) (LessonAction, error) {
	p := tea.NewProgram(newLessonReader(module), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return LessonQuit, err
	}
	return final.(*lessonReader).action, nil
}
