package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/lumina/internal/cli/formatter"
	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/service"
	"github.com/alexanderramin/lumina/internal/validate"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// luminaHuhTheme returns a huh theme matching the formatter palette.
func luminaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorPurple).Italic(true)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// huhPrompter is the terminal Prompter.
type huhPrompter struct {
	validator *validate.Validator
}

// NewTerminalPrompter returns the Prompter used on an interactive terminal.
func NewTerminalPrompter() Prompter {
	return &huhPrompter{validator: validate.New()}
}

func runForm(ctx context.Context, groups ...*huh.Group) error {
	form := huh.NewForm(groups...).WithTheme(luminaHuhTheme()).WithShowHelp(false)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrQuit
		}
		return err
	}
	return nil
}

// loginFieldCheck validates the whole form and reports only field's failure,
// so each input shows its own message inline.
func (p *huhPrompter) loginFieldCheck(in *validate.LoginInput, field string) func(string) error {
	return func(string) error {
		err := p.validator.Login(*in)
		var verr *validate.Error
		if !errors.As(err, &verr) {
			return err
		}
		if fe, ok := verr.Field(field); ok {
			return errors.New(fe.Message)
		}
		return nil
	}
}

func (p *huhPrompter) Login(ctx context.Context) (validate.LoginInput, error) {
	var in validate.LoginInput
	err := runForm(ctx, huh.NewGroup(
		huh.NewNote().
			Title("LUMINA").
			Description("Adaptive AI learning, one day at a time."),
		huh.NewInput().
			Title("Full name").
			Value(&in.Name).
			Validate(p.loginFieldCheck(&in, "Name")),
		huh.NewInput().
			Title("Work email").
			Placeholder("you@company.com").
			Value(&in.Email).
			Validate(p.loginFieldCheck(&in, "Email")),
		huh.NewInput().
			Title("Passphrase").
			EchoMode(huh.EchoModePassword).
			Value(&in.Passphrase).
			Validate(p.loginFieldCheck(&in, "Passphrase")),
	))
	return in, err
}

func (p *huhPrompter) ResumeMenu(ctx context.Context, view service.ResumeView) (ResumeChoice, error) {
	var options []huh.Option[ResumeChoice]
	if view.Ready {
		options = append(options, huh.NewOption("Resume "+view.Label(), ResumeContinue))
	} else {
		options = append(options, huh.NewOption(fmt.Sprintf("Prepare Day %d", view.Day), ResumePrepare))
	}
	options = append(options,
		huh.NewOption("Start over (reset profile)", ResumeReset),
		huh.NewOption("Quit", ResumeQuit),
	)

	choice := options[0].Value
	err := runForm(ctx, huh.NewGroup(
		huh.NewSelect[ResumeChoice]().
			Title("What next?").
			Options(options...).
			Value(&choice),
	))
	return choice, err
}

func (p *huhPrompter) OnboardingStep(ctx context.Context, step domain.OnboardingStep) (string, string, error) {
	var value, freeText string
	err := runForm(ctx, huh.NewGroup(
		huh.NewSelect[string]().
			Title(step.Question).
			Description(step.Insight).
			Options(huh.NewOptions(step.Options...)...).
			Value(&value),
		huh.NewInput().
			Title("Anything to add? (optional)").
			Value(&freeText),
	))
	return value, strings.TrimSpace(freeText), err
}

func (p *huhPrompter) Confirm(ctx context.Context, title string) (bool, error) {
	ok := true
	err := runForm(ctx, huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	return ok, err
}

func (p *huhPrompter) QuizQuestion(ctx context.Context, index, total int, item domain.QuizItem) (int, error) {
	options := make([]huh.Option[int], len(item.Options))
	for i, o := range item.Options {
		options[i] = huh.NewOption(o, i)
	}
	choice := 0
	err := runForm(ctx, huh.NewGroup(
		huh.NewSelect[int]().
			Title(item.Question).
			Description(fmt.Sprintf("Question %d of %d", index+1, total)).
			Options(options...).
			Value(&choice),
	))
	return choice, err
}

func (p *huhPrompter) ReadLesson(ctx context.Context, module *service.DailyModule) (LessonAction, error) {
	return runLessonReader(ctx, module)
}
