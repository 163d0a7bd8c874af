package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/lumina/internal/cli/formatter"
	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/service"
	"github.com/alexanderramin/lumina/internal/validate"
)

// prefetchExitWait bounds how long quitting waits for a running prefetch.
const prefetchExitWait = 2 * time.Minute

var preparingMessages = []string{
	"Scoring your answers...",
	"Adapting tomorrow's module...",
	"Finalizing neural pathways...",
}

// session drives one interactive run of the state machine.
type session struct {
	machine  *service.SessionMachine
	prompter Prompter
	out      io.Writer
	logger   *slog.Logger
	// spin starts a progress indicator and returns its stop function.
	spin func(messages ...string) func()
}

func newSession(app *App, out io.Writer) *session {
	s := &session{
		machine:  app.Machine,
		prompter: app.Prompter,
		out:      out,
		logger:   app.Logger,
		spin:     func(...string) func() { return func() {} },
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if app.IsInteractive {
		s.spin = func(messages ...string) func() {
			return formatter.StartSpinner(out, messages...)
		}
	}
	return s
}

// run loops over the phases until the learner quits. A prefetch still in
// flight is given time to land before returning.
func (s *session) run(ctx context.Context) (err error) {
	defer func() {
		if waitErr := s.awaitPrefetch(ctx, prefetchExitWait); waitErr != nil {
			s.logger.Warn("prefetch abandoned on exit", "error", waitErr)
		}
	}()

	if err := s.machine.Load(ctx); err != nil {
		return err
	}
	for {
		var done bool
		switch phase := s.machine.Phase(); phase {
		case domain.PhaseLogin:
			done, err = s.login(ctx)
		case domain.PhaseOnboarding:
			done, err = s.onboarding(ctx)
		case domain.PhaseCurriculumReveal:
			done, err = s.reveal(ctx)
		case domain.PhaseDailyLoop:
			done, err = s.daily(ctx)
		default:
			return fmt.Errorf("unknown phase %q", phase)
		}
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil || done {
			return err
		}
	}
}

func (s *session) awaitPrefetch(ctx context.Context, limit time.Duration) error {
	if !s.machine.PrefetchInFlight() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), limit)
	defer cancel()
	stop := s.spin(preparingMessages...)
	defer stop()
	return s.machine.WaitForPrefetch(ctx)
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) login(ctx context.Context) (bool, error) {
	if view, ok := s.machine.ResumeView(); ok {
		return s.resume(ctx, view)
	}

	for {
		in, err := s.prompter.Login(ctx)
		if err != nil {
			return false, err
		}
		err = s.machine.SubmitLogin(ctx, in)
		if errors.Is(err, validate.ErrValidation) {
			s.printf("%s\n", formatter.StyleRed.Render(err.Error()))
			continue
		}
		return false, err
	}
}

func (s *session) resume(ctx context.Context, view service.ResumeView) (bool, error) {
	s.printf("%s\n", formatter.FormatResume(view))

	choice, err := s.prompter.ResumeMenu(ctx, view)
	if err != nil {
		return false, err
	}
	switch choice {
	case ResumeContinue:
		return false, s.machine.Resume(ctx)
	case ResumePrepare:
		stop := s.spin(formatter.GenerationMessages...)
		module, err := s.machine.PrepareUpcoming(ctx)
		stop()
		if err != nil {
			return false, err
		}
		if module.Unavailable {
			s.printf("%s\n", formatter.StyleYellow.Render(
				fmt.Sprintf("Day %d could not be prepared right now. Try again shortly.", module.Day)))
		}
		return false, nil
	case ResumeReset:
		ok, err := s.prompter.Confirm(ctx, "Erase your profile and curriculum?")
		if err != nil || !ok {
			return false, err
		}
		return false, s.machine.Logout(ctx)
	default:
		return true, nil
	}
}

func (s *session) onboarding(ctx context.Context) (bool, error) {
	for _, step := range domain.Questionnaire {
		for {
			value, freeText, err := s.prompter.OnboardingStep(ctx, step)
			if err != nil {
				return false, err
			}
			err = s.machine.SelectOnboardingOption(ctx, step.ID, value, freeText)
			if errors.Is(err, validate.ErrValidation) {
				s.printf("%s\n", formatter.StyleRed.Render(err.Error()))
				continue
			}
			if err != nil {
				return false, err
			}
			break
		}
	}

	stop := s.spin(
		"Analyzing your answers...",
		"Designing your curriculum...",
		"Finalizing neural pathways...",
	)
	result, err := s.machine.CompleteOnboarding(ctx)
	stop()
	if err != nil {
		return false, err
	}
	s.printf("%s\n", formatter.FormatPersona(*result))
	return false, nil
}

func (s *session) reveal(ctx context.Context) (bool, error) {
	s.printf("%s\n", formatter.FormatCurriculum(s.machine.Curriculum(), s.machine.Profile().CurrentDay))

	start, err := s.prompter.Confirm(ctx, "Begin your journey?")
	if err != nil {
		return false, err
	}
	if !start {
		return true, nil
	}
	return false, s.machine.StartJourney(ctx)
}

func (s *session) loadModule(ctx context.Context, force bool) (*service.DailyModule, error) {
	stop := s.spin(formatter.GenerationMessages...)
	defer stop()
	return s.machine.LoadDailyContent(ctx, force)
}

func (s *session) daily(ctx context.Context) (bool, error) {
	module, err := s.loadModule(ctx, false)
	if err != nil {
		return false, err
	}

	for {
		action, err := s.prompter.ReadLesson(ctx, module)
		if err != nil {
			return false, err
		}
		switch action {
		case LessonRegenerate:
			if module, err = s.loadModule(ctx, true); err != nil {
				return false, err
			}
			continue
		case LessonQuit:
			return true, nil
		}
		if module.Unavailable {
			continue
		}
		break
	}

	quiz := module.Content.Quiz
	for i, item := range quiz {
		for {
			option, err := s.prompter.QuizQuestion(ctx, i, len(quiz), item)
			if err != nil {
				return false, err
			}
			err = s.machine.SubmitQuizAnswer(ctx, i, option)
			if errors.Is(err, validate.ErrValidation) {
				continue
			}
			if err != nil {
				return false, err
			}
			break
		}
	}

	result, err := s.machine.SubmitQuiz(ctx)
	if err != nil {
		return false, err
	}
	s.printf("%s\n", formatter.FormatQuizReview(quiz, result))

	if err := s.machine.CompleteSession(ctx, result.Score); err != nil {
		return false, err
	}
	if err := s.awaitPrefetch(ctx, prefetchExitWait); err != nil {
		s.logger.Warn("prefetch still running", "error", err)
	}
	s.printf("%s\n", formatter.StyleGreen.Render(fmt.Sprintf("Day %d complete.", module.Day)))
	return false, nil
}
