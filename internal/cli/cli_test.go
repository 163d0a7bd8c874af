package cli

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/alexanderramin/lumina/internal/db"
	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/intelligence"
	"github.com/alexanderramin/lumina/internal/repository"
	"github.com/alexanderramin/lumina/internal/service"
	"github.com/alexanderramin/lumina/internal/staticcontent"
	"github.com/alexanderramin/lumina/internal/testutil"
	"github.com/alexanderramin/lumina/internal/validate"
	"github.com/stretchr/testify/require"
)

// stubContent is a ContentService with canned results.
type stubContent struct {
	mu         sync.Mutex
	dailyCalls []int
}

func (s *stubContent) GeneratePersona(context.Context, intelligence.PersonaInput) intelligence.Persona {
	return intelligence.Persona{
		Role:               domain.RoleDeveloper,
		PersonaName:        "The Pragmatic Builder",
		Expertise:          4,
		PersonaDescription: "Learns by shipping.",
	}
}

func (s *stubContent) GenerateCurriculum(context.Context, domain.Role, string, int) domain.Curriculum {
	return *testutil.NewTestCurriculum(5)
}

func (s *stubContent) GenerateDailyContent(_ context.Context, profile domain.UserProfile, topic string) domain.DailyContent {
	s.mu.Lock()
	s.dailyCalls = append(s.dailyCalls, profile.CurrentDay)
	n := len(s.dailyCalls)
	s.mu.Unlock()
	return testutil.NewTestContent(fmt.Sprintf("%s v%d", topic, n))
}

func (s *stubContent) calls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.dailyCalls...)
}

// scriptedPrompter replays queued answers. An exhausted queue quits.
type scriptedPrompter struct {
	logins   []validate.LoginInput
	resumes  []ResumeChoice
	confirms []bool
	lessons  []LessonAction
	// answer picks the option for a quiz question; defaults to the correct one.
	answer func(domain.QuizItem) int

	resumeViews []service.ResumeView
	read        []*service.DailyModule
	steps       []string
	loginCalls  int
}

func pop[T any](q *[]T) (T, bool) {
	var zero T
	if len(*q) == 0 {
		return zero, false
	}
	v := (*q)[0]
	*q = (*q)[1:]
	return v, true
}

func (p *scriptedPrompter) Login(context.Context) (validate.LoginInput, error) {
	p.loginCalls++
	in, ok := pop(&p.logins)
	if !ok {
		return in, ErrQuit
	}
	return in, nil
}

func (p *scriptedPrompter) ResumeMenu(_ context.Context, view service.ResumeView) (ResumeChoice, error) {
	p.resumeViews = append(p.resumeViews, view)
	c, ok := pop(&p.resumes)
	if !ok {
		return ResumeQuit, ErrQuit
	}
	return c, nil
}

func (p *scriptedPrompter) OnboardingStep(_ context.Context, step domain.OnboardingStep) (string, string, error) {
	p.steps = append(p.steps, step.ID)
	free := ""
	if step.ID == domain.StepObjective {
		free = "support agents"
	}
	return step.Options[len(step.Options)/2], free, nil
}

func (p *scriptedPrompter) Confirm(context.Context, string) (bool, error) {
	ok, found := pop(&p.confirms)
	if !found {
		return false, ErrQuit
	}
	return ok, nil
}

func (p *scriptedPrompter) QuizQuestion(_ context.Context, _, _ int, item domain.QuizItem) (int, error) {
	if p.answer != nil {
		return p.answer(item), nil
	}
	return item.CorrectIndex, nil
}

func (p *scriptedPrompter) ReadLesson(_ context.Context, module *service.DailyModule) (LessonAction, error) {
	p.read = append(p.read, module)
	a, ok := pop(&p.lessons)
	if !ok {
		return LessonQuit, ErrQuit
	}
	return a, nil
}

type testEnv struct {
	app       *App
	prompter  *scriptedPrompter
	content   *stubContent
	profiles  repository.ProfileRepo
	curricula repository.CurriculumRepo
	out       *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := &testEnv{
		prompter:  &scriptedPrompter{},
		content:   &stubContent{},
		profiles:  repository.NewSQLiteProfileRepo(database),
		curricula: repository.NewSQLiteCurriculumRepo(database),
		out:       &bytes.Buffer{},
	}
	machine := service.NewSessionMachine(
		env.profiles,
		env.curricula,
		repository.NewSQLiteContentCache(database),
		db.NewSQLiteUnitOfWork(database),
		env.content,
		staticcontent.MustLoad(),
		service.WithMinContentLatency(0),
	)
	env.app = &App{Machine: machine, Prompter: env.prompter}
	return env
}

// seedReturning stores an onboarded learner on day with an optional buffer.
func (e *testEnv) seedReturning(t *testing.T, day int, opts ...testutil.ProfileOption) {
	t.Helper()
	ctx := context.Background()
	opts = append([]testutil.ProfileOption{testutil.WithDay(day), testutil.Returning()}, opts...)
	require.NoError(t, e.profiles.Save(ctx, testutil.NewTestProfile(opts...)))
	require.NoError(t, e.curricula.Save(ctx, testutil.NewTestCurriculum(5)))
}

func (e *testEnv) runSession(t *testing.T) {
	t.Helper()
	require.NoError(t, newSession(e.app, e.out).run(context.Background()))
}

func (e *testEnv) persisted(t *testing.T) *domain.UserProfile {
	t.Helper()
	p, err := e.profiles.Get(context.Background())
	require.NoError(t, err)
	return p
}

// executeCmd runs a cobra command and captures its output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
