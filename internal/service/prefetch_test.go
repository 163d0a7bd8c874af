package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/repository"
	"github.com/alexanderramin/lumina/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answerQuiz loads the day's module and answers correct of its questions
// correctly and the rest wrongly.
func answerQuiz(t *testing.T, h *harness, correct int) *QuizResult {
	t.Helper()
	ctx := context.Background()
	h.m.mu.Lock()
	quiz := len(h.m.module.Content.Quiz)
	h.m.mu.Unlock()
	for i := 0; i < quiz; i++ {
		option := 1
		if i < correct {
			option = 0
		}
		require.NoError(t, h.m.SubmitQuizAnswer(ctx, i, option))
	}
	result, err := h.m.SubmitQuiz(ctx)
	require.NoError(t, err)
	return result
}

// dayWithQuiz puts the machine in DAILY_LOOP on day with a buffered module
// of n questions.
func dayWithQuiz(t *testing.T, h *harness, day, expertise, n int) {
	t.Helper()
	p := testutil.NewTestProfile(
		testutil.WithDay(day),
		testutil.WithExpertise(expertise),
		testutil.WithBuffer(day, fmt.Sprintf("Topic %d", day), quizContent("today", n)),
		testutil.Returning(),
	)
	h.enterDailyLoop(t, p, testutil.NewTestCurriculum(5))
	_, err := h.m.LoadDailyContent(context.Background(), false)
	require.NoError(t, err)
}

func TestPrefetch_HighScoreOnDayThree(t *testing.T) {
	h := newHarness(t)
	dayWithQuiz(t, h, 3, 5, 25)

	result := answerQuiz(t, h, 23)
	require.InDelta(t, 92.0, result.Score, 0.001)
	h.waitPrefetch(t)

	calls := h.content.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 4, calls[0].Day)
	assert.Equal(t, 6, calls[0].Expertise)
	assert.InDelta(t, 92.0, calls[0].LastScore, 0.001)
	assert.Equal(t, "Topic 4", calls[0].Topic)

	buf := h.m.Profile().ContentBuffer
	require.NotNil(t, buf)
	assert.Equal(t, 4, buf.Day)
	assert.Equal(t, "Topic 4@6", buf.Data.DayTitle)
	assert.Equal(t, 3, h.m.Profile().CurrentDay, "prefetch never advances the day")
	assert.Equal(t, 5, h.m.Profile().ExpertiseLevel, "prefetch never changes expertise")

	persisted := h.persisted(t)
	require.NotNil(t, persisted.ContentBuffer)
	assert.Equal(t, 4, persisted.ContentBuffer.Day)

	require.NoError(t, h.m.CompleteSession(context.Background(), result.Score))
	p := h.persisted(t)
	assert.Equal(t, 4, p.CurrentDay)
	assert.Equal(t, 6, p.ExpertiseLevel)
	require.NotNil(t, p.ContentBuffer, "buffer for the new day survives completion")

	view, ok := h.m.ResumeView()
	require.True(t, ok)
	assert.True(t, view.Ready)
	assert.Equal(t, StatusOnline, view.Status)
	assert.Equal(t, "Day 4: Topic 4", view.Label())
}

func TestPrefetch_LowScoreDemotesHypotheticalProfile(t *testing.T) {
	h := newHarness(t)
	dayWithQuiz(t, h, 2, 1, 4)

	answerQuiz(t, h, 1)
	h.waitPrefetch(t)

	calls := h.content.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].Expertise, "expertise never drops below 1")
	assert.Equal(t, 25.0, calls[0].LastScore)
}

func TestPrefetch_StartsExactlyOnce(t *testing.T) {
	h := newHarness(t)
	h.content.gate = make(chan struct{})
	dayWithQuiz(t, h, 2, 3, 3)
	ctx := context.Background()

	answerQuiz(t, h, 3)
	assert.True(t, h.m.PrefetchInFlight())

	again, err := h.m.SubmitQuiz(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100.0, again.Score)

	h.m.mu.Lock()
	h.m.triggerPrefetch(100)
	h.m.mu.Unlock()

	close(h.content.gate)
	h.waitPrefetch(t)
	assert.Len(t, h.content.calls(), 1)
	assert.False(t, h.m.PrefetchInFlight())
}

func TestPrefetch_NoOpWhenNextDayUnscheduled(t *testing.T) {
	h := newHarness(t)
	dayWithQuiz(t, h, 5, 3, 3)

	answerQuiz(t, h, 3)
	h.waitPrefetch(t)

	assert.Empty(t, h.content.calls())
	assert.False(t, h.m.PrefetchInFlight())
	assert.Equal(t, 5, h.m.Profile().ContentBuffer.Day)
}

func TestPrefetch_NoOpWhenBufferAlreadyHoldsNextDay(t *testing.T) {
	h := newHarness(t)
	p := testutil.NewTestProfile(
		testutil.WithDay(2),
		testutil.WithBuffer(3, "Topic 3", testutil.NewTestContent("ready")),
	)
	h.enterDailyLoop(t, p, testutil.NewTestCurriculum(5))
	_, err := h.m.LoadDailyContent(context.Background(), false)
	require.NoError(t, err)
	before := len(h.content.calls())

	answerQuiz(t, h, 3)
	h.waitPrefetch(t)

	assert.Len(t, h.content.calls(), before)
	assert.Equal(t, "ready", h.m.Profile().ContentBuffer.Data.DayTitle)
}

func TestPrefetch_CompletesAfterSessionEnds(t *testing.T) {
	h := newHarness(t)
	h.content.gate = make(chan struct{})
	dayWithQuiz(t, h, 2, 4, 3)

	result := answerQuiz(t, h, 2)
	require.NoError(t, h.m.CompleteSession(context.Background(), result.Score))
	assert.Nil(t, h.m.Profile().ContentBuffer)

	close(h.content.gate)
	h.waitPrefetch(t)

	p := h.persisted(t)
	assert.Equal(t, 3, p.CurrentDay)
	require.NotNil(t, p.ContentBuffer)
	assert.True(t, p.ContentBuffer.Matches(3, "Topic 3"))
	require.NoError(t, h.m.Resume(context.Background()))

	module, err := h.m.LoadDailyContent(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, SourceBuffer, module.Source)
}

func TestPrefetch_LateResultAfterLogoutIsDropped(t *testing.T) {
	h := newHarness(t)
	h.content.gate = make(chan struct{})
	dayWithQuiz(t, h, 2, 4, 3)

	answerQuiz(t, h, 3)
	require.NoError(t, h.m.Logout(context.Background()))

	close(h.content.gate)
	h.waitPrefetch(t)

	assert.Nil(t, h.m.Profile().ContentBuffer)
	assert.Empty(t, h.m.Profile().Name)
	_, err := h.profiles.Get(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotFound, "a late prefetch must not resurrect the profile")
}

func TestPrefetch_StaleTargetIsDropped(t *testing.T) {
	h := newHarness(t)
	h.content.gate = make(chan struct{})
	dayWithQuiz(t, h, 2, 4, 3)

	answerQuiz(t, h, 3)
	// Two days pass before generation returns.
	h.m.mu.Lock()
	h.m.profile.CurrentDay = 4
	h.m.mu.Unlock()

	close(h.content.gate)
	h.waitPrefetch(t)

	buf := h.m.Profile().ContentBuffer
	require.NotNil(t, buf)
	assert.Equal(t, 2, buf.Day, "original buffer is untouched")
}

func TestPrefetch_UnavailableResultIsNotBuffered(t *testing.T) {
	h := newHarness(t)
	dayWithQuiz(t, h, 2, 4, 3)
	h.content.mu.Lock()
	h.content.unavailable = true
	h.content.mu.Unlock()

	answerQuiz(t, h, 3)
	h.waitPrefetch(t)

	assert.Equal(t, 2, h.m.Profile().ContentBuffer.Day)
	assert.False(t, h.m.PrefetchInFlight())
}

func TestWaitForPrefetch_HonoursContext(t *testing.T) {
	h := newHarness(t)
	h.content.gate = make(chan struct{})
	dayWithQuiz(t, h, 2, 4, 3)
	answerQuiz(t, h, 3)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, h.m.WaitForPrefetch(ctx), context.DeadlineExceeded)

	close(h.content.gate)
	h.waitPrefetch(t)
}

func TestPrefetch_WritesThroughToCache(t *testing.T) {
	h := newHarness(t)
	dayWithQuiz(t, h, 2, 4, 3)

	answerQuiz(t, h, 3)
	h.waitPrefetch(t)

	p := h.m.Profile()
	cached, err := h.cache.Get(context.Background(), domain.CacheKey{Role: p.Role, Objective: p.Objective, Day: 3, Topic: "Topic 3"})
	require.NoError(t, err)
	assert.Equal(t, "Topic 3@5", cached.DayTitle)
}
