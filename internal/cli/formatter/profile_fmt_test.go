package formatter

import (
	"testing"

	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/service"
	"github.com/alexanderramin/lumina/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatProfile(t *testing.T) {
	p := testutil.NewTestProfile(testutil.WithDay(4), testutil.WithLastScore(92))
	c := testutil.NewTestCurriculum(6)
	view := service.ProfileView{
		Profile:         *p,
		TrackName:       c.TrackName,
		ProgressPercent: p.ProgressPercent(),
		Upcoming:        c.Upcoming(p.CurrentDay),
	}

	got := stripANSI(FormatProfile(view))

	for _, want := range []string{
		"BUILDER TRACK", "Ada Lovelace", "ada@example.com",
		"Developer", "The Pragmatic Builder", "Build AI Agents",
		"3/10", "Day 4 of 30", "92%",
		"UP NEXT", "Topic 4", "Topic 6",
	} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "Topic 3")
	assert.Contains(t, got, "▸ 4", "upcoming day is marked")
}

func TestFormatProfile_Guest(t *testing.T) {
	got := stripANSI(FormatProfile(service.ProfileView{Profile: domain.DefaultProfile()}))

	assert.Contains(t, got, "Guest")
	assert.Contains(t, got, "LUMINA")
	assert.Contains(t, got, "Unassigned")
	assert.NotContains(t, got, "UP NEXT")
}

func TestFormatCurriculum(t *testing.T) {
	c := testutil.NewTestCurriculum(3)
	c.Description = "Ship agents."

	got := stripANSI(FormatCurriculum(c, 0))
	assert.Contains(t, got, "BUILDER TRACK")
	assert.Contains(t, got, "Ship agents.")
	assert.Contains(t, got, "DAY")
	assert.Contains(t, got, "▸ 1", "day zero highlights day one")
	assert.Contains(t, got, "Topic 3")

	assert.Contains(t, stripANSI(FormatCurriculum(nil, 0)), "No curriculum yet")
}

func TestFormatResume(t *testing.T) {
	got := stripANSI(FormatResume(service.ResumeView{
		FirstName: "Ada",
		Day:       4,
		Topic:     "Agents",
		Ready:     true,
		Status:    service.StatusOnline,
	}))

	assert.Contains(t, got, "Welcome back, Ada.")
	assert.Contains(t, got, "Day 4: Agents")
	assert.Contains(t, got, "● Online")

	adapting := stripANSI(FormatResume(service.ResumeView{FirstName: "Ada", Day: 2, Topic: "x", Status: service.StatusAdapting}))
	assert.Contains(t, adapting, "○ Adapting")
}

func TestFormatPersona(t *testing.T) {
	got := stripANSI(FormatPersona(domain.OnboardingResult{
		Role:               domain.RoleHR,
		ExpertiseLevel:     2,
		PersonaName:        "The People Catalyst",
		PersonaDescription: "Brings teams along.",
	}))

	assert.Contains(t, got, "The People Catalyst")
	assert.Contains(t, got, "Brings teams along.")
	assert.Contains(t, got, "HR")
	assert.Contains(t, got, "2/10")
}

func TestRenderTable(t *testing.T) {
	got := stripANSI(RenderTable([]string{"A", "LONGER"}, [][]string{{"x", "y"}, {"wide cell", "z"}}, 1))

	assert.Contains(t, got, "  A          LONGER\n")
	assert.Contains(t, got, "  x          y\n")
	assert.Contains(t, got, "▸ wide cell  z\n")
	assert.Empty(t, RenderTable(nil, nil, -1))
}
