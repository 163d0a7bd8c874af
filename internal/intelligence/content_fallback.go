package intelligence

import (
	"fmt"

	"github.com/alexanderramin/lumina/internal/domain"
)

// DefaultPersona is used when persona generation is exhausted.
func DefaultPersona() Persona {
	return Persona{
		Role:               domain.RoleBusiness,
		PersonaName:        "The Strategist",
		Expertise:          1,
		PersonaDescription: "System calibrated.",
	}
}

// DefaultCurriculum is the fixed five-day plan used when curriculum
// generation is exhausted.
func DefaultCurriculum(role domain.Role) domain.Curriculum {
	return domain.Curriculum{
		TrackName:   fmt.Sprintf("%s Acceleration Track", role),
		Description: "A specialized high-velocity learning path.",
		Schedule: []domain.CurriculumDay{
			{Day: 1, Title: "Foundations", Topic: "AI Mental Models"},
			{Day: 2, Title: "Application", Topic: "Use Cases"},
			{Day: 3, Title: "Strategy", Topic: "Implementation"},
			{Day: 4, Title: "Advanced", Topic: "Agentic Workflows"},
			{Day: 5, Title: "Future", Topic: "Next Gen Models"},
		},
	}
}
