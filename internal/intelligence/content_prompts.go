package intelligence

import (
	"fmt"

	"github.com/alexanderramin/lumina/internal/domain"
)

const coachSystemPrompt = `You are Lumina, an Interactive AI Coach.
Your Goal: Teach the user how to LEVERAGE AI in their specific context.
Directive: Theory is useless without practice. Always include a practical application.
Tone: Professional, Insightful, Action-Oriented.
Respond with a single JSON object and nothing else.`

func personaPrompt(in PersonaInput) string {
	p := fmt.Sprintf(`User: Role=%s, Objective=%s, Expertise=%s, Commitment=%s.
Task: Create a persona name that reflects their OBJECTIVE.
Example: If Role=Business & Obj=Productivity, Name="The Efficiency Strategist".
Description: 1 sentence on how this path achieves their specific objective.

Output JSON fields:
- role: one of ["Business","Product","Developer","CXO","Architect","HR"]
- personaName: string
- expertise: integer 1-10
- personaDescription: string`,
		in.Role, in.Objective, in.Expertise, in.Commitment)
	if in.CustomContext != "" {
		p += "\nAdditional context from the user:" + in.CustomContext
	}
	return p
}

func curriculumPrompt(role domain.Role, objective string, expertise int) string {
	return fmt.Sprintf(`Create a 4-week learning path for a %s.
PRIMARY OBJECTIVE: %s.
EXPERTISE LEVEL (1-10): %d.

Constraints:
- If Objective is 'Productivity', focus on tools, prompting, automation.
- If Objective is 'Strategy', focus on ROI, moats, team structure.
- If Objective is 'Building', focus on APIs, RAG, Agents.

Generate Day 1-5 detailed schedule.

Output JSON fields:
- trackName: string
- description: string
- schedule: array of {day: integer, title: string, topic: string}`,
		role, objective, expertise)
}

// calibrationFor turns the last quiz score into a difficulty instruction.
// A score of zero means no quiz has been taken yet.
func calibrationFor(lastScore float64) string {
	switch {
	case lastScore <= 0:
		return "Standard."
	case lastScore <= 60:
		return "Simplify concepts. Use more analogies."
	case lastScore >= 90:
		return "Deep dive. Focus on edge cases and nuance."
	default:
		return "Standard."
	}
}

func dailyContentPrompt(p domain.UserProfile, topic string) string {
	return fmt.Sprintf(`GENERATE MODULE: Day %d - "%s"
ROLE: %s
OBJECTIVE: %s (CRITICAL: Content must solve for this)
EXPERTISE: %d/10
CALIBRATION: %s

REQUIREMENTS:
1. Sections: High-signal, no fluff.
2. Practical Task: Create a concrete, 5-minute exercise using ChatGPT/Claude/Gemini that helps them achieve '%s'.
3. Quiz: Generate exactly 5 scenario-based questions. They must be highly relevant to the %s role and %s. Focus on 'application' (what would you do?) rather than 'definition' (what is it?).

Output JSON fields:
- dayTitle, visualConcept, summary: string
- sections: array of {header, body}
- deepDive: {title, explanation, visualSteps: array of {id, label, subLabel, type: one of input|process|decision|output|storage}}
- practicalTask: {title, description, actionItems: array of string}
- quiz: array of {question, options: array of string, correctIndex: integer, explanation}`,
		p.CurrentDay, topic, p.Role, p.Objective, p.ExpertiseLevel, calibrationFor(p.LastQuizScore),
		p.Objective, p.Role, p.Objective)
}
