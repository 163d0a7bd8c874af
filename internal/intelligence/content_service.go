package intelligence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/llm"
)

// PersonaInput is the raw questionnaire summary sent for persona analysis.
type PersonaInput struct {
	Role          string
	Objective     string
	Expertise     string
	Commitment    string
	CustomContext string
}

// Persona is the analysed learner archetype.
type Persona struct {
	Role               domain.Role
	PersonaName        string
	Expertise          int
	PersonaDescription string
}

// ContentService produces personas, curricula and daily modules. It never
// returns an error: exhausted retries resolve to a fixed fallback, and daily
// content resolves to domain.UnavailableContent.
type ContentService interface {
	GeneratePersona(ctx context.Context, in PersonaInput) Persona
	GenerateCurriculum(ctx context.Context, role domain.Role, objective string, expertise int) domain.Curriculum
	GenerateDailyContent(ctx context.Context, profile domain.UserProfile, topic string) domain.DailyContent
}

type contentService struct {
	client llm.LLMClient
	policy llm.RetryPolicy
	logger *slog.Logger
}

// NewContentService creates a ContentService backed by an LLM client.
func NewContentService(client llm.LLMClient, policy llm.RetryPolicy, logger *slog.Logger) ContentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contentService{client: client, policy: policy, logger: logger}
}

// personaPayload mirrors the JSON the model returns. Missing fields are
// defaulted rather than rejected.
type personaPayload struct {
	Role               string `json:"role"`
	PersonaName        string `json:"personaName"`
	Expertise          int    `json:"expertise"`
	PersonaDescription string `json:"personaDescription"`
}

func (s *contentService) GeneratePersona(ctx context.Context, in PersonaInput) Persona {
	persona, err := llm.Retry(ctx, s.policy, func(ctx context.Context) (Persona, error) {
		payload, err := generateJSON[personaPayload](ctx, s.client, llm.TaskPersona, personaPrompt(in), nil)
		if err != nil {
			return Persona{}, err
		}
		role := domain.NormalizeRole(payload.Role)
		if !role.IsAssigned() {
			role = domain.RoleBusiness
		}
		expertise := payload.Expertise
		if expertise == 0 {
			expertise = 1
		}
		return Persona{
			Role:               role,
			PersonaName:        domain.CoalesceStr(strings.TrimSpace(payload.PersonaName), "The Learner"),
			Expertise:          domain.ClampExpertise(expertise),
			PersonaDescription: domain.CoalesceStr(strings.TrimSpace(payload.PersonaDescription), "Optimized learning path."),
		}, nil
	})
	if err != nil {
		s.logger.Warn("persona generation fell back", "error", err)
		return DefaultPersona()
	}
	return persona
}

func (s *contentService) GenerateCurriculum(ctx context.Context, role domain.Role, objective string, expertise int) domain.Curriculum {
	plan, err := llm.Retry(ctx, s.policy, func(ctx context.Context) (domain.Curriculum, error) {
		plan, err := generateJSON[domain.Curriculum](ctx, s.client, llm.TaskCurriculum, curriculumPrompt(role, objective, expertise), nil)
		if err != nil {
			return domain.Curriculum{}, err
		}
		plan.Normalize()
		if err := plan.Validate(); err != nil {
			return domain.Curriculum{}, fmt.Errorf("%w: %v", llm.ErrInvalidOutput, err)
		}
		return plan, nil
	})
	if err != nil {
		s.logger.Warn("curriculum generation fell back", "role", role, "error", err)
		return DefaultCurriculum(role)
	}
	return plan
}

func (s *contentService) GenerateDailyContent(ctx context.Context, profile domain.UserProfile, topic string) domain.DailyContent {
	content, err := llm.Retry(ctx, s.policy, func(ctx context.Context) (domain.DailyContent, error) {
		return generateJSON[domain.DailyContent](ctx, s.client, llm.TaskDailyContent, dailyContentPrompt(profile, topic), validateDailyContent)
	})
	if err != nil {
		s.logger.Warn("daily content generation failed",
			"day", profile.CurrentDay, "topic", topic, "error", err)
		return domain.UnavailableContent()
	}
	return content
}

// generateJSON performs one generation attempt and decodes the result.
func generateJSON[T any](ctx context.Context, client llm.LLMClient, task llm.TaskType, prompt string, validator llm.SchemaValidator[T]) (T, error) {
	var zero T
	resp, err := client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: coachSystemPrompt,
		UserPrompt:   prompt,
		JSON:         true,
	})
	if err != nil {
		return zero, err
	}
	return llm.ExtractJSON[T](resp.Text, validator)
}

func validateDailyContent(c domain.DailyContent) error {
	if c.IsUnavailable() {
		return errors.New("model returned the unavailable marker")
	}
	return c.Validate()
}
