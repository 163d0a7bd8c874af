package llm

import (
	"os"
	"strconv"
	"time"
)

// TaskType identifies the kind of generation being performed.
type TaskType string

const (
	TaskPersona      TaskType = "persona"
	TaskCurriculum   TaskType = "curriculum"
	TaskDailyContent TaskType = "daily_content"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the generation backend.
type LLMConfig struct {
	Enabled      bool
	LogCalls     bool
	Endpoint     string
	Model        string
	TimeoutMs    int
	MaxRetries   int
	RetryDelayMs int
	Tasks        map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with the production defaults.
// Generation is disabled until LUMINA_LLM_ENABLED is set, in which case
// every call resolves to its fallback.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:      false,
		LogCalls:     false,
		Endpoint:     "http://localhost:11434",
		Model:        "llama3.2",
		TimeoutMs:    60000,
		MaxRetries:   3,
		RetryDelayMs: 2000,
		Tasks: map[TaskType]TaskConfig{
			TaskPersona:      {Temperature: 0.8, MaxTokens: 512, TimeoutMs: 20000},
			TaskCurriculum:   {Temperature: 0.8, MaxTokens: 2048, TimeoutMs: 45000},
			TaskDailyContent: {Temperature: 0.8, MaxTokens: 8192, TimeoutMs: 90000},
		},
	}
}

// LoadConfig reads LLM configuration from LUMINA_LLM_* environment
// variables, falling back to defaults for any unset or invalid value.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("LUMINA_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LUMINA_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LUMINA_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("LUMINA_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if n, ok := positiveIntEnv("LUMINA_LLM_TIMEOUT_MS"); ok {
		cfg.TimeoutMs = n
	}
	if v := os.Getenv("LUMINA_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if n, ok := positiveIntEnv("LUMINA_LLM_RETRY_DELAY_MS"); ok {
		cfg.RetryDelayMs = n
	}

	applyTaskTimeoutEnv(&cfg, TaskPersona, "LUMINA_LLM_PERSONA_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskCurriculum, "LUMINA_LLM_CURRICULUM_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskDailyContent, "LUMINA_LLM_DAILY_CONTENT_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a task.
func (c LLMConfig) TaskTimeout(task TaskType) time.Duration {
	ms := c.TimeoutMs
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		ms = tc.TimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}

// RetryPolicy derives the backoff policy used around generation calls.
func (c LLMConfig) RetryPolicy() RetryPolicy {
	return RetryPolicy{
		Retries:      c.MaxRetries,
		InitialDelay: time.Duration(c.RetryDelayMs) * time.Millisecond,
	}
}

func positiveIntEnv(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	n, ok := positiveIntEnv(envName)
	if !ok {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
