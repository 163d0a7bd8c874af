package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ErrValidation is wrapped by every *Error.
var ErrValidation = errors.New("validation failed")

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// Error is returned when user input is rejected at the boundary.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, " ")
}

func (e *Error) Unwrap() error { return ErrValidation }

// Field returns the first failure reported for the named field.
func (e *Error) Field(name string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldError{}, false
}

// LoginInput is the login form.
type LoginInput struct {
	Name       string `validate:"notblank"`
	Email      string `validate:"required,hasat"`
	Passphrase string `validate:"min=4"`
}

// OnboardingPick is one questionnaire answer.
type OnboardingPick struct {
	StepID string `validate:"required"`
	Value  string `validate:"required"`
}

// onboardingResult mirrors domain.OnboardingResult with rules attached.
type onboardingResult struct {
	Role            string `validate:"oneof=Business Product Developer CXO Architect HR"`
	ExpertiseLevel  int    `validate:"min=1,max=10"`
	DailyCommitment string `validate:"notblank"`
	PersonaName     string `validate:"notblank"`
}

// messages maps field.rule to the text shown inline.
var messages = map[string]string{
	"Email.required":    "Please enter a valid email address.",
	"Email.hasat":       "Please enter a valid email address.",
	"Name.notblank":     "Please enter your full name.",
	"Passphrase.min":    "Please verify your identity.",
	"StepID.required":   "Unknown onboarding step.",
	"StepID.knownstep":  "Unknown onboarding step.",
	"Value.required":    "Please choose an option.",
	"Value.knownoption": "Please choose one of the listed options.",

	"Role.oneof":               "Persona role must be an assignable role.",
	"ExpertiseLevel.min":       "Expertise must be between 1 and 10.",
	"ExpertiseLevel.max":       "Expertise must be between 1 and 10.",
	"DailyCommitment.notblank": "Daily commitment is required.",
	"PersonaName.notblank":     "Persona name is required.",
}

// Validator checks user input against the questionnaire and login rules.
type Validator struct {
	validate *validator.Validate
}

// customRules are the tags registered on top of the validator built-ins.
var customRules = map[string]validator.Func{
	"notblank": func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	},
	"hasat": func(fl validator.FieldLevel) bool {
		return strings.Contains(fl.Field().String(), "@")
	},
}

func registerRules(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("registering %q rule: %w", tag, err)
		}
	}
	return nil
}

// New creates a Validator with the custom rules registered. It panics if a
// rule cannot be registered.
func New() *Validator {
	v := validator.New()
	if err := registerRules(v, customRules); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(validatePick, OnboardingPick{})
	return &Validator{validate: v}
}

// Login validates the login form.
func (v *Validator) Login(in LoginInput) error {
	return v.check(in)
}

// Pick validates a questionnaire answer against the known steps.
func (v *Validator) Pick(p OnboardingPick) error {
	return v.check(p)
}

// Result validates an onboarding result before it is merged into the profile.
func (v *Validator) Result(r domain.OnboardingResult) error {
	return v.check(onboardingResult{
		Role:            string(r.Role),
		ExpertiseLevel:  r.ExpertiseLevel,
		DailyCommitment: r.DailyCommitment,
		PersonaName:     r.PersonaName,
	})
}

func (v *Validator) check(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{}
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Message: msg})
	}
	return out
}

func validatePick(sl validator.StructLevel) {
	p := sl.Current().Interface().(OnboardingPick)
	if p.StepID == "" || p.Value == "" {
		return
	}
	step, ok := domain.FindStep(p.StepID)
	if !ok {
		sl.ReportError(p.StepID, "StepID", "StepID", "knownstep", "")
		return
	}
	if !step.HasOption(p.Value) {
		sl.ReportError(p.Value, "Value", "Value", "knownoption", "")
	}
}
