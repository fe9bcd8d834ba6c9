package dto

import (
	"github.com/spec-kit/onboarding-service/internal/domain"
	"github.com/spec-kit/onboarding-service/internal/wizard"
)

// UpdateFieldRequest mutates one form field.
type UpdateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// SearchRequest records one autocomplete keystroke.
type SearchRequest struct {
	Field string `json:"field"`
	Query string `json:"query"`
}

// HighlightRequest moves the autocomplete highlight.
type HighlightRequest struct {
	Field string `json:"field"`
	Delta int    `json:"delta"`
}

// SelectRequest commits a suggestion, by click or by Enter.
type SelectRequest struct {
	Field string             `json:"field"`
	Item  *domain.LookupItem `json:"item,omitempty"`
}

// SessionResponse is the observable state of a wizard run.
type SessionResponse struct {
	SessionID        string                  `json:"sessionId"`
	Role             domain.UserRole         `json:"role"`
	State            domain.WizardState      `json:"state"`
	ValidationErrors domain.ValidationErrors `json:"validationErrors"`
	IsStepValid      bool                    `json:"isStepValid"`
	HasDraft         bool                    `json:"hasDraft"`
}

// SearchStateResponse is the observable state of one autocomplete field.
type SearchStateResponse struct {
	Field string                `json:"field"`
	State wizard.SuggesterState `json:"state"`
}
