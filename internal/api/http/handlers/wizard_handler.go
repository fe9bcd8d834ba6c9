package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/onboarding-service/internal/api/dto"
	"github.com/spec-kit/onboarding-service/internal/auth"
	"github.com/spec-kit/onboarding-service/internal/domain"
	"github.com/spec-kit/onboarding-service/internal/service"
	"github.com/spec-kit/onboarding-service/internal/wizard"
	apperrors "github.com/spec-kit/onboarding-service/pkg/errorutil"
)

// Autocomplete field names accepted by the search endpoints.
const (
	fieldDepartment     = "department"
	fieldOfficeLocation = "officeLocation"
)

// WizardHandler exposes wizard sessions over HTTP. Each session is one
// wizard run for the authenticated operator's role.
type WizardHandler struct {
	wizards *service.WizardService
}

// NewWizardHandler constructs handler.
func NewWizardHandler(wizards *service.WizardService) *WizardHandler {
	return &WizardHandler{wizards: wizards}
}

// Create POST /wizard/sessions.
func (h *WizardHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	run, err := h.wizards.CreateSession(c.Context(), principal.Role)
	if err != nil {
		if errors.Is(err, service.ErrUnknownRole) {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		return err
	}
	return c.Status(http.StatusCreated).JSON(h.sessionResponse(c, run))
}

// Get GET /wizard/sessions/:id.
func (h *WizardHandler) Get(c *fiber.Ctx) error {
	run, err := h.wizards.GetRun(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(h.sessionResponse(c, run))
}

// UpdateBasicInfo POST /wizard/sessions/:id/basic-info.
func (h *WizardHandler) UpdateBasicInfo(c *fiber.Ctx) error {
	run, req, err := h.runAndField(c)
	if err != nil {
		return err
	}
	if err := run.Session.UpdateBasicInfo(req.Field, req.Value); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return c.JSON(h.sessionResponse(c, run))
}

// UpdateDetails POST /wizard/sessions/:id/details.
func (h *WizardHandler) UpdateDetails(c *fiber.Ctx) error {
	run, req, err := h.runAndField(c)
	if err != nil {
		return err
	}
	if err := run.Session.UpdateDetails(req.Field, req.Value); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return c.JSON(h.sessionResponse(c, run))
}

// Next POST /wizard/sessions/:id/next.
func (h *WizardHandler) Next(c *fiber.Ctx) error {
	run, err := h.wizards.GetRun(c.Params("id"))
	if err != nil {
		return err
	}
	if err := run.Session.GoToNextStep(); err != nil {
		return stepError(err, run)
	}
	return c.JSON(h.sessionResponse(c, run))
}

// Previous POST /wizard/sessions/:id/previous.
func (h *WizardHandler) Previous(c *fiber.Ctx) error {
	run, err := h.wizards.GetRun(c.Params("id"))
	if err != nil {
		return err
	}
	if err := run.Session.GoToPreviousStep(); err != nil {
		return stepError(err, run)
	}
	return c.JSON(h.sessionResponse(c, run))
}

// Submit POST /wizard/sessions/:id/submit. Runs the two-phase submission;
// the response carries the final per-phase progress whether or not both
// phases landed.
func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	run, err := h.wizards.GetRun(c.Params("id"))
	if err != nil {
		return err
	}
	if err := run.Session.Submit(c.Context()); err != nil {
		if errors.Is(err, wizard.ErrSubmissionInFlight) {
			return apperrors.NewConflict(err.Error(), nil)
		}
		if errors.Is(err, wizard.ErrStepInvalid) {
			return stepError(err, run)
		}
		// Partial failure: report state, not a transport error. The submit
		// control stays usable for a manual retry.
		return c.Status(http.StatusUnprocessableEntity).JSON(h.sessionResponse(c, run))
	}
	return c.JSON(h.sessionResponse(c, run))
}

// Reset POST /wizard/sessions/:id/reset.
func (h *WizardHandler) Reset(c *fiber.Ctx) error {
	run, err := h.wizards.GetRun(c.Params("id"))
	if err != nil {
		return err
	}
	run.Session.Reset()
	return c.JSON(h.sessionResponse(c, run))
}

// ClearDraft DELETE /wizard/sessions/:id/draft.
func (h *WizardHandler) ClearDraft(c *fiber.Ctx) error {
	run, err := h.wizards.GetRun(c.Params("id"))
	if err != nil {
		return err
	}
	h.wizards.ClearDraft(c.Context(), run)
	return c.JSON(h.sessionResponse(c, run))
}

// Delete DELETE /wizard/sessions/:id.
func (h *WizardHandler) Delete(c *fiber.Ctx) error {
	h.wizards.RemoveRun(c.Params("id"))
	return c.SendStatus(http.StatusNoContent)
}

// Search POST /wizard/sessions/:id/search. Records one keystroke: the typed
// text is both the debounced lookup query and the committed form value.
func (h *WizardHandler) Search(c *fiber.Ctx) error {
	run, err := h.wizards.GetRun(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	suggester, err := suggesterFor(run, req.Field)
	if err != nil {
		return err
	}
	suggester.Search(req.Query)
	if err := h.mirrorField(run, req.Field, req.Query); err != nil {
		return err
	}
	return c.JSON(searchState(req.Field, suggester))
}

// SearchState GET /wizard/sessions/:id/search/:field.
func (h *WizardHandler) SearchState(c *fiber.Ctx) error {
	run, err := h.wizards.GetRun(c.Params("id"))
	if err != nil {
		return err
	}
	field := c.Params("field")
	suggester, err := suggesterFor(run, field)
	if err != nil {
		return err
	}
	return c.JSON(searchState(field, suggester))
}

// Highlight POST /wizard/sessions/:id/search/highlight.
func (h *WizardHandler) Highlight(c *fiber.Ctx) error {
	run, err := h.wizards.GetRun(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.HighlightRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	suggester, err := suggesterFor(run, req.Field)
	if err != nil {
		return err
	}
	suggester.MoveHighlight(req.Delta)
	return c.JSON(searchState(req.Field, suggester))
}

// Select POST /wizard/sessions/:id/search/select. With no item the
// highlighted suggestion is committed, as Enter would.
func (h *WizardHandler) Select(c *fiber.Ctx) error {
	run, err := h.wizards.GetRun(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.SelectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	suggester, err := suggesterFor(run, req.Field)
	if err != nil {
		return err
	}

	var committed *domain.LookupItem
	if req.Item != nil {
		suggester.Select(*req.Item)
		committed = req.Item
	} else if item, ok := suggester.CommitHighlighted(); ok {
		committed = &item
	}
	if committed != nil {
		if err := h.mirrorField(run, req.Field, committed.Name); err != nil {
			return err
		}
	}
	return c.JSON(searchState(req.Field, suggester))
}

// Blur POST /wizard/sessions/:id/search/blur.
func (h *WizardHandler) Blur(c *fiber.Ctx) error {
	run, err := h.wizards.GetRun(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	suggester, err := suggesterFor(run, req.Field)
	if err != nil {
		return err
	}
	suggester.Blur()
	return c.JSON(searchState(req.Field, suggester))
}

func (h *WizardHandler) runAndField(c *fiber.Ctx) (*wizard.Run, dto.UpdateFieldRequest, error) {
	var req dto.UpdateFieldRequest
	run, err := h.wizards.GetRun(c.Params("id"))
	if err != nil {
		return nil, req, err
	}
	if err := c.BodyParser(&req); err != nil {
		return nil, req, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Field == "" {
		return nil, req, apperrors.NewValidationError("field required", nil)
	}
	return run, req, nil
}

// mirrorField keeps the wizard form value in sync with the autocomplete
// input.
func (h *WizardHandler) mirrorField(run *wizard.Run, field, value string) error {
	switch field {
	case fieldDepartment:
		return run.Session.UpdateBasicInfo(fieldDepartment, value)
	case fieldOfficeLocation:
		return run.Session.UpdateDetails(fieldOfficeLocation, value)
	}
	return nil
}

func (h *WizardHandler) sessionResponse(c *fiber.Ctx, run *wizard.Run) dto.SessionResponse {
	return dto.SessionResponse{
		SessionID:        run.Session.ID,
		Role:             run.Session.Role,
		State:            run.Session.State(),
		ValidationErrors: run.Session.ValidationErrors(),
		IsStepValid:      run.Session.IsStepValid(),
		HasDraft:         run.Drafts.HasDraft(c.Context()),
	}
}

func suggesterFor(run *wizard.Run, field string) (*wizard.Suggester, error) {
	switch field {
	case fieldDepartment:
		return run.DeptSearch, nil
	case fieldOfficeLocation:
		return run.LocationSearch, nil
	default:
		return nil, apperrors.NewValidationError("unknown autocomplete field", map[string]any{"field": field})
	}
}

func searchState(field string, suggester *wizard.Suggester) dto.SearchStateResponse {
	return dto.SearchStateResponse{Field: field, State: suggester.State()}
}

func stepError(err error, run *wizard.Run) error {
	details := make(map[string]any)
	for field, msg := range run.Session.ValidationErrors() {
		details[field] = msg
	}
	return apperrors.NewValidationError(err.Error(), details)
}
