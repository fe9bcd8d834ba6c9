package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/onboarding-service/internal/api/dto"
	"github.com/spec-kit/onboarding-service/internal/domain"
	"github.com/spec-kit/onboarding-service/internal/service"
	apperrors "github.com/spec-kit/onboarding-service/pkg/errorutil"
)

// DetailsHandler is the details service surface.
type DetailsHandler struct {
	onboarding *service.OnboardingService
}

// NewDetailsHandler constructs handler.
func NewDetailsHandler(onboarding *service.OnboardingService) *DetailsHandler {
	return &DetailsHandler{onboarding: onboarding}
}

// List GET /details.
func (h *DetailsHandler) List(c *fiber.Ctx) error {
	records, err := h.onboarding.ListDetails(c.Context())
	if err != nil {
		return err
	}
	if records == nil {
		records = []domain.DetailsRecord{}
	}
	return c.JSON(records)
}

// Create POST /details. Files the details half against an identity record.
func (h *DetailsHandler) Create(c *fiber.Ctx) error {
	var req dto.SubmitDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.BasicInfoID) == "" {
		return apperrors.NewValidationError("basicInfoId required", nil)
	}
	basicInfoID, err := strconv.Atoi(req.BasicInfoID)
	if err != nil {
		return apperrors.NewValidationError("basicInfoId must be numeric", nil)
	}
	if strings.TrimSpace(string(req.EmploymentType)) == "" || strings.TrimSpace(req.OfficeLocation) == "" {
		return apperrors.NewValidationError("employmentType and officeLocation required", nil)
	}

	if _, err := h.onboarding.CreateDetails(c.Context(), req.Details, basicInfoID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}
