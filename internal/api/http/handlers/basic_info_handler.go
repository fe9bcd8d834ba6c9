package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/onboarding-service/internal/api/dto"
	"github.com/spec-kit/onboarding-service/internal/domain"
	"github.com/spec-kit/onboarding-service/internal/service"
	"github.com/spec-kit/onboarding-service/internal/wizard"
	apperrors "github.com/spec-kit/onboarding-service/pkg/errorutil"
)

// BasicInfoHandler is the identity service surface.
type BasicInfoHandler struct {
	onboarding *service.OnboardingService
}

// NewBasicInfoHandler constructs handler.
func NewBasicInfoHandler(onboarding *service.OnboardingService) *BasicInfoHandler {
	return &BasicInfoHandler{onboarding: onboarding}
}

// List GET /basicInfo.
func (h *BasicInfoHandler) List(c *fiber.Ctx) error {
	records, err := h.onboarding.ListBasicInfo(c.Context())
	if err != nil {
		return err
	}
	if records == nil {
		records = []domain.BasicInfoRecord{}
	}
	return c.JSON(records)
}

// Create POST /basicInfo. Mints an identity record and returns its id.
func (h *BasicInfoHandler) Create(c *fiber.Ctx) error {
	var req domain.BasicInfo
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if errs := wizard.ValidateBasicInfo(req); wizard.HasErrors(errs) {
		details := make(map[string]any, len(errs))
		for field, msg := range errs {
			details[field] = msg
		}
		return apperrors.NewValidationError("basic info incomplete", details)
	}

	record, err := h.onboarding.CreateBasicInfo(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.SubmitBasicInfoResponse{
		ID: strconv.Itoa(record.ID),
	})
}
