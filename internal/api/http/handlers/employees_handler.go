package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/onboarding-service/internal/api/dto"
	"github.com/spec-kit/onboarding-service/internal/domain"
	"github.com/spec-kit/onboarding-service/internal/service"
)

const defaultPageSize = 10

// EmployeesHandler serves the merged employee listing.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employees *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// List GET /employees with offset pagination.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	merged, err := h.employees.ListMerged(c.Context())
	if err != nil {
		return err
	}

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), defaultPageSize)
	total := len(merged)

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	pageItems := merged[start:end]
	if pageItems == nil {
		pageItems = []domain.MergedEmployee{}
	}

	return c.JSON(dto.EmployeeListResponse{
		Data:     pageItems,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
