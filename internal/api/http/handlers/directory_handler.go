package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/onboarding-service/internal/service"
)

// DirectoryHandler serves the department and location lookups.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// ListDepartments GET /departments.
func (h *DirectoryHandler) ListDepartments(c *fiber.Ctx) error {
	items, err := h.directory.Departments(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// SearchDepartments GET /departments/search?q=.
func (h *DirectoryHandler) SearchDepartments(c *fiber.Ctx) error {
	items, err := h.directory.SearchDepartments(c.Context(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// ListLocations GET /locations.
func (h *DirectoryHandler) ListLocations(c *fiber.Ctx) error {
	items, err := h.directory.Locations(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// SearchLocations GET /locations/search?q=.
func (h *DirectoryHandler) SearchLocations(c *fiber.Ctx) error {
	items, err := h.directory.SearchLocations(c.Context(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(items)
}
