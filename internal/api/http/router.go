package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/onboarding-service/internal/api/http/handlers"
	"github.com/spec-kit/onboarding-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Operators      *handlers.OperatorsHandler
	Directory      *handlers.DirectoryHandler
	BasicInfo      *handlers.BasicInfoHandler
	Details        *handlers.DetailsHandler
	Employees      *handlers.EmployeesHandler
	Wizard         *handlers.WizardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Operators.Login)

	app.Get("/departments", cfg.Directory.ListDepartments)
	app.Get("/departments/search", cfg.Directory.SearchDepartments)
	app.Get("/locations", cfg.Directory.ListLocations)
	app.Get("/locations/search", cfg.Directory.SearchLocations)

	app.Get("/basicInfo", cfg.BasicInfo.List)
	app.Post("/basicInfo", cfg.BasicInfo.Create)
	app.Get("/details", cfg.Details.List)
	app.Post("/details", cfg.Details.Create)
	app.Get("/employees", cfg.Employees.List)

	sessions := app.Group("/wizard/sessions", cfg.AuthMiddleware.Handle, auth.RequireRole())
	sessions.Post("", cfg.Wizard.Create)
	sessions.Get("/:id", cfg.Wizard.Get)
	sessions.Delete("/:id", cfg.Wizard.Delete)
	sessions.Post("/:id/basic-info", cfg.Wizard.UpdateBasicInfo)
	sessions.Post("/:id/details", cfg.Wizard.UpdateDetails)
	sessions.Post("/:id/next", cfg.Wizard.Next)
	sessions.Post("/:id/previous", cfg.Wizard.Previous)
	sessions.Post("/:id/submit", cfg.Wizard.Submit)
	sessions.Post("/:id/reset", cfg.Wizard.Reset)
	sessions.Delete("/:id/draft", cfg.Wizard.ClearDraft)
	sessions.Post("/:id/search", cfg.Wizard.Search)
	sessions.Get("/:id/search/:field", cfg.Wizard.SearchState)
	sessions.Post("/:id/search/highlight", cfg.Wizard.Highlight)
	sessions.Post("/:id/search/select", cfg.Wizard.Select)
	sessions.Post("/:id/search/blur", cfg.Wizard.Blur)
}
