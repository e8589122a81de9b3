package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Metrics       *handlers.MetricsHandler
	Employees     *handlers.EmployeesHandler
	Listings      *handlers.ListingsHandler
	EmployeePages *handlers.EmployeePagesHandler
	ListingPages  *handlers.ListingPagesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Show)

	api := app.Group(apiPrefix)

	employees := api.Group("/employees")
	employees.Get("/", cfg.Employees.List)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Post("/", cfg.Employees.Create)
	employees.Put("/:id", cfg.Employees.Update)
	employees.Delete("/:id", cfg.Employees.Delete)

	listings := api.Group("/airbnb")
	listings.Get("/", cfg.Listings.List)
	listings.Get("/:id", cfg.Listings.Get)
	listings.Post("/", cfg.Listings.Create)
	listings.Put("/:id", cfg.Listings.Update)
	listings.Delete("/:id", cfg.Listings.Delete)

	employeePages := app.Group("/employees")
	employeePages.Get("/", cfg.EmployeePages.Index)
	registerForm(employeePages, "/find", cfg.EmployeePages.Find)
	registerForm(employeePages, "/add", cfg.EmployeePages.Add)
	registerForm(employeePages, "/update", cfg.EmployeePages.Update)
	registerForm(employeePages, "/delete", cfg.EmployeePages.Delete)

	listingPages := app.Group("/airbnb")
	listingPages.Get("/", cfg.ListingPages.Index)
	registerForm(listingPages, "/find", cfg.ListingPages.Find)
	registerForm(listingPages, "/add", cfg.ListingPages.Add)
	registerForm(listingPages, "/update", cfg.ListingPages.Update)
	registerForm(listingPages, "/delete", cfg.ListingPages.Delete)
}

func registerForm(group fiber.Router, path string, handler fiber.Handler) {
	group.Get(path, handler)
	group.Post(path, handler)
}
