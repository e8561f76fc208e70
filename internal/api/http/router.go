package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/work-nest/backoffice/internal/api/http/handlers"
	"github.com/work-nest/backoffice/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Invitations    *handlers.InvitationHandler
	Departments    *handlers.DepartmentHandler
	Bookings       *handlers.BookingHandler
	Clients        *handlers.ClientHandler
	Accounts       *handlers.AccountHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)
	authGroup.Post("/change-password", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	invitation := app.Group("/invitation")
	invitation.Post("/accept-invite", cfg.Invitations.AcceptInvitation)
	invitation.Post("/invite-user", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Invitations.InviteUser)

	department := app.Group("/department", cfg.AuthMiddleware.Handle)
	department.Get("/search", cfg.Departments.Search)
	department.Get("/employees", cfg.Departments.Employees)
	department.Get("/employees/:id", cfg.Departments.EmployeeByID)
	department.Get("/", cfg.Departments.List)
	department.Get("/:id", cfg.Departments.Get)
	department.Post("/", auth.RequireAdmin(), cfg.Departments.Create)
	department.Patch("/:id", auth.RequireAdmin(), cfg.Departments.UpdateName)
	department.Post("/:id/hod", auth.RequireAdmin(), cfg.Departments.AppointHOD)
	department.Delete("/:id", auth.RequireAdmin(), cfg.Departments.Delete)

	booking := app.Group("/booking", cfg.AuthMiddleware.Handle)
	booking.Get("/", cfg.Bookings.List)
	booking.Get("/:id", cfg.Bookings.Get)
	booking.Post("/", cfg.Bookings.Create)
	booking.Patch("/:id", cfg.Bookings.Update)
	booking.Delete("/:id", cfg.Bookings.Delete)

	client := app.Group("/client", cfg.AuthMiddleware.Handle)
	client.Get("/", cfg.Clients.List)
	client.Get("/:id", cfg.Clients.Get)
	client.Post("/", cfg.Clients.Create)

	user := app.Group("/user", cfg.AuthMiddleware.Handle)
	user.Get("/profile", cfg.Accounts.Profile)
	user.Patch("/profile-picture", cfg.Accounts.UpdateProfilePicture)
}
