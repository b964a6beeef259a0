package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/practice-kit/practice-service/internal/api/http/handlers"
	"github.com/practice-kit/practice-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Students       *handlers.StudentsHandler
	Schedule       *handlers.ScheduleHandler
	Billing        *handlers.BillingHandler
	Notices        *handlers.NoticesHandler
	Tasks          *handlers.TasksHandler
	Changes        *handlers.ChangesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	session := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	session.Get("/me", cfg.Auth.Me)
	session.Post("/logout", cfg.Auth.Logout)
	session.Post("/password/change", cfg.Auth.ChangePassword)

	staff := app.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	staff.Get("/", cfg.Staff.List)
	staff.Get("/:id", cfg.Staff.Get)
	staff.Put("/:id", cfg.Staff.Update)
	staff.Post("/", auth.RequireAdmin(), cfg.Staff.Create)
	staff.Delete("/:id", auth.RequireAdmin(), cfg.Staff.Deactivate)

	students := app.Group("/students", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	students.Post("/", cfg.Students.Create)
	students.Get("/", cfg.Students.List)
	students.Get("/:id", cfg.Students.Get)
	students.Put("/:id", cfg.Students.Update)
	students.Delete("/:id", cfg.Students.Delete)
	students.Post("/:id/progress", cfg.Students.AppendProgress)
	students.Get("/:id/progress", cfg.Students.ListProgress)

	schedule := app.Group("/schedule", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	schedule.Post("/events", cfg.Schedule.Create)
	schedule.Get("/events", cfg.Schedule.List)
	schedule.Get("/events/:id", cfg.Schedule.Get)
	schedule.Put("/events/:id", cfg.Schedule.Update)
	schedule.Patch("/events/:id/status", cfg.Schedule.UpdateStatus)
	schedule.Delete("/events/:id", cfg.Schedule.Delete)

	billing := app.Group("/billing", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	billing.Post("/generate", cfg.Billing.Generate)
	billing.Get("/entries", cfg.Billing.ListEntries)
	billing.Patch("/entries/:id/status", cfg.Billing.UpdateEntryStatus)
	billing.Get("/summary", cfg.Billing.Summary)
	billing.Get("/reports/revenue", cfg.Billing.RevenueBreakdown)
	billing.Get("/reports/performance", cfg.Billing.TeamPerformance)
	billing.Post("/incomes", cfg.Billing.CreateIncome)
	billing.Get("/incomes", cfg.Billing.ListIncomes)
	billing.Put("/incomes/:id", cfg.Billing.UpdateIncome)
	billing.Delete("/incomes/:id", cfg.Billing.DeleteIncome)
	billing.Post("/expenses", cfg.Billing.CreateExpense)
	billing.Get("/expenses", cfg.Billing.ListExpenses)
	billing.Put("/expenses/:id", cfg.Billing.UpdateExpense)
	billing.Delete("/expenses/:id", cfg.Billing.DeleteExpense)

	notices := app.Group("/notices", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	notices.Post("/", cfg.Notices.Create)
	notices.Get("/", cfg.Notices.List)
	notices.Get("/:id", cfg.Notices.Get)
	notices.Put("/:id", cfg.Notices.Update)
	notices.Delete("/:id", cfg.Notices.Delete)
	notices.Post("/:id/reactions", cfg.Notices.ToggleReaction)
	notices.Post("/:id/comments", cfg.Notices.AddComment)
	notices.Delete("/:id/comments/:commentId", cfg.Notices.DeleteComment)
	notices.Post("/:id/comments/:commentId/reactions", cfg.Notices.ToggleCommentReaction)

	tasks := app.Group("/tasks", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	tasks.Post("/", cfg.Tasks.Create)
	tasks.Get("/", cfg.Tasks.List)
	tasks.Get("/:id", cfg.Tasks.Get)
	tasks.Put("/:id", cfg.Tasks.Update)
	tasks.Patch("/:id/status", cfg.Tasks.UpdateStatus)
	tasks.Delete("/:id", cfg.Tasks.Delete)

	changes := app.Group("/changes", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	changes.Get("/stream", cfg.Changes.Stream)
}
