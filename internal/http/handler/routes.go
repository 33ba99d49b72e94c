package handler

import "github.com/gofiber/fiber/v2"

// RegisterRoutes attaches the health probes and the /students routes.
func RegisterRoutes(app *fiber.App) {
	app.Get("/health", HealthCheck())
	app.Get("/healthz", LivenessProbe())

	students := app.Group("/students")
	students.Get("", ListStudents())
	students.Get("/student", GetStudent())
	students.Get("/query", StudentFromQuery())
	students.Get("/:id/:firstName/:lastName", StudentFromPath())
	students.Post("/create", CreateStudent())
	students.Put("/:id/update", UpdateStudent())
	students.Delete("/:id/delete", DeleteStudent())
}
