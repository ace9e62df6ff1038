package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.ListCycles)
	cycles.Post("", handler.CreateCycle)
	cycles.Delete("", handler.DeleteCyclesForMonth)
	cycles.Get("/predictions", handler.GetPredictions)
	cycles.Delete("/all", handler.DeleteAllCycles)
	cycles.Delete("/:id", handler.DeleteCycle)

	api.Get("/calendar/:year/:month", handler.AuthRequired, handler.GetCalendar)

	annotations := api.Group("/annotations", handler.AuthRequired)
	annotations.Get("/:category/:date", handler.GetAnnotation)
	annotations.Put("/:category/:date", handler.PutAnnotation)

	api.Get("/days/:date", handler.AuthRequired, handler.GetDay)

	api.Delete("/data", handler.AuthRequired, handler.ClearAllData)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)
}
