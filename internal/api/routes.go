package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	app.Use(handler.LanguageMiddleware, handler.DatabaseSession)

	app.Post("/register", handler.Register)
	app.Post("/login", handler.Login)

	app.Get("/users", handler.ListUsers)
	app.Get("/users/:id", handler.GetUser)
	app.Delete("/users/:id", handler.DeleteUser)
	app.Put("/update/:id", handler.UpdateUser)
	app.Get("/user/:id/recommended", handler.GetRecommendation)

	app.Get("/foods", handler.ListFoods)
	app.Post("/foods", handler.CreateFood)
	app.Get("/foods/search", handler.SearchFoods)
	app.Delete("/foods/:id", handler.DeleteFood)

	app.Get("/user-foods/:id", handler.ListUserFoods)
	app.Post("/user-foods", handler.CreateUserFood)

	app.Use(handler.NotFound)
}
