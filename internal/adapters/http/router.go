// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"studynotes/internal/adapters/http/auth"
	"studynotes/internal/adapters/http/categories"
	"studynotes/internal/adapters/http/comments"
	"studynotes/internal/adapters/http/middleware"
	"studynotes/internal/adapters/http/notes"
	"studynotes/internal/ports/api"
	"studynotes/internal/ports/services"
)

// UseCases объединяет порты приложения, обслуживаемые маршрутизатором.
type UseCases struct {
	Auth       api.AuthUseCase
	User       api.UserUseCase
	Notes      api.NoteUseCase
	Favorites  api.FavoriteUseCase
	Comments   api.CommentUseCase
	Categories api.CategoryUseCase
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, useCases UseCases, tokenService services.TokenService) {
	authHandler := auth.NewHandler(useCases.Auth, useCases.User)
	noteHandler := notes.NewHandler(useCases.Notes, useCases.Favorites)
	commentHandler := comments.NewHandler(useCases.Comments)
	categoryHandler := categories.NewHandler(useCases.Categories)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	authRequired := middleware.NewAuthMiddleware(tokenService)

	api := app.Group("/api")

	// Auth routes.
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authHandler.GetProfile, authRequired)
	authRoutes.Patch("/me", authHandler.UpdateProfile, authRequired)

	// Note routes. Статические пути регистрируются раньше "/:id".
	noteRoutes := api.Group("/notes")
	noteRoutes.Get("/search", noteHandler.Search)
	noteRoutes.Get("/category/:categoryName", noteHandler.ListByCategory)
	noteRoutes.Get("/favorites", noteHandler.ListFavorites, authRequired)
	noteRoutes.Get("/", noteHandler.ListMine, authRequired)
	noteRoutes.Post("/", noteHandler.Create, authRequired)
	noteRoutes.Get("/:id", noteHandler.Get)
	noteRoutes.Patch("/:id", noteHandler.Update, authRequired)
	noteRoutes.Delete("/:id", noteHandler.Delete, authRequired)
	noteRoutes.Post("/:id/favorite", noteHandler.ToggleFavorite, authRequired)
	noteRoutes.Post("/:id/download", noteHandler.Download)
	noteRoutes.Post("/:id/rating", noteHandler.Rate, authRequired)

	// Comment routes.
	commentRoutes := api.Group("/comments")
	commentRoutes.Get("/note/:noteId", commentHandler.ListByNote)
	commentRoutes.Post("/", commentHandler.Create, authRequired)
	commentRoutes.Delete("/:id", commentHandler.Delete, authRequired)

	// Category routes.
	categoryRoutes := api.Group("/categories")
	categoryRoutes.Get("/", categoryHandler.List, authRequired)
	categoryRoutes.Post("/", categoryHandler.Create, authRequired)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
