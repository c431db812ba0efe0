// Package http содержит компоненты HTTP сервера API блогов.
package http

import (
	"github.com/gofiber/fiber/v3"

	"bloglist/internal/adapters/http/handlers"
	"bloglist/internal/adapters/http/middleware"
	"bloglist/internal/config"
	"bloglist/internal/ports/api"
	"bloglist/internal/ports/repositories"
)

// Deps - зависимости маршрутизатора. Resetter == nil отключает служебные маршруты.
type Deps struct {
	Auth     api.AuthUseCase
	Users    api.UserUseCase
	Blogs    api.BlogUseCase
	Resetter repositories.Resetter
}

// NewApp создает приложение fiber с обработчиком ошибок API.
func NewApp(cfg *config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "bloglist",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: ErrorHandler,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Deps) {
	userHandler := handlers.NewUserHandler(deps.Auth, deps.Users)
	blogHandler := handlers.NewBlogHandler(deps.Blogs)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewTokenExtractor())

	apiGroup := app.Group("/api")

	users := apiGroup.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Register)

	apiGroup.Post("/login", userHandler.Login)

	// Недействительный токен отклоняется на всех маршрутах блогов.
	blogs := apiGroup.Group("/blogs", middleware.NewUserExtractor(deps.Users))
	blogs.Get("/", blogHandler.List)
	blogs.Post("/", blogHandler.Create)
	blogs.Get("/:id", blogHandler.Get)
	blogs.Put("/:id", blogHandler.Update)
	blogs.Delete("/:id", blogHandler.Delete)
	blogs.Post("/:id/comments", blogHandler.AddComment)

	if deps.Resetter != nil {
		testingHandler := handlers.NewTestingHandler(deps.Resetter)
		apiGroup.Post("/testing/reset", testingHandler.Reset)
	}

	// Обработчик для несуществующих маршрутов.
	app.Use(func(ctx fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, ErrorUnknownEndpoint)
	})
}
