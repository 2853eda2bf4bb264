package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskboard-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskboard-api/internal/api/middleware"
)

// setupRouter builds the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.userService)
	generateHandler := api.NewGenerateHandler(app.generator)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Credential endpoints (public, rate limited)
		r.With(apiMiddleware.RateLimit(app.limiter, "register")).
			Post("/user/register/", authHandler.Register)
		r.With(apiMiddleware.RateLimit(app.limiter, "login")).
			Post("/token/", authHandler.Login)
		r.Post("/token/refresh/", authHandler.Refresh)

		r.Route("/tasks", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/", taskHandler.ListActive)
			r.Get("/completed/", taskHandler.ListCompleted)
			r.Post("/add/", taskHandler.Add)
			r.Put("/{id:[0-9]+}/", taskHandler.Edit)
			r.Delete("/{id:[0-9]+}/", taskHandler.Delete)
			r.Get("/dashboard/", taskHandler.Dashboard)
			r.Get("/user_details/", taskHandler.UserDetails)
			r.Post("/generate/", generateHandler.Generate)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
