package http

import (
	"net/http"

	"github.com/atinyakov/kotodex/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the kotodex
// API. It applies JSON content-type enforcement and request logging to every
// route, and bearer-token authentication to everything except the health
// check, registration and login.
//
// Routes:
//
//	GET    /                              → health check
//	POST   /create-account                → authHandler.CreateAccount
//	POST   /login                         → authHandler.Login
//	GET    /get-user                      → authHandler.GetUser       (auth)
//	POST   /add-koto                      → kotoHandler.Add           (auth)
//	PUT    /edit-koto/{id}                → kotoHandler.Edit          (auth)
//	GET    /get-all-kotos/                → kotoHandler.GetAll        (auth)
//	DELETE /delete-koto/{kotoId}          → kotoHandler.Delete        (auth)
//	PUT    /update-koto-pinned/{kotoId}   → kotoHandler.UpdatePinned  (auth)
func NewRouter(
	authHandler *AuthHandler,
	kotoHandler *KotoHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"data": "hola"})
	})
	r.Post("/create-account", authHandler.CreateAccount)
	r.Post("/login", authHandler.Login)

	// Protected group: requires a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifier, logger))

		r.Get("/get-user", authHandler.GetUser)
		r.Post("/add-koto", kotoHandler.Add)
		r.Put("/edit-koto/{id}", kotoHandler.Edit)
		r.Get("/get-all-kotos/", kotoHandler.GetAll)
		r.Delete("/delete-koto/{kotoId}", kotoHandler.Delete)
		r.Put("/update-koto-pinned/{kotoId}", kotoHandler.UpdatePinned)
	})

	return r
}
