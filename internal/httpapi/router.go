package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	courseauth "github.com/coursebook/courseauth"
	"github.com/coursebook/courseauth/middleware"
)

// NewRouter mounts the auth routes. CORS is wide open because the catalog
// frontend is served from a different origin in every deployment.
func NewRouter(engine *courseauth.Engine) chi.Router {
	h := NewHandler(engine)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.HandleRegister)
		r.Post("/verify-otp", h.HandleVerifyOTP)
		r.Post("/login", h.HandleLogin)
		r.Post("/request-reset", h.HandleRequestReset)
		r.Post("/reset-password", h.HandleResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Guard(engine))
			r.Get("/me", h.HandleMe)
		})
	})

	return r
}
