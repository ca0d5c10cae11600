package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/onthegorentals/onthego/internal/api/handler"
	"github.com/onthegorentals/onthego/internal/api/middleware"
	"github.com/onthegorentals/onthego/internal/auth"
	"github.com/onthegorentals/onthego/internal/booking"
	"github.com/onthegorentals/onthego/internal/car"
	"github.com/onthegorentals/onthego/internal/faq"
	"github.com/onthegorentals/onthego/internal/insurance"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Sessions      *auth.Service
	TokenIssuer   *auth.TokenIssuer
	Google        *auth.GoogleOAuth
	UserRepo      auth.UserRepository
	RoleRepo      auth.RoleRepository
	CarRepo       car.Repository
	BookingRepo   booking.Repository
	InsuranceRepo insurance.Repository
	FAQRepo       faq.Repository
	DBPinger      handler.DBPinger
	Version       string

	RefreshCookieName   string
	RefreshCookieSecure bool
	FrontendCallbackURL string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	requireAuth := middleware.Auth(deps.TokenIssuer)
	requireAdmin := middleware.RequireRole(auth.RoleAdmin, auth.RoleSuperAdmin)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Google,
		deps.RefreshCookieName, deps.RefreshCookieSecure, deps.FrontendCallbackURL)
	carHandler := handler.NewCarHandler(deps.CarRepo)
	bookingHandler := handler.NewBookingHandler(deps.BookingRepo, deps.CarRepo, deps.InsuranceRepo, deps.UserRepo)
	insuranceHandler := handler.NewInsuranceHandler(deps.InsuranceRepo)
	faqHandler := handler.NewFAQHandler(deps.FAQRepo)
	userHandler := handler.NewUserHandler(deps.UserRepo, deps.RoleRepo)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.With(requireAuth).Post("/logout", authHandler.Logout)

			if deps.Google != nil && deps.Google.Enabled() {
				r.Get("/oauth2/google", authHandler.GoogleRedirect)
				r.Get("/oauth2/callback", authHandler.GoogleCallback)
			}
		})

		r.Route("/cars", func(r chi.Router) {
			r.Get("/", carHandler.List)
			r.Get("/{id}", carHandler.GetByID)
		})

		r.Route("/insurance-plans", func(r chi.Router) {
			r.Get("/", insuranceHandler.List)
			r.Get("/{id}", insuranceHandler.GetByID)
		})

		r.Get("/faqs", faqHandler.List)

		r.Route("/bookings", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", bookingHandler.Create)
			r.Get("/", bookingHandler.ListMine)
			r.Post("/{id}/cancel", bookingHandler.Cancel)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(requireAdmin)

			r.Post("/cars", carHandler.Create)
			r.Patch("/cars/{id}", carHandler.Update)
			r.Delete("/cars/{id}", carHandler.Delete)

			r.Get("/bookings", bookingHandler.ListAll)
			r.Post("/bookings/{id}/confirm", bookingHandler.Confirm)

			r.Post("/insurance-plans", insuranceHandler.Create)
			r.Delete("/insurance-plans/{id}", insuranceHandler.Delete)

			r.Post("/faqs", faqHandler.Create)
			r.Put("/faqs/{id}", faqHandler.Update)
			r.Delete("/faqs/{id}", faqHandler.Delete)

			r.Get("/users", userHandler.List)
			r.Get("/users/{id}", userHandler.GetByID)
			r.Put("/users/{id}/roles", userHandler.UpdateRoles)
			r.Delete("/users/{id}", userHandler.Delete)
			r.Post("/users/{id}/restore", userHandler.Restore)
		})
	})

	return r
}
