package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/railtrace/railway-assets/internal/dashboard"
	"github.com/railtrace/railway-assets/internal/inspection"
	"github.com/railtrace/railway-assets/internal/rbac"
	"github.com/railtrace/railway-assets/internal/session"
	"github.com/railtrace/railway-assets/internal/transport/middleware"
	"github.com/railtrace/railway-assets/internal/transport/swagger"
	"github.com/railtrace/railway-assets/internal/user"
)

type Handlers struct {
	Session    *session.Handler
	RBAC       *rbac.Handler
	User       *user.Handler
	Inspection *inspection.Handler
	Dashboard  *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	authz := rbac.NewAuthorization(logger)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and swagger UI live at root, outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", handlers.Session.Login)
			sr.Post("/signup", handlers.Session.SignUp)
			sr.Post("/logout", handlers.Session.Logout)
			sr.Post("/refresh", handlers.Session.RefreshToken)
		})

		// Role catalog is public reference data; everything else needs a
		// resolved session.
		r.Get("/roles", handlers.RBAC.GetRoleCatalog)

		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Session.AuthMiddleware)

			pr.Get("/auth/session", handlers.Session.GetSession)
			pr.Get("/navigation", handlers.RBAC.GetNavigation)
			pr.Get("/permissions", handlers.RBAC.GetPermissions)

			pr.Route("/users", func(ur chi.Router) {
				ur.Use(authz.Require(rbac.PermUsersManage))
				ur.Get("/", handlers.User.ListUsers)
				ur.Post("/", handlers.User.CreateUser)
				ur.Get("/{id}", handlers.User.GetUser)
				ur.Patch("/{id}", handlers.User.UpdateUser)
				ur.Delete("/{id}", handlers.User.DeactivateUser)
			})

			pr.Route("/inspections", func(ir chi.Router) {
				ir.Get("/", handlers.Inspection.ListInspections)
				ir.Get("/{id}", handlers.Inspection.GetInspection)

				ir.Group(func(rr chi.Router) {
					rr.Use(authz.Require(rbac.PermInspectionsRecord))
					rr.Post("/", handlers.Inspection.RecordInspection)
				})

				ir.Group(func(ar chi.Router) {
					ar.Use(authz.Require(rbac.PermInspectionsApprove))
					ar.Patch("/{id}/approve", handlers.Inspection.ApproveInspection)
					ar.Patch("/{id}/reject", handlers.Inspection.RejectInspection)
				})
			})

			pr.Group(func(dr chi.Router) {
				dr.Use(authz.Require(rbac.PermDashboardView))
				dr.Get("/dashboard/summary", handlers.Dashboard.GetSummary)
			})
		})
	})
}
