package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/registroos/registro-os/internal/apontamento"
	"github.com/registroos/registro-os/internal/auth"
	"github.com/registroos/registro-os/internal/catalog"
	"github.com/registroos/registro-os/internal/sector"
	"github.com/registroos/registro-os/internal/serviceorder"
	"github.com/registroos/registro-os/internal/transport/middleware"
	"github.com/registroos/registro-os/internal/transport/swagger"
	"github.com/registroos/registro-os/internal/user"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	rbac *auth.RBACAuthorization,
	userHandler *user.Handler,
	sectorHandler *sector.Handler,
	catalogHandler *catalog.Handler,
	orderHandler *serviceorder.Handler,
	apontamentoHandler *apontamento.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Registration is public; the account stays unusable until an
		// admin approves it.
		r.Post("/users/register", userHandler.Register)

		// Protected routes
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.GetCurrentUser)

			pr.Route("/users", func(ur chi.Router) {
				ur.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireSupervision())
					mr.Get("/", userHandler.GetUsers)
				})
				ur.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Patch("/{id}/approve", userHandler.ApproveUser)
					ar.Put("/{id}", userHandler.UpdateUser)
					ar.Delete("/{id}", userHandler.DeactivateUser)
				})
			})

			pr.Route("/setores", func(sr chi.Router) {
				sr.Get("/", sectorHandler.GetSectors)
				sr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Post("/", sectorHandler.CreateSector)
					ar.Delete("/{id}", sectorHandler.DeactivateSector)
				})
			})

			pr.Route("/catalogos", func(cr chi.Router) {
				cr.Get("/{kind}", catalogHandler.ListItems)
				cr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Post("/{kind}", catalogHandler.CreateItem)
					ar.Put("/{kind}/{id}", catalogHandler.UpdateItem)
					ar.Delete("/{kind}/{id}", catalogHandler.DeleteItem)
				})
			})

			pr.Route("/os", func(or chi.Router) {
				or.Get("/", orderHandler.GetOrders)
				or.Get("/{id}", orderHandler.GetOrder)
				or.Post("/", orderHandler.CreateOrder)
				or.Group(func(plr chi.Router) {
					plr.Use(rbac.RequirePlanning())
					plr.Post("/{id}/refresh", orderHandler.RefreshOrder)
				})
			})

			pr.Route("/apontamentos", func(ar chi.Router) {
				ar.Post("/", apontamentoHandler.CreateApontamento)
				ar.Get("/", apontamentoHandler.ListApontamentos)
				ar.Get("/{id}", apontamentoHandler.GetApontamento)
				ar.Put("/{id}", apontamentoHandler.UpdateApontamento)

				ar.Group(func(sr chi.Router) {
					sr.Use(rbac.RequireSupervision())
					sr.Patch("/{id}/approve", apontamentoHandler.ApproveApontamento)
					sr.Patch("/{id}/reject", apontamentoHandler.RejectApontamento)
					sr.Patch("/{id}/resultado-global", apontamentoHandler.SetGlobalResult)
				})
			})
		})
	})
}
