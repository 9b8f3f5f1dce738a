package route

import (
	"github.com/gofiber/fiber/v2"

	ctrl "jurnalku_backend/internals/features/evaluation/migration/controller"
	"jurnalku_backend/internals/features/evaluation/migration/service"
)

func MigrationAdminRoutes(r fiber.Router, m *service.LegacyMigrator) {
	h := ctrl.NewMigrationController(m)

	g := r.Group("/migrations")
	g.Post("/legacy", h.RunLegacy)
	g.Get("/runs", h.ListRuns)
}
