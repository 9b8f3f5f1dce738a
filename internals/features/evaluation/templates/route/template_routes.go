package route

import (
	"github.com/gofiber/fiber/v2"

	iservice "jurnalku_backend/internals/features/evaluation/integrity/service"
	ctrl "jurnalku_backend/internals/features/evaluation/templates/controller"
	model "jurnalku_backend/internals/features/evaluation/templates/model"
	"jurnalku_backend/internals/features/evaluation/templates/service"
)

// TemplateAdminRoutes: rubrik evaluasi (template → Unsur → Sub-Unsur → indikator).
func TemplateAdminRoutes(r fiber.Router, svc *service.HierarchyService, guard *iservice.GuardService) {
	h := ctrl.NewTemplateController(svc, guard)

	// =====================
	// Templates
	// =====================
	t := r.Group("/templates")
	t.Get("/", h.List)
	t.Post("/", h.Create)
	t.Get("/active", h.Active)
	t.Get("/:id", h.GetByID)
	t.Patch("/:id", h.Update)
	t.Delete("/:id", h.Delete)
	t.Get("/:id/tree", h.Tree)
	t.Get("/:id/weights", h.Weights)
	t.Get("/:id/can-delete", h.CanDelete(model.EntityTemplate))
	t.Post("/:id/clone", h.Clone)
	t.Post("/:id/activate", h.Activate)
	t.Post("/:id/deactivate", h.Deactivate)
	t.Post("/:id/categories", h.CreateCategory)

	// =====================
	// Unsur
	// =====================
	cat := r.Group("/categories")
	cat.Patch("/:id", h.UpdateCategory)
	cat.Delete("/:id", h.DeleteCategory)
	cat.Get("/:id/can-delete", h.CanDelete(model.EntityCategory))
	cat.Post("/:id/sub-categories", h.CreateSubCategory)
	cat.Post("/:id/essay-questions", h.CreateEssayQuestion)

	// =====================
	// Sub-Unsur
	// =====================
	sub := r.Group("/sub-categories")
	sub.Patch("/:id", h.UpdateSubCategory)
	sub.Patch("/:id/move", h.MoveSubCategory)
	sub.Delete("/:id", h.DeleteSubCategory)
	sub.Get("/:id/can-delete", h.CanDelete(model.EntitySubCategory))
	sub.Post("/:id/indicators", h.CreateIndicator)

	// =====================
	// Indikator & uraian
	// =====================
	ind := r.Group("/indicators")
	ind.Patch("/:id", h.UpdateIndicator)
	ind.Patch("/:id/active", h.SetIndicatorActive)
	ind.Delete("/:id", h.DeleteIndicator)
	ind.Get("/:id/can-delete", h.CanDelete(model.EntityIndicator))

	essay := r.Group("/essay-questions")
	essay.Patch("/:id", h.UpdateEssayQuestion)
	essay.Delete("/:id", h.DeleteEssayQuestion)
}
