package route

import (
	"github.com/gofiber/fiber/v2"

	ctrl "jurnalku_backend/internals/features/evaluation/assessments/controller"
	"jurnalku_backend/internals/features/evaluation/assessments/service"
)

func AssessmentAdminRoutes(r fiber.Router, svc *service.WorkflowService) {
	h := ctrl.NewAssessmentController(svc)

	a := r.Group("/assessments")
	a.Get("/", h.List) // ?journal_id=
	a.Post("/", h.Create)
	a.Get("/:id", h.GetByID)
	a.Get("/:id/summary", h.Summary)
	a.Get("/:id/completion", h.Completion)
	a.Put("/:id/responses", h.SaveResponse)
	a.Post("/:id/submit", h.Submit)
	a.Post("/:id/review", h.Review)

	r.Patch("/responses/:id/grade", h.GradeResponse)
}
