// file: internals/features/evaluation/assessments/controller/assessment_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"jurnalku_backend/internals/features/evaluation/assessments/dto"
	"jurnalku_backend/internals/features/evaluation/assessments/service"
	"jurnalku_backend/internals/features/evaluation/evalerr"
	helper "jurnalku_backend/internals/helpers"
)

type AssessmentController struct {
	Svc      *service.WorkflowService
	validate *validator.Validate
}

func NewAssessmentController(svc *service.WorkflowService) *AssessmentController {
	return &AssessmentController{Svc: svc, validate: validator.New()}
}

/* ===================== LIST / DETAIL ===================== */

// GET /assessments?journal_id=
func (ctrl *AssessmentController) List(c *fiber.Ctx) error {
	journalID, err := helper.ParseUUIDQuery(c, "journal_id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if journalID == nil {
		return helper.JsonValidationError(c, map[string][]string{"journal_id": {"wajib diisi"}})
	}
	rows, err := ctrl.Svc.ListAssessments(c.UserContext(), *journalID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	page, pagination := helper.Paginate(dto.FromModels(rows), helper.ResolvePaging(c, 20, 100))
	return helper.JsonList(c, "Daftar penilaian", page, &pagination)
}

// GET /assessments/:id
func (ctrl *AssessmentController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	row, err := ctrl.Svc.GetAssessment(c.UserContext(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Detail penilaian", dto.FromModel(row))
}

// GET /assessments/:id/summary
func (ctrl *AssessmentController) Summary(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	sum, err := ctrl.Svc.Summary(c.UserContext(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Ringkasan penilaian", sum)
}

// GET /assessments/:id/completion
func (ctrl *AssessmentController) Completion(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	pct, err := ctrl.Svc.CompletionPercentage(c.UserContext(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{"assessment_id": id, "completion_percentage": pct})
}

/* ===================== WRITE ===================== */

// POST /assessments
func (ctrl *AssessmentController) Create(c *fiber.Ctx) error {
	actor, err := helper.ActorID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.CreateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctrl.Svc.CreateAssessment(c.UserContext(), req.ToInput(), actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Penilaian dibuat", dto.FromModel(row))
}

// PUT /assessments/:id/responses
func (ctrl *AssessmentController) SaveResponse(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	actor, err := helper.ActorID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.SaveResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctrl.Svc.SaveResponse(c.UserContext(), id, req.ToInput(), actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Jawaban disimpan", row)
}

// POST /assessments/:id/submit
func (ctrl *AssessmentController) Submit(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	actor, err := helper.ActorID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	row, err := ctrl.Svc.Submit(c.UserContext(), id, actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Penilaian diajukan", dto.FromModel(row))
}

// POST /assessments/:id/review
func (ctrl *AssessmentController) Review(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	reviewer, err := helper.RequireActorID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.ReviewRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
	}
	row, err := ctrl.Svc.Review(c.UserContext(), id, req.ToInput(reviewer))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Penilaian direviu", dto.FromModel(row))
}

// PATCH /responses/:id/grade
func (ctrl *AssessmentController) GradeResponse(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	reviewer, err := helper.RequireActorID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.GradeResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.JsonDomainError(c, evalerr.FromValidator(err))
	}
	row, err := ctrl.Svc.GradeTextResponse(c.UserContext(), id, *req.ResponseManualScore, reviewer)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Nilai uraian disimpan", row)
}
