// file: internals/features/evaluation/templates/controller/hierarchy_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jurnalku_backend/internals/features/evaluation/templates/dto"
	helper "jurnalku_backend/internals/helpers"
)

// idAndActor: :id path param + X-Actor-ID, dipakai hampir semua handler tulis.
func idAndActor(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	actor, err := helper.ActorID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return id, actor, nil
}

/* ===================== UNSUR ===================== */

// POST /templates/:id/categories
func (ctrl *TemplateController) CreateCategory(c *fiber.Ctx) error {
	templateID, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctrl.Svc.CreateCategory(c.UserContext(), templateID, req.ToInput(), actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Unsur dibuat", row)
}

// PATCH /categories/:id
func (ctrl *TemplateController) UpdateCategory(c *fiber.Ctx) error {
	id, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctrl.Svc.UpdateCategory(c.UserContext(), id, req.ToInput(), actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Unsur diperbarui", row)
}

// DELETE /categories/:id
func (ctrl *TemplateController) DeleteCategory(c *fiber.Ctx) error {
	id, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := ctrl.Svc.DeleteCategory(c.UserContext(), id, actor); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Unsur dihapus", fiber.Map{"category_id": id})
}

/* ===================== SUB-UNSUR ===================== */

// POST /categories/:id/sub-categories
func (ctrl *TemplateController) CreateSubCategory(c *fiber.Ctx) error {
	categoryID, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.CreateSubCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctrl.Svc.CreateSubCategory(c.UserContext(), categoryID, req.ToInput(), actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Sub-Unsur dibuat", row)
}

// PATCH /sub-categories/:id
func (ctrl *TemplateController) UpdateSubCategory(c *fiber.Ctx) error {
	id, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.UpdateSubCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctrl.Svc.UpdateSubCategory(c.UserContext(), id, req.ToInput(), actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Sub-Unsur diperbarui", row)
}

// PATCH /sub-categories/:id/move
func (ctrl *TemplateController) MoveSubCategory(c *fiber.Ctx) error {
	id, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.MoveSubCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateRequest(&req); err != nil {
		return helper.JsonDomainError(c, err)
	}
	row, err := ctrl.Svc.MoveSubCategory(c.UserContext(), id, req.SubCategoryCategoryID, actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Sub-Unsur dipindahkan", row)
}

// DELETE /sub-categories/:id
func (ctrl *TemplateController) DeleteSubCategory(c *fiber.Ctx) error {
	id, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := ctrl.Svc.DeleteSubCategory(c.UserContext(), id, actor); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Sub-Unsur dihapus", fiber.Map{"sub_category_id": id})
}

/* ===================== INDIKATOR ===================== */

// POST /sub-categories/:id/indicators
func (ctrl *TemplateController) CreateIndicator(c *fiber.Ctx) error {
	subID, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.CreateIndicatorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctrl.Svc.CreateIndicator(c.UserContext(), subID, req.ToInput(), actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Indikator dibuat", row)
}

// PATCH /indicators/:id
func (ctrl *TemplateController) UpdateIndicator(c *fiber.Ctx) error {
	id, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.UpdateIndicatorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctrl.Svc.UpdateIndicator(c.UserContext(), id, req.ToInput(), actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Indikator diperbarui", row)
}

// PATCH /indicators/:id/active
func (ctrl *TemplateController) SetIndicatorActive(c *fiber.Ctx) error {
	id, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.SetIndicatorActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateRequest(&req); err != nil {
		return helper.JsonDomainError(c, err)
	}
	row, err := ctrl.Svc.SetIndicatorActive(c.UserContext(), id, *req.IndicatorIsActive, actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Status indikator diperbarui", row)
}

// DELETE /indicators/:id
func (ctrl *TemplateController) DeleteIndicator(c *fiber.Ctx) error {
	id, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := ctrl.Svc.DeleteIndicator(c.UserContext(), id, actor); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Indikator dihapus", fiber.Map{"indicator_id": id})
}

/* ===================== PERTANYAAN URAIAN ===================== */

// POST /categories/:id/essay-questions
func (ctrl *TemplateController) CreateEssayQuestion(c *fiber.Ctx) error {
	categoryID, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.CreateEssayQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctrl.Svc.CreateEssayQuestion(c.UserContext(), categoryID, req.ToInput(), actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Pertanyaan uraian dibuat", row)
}

// PATCH /essay-questions/:id
func (ctrl *TemplateController) UpdateEssayQuestion(c *fiber.Ctx) error {
	id, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.UpdateEssayQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	row, err := ctrl.Svc.UpdateEssayQuestion(c.UserContext(), id, req.ToInput(), actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Pertanyaan uraian diperbarui", row)
}

// DELETE /essay-questions/:id
func (ctrl *TemplateController) DeleteEssayQuestion(c *fiber.Ctx) error {
	id, actor, err := idAndActor(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := ctrl.Svc.DeleteEssayQuestion(c.UserContext(), id, actor); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Pertanyaan uraian dihapus", fiber.Map{"essay_question_id": id})
}
