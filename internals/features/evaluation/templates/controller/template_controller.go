// file: internals/features/evaluation/templates/controller/template_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"jurnalku_backend/internals/features/evaluation/evalerr"
	iservice "jurnalku_backend/internals/features/evaluation/integrity/service"
	"jurnalku_backend/internals/features/evaluation/templates/dto"
	model "jurnalku_backend/internals/features/evaluation/templates/model"
	"jurnalku_backend/internals/features/evaluation/templates/service"
	helper "jurnalku_backend/internals/helpers"
)

var validate = validator.New()

type TemplateController struct {
	Svc   *service.HierarchyService
	Guard *iservice.GuardService
}

func NewTemplateController(svc *service.HierarchyService, guard *iservice.GuardService) *TemplateController {
	return &TemplateController{Svc: svc, Guard: guard}
}

/* ===================== LIST ===================== */
// GET /templates?type=accreditation&active_only=true&page=1&per_page=20
func (ctrl *TemplateController) List(c *fiber.Ctx) error {
	var typ *model.TemplateType
	if raw := strings.ToLower(strings.TrimSpace(c.Query("type"))); raw != "" {
		t := model.TemplateType(raw)
		if !t.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "type harus accreditation atau indexation")
		}
		typ = &t
	}

	rows, err := ctrl.Svc.ListTemplates(c.UserContext(), typ, helper.QueryBool(c, "active_only", false))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	page, pagination := helper.Paginate(dto.FromTemplates(rows), paging)
	return helper.JsonList(c, "Daftar template", page, &pagination)
}

// GET /templates/active?type=accreditation
func (ctrl *TemplateController) Active(c *fiber.Ctx) error {
	t := model.TemplateType(strings.ToLower(strings.TrimSpace(c.Query("type", string(model.TemplateTypeAccreditation)))))
	if !t.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "type harus accreditation atau indexation")
	}
	row, err := ctrl.Svc.ActiveTemplate(c.UserContext(), t)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Template aktif", row)
}

/* ===================== DETAIL ===================== */
// GET /templates/:id
func (ctrl *TemplateController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	row, err := ctrl.Svc.GetTemplate(c.UserContext(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Detail template", row)
}

// GET /templates/:id/tree?active_only=true
func (ctrl *TemplateController) Tree(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	tree, err := ctrl.Svc.LoadTree(c.UserContext(), id, helper.QueryBool(c, "active_only", false))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Struktur template", dto.FromTree(tree))
}

// GET /templates/:id/weights
func (ctrl *TemplateController) Weights(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	rep, err := ctrl.Svc.ValidateWeights(c.UserContext(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Validasi bobot", rep)
}

/* ===================== CREATE / UPDATE ===================== */
// POST /templates
func (ctrl *TemplateController) Create(c *fiber.Ctx) error {
	actor, err := helper.ActorID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	in, err := req.ToInput()
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	row, err := ctrl.Svc.CreateTemplate(c.UserContext(), in, actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Template dibuat", row)
}

// PATCH /templates/:id
func (ctrl *TemplateController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	actor, err := helper.ActorID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.UpdateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	in, err := req.ToInput()
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	row, err := ctrl.Svc.UpdateTemplate(c.UserContext(), id, in, actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Template diperbarui", row)
}

/* ===================== CLONE / ACTIVATE ===================== */
// POST /templates/:id/clone
func (ctrl *TemplateController) Clone(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	actor, err := helper.ActorID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req dto.CloneTemplateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
	}
	tree, err := ctrl.Svc.CloneTemplate(c.UserContext(), id, req.TemplateName, actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Template disalin", dto.FromTree(tree))
}

// POST /templates/:id/activate
func (ctrl *TemplateController) Activate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	actor, err := helper.ActorID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	row, err := ctrl.Svc.ActivateTemplate(c.UserContext(), id, actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Template diaktifkan", row)
}

// POST /templates/:id/deactivate
func (ctrl *TemplateController) Deactivate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	actor, err := helper.ActorID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := ctrl.Svc.DeactivateTemplate(c.UserContext(), id, actor); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Template dinonaktifkan", fiber.Map{"template_id": id})
}

/* ===================== DELETE ===================== */
// DELETE /templates/:id
func (ctrl *TemplateController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	actor, err := helper.ActorID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := ctrl.Svc.DeleteTemplate(c.UserContext(), id, actor); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Template dihapus", fiber.Map{"template_id": id})
}

// CanDelete: GET /<entity>/:id/can-delete, satu handler per jenis entity.
func (ctrl *TemplateController) CanDelete(kind model.EntityKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := helper.ParseUUIDParam(c, "id")
		if err != nil {
			return helper.JsonDomainError(c, err)
		}
		ok, err := ctrl.Guard.CanDelete(c.UserContext(), kind, id)
		if err != nil {
			return helper.JsonDomainError(c, err)
		}
		return helper.JsonOK(c, "", dto.CanDeleteResponse{Entity: kind, ID: id.String(), CanDelete: ok})
	}
}

func validateRequest(req any) error {
	return evalerr.FromValidator(validate.Struct(req))
}
