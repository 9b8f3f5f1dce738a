// file: internals/features/evaluation/migration/controller/migration_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jurnalku_backend/internals/features/evaluation/evalerr"
	"jurnalku_backend/internals/features/evaluation/migration/service"
	helper "jurnalku_backend/internals/helpers"
)

type RunLegacyRequest struct {
	TemplateID uuid.UUID `json:"template_id" validate:"required"`
}

type MigrationController struct {
	Migrator *service.LegacyMigrator
	validate *validator.Validate
}

func NewMigrationController(m *service.LegacyMigrator) *MigrationController {
	return &MigrationController{Migrator: m, validate: validator.New()}
}

// POST /migrations/legacy
// Kegagalan per indikator ada di report (200), bukan error HTTP.
func (ctrl *MigrationController) RunLegacy(c *fiber.Ctx) error {
	actor, err := helper.ActorID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var req RunLegacyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.JsonDomainError(c, evalerr.FromValidator(err))
	}

	rep, err := ctrl.Migrator.Run(c.UserContext(), req.TemplateID, actor)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	msg := "Migrasi selesai"
	switch {
	case rep.RunID == nil && rep.OK():
		msg = "Tidak ada indikator legacy"
	case !rep.OK():
		msg = "Migrasi selesai dengan catatan"
	}
	return helper.JsonOK(c, msg, rep)
}

// GET /migrations/runs?template_id=
func (ctrl *MigrationController) ListRuns(c *fiber.Ctx) error {
	templateID, err := helper.ParseUUIDQuery(c, "template_id")
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	runs, err := ctrl.Migrator.ListRuns(c.UserContext(), templateID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	page, pagination := helper.Paginate(runs, helper.ResolvePaging(c, 20, 100))
	return helper.JsonList(c, "Riwayat migrasi", page, &pagination)
}
