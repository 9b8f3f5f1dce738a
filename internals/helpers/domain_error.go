package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jurnalku_backend/internals/features/evaluation/evalerr"
)

// JsonDomainError memetakan error service evaluasi ke response JSON konsisten.
//
//	ValidationError                 → 422
//	ErrNotFound                     → 404
//	InvalidState / RefIntegrity /
//	CrossTemplateMove               → 409
//	*fiber.Error                    → kode aslinya
//	lainnya                         → 500
func JsonDomainError(c *fiber.Ctx, err error) error {
	var (
		ve  *evalerr.ValidationError
		ise *evalerr.InvalidStateError
		rie *evalerr.ReferentialIntegrityError
		cte *evalerr.CrossTemplateMoveError
		fe  *fiber.Error
	)

	switch {
	case errors.As(err, &ve):
		field := ve.Field
		if field == "" {
			field = "_"
		}
		return JsonValidationError(c, map[string][]string{field: {ve.Message}})
	case errors.Is(err, evalerr.ErrNotFound):
		return JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &ise), errors.As(err, &rie), errors.As(err, &cte):
		return JsonError(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &fe):
		return JsonError(c, fe.Code, fe.Message)
	default:
		return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
}
