// file: internals/features/evaluation/evalerr/errors.go
package evalerr

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrNotFound dipakai semua service evaluasi untuk row yang tidak ada / sudah retired.
var ErrNotFound = errors.New("record not found")

/* =========================================================
   ValidationError
========================================================= */

// ValidationError: input tidak valid (skala di luar 1..5, bobot tidak seimbang,
// field wajib kosong).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

func Validation(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

/* =========================================================
   InvalidStateError
========================================================= */

// InvalidStateError: aksi tidak diizinkan pada status entity saat ini.
type InvalidStateError struct {
	Entity string
	ID     uuid.UUID
	State  string
	Action string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s %s %s in state %q", e.Action, e.Entity, e.ID, e.State)
}

/* =========================================================
   ReferentialIntegrityError
========================================================= */

// ReferentialIntegrityError: delete/deactivate diblok karena entity sudah dipakai
// di assessment final (submitted/reviewed).
type ReferentialIntegrityError struct {
	Entity string
	ID     uuid.UUID
	Reason string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %s is still referenced: %s", e.Entity, e.ID, e.Reason)
}

/* =========================================================
   CrossTemplateMoveError
========================================================= */

type CrossTemplateMoveError struct {
	SubCategoryID  uuid.UUID
	FromTemplateID uuid.UUID
	ToTemplateID   uuid.UUID
}

func (e *CrossTemplateMoveError) Error() string {
	return fmt.Sprintf("sub category %s cannot move from template %s to template %s",
		e.SubCategoryID, e.FromTemplateID, e.ToTemplateID)
}

/* =========================================================
   MigrationError (dikumpulkan, tidak di-throw)
========================================================= */

type MigrationErrorKind string

const (
	MigrationUnmatchedKey   MigrationErrorKind = "unmatched_key"
	MigrationUnassigned     MigrationErrorKind = "unassigned_indicator"
	MigrationOrphan         MigrationErrorKind = "orphan_sub_category"
	MigrationWeightMismatch MigrationErrorKind = "weight_mismatch"
)

type MigrationError struct {
	Kind        MigrationErrorKind `json:"kind"`
	IndicatorID *uuid.UUID         `json:"indicator_id,omitempty"`
	EntityID    *uuid.UUID         `json:"entity_id,omitempty"`
	Key         string             `json:"key,omitempty"`
	Message     string             `json:"message"`
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration %s: %s", e.Kind, e.Message)
}

/* =========================================================
   Helpers
========================================================= */

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsInvalidState(err error) bool {
	var v *InvalidStateError
	return errors.As(err, &v)
}

func IsReferentialIntegrity(err error) bool {
	var v *ReferentialIntegrityError
	return errors.As(err, &v)
}

func IsCrossTemplateMove(err error) bool {
	var v *CrossTemplateMoveError
	return errors.As(err, &v)
}

// FromValidator mengubah hasil validator.v10 menjadi ValidationError (field pertama).
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return &ValidationError{Field: fe.Field(), Message: "failed on '" + fe.Tag() + "'"}
	}
	return &ValidationError{Message: err.Error()}
}
