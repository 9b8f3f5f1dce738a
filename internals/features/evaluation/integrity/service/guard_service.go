// file: internals/features/evaluation/integrity/service/guard_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	amodel "jurnalku_backend/internals/features/evaluation/assessments/model"
	"jurnalku_backend/internals/features/evaluation/evalerr"
	tmodel "jurnalku_backend/internals/features/evaluation/templates/model"
	"jurnalku_backend/internals/metrics"
)

/*
   IntegrityGuard:
   - turun dari entity (template / category / sub category / indicator) ke indikatornya
   - blok kalau ada response di assessment submitted/reviewed
   - template juga diblok kalau satu-satunya template aktif untuk type-nya
   Check() dipanggil di transaksi yang sama dengan delete; indikator yang terdampak
   di-lock FOR UPDATE supaya Submit (FOR SHARE) tidak bisa menyelip di antaranya.
*/

type GuardService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewGuardService(db *gorm.DB, log *zap.Logger) *GuardService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GuardService{DB: db, Log: log}
}

// CanDelete: versi advisory (read-only). Error apa pun → false (fail closed).
func (g *GuardService) CanDelete(ctx context.Context, kind tmodel.EntityKind, id uuid.UUID) (bool, error) {
	var ok bool
	err := g.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := g.Check(tx, kind, id)
		if err == nil {
			ok = true
			return nil
		}
		if evalerr.IsReferentialIntegrity(err) {
			return nil
		}
		return err
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Check: dipakai HierarchyService di dalam transaksi delete.
func (g *GuardService) Check(tx *gorm.DB, kind tmodel.EntityKind, id uuid.UUID) error {
	if kind == tmodel.EntityTemplate {
		if err := g.checkSoleActiveTemplate(tx, id); err != nil {
			return g.blocked(kind, err)
		}
	}
	return g.blocked(kind, g.checkFinalUsage(tx, kind, id))
}

// CheckDeactivation: template → aturan satu-satunya template aktif;
// indikator → aturan pemakaian di assessment final.
func (g *GuardService) CheckDeactivation(tx *gorm.DB, kind tmodel.EntityKind, id uuid.UUID) error {
	switch kind {
	case tmodel.EntityTemplate:
		return g.blocked(kind, g.checkSoleActiveTemplate(tx, id))
	default:
		return g.blocked(kind, g.checkFinalUsage(tx, kind, id))
	}
}

func (g *GuardService) blocked(kind tmodel.EntityKind, err error) error {
	if err != nil && evalerr.IsReferentialIntegrity(err) {
		metrics.DeletesBlocked.WithLabelValues(string(kind)).Inc()
		g.Log.Info("[GuardService] blocked", zap.String("entity", string(kind)), zap.Error(err))
	}
	return err
}

/* =========================================================
   RULES
========================================================= */

func (g *GuardService) checkSoleActiveTemplate(tx *gorm.DB, id uuid.UUID) error {
	var t tmodel.TemplateModel
	if err := tx.Where("template_id = ? AND template_record_status = ?", id, tmodel.RecordStatusActive).
		Take(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("template %s: %w", id, evalerr.ErrNotFound)
		}
		return err
	}
	if !t.TemplateIsActive {
		return nil
	}
	var others int64
	if err := tx.Model(&tmodel.TemplateModel{}).
		Where("template_type = ? AND template_id <> ? AND template_is_active = ? AND template_record_status = ?",
			t.TemplateType, id, true, tmodel.RecordStatusActive).
		Count(&others).Error; err != nil {
		return err
	}
	if others == 0 {
		return &evalerr.ReferentialIntegrityError{
			Entity: string(tmodel.EntityTemplate),
			ID:     id,
			Reason: fmt.Sprintf("it is the only active %s template", t.TemplateType),
		}
	}
	return nil
}

func (g *GuardService) checkFinalUsage(tx *gorm.DB, kind tmodel.EntityKind, id uuid.UUID) error {
	if err := entityExists(tx, kind, id); err != nil {
		return err
	}
	indicatorIDs, err := IndicatorIDsUnder(tx, kind, id)
	if err != nil {
		return err
	}
	if len(indicatorIDs) == 0 {
		return nil
	}

	// lock indikator terdampak (no-op di dialect tanpa row lock)
	var locked []uuid.UUID
	if err := tx.Model(&tmodel.IndicatorModel{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("indicator_id IN ?", indicatorIDs).
		Pluck("indicator_id", &locked).Error; err != nil {
		return err
	}

	var used int64
	if err := tx.Model(&amodel.ResponseModel{}).
		Joins("JOIN journal_assessments a ON a.assessment_id = journal_assessment_responses.response_assessment_id").
		Where("journal_assessment_responses.response_indicator_id IN ?", indicatorIDs).
		Where("a.assessment_status IN ?", amodel.FinalStatuses).
		Count(&used).Error; err != nil {
		return err
	}
	if used > 0 {
		return &evalerr.ReferentialIntegrityError{
			Entity: string(kind),
			ID:     id,
			Reason: fmt.Sprintf("%d responses in submitted or reviewed assessments", used),
		}
	}
	return nil
}

/* =========================================================
   HIERARCHY WALK
========================================================= */

func entityExists(tx *gorm.DB, kind tmodel.EntityKind, id uuid.UUID) error {
	var (
		m     any
		where string
	)
	switch kind {
	case tmodel.EntityTemplate:
		m, where = &tmodel.TemplateModel{}, "template_id = ? AND template_record_status = ?"
	case tmodel.EntityCategory:
		m, where = &tmodel.CategoryModel{}, "category_id = ? AND category_record_status = ?"
	case tmodel.EntitySubCategory:
		m, where = &tmodel.SubCategoryModel{}, "sub_category_id = ? AND sub_category_record_status = ?"
	case tmodel.EntityIndicator:
		m, where = &tmodel.IndicatorModel{}, "indicator_id = ? AND indicator_record_status = ?"
	default:
		return evalerr.Validation("entity", "unsupported entity kind %q", kind)
	}
	var n int64
	if err := tx.Model(m).Where(where, id, tmodel.RecordStatusActive).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, evalerr.ErrNotFound)
	}
	return nil
}

// IndicatorIDsUnder: id indikator (live) di bawah entity. Paling banyak dua query
// karena template_id sudah didenormalisasi ke indikator.
func IndicatorIDsUnder(tx *gorm.DB, kind tmodel.EntityKind, id uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	q := tx.Model(&tmodel.IndicatorModel{}).
		Where("indicator_record_status = ?", tmodel.RecordStatusActive)

	switch kind {
	case tmodel.EntityTemplate:
		q = q.Where("indicator_template_id = ?", id)
	case tmodel.EntityCategory:
		var subIDs []uuid.UUID
		if err := tx.Model(&tmodel.SubCategoryModel{}).
			Where("sub_category_category_id = ? AND sub_category_record_status = ?", id, tmodel.RecordStatusActive).
			Pluck("sub_category_id", &subIDs).Error; err != nil {
			return nil, err
		}
		if len(subIDs) == 0 {
			return nil, nil
		}
		q = q.Where("indicator_sub_category_id IN ?", subIDs)
	case tmodel.EntitySubCategory:
		q = q.Where("indicator_sub_category_id = ?", id)
	case tmodel.EntityIndicator:
		q = q.Where("indicator_id = ?", id)
	default:
		return nil, evalerr.Validation("entity", "unsupported entity kind %q", kind)
	}

	if err := q.Pluck("indicator_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
