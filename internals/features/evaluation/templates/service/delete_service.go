// file: internals/features/evaluation/templates/service/delete_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	amodel "jurnalku_backend/internals/features/evaluation/assessments/model"
	ascore "jurnalku_backend/internals/features/evaluation/assessments/service"
	"jurnalku_backend/internals/features/evaluation/evalerr"
	model "jurnalku_backend/internals/features/evaluation/templates/model"
)

// Tanpa guard, operasi destruktif harus gagal (fail closed).
var errGuardMissing = errors.New("integrity guard not configured")

/* =========================================================
   MOVE SUB CATEGORY
========================================================= */

// MoveSubCategory memindah Sub-Unsur ke Unsur lain di template yang sama.
// Lintas template → CrossTemplateMoveError. Sub-Unsur ditaruh di urutan terakhir.
func (s *HierarchyService) MoveSubCategory(ctx context.Context, subCategoryID, newCategoryID uuid.UUID, actor uuid.UUID) (*model.SubCategoryModel, error) {
	var out *model.SubCategoryModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sc model.SubCategoryModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("sub_category_id = ? AND sub_category_record_status = ?", subCategoryID, model.RecordStatusActive).
			Take(&sc).Error; err != nil {
			return notFound("sub category", subCategoryID, err)
		}

		current, err := s.findCategory(tx, sc.SubCategoryCategoryID)
		if err != nil {
			return err
		}
		target, err := s.findCategory(tx, newCategoryID)
		if err != nil {
			return err
		}
		if target.CategoryTemplateID != current.CategoryTemplateID {
			return &evalerr.CrossTemplateMoveError{
				SubCategoryID:  subCategoryID,
				FromTemplateID: current.CategoryTemplateID,
				ToTemplateID:   target.CategoryTemplateID,
			}
		}
		if target.CategoryID == current.CategoryID {
			out = &sc
			return nil
		}

		order, err := nextOrder(tx, "evaluation_sub_categories", "sub_category_display_order",
			"sub_category_category_id", "sub_category_record_status", newCategoryID)
		if err != nil {
			return err
		}
		sc.SubCategoryCategoryID = newCategoryID
		sc.SubCategoryDisplayOrder = order
		sc.SubCategoryUpdatedBy = actorPtr(actor)
		if err := tx.Save(&sc).Error; err != nil {
			return err
		}
		out = &sc
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("[HierarchyService] sub category moved",
		zap.String("sub_category_id", subCategoryID.String()),
		zap.String("category_id", newCategoryID.String()))
	return out, nil
}

/* =========================================================
   DELETE (retire): guard + write dalam satu transaksi
========================================================= */

func (s *HierarchyService) DeleteTemplate(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	return s.guardedRetire(ctx, model.EntityTemplate, id, func(tx *gorm.DB) error {
		if _, err := s.findTemplate(tx, id); err != nil {
			return err
		}
		by := actorPtr(actor)
		if err := retire(tx, &model.EssayQuestionModel{}, "essay_question", "essay_question_template_id = ?", id, by); err != nil {
			return err
		}
		if err := retire(tx, &model.IndicatorModel{}, "indicator", "indicator_template_id = ?", id, by); err != nil {
			return err
		}
		if err := retire(tx, &model.SubCategoryModel{}, "sub_category", "sub_category_template_id = ?", id, by); err != nil {
			return err
		}
		if err := retire(tx, &model.CategoryModel{}, "category", "category_template_id = ?", id, by); err != nil {
			return err
		}
		return tx.Model(&model.TemplateModel{}).
			Where("template_id = ?", id).
			Updates(map[string]any{
				"template_record_status": model.RecordStatusRetired,
				"template_is_active":     false,
				"template_updated_by":    by,
			}).Error
	})
}

func (s *HierarchyService) DeleteCategory(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	var templateID uuid.UUID
	err := s.guardedRetire(ctx, model.EntityCategory, id, func(tx *gorm.DB) error {
		cat, err := s.findCategory(tx, id)
		if err != nil {
			return err
		}
		templateID = cat.CategoryTemplateID
		by := actorPtr(actor)
		subIDs, err := subCategoryIDs(tx, id)
		if err != nil {
			return err
		}
		if len(subIDs) > 0 {
			if err := retire(tx, &model.IndicatorModel{}, "indicator", "indicator_sub_category_id IN ?", subIDs, by); err != nil {
				return err
			}
		}
		if err := retire(tx, &model.EssayQuestionModel{}, "essay_question", "essay_question_category_id = ?", id, by); err != nil {
			return err
		}
		if err := retire(tx, &model.SubCategoryModel{}, "sub_category", "sub_category_category_id = ?", id, by); err != nil {
			return err
		}
		return retire(tx, &model.CategoryModel{}, "category", "category_id = ?", id, by)
	})
	if err != nil {
		return err
	}
	s.warnWeights(ctx, templateID)
	return nil
}

func (s *HierarchyService) DeleteSubCategory(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	return s.guardedRetire(ctx, model.EntitySubCategory, id, func(tx *gorm.DB) error {
		if _, err := s.findSubCategory(tx, id); err != nil {
			return err
		}
		by := actorPtr(actor)
		if err := retire(tx, &model.IndicatorModel{}, "indicator", "indicator_sub_category_id = ?", id, by); err != nil {
			return err
		}
		return retire(tx, &model.SubCategoryModel{}, "sub_category", "sub_category_id = ?", id, by)
	})
}

func (s *HierarchyService) DeleteIndicator(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	return s.guardedRetire(ctx, model.EntityIndicator, id, func(tx *gorm.DB) error {
		if _, err := s.findIndicator(tx, id); err != nil {
			return err
		}
		return retire(tx, &model.IndicatorModel{}, "indicator", "indicator_id = ?", id, actorPtr(actor))
	})
}

// SetIndicatorActive: aktivasi bebas, deaktivasi lewat guard.
func (s *HierarchyService) SetIndicatorActive(ctx context.Context, id uuid.UUID, active bool, actor uuid.UUID) (*model.IndicatorModel, error) {
	var out *model.IndicatorModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ind, err := s.findIndicator(tx, id)
		if err != nil {
			return err
		}
		if !active && ind.IndicatorIsActive {
			if s.Guard == nil {
				return errGuardMissing
			}
			if err := s.Guard.CheckDeactivation(tx, model.EntityIndicator, id); err != nil {
				return err
			}
		}
		ind.IndicatorIsActive = active
		ind.IndicatorUpdatedBy = actorPtr(actor)
		if err := tx.Save(ind).Error; err != nil {
			return err
		}
		out = ind
		return nil
	})
	return out, err
}

func (s *HierarchyService) guardedRetire(ctx context.Context, kind model.EntityKind, id uuid.UUID, write func(tx *gorm.DB) error) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.Guard == nil {
			return errGuardMissing
		}
		if err := s.Guard.Check(tx, kind, id); err != nil {
			return err
		}
		if err := write(tx); err != nil {
			return err
		}
		return dropDraftResponses(tx)
	})
	if err != nil {
		s.Log.Warn("[HierarchyService] delete rejected",
			zap.String("entity", string(kind)),
			zap.String("id", id.String()),
			zap.Error(err))
		return err
	}
	s.Log.Info("[HierarchyService] retired",
		zap.String("entity", string(kind)),
		zap.String("id", id.String()))
	return nil
}

// dropDraftResponses: jawaban draft ke indikator yang sudah di-retire dihapus dan
// total draft dihitung ulang, supaya draft tetap bisa di-submit. Assessment final
// tidak tersentuh (sudah diblok guard sebelum write).
func dropDraftResponses(tx *gorm.DB) error {
	var stale []struct {
		ResponseID           uuid.UUID
		ResponseAssessmentID uuid.UUID
	}
	if err := tx.Model(&amodel.ResponseModel{}).
		Select("journal_assessment_responses.response_id, journal_assessment_responses.response_assessment_id").
		Joins("JOIN journal_assessments a ON a.assessment_id = journal_assessment_responses.response_assessment_id").
		Joins("JOIN evaluation_indicators i ON i.indicator_id = journal_assessment_responses.response_indicator_id").
		Where("a.assessment_status = ? AND i.indicator_record_status = ?", amodel.AssessmentStatusDraft, model.RecordStatusRetired).
		Scan(&stale).Error; err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	responseIDs := make([]uuid.UUID, 0, len(stale))
	seen := make(map[uuid.UUID]struct{}, len(stale))
	assessmentIDs := make([]uuid.UUID, 0, len(stale))
	for _, r := range stale {
		responseIDs = append(responseIDs, r.ResponseID)
		if _, ok := seen[r.ResponseAssessmentID]; !ok {
			seen[r.ResponseAssessmentID] = struct{}{}
			assessmentIDs = append(assessmentIDs, r.ResponseAssessmentID)
		}
	}

	var drafts []amodel.AssessmentModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("assessment_id IN ? AND assessment_status = ?", assessmentIDs, amodel.AssessmentStatusDraft).
		Find(&drafts).Error; err != nil {
		return err
	}
	if err := tx.Where("response_id IN ?", responseIDs).Delete(&amodel.ResponseModel{}).Error; err != nil {
		return err
	}
	for i := range drafts {
		a := &drafts[i]
		if err := ascore.RefreshTotals(tx, a); err != nil {
			return err
		}
		if err := tx.Model(&amodel.AssessmentModel{}).
			Where("assessment_id = ?", a.AssessmentID).
			Updates(map[string]any{
				"assessment_total_score": a.AssessmentTotalScore,
				"assessment_max_score":   a.AssessmentMaxScore,
				"assessment_percentage":  a.AssessmentPercentage,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

// retire men-set <prefix>_record_status = retired untuk row yang cocok.
func retire(tx *gorm.DB, m any, prefix, where string, arg any, by *uuid.UUID) error {
	return tx.Model(m).
		Where(where, arg).
		Where(prefix+"_record_status = ?", model.RecordStatusActive).
		Updates(map[string]any{
			prefix + "_record_status": model.RecordStatusRetired,
			prefix + "_updated_by":    by,
		}).Error
}

func subCategoryIDs(tx *gorm.DB, categoryID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.Model(&model.SubCategoryModel{}).
		Where("sub_category_category_id = ? AND sub_category_record_status = ?", categoryID, model.RecordStatusActive).
		Pluck("sub_category_id", &ids).Error
	return ids, err
}
