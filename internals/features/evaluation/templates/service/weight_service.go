// file: internals/features/evaluation/templates/service/weight_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jurnalku_backend/internals/features/evaluation/evalerr"
	model "jurnalku_backend/internals/features/evaluation/templates/model"
)

// TotalCategoryWeight menjumlahkan bobot semua Unsur aktif di satu template.
// Deviasi dari 100 = warning (draft bisa masih diedit), bukan error.
func (s *HierarchyService) TotalCategoryWeight(ctx context.Context, templateID uuid.UUID) (float64, error) {
	return sumCategoryWeights(s.DB.WithContext(ctx), templateID)
}

func sumCategoryWeights(db *gorm.DB, templateID uuid.UUID) (float64, error) {
	var sum float64
	if err := db.Model(&model.CategoryModel{}).
		Where("category_template_id = ? AND category_record_status = ?", templateID, model.RecordStatusActive).
		Select("COALESCE(SUM(category_weight), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return model.Round2(sum), nil
}

/* =========================================================
   WEIGHT REPORT
========================================================= */

type CategoryWeightCheck struct {
	CategoryID   uuid.UUID `json:"category_id"`
	Code         string    `json:"code"`
	Weight       float64   `json:"weight"`
	IndicatorSum float64   `json:"indicator_sum"`
	Balanced     bool      `json:"balanced"`
}

type WeightReport struct {
	TemplateID    uuid.UUID             `json:"template_id"`
	CategoryTotal float64               `json:"category_total"`
	Balanced      bool                  `json:"balanced"`
	Categories    []CategoryWeightCheck `json:"categories"`
	Warnings      []string              `json:"warnings"`
}

// ValidateWeights: cek Σ Unsur = 100 dan Σ indikator aktif per Unsur = bobot Unsur.
// Hasilnya laporan (warning), tidak memblok penyimpanan.
func (s *HierarchyService) ValidateWeights(ctx context.Context, templateID uuid.UUID) (*WeightReport, error) {
	tree, err := s.LoadTree(ctx, templateID, true)
	if err != nil {
		return nil, err
	}
	return buildWeightReport(tree), nil
}

func buildWeightReport(tree *model.TemplateTree) *WeightReport {
	rep := &WeightReport{
		TemplateID: tree.TemplateID,
		Categories: make([]CategoryWeightCheck, 0, len(tree.Categories)),
		Warnings:   []string{},
	}
	var total float64
	for i := range tree.Categories {
		c := &tree.Categories[i]
		total += c.CategoryWeight
		sum := model.Round2(c.IndicatorWeightSum())
		chk := CategoryWeightCheck{
			CategoryID:   c.CategoryID,
			Code:         c.CategoryCode,
			Weight:       c.CategoryWeight,
			IndicatorSum: sum,
			Balanced:     model.WeightsEqual(sum, c.CategoryWeight),
		}
		if !chk.Balanced {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("unsur %s: total bobot indikator %.2f, bobot unsur %.2f", c.CategoryCode, sum, c.CategoryWeight))
		}
		rep.Categories = append(rep.Categories, chk)
	}
	rep.CategoryTotal = model.Round2(total)
	rep.Balanced = model.WeightsEqual(rep.CategoryTotal, model.TargetTemplateWeight)
	if !rep.Balanced {
		rep.Warnings = append(rep.Warnings,
			fmt.Sprintf("total bobot unsur %.2f, seharusnya %.0f", rep.CategoryTotal, model.TargetTemplateWeight))
	}
	return rep
}

func (s *HierarchyService) warnWeights(ctx context.Context, templateID uuid.UUID) {
	total, err := s.TotalCategoryWeight(ctx, templateID)
	if err != nil {
		s.Log.Warn("[HierarchyService] gagal menghitung total bobot", zap.Error(err))
		return
	}
	if !model.WeightsEqual(total, model.TargetTemplateWeight) {
		s.Log.Warn("[HierarchyService] total bobot unsur belum 100",
			zap.String("template_id", templateID.String()),
			zap.Float64("total", total))
	}
}

/* =========================================================
   ACTIVATE / DEACTIVATE
========================================================= */

// ActivateTemplate: bobot wajib pas 100 saat dipublikasikan; template lain
// dengan type yang sama dinonaktifkan di transaksi yang sama.
func (s *HierarchyService) ActivateTemplate(ctx context.Context, templateID uuid.UUID, actor uuid.UUID) (*model.TemplateModel, error) {
	var out *model.TemplateModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t model.TemplateModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("template_id = ? AND template_record_status = ?", templateID, model.RecordStatusActive).
			Take(&t).Error; err != nil {
			return notFound("template", templateID, err)
		}

		total, err := sumCategoryWeights(tx, templateID)
		if err != nil {
			return err
		}
		if !model.WeightsEqual(total, model.TargetTemplateWeight) {
			return evalerr.Validation("category_weight", "total category weight is %.2f, expected %.0f",
				total, model.TargetTemplateWeight)
		}

		if err := tx.Model(&model.TemplateModel{}).
			Where("template_type = ? AND template_id <> ? AND template_is_active = ?", t.TemplateType, templateID, true).
			Updates(map[string]any{
				"template_is_active":  false,
				"template_updated_by": actorPtr(actor),
			}).Error; err != nil {
			return err
		}

		t.TemplateIsActive = true
		t.TemplateUpdatedBy = actorPtr(actor)
		if err := tx.Save(&t).Error; err != nil {
			return err
		}
		out = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("[HierarchyService] template activated",
		zap.String("template_id", templateID.String()),
		zap.String("type", string(out.TemplateType)))
	return out, nil
}

// DeactivateTemplate: diblok kalau ini satu-satunya template aktif untuk type-nya.
func (s *HierarchyService) DeactivateTemplate(ctx context.Context, templateID uuid.UUID, actor uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.Guard == nil {
			return errGuardMissing
		}
		if _, err := s.findTemplate(tx, templateID); err != nil {
			return err
		}
		if err := s.Guard.CheckDeactivation(tx, model.EntityTemplate, templateID); err != nil {
			return err
		}
		return tx.Model(&model.TemplateModel{}).
			Where("template_id = ?", templateID).
			Updates(map[string]any{
				"template_is_active":  false,
				"template_updated_by": actorPtr(actor),
			}).Error
	})
}
