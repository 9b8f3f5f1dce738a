// file: internals/features/evaluation/templates/service/tree_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	model "jurnalku_backend/internals/features/evaluation/templates/model"
	"jurnalku_backend/internals/metrics"
)

const (
	orderCategories     = "category_display_order ASC, category_created_at ASC, category_id ASC"
	orderSubCategories  = "sub_category_display_order ASC, sub_category_created_at ASC, sub_category_id ASC"
	orderIndicators     = "indicator_sort_order ASC, indicator_created_at ASC, indicator_id ASC"
	orderEssayQuestions = "essay_question_display_order ASC, essay_question_created_at ASC, essay_question_id ASC"

	cloneBatchSize = 200
)

/* =========================================================
   LOAD TREE
========================================================= */

// LoadTree membaca seluruh subtree template dalam 5 query (satu per level) lalu
// merakitnya di memori. activeOnly menyaring indikator & essay yang nonaktif.
func (s *HierarchyService) LoadTree(ctx context.Context, templateID uuid.UUID, activeOnly bool) (*model.TemplateTree, error) {
	return s.loadTree(s.DB.WithContext(ctx), templateID, activeOnly)
}

func (s *HierarchyService) loadTree(tx *gorm.DB, templateID uuid.UUID, activeOnly bool) (*model.TemplateTree, error) {
	t, err := s.findTemplate(tx, templateID)
	if err != nil {
		return nil, err
	}

	var cats []model.CategoryModel
	if err := tx.Where("category_template_id = ? AND category_record_status = ?", templateID, model.RecordStatusActive).
		Order(orderCategories).
		Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	var subs []model.SubCategoryModel
	if err := tx.Where("sub_category_template_id = ? AND sub_category_record_status = ?", templateID, model.RecordStatusActive).
		Order(orderSubCategories).
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("load sub categories: %w", err)
	}

	var inds []model.IndicatorModel
	qi := tx.Where("indicator_template_id = ? AND indicator_record_status = ?", templateID, model.RecordStatusActive)
	if activeOnly {
		qi = qi.Where("indicator_is_active = ?", true)
	}
	if err := qi.Order(orderIndicators).Find(&inds).Error; err != nil {
		return nil, fmt.Errorf("load indicators: %w", err)
	}

	var essays []model.EssayQuestionModel
	qe := tx.Where("essay_question_template_id = ? AND essay_question_record_status = ?", templateID, model.RecordStatusActive)
	if activeOnly {
		qe = qe.Where("essay_question_is_active = ?", true)
	}
	if err := qe.Order(orderEssayQuestions).Find(&essays).Error; err != nil {
		return nil, fmt.Errorf("load essay questions: %w", err)
	}

	return assembleTree(*t, cats, subs, inds, essays), nil
}

// assembleTree: input sudah terurut, urutan dipertahankan saat dikelompokkan.
func assembleTree(
	t model.TemplateModel,
	cats []model.CategoryModel,
	subs []model.SubCategoryModel,
	inds []model.IndicatorModel,
	essays []model.EssayQuestionModel,
) *model.TemplateTree {
	indsBySub := make(map[uuid.UUID][]model.IndicatorModel, len(subs))
	for _, ind := range inds {
		if ind.IndicatorSubCategoryID == nil {
			continue
		}
		indsBySub[*ind.IndicatorSubCategoryID] = append(indsBySub[*ind.IndicatorSubCategoryID], ind)
	}

	subsByCat := make(map[uuid.UUID][]model.SubCategoryNode, len(cats))
	for _, sc := range subs {
		node := model.SubCategoryNode{
			SubCategoryModel: sc,
			Indicators:       indsBySub[sc.SubCategoryID],
		}
		if node.Indicators == nil {
			node.Indicators = []model.IndicatorModel{}
		}
		subsByCat[sc.SubCategoryCategoryID] = append(subsByCat[sc.SubCategoryCategoryID], node)
	}

	essaysByCat := make(map[uuid.UUID][]model.EssayQuestionModel, len(cats))
	for _, eq := range essays {
		essaysByCat[eq.EssayQuestionCategoryID] = append(essaysByCat[eq.EssayQuestionCategoryID], eq)
	}

	tree := &model.TemplateTree{
		TemplateModel: t,
		Categories:    make([]model.CategoryNode, 0, len(cats)),
	}
	for _, c := range cats {
		node := model.CategoryNode{
			CategoryModel:  c,
			SubCategories:  subsByCat[c.CategoryID],
			EssayQuestions: essaysByCat[c.CategoryID],
		}
		if node.SubCategories == nil {
			node.SubCategories = []model.SubCategoryNode{}
		}
		if node.EssayQuestions == nil {
			node.EssayQuestions = []model.EssayQuestionModel{}
		}
		tree.Categories = append(tree.Categories, node)
	}
	return tree
}

/* =========================================================
   CLONE
========================================================= */

// CloneTemplate membuat salinan dalam (categories → sub categories → indicators,
// categories → essay questions) di bawah template baru yang nonaktif.
// Sumber dibaca sekali (LoadTree), salinan ditulis per level dalam satu transaksi.
func (s *HierarchyService) CloneTemplate(ctx context.Context, templateID uuid.UUID, newName *string, actor uuid.UUID) (*model.TemplateTree, error) {
	var cloneID uuid.UUID

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		src, err := s.loadTree(tx, templateID, false)
		if err != nil {
			return err
		}

		version, err := nextTemplateVersion(tx, src.TemplateType)
		if err != nil {
			return err
		}

		name := src.TemplateName + " (Salinan)"
		if newName != nil && strings.TrimSpace(*newName) != "" {
			name = strings.TrimSpace(*newName)
		}

		clone := model.TemplateModel{
			TemplateID:            uuid.New(),
			TemplateName:          name,
			TemplateType:          src.TemplateType,
			TemplateVersion:       version,
			TemplateIsActive:      false,
			TemplateEffectiveDate: src.TemplateEffectiveDate,
			TemplateDescription:   src.TemplateDescription,
			TemplateCreatedBy:     actorPtr(actor),
			TemplateUpdatedBy:     actorPtr(actor),
		}
		if err := tx.Create(&clone).Error; err != nil {
			return fmt.Errorf("create clone template: %w", err)
		}
		cloneID = clone.TemplateID

		cats, subs, inds, essays := copySubtree(src, clone.TemplateID, actorPtr(actor))
		if len(cats) > 0 {
			if err := tx.CreateInBatches(&cats, cloneBatchSize).Error; err != nil {
				return fmt.Errorf("clone categories: %w", err)
			}
		}
		if len(subs) > 0 {
			if err := tx.CreateInBatches(&subs, cloneBatchSize).Error; err != nil {
				return fmt.Errorf("clone sub categories: %w", err)
			}
		}
		if len(inds) > 0 {
			if err := tx.CreateInBatches(&inds, cloneBatchSize).Error; err != nil {
				return fmt.Errorf("clone indicators: %w", err)
			}
		}
		if len(essays) > 0 {
			if err := tx.CreateInBatches(&essays, cloneBatchSize).Error; err != nil {
				return fmt.Errorf("clone essay questions: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TemplatesCloned.Inc()
	s.Log.Info("[HierarchyService] template cloned",
		zap.String("source_id", templateID.String()),
		zap.String("clone_id", cloneID.String()))

	return s.LoadTree(ctx, cloneID, false)
}

// copySubtree memberi ID baru ke setiap node dan mengarahkan parent ke salinan.
// display_order / sort_order / flag aktif dipertahankan.
func copySubtree(src *model.TemplateTree, templateID uuid.UUID, actor *uuid.UUID) (
	[]model.CategoryModel, []model.SubCategoryModel, []model.IndicatorModel, []model.EssayQuestionModel,
) {
	var (
		cats   []model.CategoryModel
		subs   []model.SubCategoryModel
		inds   []model.IndicatorModel
		essays []model.EssayQuestionModel
	)

	for _, c := range src.Categories {
		cat := c.CategoryModel
		cat.CategoryID = uuid.New()
		cat.CategoryTemplateID = templateID
		cat.CategoryRecordStatus = model.RecordStatusActive
		cat.CategoryCreatedBy, cat.CategoryUpdatedBy = actor, actor
		cat.CategoryCreatedAt, cat.CategoryUpdatedAt = time.Time{}, time.Time{}
		cats = append(cats, cat)

		for _, sn := range c.SubCategories {
			sc := sn.SubCategoryModel
			sc.SubCategoryID = uuid.New()
			sc.SubCategoryCategoryID = cat.CategoryID
			sc.SubCategoryTemplateID = templateID
			sc.SubCategoryRecordStatus = model.RecordStatusActive
			sc.SubCategoryCreatedBy, sc.SubCategoryUpdatedBy = actor, actor
			sc.SubCategoryCreatedAt, sc.SubCategoryUpdatedAt = time.Time{}, time.Time{}
			subs = append(subs, sc)

			for _, in := range sn.Indicators {
				ind := in
				subID, tplID := sc.SubCategoryID, templateID
				ind.IndicatorID = uuid.New()
				ind.IndicatorSubCategoryID = &subID
				ind.IndicatorTemplateID = &tplID
				ind.IndicatorRecordStatus = model.RecordStatusActive
				ind.IndicatorCreatedBy, ind.IndicatorUpdatedBy = actor, actor
				ind.IndicatorCreatedAt, ind.IndicatorUpdatedAt = time.Time{}, time.Time{}
				inds = append(inds, ind)
			}
		}

		for _, e := range c.EssayQuestions {
			eq := e
			eq.EssayQuestionID = uuid.New()
			eq.EssayQuestionCategoryID = cat.CategoryID
			eq.EssayQuestionTemplateID = templateID
			eq.EssayQuestionRecordStatus = model.RecordStatusActive
			eq.EssayQuestionCreatedBy, eq.EssayQuestionUpdatedBy = actor, actor
			eq.EssayQuestionCreatedAt, eq.EssayQuestionUpdatedAt = time.Time{}, time.Time{}
			essays = append(essays, eq)
		}
	}
	return cats, subs, inds, essays
}
