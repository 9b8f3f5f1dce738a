// file: internals/features/evaluation/templates/service/hierarchy_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	amodel "jurnalku_backend/internals/features/evaluation/assessments/model"
	"jurnalku_backend/internals/features/evaluation/evalerr"
	model "jurnalku_backend/internals/features/evaluation/templates/model"
)

/* =========================================================
   SERVICE
========================================================= */

// DeletionGuard dijalankan di dalam transaksi yang sama dengan write destruktif.
// Implementasinya ada di integrity/service.
type DeletionGuard interface {
	Check(tx *gorm.DB, kind model.EntityKind, id uuid.UUID) error
	CheckDeactivation(tx *gorm.DB, kind model.EntityKind, id uuid.UUID) error
}

type HierarchyService struct {
	DB    *gorm.DB
	Guard DeletionGuard
	Log   *zap.Logger

	validate *validator.Validate
}

func NewHierarchyService(db *gorm.DB, guard DeletionGuard, log *zap.Logger) *HierarchyService {
	if log == nil {
		log = zap.NewNop()
	}
	return &HierarchyService{
		DB:       db,
		Guard:    guard,
		Log:      log,
		validate: validator.New(),
	}
}

func (s *HierarchyService) check(in any) error {
	return evalerr.FromValidator(s.validate.Struct(in))
}

func actorPtr(actor uuid.UUID) *uuid.UUID {
	if actor == uuid.Nil {
		return nil
	}
	a := actor
	return &a
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func notFound(entity string, id uuid.UUID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", entity, id, evalerr.ErrNotFound)
	}
	return err
}

/* =========================================================
   INPUTS
========================================================= */

type CreateTemplateInput struct {
	Name          string             `validate:"required,max=180"`
	Type          model.TemplateType `validate:"required,oneof=accreditation indexation"`
	Version       int                `validate:"gte=0"`
	EffectiveDate *time.Time
	Description   *string
}

type UpdateTemplateInput struct {
	Name          *string `validate:"omitempty,min=1,max=180"`
	EffectiveDate *time.Time
	Description   *string
}

type CreateCategoryInput struct {
	Code         string  `validate:"required,max=40"`
	Name         string  `validate:"required,max=255"`
	Weight       float64 `validate:"gte=0,lte=100"`
	DisplayOrder *int    `validate:"omitempty,gte=0"`
	Description  *string
}

type UpdateCategoryInput struct {
	Code         *string  `validate:"omitempty,min=1,max=40"`
	Name         *string  `validate:"omitempty,min=1,max=255"`
	Weight       *float64 `validate:"omitempty,gte=0,lte=100"`
	DisplayOrder *int     `validate:"omitempty,gte=0"`
	Description  *string
}

type CreateSubCategoryInput struct {
	Code         string `validate:"required,max=40"`
	Name         string `validate:"required,max=255"`
	DisplayOrder *int   `validate:"omitempty,gte=0"`
	Description  *string
}

type UpdateSubCategoryInput struct {
	Code         *string `validate:"omitempty,min=1,max=40"`
	Name         *string `validate:"omitempty,min=1,max=255"`
	DisplayOrder *int    `validate:"omitempty,gte=0"`
	Description  *string
}

type CreateIndicatorInput struct {
	Code               string           `validate:"required,max=40"`
	Question           string           `validate:"required"`
	Description        *string
	Weight             float64          `validate:"gte=0,lte=100"`
	AnswerType         model.AnswerType `validate:"required,oneof=boolean scale text"`
	RequiresAttachment bool
	IsActive           *bool
	SortOrder          *int `validate:"omitempty,gte=0"`
}

type UpdateIndicatorInput struct {
	Code               *string           `validate:"omitempty,min=1,max=40"`
	Question           *string           `validate:"omitempty,min=1"`
	Description        *string
	Weight             *float64          `validate:"omitempty,gte=0,lte=100"`
	AnswerType         *model.AnswerType `validate:"omitempty,oneof=boolean scale text"`
	RequiresAttachment *bool
	SortOrder          *int `validate:"omitempty,gte=0"`
}

type CreateEssayQuestionInput struct {
	Code         string `validate:"required,max=40"`
	Question     string `validate:"required"`
	Guidance     *string
	MaxWords     int  `validate:"gte=0"`
	IsRequired   bool
	IsActive     *bool
	DisplayOrder *int `validate:"omitempty,gte=0"`
}

type UpdateEssayQuestionInput struct {
	Question     *string `validate:"omitempty,min=1"`
	Guidance     *string
	MaxWords     *int `validate:"omitempty,gte=0"`
	IsRequired   *bool
	IsActive     *bool
	DisplayOrder *int `validate:"omitempty,gte=0"`
}

/* =========================================================
   LOADERS (live rows only)
========================================================= */

func (s *HierarchyService) findTemplate(tx *gorm.DB, id uuid.UUID) (*model.TemplateModel, error) {
	var t model.TemplateModel
	err := tx.Where("template_id = ? AND template_record_status = ?", id, model.RecordStatusActive).
		Take(&t).Error
	if err != nil {
		return nil, notFound("template", id, err)
	}
	return &t, nil
}

func (s *HierarchyService) findCategory(tx *gorm.DB, id uuid.UUID) (*model.CategoryModel, error) {
	var c model.CategoryModel
	err := tx.Where("category_id = ? AND category_record_status = ?", id, model.RecordStatusActive).
		Take(&c).Error
	if err != nil {
		return nil, notFound("category", id, err)
	}
	return &c, nil
}

func (s *HierarchyService) findSubCategory(tx *gorm.DB, id uuid.UUID) (*model.SubCategoryModel, error) {
	var sc model.SubCategoryModel
	err := tx.Where("sub_category_id = ? AND sub_category_record_status = ?", id, model.RecordStatusActive).
		Take(&sc).Error
	if err != nil {
		return nil, notFound("sub category", id, err)
	}
	return &sc, nil
}

func (s *HierarchyService) findIndicator(tx *gorm.DB, id uuid.UUID) (*model.IndicatorModel, error) {
	var ind model.IndicatorModel
	err := tx.Where("indicator_id = ? AND indicator_record_status = ?", id, model.RecordStatusActive).
		Take(&ind).Error
	if err != nil {
		return nil, notFound("indicator", id, err)
	}
	return &ind, nil
}

func (s *HierarchyService) findEssayQuestion(tx *gorm.DB, id uuid.UUID) (*model.EssayQuestionModel, error) {
	var eq model.EssayQuestionModel
	err := tx.Where("essay_question_id = ? AND essay_question_record_status = ?", id, model.RecordStatusActive).
		Take(&eq).Error
	if err != nil {
		return nil, notFound("essay question", id, err)
	}
	return &eq, nil
}

// nextOrder: MAX(order)+1 di bawah parent, 0 kalau kosong.
func nextOrder(tx *gorm.DB, table, orderCol, parentCol, statusCol string, parentID uuid.UUID) (int, error) {
	var max int
	err := tx.Table(table).
		Where(parentCol+" = ? AND "+statusCol+" = ?", parentID, model.RecordStatusActive).
		Select("COALESCE(MAX(" + orderCol + "), -1)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

/* =========================================================
   TEMPLATE
========================================================= */

func (s *HierarchyService) CreateTemplate(ctx context.Context, in CreateTemplateInput, actor uuid.UUID) (*model.TemplateModel, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.check(&in); err != nil {
		return nil, err
	}

	row := model.TemplateModel{
		TemplateName:          in.Name,
		TemplateType:          in.Type,
		TemplateVersion:       in.Version,
		TemplateIsActive:      false,
		TemplateEffectiveDate: in.EffectiveDate,
		TemplateDescription:   trimPtr(in.Description),
		TemplateCreatedBy:     actorPtr(actor),
		TemplateUpdatedBy:     actorPtr(actor),
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if row.TemplateVersion == 0 {
			v, err := nextTemplateVersion(tx, in.Type)
			if err != nil {
				return err
			}
			row.TemplateVersion = v
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("[HierarchyService] template created",
		zap.String("template_id", row.TemplateID.String()),
		zap.String("type", string(row.TemplateType)),
		zap.Int("version", row.TemplateVersion))
	return &row, nil
}

func nextTemplateVersion(tx *gorm.DB, t model.TemplateType) (int, error) {
	var max int
	if err := tx.Model(&model.TemplateModel{}).
		Where("template_type = ?", t).
		Select("COALESCE(MAX(template_version), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (s *HierarchyService) GetTemplate(ctx context.Context, id uuid.UUID) (*model.TemplateModel, error) {
	return s.findTemplate(s.DB.WithContext(ctx), id)
}

// ListTemplates: filter opsional per type dan flag aktif, urut type → version terbaru.
func (s *HierarchyService) ListTemplates(ctx context.Context, t *model.TemplateType, activeOnly bool) ([]model.TemplateModel, error) {
	q := s.DB.WithContext(ctx).
		Where("template_record_status = ?", model.RecordStatusActive)
	if t != nil {
		q = q.Where("template_type = ?", *t)
	}
	if activeOnly {
		q = q.Where("template_is_active = ?", true)
	}
	var rows []model.TemplateModel
	if err := q.Order("template_type ASC, template_version DESC, template_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ActiveTemplate: template aktif untuk satu type (konvensi: satu per type).
func (s *HierarchyService) ActiveTemplate(ctx context.Context, t model.TemplateType) (*model.TemplateModel, error) {
	var row model.TemplateModel
	err := s.DB.WithContext(ctx).
		Where("template_type = ? AND template_is_active = ? AND template_record_status = ?",
			t, true, model.RecordStatusActive).
		Order("template_version DESC").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("active %s template: %w", t, evalerr.ErrNotFound)
		}
		return nil, err
	}
	return &row, nil
}

func (s *HierarchyService) UpdateTemplate(ctx context.Context, id uuid.UUID, in UpdateTemplateInput, actor uuid.UUID) (*model.TemplateModel, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}
	var out *model.TemplateModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.findTemplate(tx, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			t.TemplateName = strings.TrimSpace(*in.Name)
		}
		if in.EffectiveDate != nil {
			t.TemplateEffectiveDate = in.EffectiveDate
		}
		if in.Description != nil {
			t.TemplateDescription = trimPtr(in.Description)
		}
		t.TemplateUpdatedBy = actorPtr(actor)
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		out = t
		return nil
	})
	return out, err
}

/* =========================================================
   CATEGORY
========================================================= */

func (s *HierarchyService) CreateCategory(ctx context.Context, templateID uuid.UUID, in CreateCategoryInput, actor uuid.UUID) (*model.CategoryModel, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.check(&in); err != nil {
		return nil, err
	}

	var row model.CategoryModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.findTemplate(tx, templateID); err != nil {
			return err
		}
		order := 0
		if in.DisplayOrder != nil {
			order = *in.DisplayOrder
		} else {
			n, err := nextOrder(tx, "evaluation_categories", "category_display_order",
				"category_template_id", "category_record_status", templateID)
			if err != nil {
				return err
			}
			order = n
		}
		row = model.CategoryModel{
			CategoryTemplateID:   templateID,
			CategoryCode:         in.Code,
			CategoryName:         in.Name,
			CategoryDescription:  trimPtr(in.Description),
			CategoryWeight:       model.Round2(in.Weight),
			CategoryDisplayOrder: order,
			CategoryCreatedBy:    actorPtr(actor),
			CategoryUpdatedBy:    actorPtr(actor),
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	s.warnWeights(ctx, templateID)
	return &row, nil
}

func (s *HierarchyService) UpdateCategory(ctx context.Context, id uuid.UUID, in UpdateCategoryInput, actor uuid.UUID) (*model.CategoryModel, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}
	var out *model.CategoryModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.findCategory(tx, id)
		if err != nil {
			return err
		}
		if in.Code != nil {
			c.CategoryCode = strings.TrimSpace(*in.Code)
		}
		if in.Name != nil {
			c.CategoryName = strings.TrimSpace(*in.Name)
		}
		if in.Weight != nil {
			c.CategoryWeight = model.Round2(*in.Weight)
		}
		if in.DisplayOrder != nil {
			c.CategoryDisplayOrder = *in.DisplayOrder
		}
		if in.Description != nil {
			c.CategoryDescription = trimPtr(in.Description)
		}
		c.CategoryUpdatedBy = actorPtr(actor)
		if err := tx.Save(c).Error; err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.warnWeights(ctx, out.CategoryTemplateID)
	return out, nil
}

/* =========================================================
   SUB CATEGORY
========================================================= */

func (s *HierarchyService) CreateSubCategory(ctx context.Context, categoryID uuid.UUID, in CreateSubCategoryInput, actor uuid.UUID) (*model.SubCategoryModel, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.check(&in); err != nil {
		return nil, err
	}

	var row model.SubCategoryModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := s.findCategory(tx, categoryID)
		if err != nil {
			return err
		}
		order := 0
		if in.DisplayOrder != nil {
			order = *in.DisplayOrder
		} else {
			n, err := nextOrder(tx, "evaluation_sub_categories", "sub_category_display_order",
				"sub_category_category_id", "sub_category_record_status", categoryID)
			if err != nil {
				return err
			}
			order = n
		}
		row = model.SubCategoryModel{
			SubCategoryCategoryID:   categoryID,
			SubCategoryTemplateID:   cat.CategoryTemplateID,
			SubCategoryCode:         in.Code,
			SubCategoryName:         in.Name,
			SubCategoryDescription:  trimPtr(in.Description),
			SubCategoryDisplayOrder: order,
			SubCategoryCreatedBy:    actorPtr(actor),
			SubCategoryUpdatedBy:    actorPtr(actor),
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *HierarchyService) UpdateSubCategory(ctx context.Context, id uuid.UUID, in UpdateSubCategoryInput, actor uuid.UUID) (*model.SubCategoryModel, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}
	var out *model.SubCategoryModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sc, err := s.findSubCategory(tx, id)
		if err != nil {
			return err
		}
		if in.Code != nil {
			sc.SubCategoryCode = strings.TrimSpace(*in.Code)
		}
		if in.Name != nil {
			sc.SubCategoryName = strings.TrimSpace(*in.Name)
		}
		if in.DisplayOrder != nil {
			sc.SubCategoryDisplayOrder = *in.DisplayOrder
		}
		if in.Description != nil {
			sc.SubCategoryDescription = trimPtr(in.Description)
		}
		sc.SubCategoryUpdatedBy = actorPtr(actor)
		if err := tx.Save(sc).Error; err != nil {
			return err
		}
		out = sc
		return nil
	})
	return out, err
}

/* =========================================================
   INDICATOR
========================================================= */

func (s *HierarchyService) CreateIndicator(ctx context.Context, subCategoryID uuid.UUID, in CreateIndicatorInput, actor uuid.UUID) (*model.IndicatorModel, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Question = strings.TrimSpace(in.Question)
	if err := s.check(&in); err != nil {
		return nil, err
	}

	var row model.IndicatorModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sc, err := s.findSubCategory(tx, subCategoryID)
		if err != nil {
			return err
		}
		order := 0
		if in.SortOrder != nil {
			order = *in.SortOrder
		} else {
			n, err := nextOrder(tx, "evaluation_indicators", "indicator_sort_order",
				"indicator_sub_category_id", "indicator_record_status", subCategoryID)
			if err != nil {
				return err
			}
			order = n
		}
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		subID, tplID := sc.SubCategoryID, sc.SubCategoryTemplateID
		row = model.IndicatorModel{
			IndicatorSubCategoryID:      &subID,
			IndicatorTemplateID:         &tplID,
			IndicatorCode:               in.Code,
			IndicatorQuestion:           in.Question,
			IndicatorDescription:        trimPtr(in.Description),
			IndicatorWeight:             model.Round2(in.Weight),
			IndicatorAnswerType:         in.AnswerType,
			IndicatorRequiresAttachment: in.RequiresAttachment,
			IndicatorIsActive:           active,
			IndicatorSortOrder:          order,
			IndicatorCreatedBy:          actorPtr(actor),
			IndicatorUpdatedBy:          actorPtr(actor),
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateIndicator: answer_type dikunci setelah indikator punya response
// (skor lama tidak bisa ditafsir ulang); bobot dikunci setelah indikator
// dipakai assessment final (skor dan max_score-nya sudah beku).
func (s *HierarchyService) UpdateIndicator(ctx context.Context, id uuid.UUID, in UpdateIndicatorInput, actor uuid.UUID) (*model.IndicatorModel, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}
	var out *model.IndicatorModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ind, err := s.findIndicator(tx, id)
		if err != nil {
			return err
		}
		if in.AnswerType != nil && *in.AnswerType != ind.IndicatorAnswerType {
			var n int64
			if err := tx.Model(&amodel.ResponseModel{}).
				Where("response_indicator_id = ?", id).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return evalerr.Validation("answer_type", "indicator already has %d responses", n)
			}
			ind.IndicatorAnswerType = *in.AnswerType
		}
		if in.Code != nil {
			ind.IndicatorCode = strings.TrimSpace(*in.Code)
		}
		if in.Question != nil {
			ind.IndicatorQuestion = strings.TrimSpace(*in.Question)
		}
		if in.Description != nil {
			ind.IndicatorDescription = trimPtr(in.Description)
		}
		if in.Weight != nil && model.Round2(*in.Weight) != ind.IndicatorWeight {
			if s.Guard == nil {
				return errGuardMissing
			}
			if err := s.Guard.CheckDeactivation(tx, model.EntityIndicator, id); err != nil {
				return err
			}
			ind.IndicatorWeight = model.Round2(*in.Weight)
		}
		if in.RequiresAttachment != nil {
			ind.IndicatorRequiresAttachment = *in.RequiresAttachment
		}
		if in.SortOrder != nil {
			ind.IndicatorSortOrder = *in.SortOrder
		}
		ind.IndicatorUpdatedBy = actorPtr(actor)
		if err := tx.Save(ind).Error; err != nil {
			return err
		}
		out = ind
		return nil
	})
	return out, err
}

/* =========================================================
   ESSAY QUESTION (nempel ke Category)
========================================================= */

func (s *HierarchyService) CreateEssayQuestion(ctx context.Context, categoryID uuid.UUID, in CreateEssayQuestionInput, actor uuid.UUID) (*model.EssayQuestionModel, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Question = strings.TrimSpace(in.Question)
	if err := s.check(&in); err != nil {
		return nil, err
	}

	var row model.EssayQuestionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := s.findCategory(tx, categoryID)
		if err != nil {
			return err
		}
		order := 0
		if in.DisplayOrder != nil {
			order = *in.DisplayOrder
		} else {
			n, err := nextOrder(tx, "evaluation_essay_questions", "essay_question_display_order",
				"essay_question_category_id", "essay_question_record_status", categoryID)
			if err != nil {
				return err
			}
			order = n
		}
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		maxWords := in.MaxWords
		if maxWords == 0 {
			maxWords = 500
		}
		row = model.EssayQuestionModel{
			EssayQuestionCategoryID:   categoryID,
			EssayQuestionTemplateID:   cat.CategoryTemplateID,
			EssayQuestionCode:         in.Code,
			EssayQuestionQuestion:     in.Question,
			EssayQuestionGuidance:     trimPtr(in.Guidance),
			EssayQuestionMaxWords:     maxWords,
			EssayQuestionIsRequired:   in.IsRequired,
			EssayQuestionDisplayOrder: order,
			EssayQuestionIsActive:     active,
			EssayQuestionCreatedBy:    actorPtr(actor),
			EssayQuestionUpdatedBy:    actorPtr(actor),
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *HierarchyService) UpdateEssayQuestion(ctx context.Context, id uuid.UUID, in UpdateEssayQuestionInput, actor uuid.UUID) (*model.EssayQuestionModel, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}
	var out *model.EssayQuestionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		eq, err := s.findEssayQuestion(tx, id)
		if err != nil {
			return err
		}
		if in.Question != nil {
			eq.EssayQuestionQuestion = strings.TrimSpace(*in.Question)
		}
		if in.Guidance != nil {
			eq.EssayQuestionGuidance = trimPtr(in.Guidance)
		}
		if in.MaxWords != nil {
			eq.EssayQuestionMaxWords = *in.MaxWords
		}
		if in.IsRequired != nil {
			eq.EssayQuestionIsRequired = *in.IsRequired
		}
		if in.IsActive != nil {
			eq.EssayQuestionIsActive = *in.IsActive
		}
		if in.DisplayOrder != nil {
			eq.EssayQuestionDisplayOrder = *in.DisplayOrder
		}
		eq.EssayQuestionUpdatedBy = actorPtr(actor)
		if err := tx.Save(eq).Error; err != nil {
			return err
		}
		out = eq
		return nil
	})
	return out, err
}

// DeleteEssayQuestion: essay tidak ikut skor, jadi tidak lewat guard.
func (s *HierarchyService) DeleteEssayQuestion(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.findEssayQuestion(tx, id); err != nil {
			return err
		}
		return tx.Model(&model.EssayQuestionModel{}).
			Where("essay_question_id = ?", id).
			Updates(map[string]any{
				"essay_question_record_status": model.RecordStatusRetired,
				"essay_question_updated_by":    actorPtr(actor),
			}).Error
	})
}
