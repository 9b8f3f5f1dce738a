// file: internals/features/evaluation/templates/dto/hierarchy_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	model "jurnalku_backend/internals/features/evaluation/templates/model"
	"jurnalku_backend/internals/features/evaluation/templates/service"
)

/* =========================================================
   Unsur (category)
========================================================= */

type CreateCategoryRequest struct {
	CategoryCode         string  `json:"category_code"`
	CategoryName         string  `json:"category_name"`
	CategoryWeight       float64 `json:"category_weight"`
	CategoryDisplayOrder *int    `json:"category_display_order"`
	CategoryDescription  *string `json:"category_description"`
}

func (r *CreateCategoryRequest) ToInput() service.CreateCategoryInput {
	return service.CreateCategoryInput{
		Code:         strings.TrimSpace(r.CategoryCode),
		Name:         strings.TrimSpace(r.CategoryName),
		Weight:       r.CategoryWeight,
		DisplayOrder: r.CategoryDisplayOrder,
		Description:  r.CategoryDescription,
	}
}

type UpdateCategoryRequest struct {
	CategoryCode         *string  `json:"category_code"`
	CategoryName         *string  `json:"category_name"`
	CategoryWeight       *float64 `json:"category_weight"`
	CategoryDisplayOrder *int     `json:"category_display_order"`
	CategoryDescription  *string  `json:"category_description"`
}

func (r *UpdateCategoryRequest) ToInput() service.UpdateCategoryInput {
	return service.UpdateCategoryInput{
		Code:         r.CategoryCode,
		Name:         r.CategoryName,
		Weight:       r.CategoryWeight,
		DisplayOrder: r.CategoryDisplayOrder,
		Description:  r.CategoryDescription,
	}
}

/* =========================================================
   Sub-Unsur
========================================================= */

type CreateSubCategoryRequest struct {
	SubCategoryCode         string  `json:"sub_category_code"`
	SubCategoryName         string  `json:"sub_category_name"`
	SubCategoryDisplayOrder *int    `json:"sub_category_display_order"`
	SubCategoryDescription  *string `json:"sub_category_description"`
}

func (r *CreateSubCategoryRequest) ToInput() service.CreateSubCategoryInput {
	return service.CreateSubCategoryInput{
		Code:         strings.TrimSpace(r.SubCategoryCode),
		Name:         strings.TrimSpace(r.SubCategoryName),
		DisplayOrder: r.SubCategoryDisplayOrder,
		Description:  r.SubCategoryDescription,
	}
}

type UpdateSubCategoryRequest struct {
	SubCategoryCode         *string `json:"sub_category_code"`
	SubCategoryName         *string `json:"sub_category_name"`
	SubCategoryDisplayOrder *int    `json:"sub_category_display_order"`
	SubCategoryDescription  *string `json:"sub_category_description"`
}

func (r *UpdateSubCategoryRequest) ToInput() service.UpdateSubCategoryInput {
	return service.UpdateSubCategoryInput{
		Code:         r.SubCategoryCode,
		Name:         r.SubCategoryName,
		DisplayOrder: r.SubCategoryDisplayOrder,
		Description:  r.SubCategoryDescription,
	}
}

// Pindah Sub-Unsur ke Unsur lain (template yang sama).
type MoveSubCategoryRequest struct {
	SubCategoryCategoryID uuid.UUID `json:"sub_category_category_id" validate:"required"`
}

/* =========================================================
   Indikator
========================================================= */

type CreateIndicatorRequest struct {
	IndicatorCode               string           `json:"indicator_code"`
	IndicatorQuestion           string           `json:"indicator_question"`
	IndicatorDescription        *string          `json:"indicator_description"`
	IndicatorWeight             float64          `json:"indicator_weight"`
	IndicatorAnswerType         model.AnswerType `json:"indicator_answer_type"`
	IndicatorRequiresAttachment bool             `json:"indicator_requires_attachment"`
	IndicatorIsActive           *bool            `json:"indicator_is_active"` // default: true
	IndicatorSortOrder          *int             `json:"indicator_sort_order"`
}

func (r *CreateIndicatorRequest) ToInput() service.CreateIndicatorInput {
	return service.CreateIndicatorInput{
		Code:               strings.TrimSpace(r.IndicatorCode),
		Question:           strings.TrimSpace(r.IndicatorQuestion),
		Description:        r.IndicatorDescription,
		Weight:             r.IndicatorWeight,
		AnswerType:         model.AnswerType(strings.ToLower(strings.TrimSpace(string(r.IndicatorAnswerType)))),
		RequiresAttachment: r.IndicatorRequiresAttachment,
		IsActive:           r.IndicatorIsActive,
		SortOrder:          r.IndicatorSortOrder,
	}
}

type UpdateIndicatorRequest struct {
	IndicatorCode               *string           `json:"indicator_code"`
	IndicatorQuestion           *string           `json:"indicator_question"`
	IndicatorDescription        *string           `json:"indicator_description"`
	IndicatorWeight             *float64          `json:"indicator_weight"`
	IndicatorAnswerType         *model.AnswerType `json:"indicator_answer_type"`
	IndicatorRequiresAttachment *bool             `json:"indicator_requires_attachment"`
	IndicatorSortOrder          *int              `json:"indicator_sort_order"`
}

func (r *UpdateIndicatorRequest) ToInput() service.UpdateIndicatorInput {
	return service.UpdateIndicatorInput{
		Code:               r.IndicatorCode,
		Question:           r.IndicatorQuestion,
		Description:        r.IndicatorDescription,
		Weight:             r.IndicatorWeight,
		AnswerType:         r.IndicatorAnswerType,
		RequiresAttachment: r.IndicatorRequiresAttachment,
		SortOrder:          r.IndicatorSortOrder,
	}
}

type SetIndicatorActiveRequest struct {
	IndicatorIsActive *bool `json:"indicator_is_active" validate:"required"`
}

/* =========================================================
   Pertanyaan uraian
========================================================= */

type CreateEssayQuestionRequest struct {
	EssayQuestionCode         string  `json:"essay_question_code"`
	EssayQuestionQuestion     string  `json:"essay_question_question"`
	EssayQuestionGuidance     *string `json:"essay_question_guidance"`
	EssayQuestionMaxWords     *int    `json:"essay_question_max_words"` // default 500
	EssayQuestionIsRequired   bool    `json:"essay_question_is_required"`
	EssayQuestionIsActive     *bool   `json:"essay_question_is_active"`
	EssayQuestionDisplayOrder *int    `json:"essay_question_display_order"`
}

func (r *CreateEssayQuestionRequest) ToInput() service.CreateEssayQuestionInput {
	maxWords := 0 // service → 500
	if r.EssayQuestionMaxWords != nil {
		maxWords = *r.EssayQuestionMaxWords
	}
	return service.CreateEssayQuestionInput{
		Code:         strings.TrimSpace(r.EssayQuestionCode),
		Question:     strings.TrimSpace(r.EssayQuestionQuestion),
		Guidance:     r.EssayQuestionGuidance,
		MaxWords:     maxWords,
		IsRequired:   r.EssayQuestionIsRequired,
		IsActive:     r.EssayQuestionIsActive,
		DisplayOrder: r.EssayQuestionDisplayOrder,
	}
}

type UpdateEssayQuestionRequest struct {
	EssayQuestionQuestion     *string `json:"essay_question_question"`
	EssayQuestionGuidance     *string `json:"essay_question_guidance"`
	EssayQuestionMaxWords     *int    `json:"essay_question_max_words"`
	EssayQuestionIsRequired   *bool   `json:"essay_question_is_required"`
	EssayQuestionIsActive     *bool   `json:"essay_question_is_active"`
	EssayQuestionDisplayOrder *int    `json:"essay_question_display_order"`
}

func (r *UpdateEssayQuestionRequest) ToInput() service.UpdateEssayQuestionInput {
	return service.UpdateEssayQuestionInput{
		Question:     r.EssayQuestionQuestion,
		Guidance:     r.EssayQuestionGuidance,
		MaxWords:     r.EssayQuestionMaxWords,
		IsRequired:   r.EssayQuestionIsRequired,
		IsActive:     r.EssayQuestionIsActive,
		DisplayOrder: r.EssayQuestionDisplayOrder,
	}
}
