// file: internals/features/evaluation/templates/model/essay_question_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EssayQuestionModel: pertanyaan uraian per Unsur (selalu ke Category, bukan Sub-Unsur).
// Tidak ikut skor numerik; dinilai manual.
type EssayQuestionModel struct {
	EssayQuestionID           uuid.UUID    `gorm:"type:uuid;primaryKey;column:essay_question_id" json:"essay_question_id"`
	EssayQuestionCategoryID   uuid.UUID    `gorm:"type:uuid;not null;index;column:essay_question_category_id" json:"essay_question_category_id"`
	EssayQuestionTemplateID   uuid.UUID    `gorm:"type:uuid;not null;index;column:essay_question_template_id" json:"essay_question_template_id"`
	EssayQuestionCode         string       `gorm:"type:varchar(40);not null;column:essay_question_code" json:"essay_question_code"`
	EssayQuestionQuestion     string       `gorm:"type:text;not null;column:essay_question_question" json:"essay_question_question"`
	EssayQuestionGuidance     *string      `gorm:"type:text;column:essay_question_guidance" json:"essay_question_guidance,omitempty"`
	EssayQuestionMaxWords     int          `gorm:"type:int;not null;default:500;column:essay_question_max_words" json:"essay_question_max_words"`
	EssayQuestionIsRequired   bool         `gorm:"not null;default:false;column:essay_question_is_required" json:"essay_question_is_required"`
	EssayQuestionDisplayOrder int          `gorm:"type:int;not null;default:0;column:essay_question_display_order" json:"essay_question_display_order"`
	EssayQuestionIsActive     bool         `gorm:"not null;column:essay_question_is_active" json:"essay_question_is_active"`
	EssayQuestionRecordStatus RecordStatus `gorm:"type:varchar(10);not null;default:'active';index;column:essay_question_record_status" json:"essay_question_record_status"`

	EssayQuestionCreatedBy *uuid.UUID `gorm:"type:uuid;column:essay_question_created_by" json:"essay_question_created_by,omitempty"`
	EssayQuestionUpdatedBy *uuid.UUID `gorm:"type:uuid;column:essay_question_updated_by" json:"essay_question_updated_by,omitempty"`

	EssayQuestionCreatedAt time.Time `gorm:"not null;autoCreateTime;column:essay_question_created_at" json:"essay_question_created_at"`
	EssayQuestionUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:essay_question_updated_at" json:"essay_question_updated_at"`
}

func (EssayQuestionModel) TableName() string { return "evaluation_essay_questions" }

func (m *EssayQuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.EssayQuestionID == uuid.Nil {
		m.EssayQuestionID = uuid.New()
	}
	if m.EssayQuestionRecordStatus == "" {
		m.EssayQuestionRecordStatus = RecordStatusActive
	}
	return nil
}
