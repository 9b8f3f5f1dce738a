// file: internals/features/evaluation/templates/model/indicator_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================
// Enum: Answer Type
// =========================

type AnswerType string

const (
	AnswerTypeBoolean AnswerType = "boolean"
	AnswerTypeScale   AnswerType = "scale" // 1..5
	AnswerTypeText    AnswerType = "text"
)

func (a AnswerType) Valid() bool {
	switch a {
	case AnswerTypeBoolean, AnswerTypeScale, AnswerTypeText:
		return true
	}
	return false
}

const (
	ScaleMin = 1
	ScaleMax = 5
)

// =========================
// Model: evaluation_indicators
// =========================
//
// Dua representasi hidup berdampingan selama migrasi:
//   - legacy       : IndicatorSubCategoryID nil, pakai LegacyCategory/LegacySubCategory
//   - hierarchical : IndicatorSubCategoryID terisi, field legacy diabaikan
type IndicatorModel struct {
	IndicatorID            uuid.UUID  `gorm:"type:uuid;primaryKey;column:indicator_id" json:"indicator_id"`
	IndicatorSubCategoryID *uuid.UUID `gorm:"type:uuid;index;column:indicator_sub_category_id" json:"indicator_sub_category_id,omitempty"`
	IndicatorTemplateID    *uuid.UUID `gorm:"type:uuid;index;column:indicator_template_id" json:"indicator_template_id,omitempty"`

	IndicatorLegacyCategory    *string `gorm:"type:varchar(255);column:indicator_legacy_category" json:"indicator_legacy_category,omitempty"`
	IndicatorLegacySubCategory *string `gorm:"type:varchar(255);column:indicator_legacy_sub_category" json:"indicator_legacy_sub_category,omitempty"`

	IndicatorCode               string       `gorm:"type:varchar(40);not null;column:indicator_code" json:"indicator_code"`
	IndicatorQuestion           string       `gorm:"type:text;not null;column:indicator_question" json:"indicator_question"`
	IndicatorDescription        *string      `gorm:"type:text;column:indicator_description" json:"indicator_description,omitempty"`
	IndicatorWeight             float64      `gorm:"type:numeric(6,2);not null;default:0;column:indicator_weight" json:"indicator_weight"`
	IndicatorAnswerType         AnswerType   `gorm:"type:varchar(10);not null;default:'boolean';column:indicator_answer_type" json:"indicator_answer_type"`
	IndicatorRequiresAttachment bool         `gorm:"not null;default:false;column:indicator_requires_attachment" json:"indicator_requires_attachment"`
	IndicatorIsActive           bool         `gorm:"not null;column:indicator_is_active" json:"indicator_is_active"`
	IndicatorSortOrder          int          `gorm:"type:int;not null;default:0;column:indicator_sort_order" json:"indicator_sort_order"`
	IndicatorRecordStatus       RecordStatus `gorm:"type:varchar(10);not null;default:'active';index;column:indicator_record_status" json:"indicator_record_status"`

	IndicatorCreatedBy *uuid.UUID `gorm:"type:uuid;column:indicator_created_by" json:"indicator_created_by,omitempty"`
	IndicatorUpdatedBy *uuid.UUID `gorm:"type:uuid;column:indicator_updated_by" json:"indicator_updated_by,omitempty"`

	IndicatorCreatedAt time.Time `gorm:"not null;autoCreateTime;column:indicator_created_at" json:"indicator_created_at"`
	IndicatorUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:indicator_updated_at" json:"indicator_updated_at"`
}

func (IndicatorModel) TableName() string { return "evaluation_indicators" }

func (m *IndicatorModel) BeforeCreate(tx *gorm.DB) error {
	if m.IndicatorID == uuid.Nil {
		m.IndicatorID = uuid.New()
	}
	if m.IndicatorRecordStatus == "" {
		m.IndicatorRecordStatus = RecordStatusActive
	}
	return nil
}

func (m *IndicatorModel) IsLegacy() bool {
	return m.IndicatorSubCategoryID == nil
}

// LegacyKey: pasangan (category, sub_category) dari field flat, sudah di-trim.
func (m *IndicatorModel) LegacyKey() (string, string) {
	var cat, sub string
	if m.IndicatorLegacyCategory != nil {
		cat = strings.TrimSpace(*m.IndicatorLegacyCategory)
	}
	if m.IndicatorLegacySubCategory != nil {
		sub = strings.TrimSpace(*m.IndicatorLegacySubCategory)
	}
	return cat, sub
}

// AnswerTypeLabel untuk tampilan admin.
func (m *IndicatorModel) AnswerTypeLabel() string {
	switch m.IndicatorAnswerType {
	case AnswerTypeBoolean:
		return "Ya/Tidak"
	case AnswerTypeScale:
		return "Skala 1-5"
	case AnswerTypeText:
		return "Uraian"
	}
	return string(m.IndicatorAnswerType)
}
