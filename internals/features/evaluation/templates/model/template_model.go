// file: internals/features/evaluation/templates/model/template_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================
// Enum: Template Type
// =========================

type TemplateType string

const (
	TemplateTypeAccreditation TemplateType = "accreditation"
	TemplateTypeIndexation    TemplateType = "indexation"
)

func (t TemplateType) Valid() bool {
	return t == TemplateTypeAccreditation || t == TemplateTypeIndexation
}

// =========================
// Enum: Record Status (soft delete eksplisit)
// =========================

type RecordStatus string

const (
	RecordStatusActive  RecordStatus = "active"
	RecordStatusRetired RecordStatus = "retired"
)

// =========================
// Model: evaluation_templates
// =========================

type TemplateModel struct {
	TemplateID            uuid.UUID    `gorm:"type:uuid;primaryKey;column:template_id" json:"template_id"`
	TemplateName          string       `gorm:"type:varchar(180);not null;column:template_name" json:"template_name"`
	TemplateType          TemplateType `gorm:"type:varchar(20);not null;index:idx_template_type_active;column:template_type" json:"template_type"`
	TemplateVersion       int          `gorm:"type:int;not null;default:1;column:template_version" json:"template_version"`
	TemplateIsActive      bool         `gorm:"not null;default:false;index:idx_template_type_active;column:template_is_active" json:"template_is_active"`
	TemplateEffectiveDate *time.Time   `gorm:"type:date;column:template_effective_date" json:"template_effective_date,omitempty"`
	TemplateDescription   *string      `gorm:"type:text;column:template_description" json:"template_description,omitempty"`

	TemplateRecordStatus RecordStatus `gorm:"type:varchar(10);not null;default:'active';index;column:template_record_status" json:"template_record_status"`

	// Audit (id aktor opaque, diisi caller)
	TemplateCreatedBy *uuid.UUID `gorm:"type:uuid;column:template_created_by" json:"template_created_by,omitempty"`
	TemplateUpdatedBy *uuid.UUID `gorm:"type:uuid;column:template_updated_by" json:"template_updated_by,omitempty"`

	TemplateCreatedAt time.Time `gorm:"not null;autoCreateTime;column:template_created_at" json:"template_created_at"`
	TemplateUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:template_updated_at" json:"template_updated_at"`
}

func (TemplateModel) TableName() string { return "evaluation_templates" }

func (m *TemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.TemplateID == uuid.Nil {
		m.TemplateID = uuid.New()
	}
	if m.TemplateRecordStatus == "" {
		m.TemplateRecordStatus = RecordStatusActive
	}
	return nil
}

// Label: "Akreditasi v3 (aktif)" dsb, tanpa accessor magic.
func (m *TemplateModel) Label() string {
	kind := "Akreditasi"
	if m.TemplateType == TemplateTypeIndexation {
		kind = "Indeksasi"
	}
	label := kind + " " + m.TemplateName
	if m.TemplateIsActive {
		label += " (aktif)"
	}
	return label
}
