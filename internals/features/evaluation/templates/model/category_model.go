// file: internals/features/evaluation/templates/model/category_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================
// Model: evaluation_categories ("Unsur")
// =========================

type CategoryModel struct {
	CategoryID           uuid.UUID    `gorm:"type:uuid;primaryKey;column:category_id" json:"category_id"`
	CategoryTemplateID   uuid.UUID    `gorm:"type:uuid;not null;index;column:category_template_id" json:"category_template_id"`
	CategoryCode         string       `gorm:"type:varchar(40);not null;column:category_code" json:"category_code"`
	CategoryName         string       `gorm:"type:varchar(255);not null;column:category_name" json:"category_name"`
	CategoryDescription  *string      `gorm:"type:text;column:category_description" json:"category_description,omitempty"`
	CategoryWeight       float64      `gorm:"type:numeric(6,2);not null;default:0;column:category_weight" json:"category_weight"`
	CategoryDisplayOrder int          `gorm:"type:int;not null;default:0;column:category_display_order" json:"category_display_order"`
	CategoryRecordStatus RecordStatus `gorm:"type:varchar(10);not null;default:'active';index;column:category_record_status" json:"category_record_status"`

	CategoryCreatedBy *uuid.UUID `gorm:"type:uuid;column:category_created_by" json:"category_created_by,omitempty"`
	CategoryUpdatedBy *uuid.UUID `gorm:"type:uuid;column:category_updated_by" json:"category_updated_by,omitempty"`

	CategoryCreatedAt time.Time `gorm:"not null;autoCreateTime;column:category_created_at" json:"category_created_at"`
	CategoryUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:category_updated_at" json:"category_updated_at"`
}

func (CategoryModel) TableName() string { return "evaluation_categories" }

func (m *CategoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.CategoryID == uuid.Nil {
		m.CategoryID = uuid.New()
	}
	if m.CategoryRecordStatus == "" {
		m.CategoryRecordStatus = RecordStatusActive
	}
	return nil
}

// =========================
// Model: evaluation_sub_categories ("Sub-Unsur")
// =========================

type SubCategoryModel struct {
	SubCategoryID         uuid.UUID `gorm:"type:uuid;primaryKey;column:sub_category_id" json:"sub_category_id"`
	SubCategoryCategoryID uuid.UUID `gorm:"type:uuid;not null;index;column:sub_category_category_id" json:"sub_category_category_id"`
	// denormalized untuk index hierarki
	SubCategoryTemplateID   uuid.UUID    `gorm:"type:uuid;not null;index;column:sub_category_template_id" json:"sub_category_template_id"`
	SubCategoryCode         string       `gorm:"type:varchar(40);not null;column:sub_category_code" json:"sub_category_code"`
	SubCategoryName         string       `gorm:"type:varchar(255);not null;column:sub_category_name" json:"sub_category_name"`
	SubCategoryDescription  *string      `gorm:"type:text;column:sub_category_description" json:"sub_category_description,omitempty"`
	SubCategoryDisplayOrder int          `gorm:"type:int;not null;default:0;column:sub_category_display_order" json:"sub_category_display_order"`
	SubCategoryRecordStatus RecordStatus `gorm:"type:varchar(10);not null;default:'active';index;column:sub_category_record_status" json:"sub_category_record_status"`

	SubCategoryCreatedBy *uuid.UUID `gorm:"type:uuid;column:sub_category_created_by" json:"sub_category_created_by,omitempty"`
	SubCategoryUpdatedBy *uuid.UUID `gorm:"type:uuid;column:sub_category_updated_by" json:"sub_category_updated_by,omitempty"`

	SubCategoryCreatedAt time.Time `gorm:"not null;autoCreateTime;column:sub_category_created_at" json:"sub_category_created_at"`
	SubCategoryUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:sub_category_updated_at" json:"sub_category_updated_at"`
}

func (SubCategoryModel) TableName() string { return "evaluation_sub_categories" }

func (m *SubCategoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubCategoryID == uuid.Nil {
		m.SubCategoryID = uuid.New()
	}
	if m.SubCategoryRecordStatus == "" {
		m.SubCategoryRecordStatus = RecordStatusActive
	}
	return nil
}
