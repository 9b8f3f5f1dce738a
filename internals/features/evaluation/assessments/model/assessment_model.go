// file: internals/features/evaluation/assessments/model/assessment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================
// Enum: Assessment Status
// =========================

type AssessmentStatus string

const (
	AssessmentStatusDraft     AssessmentStatus = "draft"
	AssessmentStatusSubmitted AssessmentStatus = "submitted"
	AssessmentStatusReviewed  AssessmentStatus = "reviewed"
)

// FinalStatuses: status yang mengunci indikator dari delete/deactivate.
var FinalStatuses = []AssessmentStatus{AssessmentStatusSubmitted, AssessmentStatusReviewed}

func (s AssessmentStatus) IsFinal() bool {
	return s == AssessmentStatusSubmitted || s == AssessmentStatusReviewed
}

// =========================
// Model: journal_assessments
// =========================

type AssessmentModel struct {
	AssessmentID         uuid.UUID        `gorm:"type:uuid;primaryKey;column:assessment_id" json:"assessment_id"`
	AssessmentJournalID  uuid.UUID        `gorm:"type:uuid;not null;index;column:assessment_journal_id" json:"assessment_journal_id"`
	AssessmentTemplateID uuid.UUID        `gorm:"type:uuid;not null;index;column:assessment_template_id" json:"assessment_template_id"`
	AssessmentPeriod     string           `gorm:"type:varchar(40);not null;column:assessment_period" json:"assessment_period"`
	AssessmentStatus     AssessmentStatus `gorm:"type:varchar(12);not null;default:'draft';index;column:assessment_status" json:"assessment_status"`

	// Derived (diisi ScoringEngine)
	AssessmentTotalScore float64 `gorm:"type:numeric(8,2);not null;default:0;column:assessment_total_score" json:"assessment_total_score"`
	AssessmentMaxScore   float64 `gorm:"type:numeric(8,2);not null;default:0;column:assessment_max_score" json:"assessment_max_score"`
	AssessmentPercentage float64 `gorm:"type:numeric(5,2);not null;default:0;column:assessment_percentage" json:"assessment_percentage"`

	AssessmentSubmittedAt *time.Time `gorm:"column:assessment_submitted_at" json:"assessment_submitted_at,omitempty"`
	AssessmentReviewedAt  *time.Time `gorm:"column:assessment_reviewed_at" json:"assessment_reviewed_at,omitempty"`
	AssessmentReviewedBy  *uuid.UUID `gorm:"type:uuid;column:assessment_reviewed_by" json:"assessment_reviewed_by,omitempty"`

	AssessmentNotes      *string `gorm:"type:text;column:assessment_notes" json:"assessment_notes,omitempty"`
	AssessmentAdminNotes *string `gorm:"type:text;column:assessment_admin_notes" json:"assessment_admin_notes,omitempty"`

	AssessmentCreatedBy *uuid.UUID `gorm:"type:uuid;column:assessment_created_by" json:"assessment_created_by,omitempty"`
	AssessmentUpdatedBy *uuid.UUID `gorm:"type:uuid;column:assessment_updated_by" json:"assessment_updated_by,omitempty"`

	AssessmentCreatedAt time.Time `gorm:"not null;autoCreateTime;column:assessment_created_at" json:"assessment_created_at"`
	AssessmentUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:assessment_updated_at" json:"assessment_updated_at"`

	Responses []ResponseModel `gorm:"foreignKey:ResponseAssessmentID;references:AssessmentID" json:"responses,omitempty"`
}

func (AssessmentModel) TableName() string { return "journal_assessments" }

func (m *AssessmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssessmentID == uuid.Nil {
		m.AssessmentID = uuid.New()
	}
	if m.AssessmentStatus == "" {
		m.AssessmentStatus = AssessmentStatusDraft
	}
	return nil
}

func (m *AssessmentModel) StatusLabel() string {
	switch m.AssessmentStatus {
	case AssessmentStatusDraft:
		return "Draf"
	case AssessmentStatusSubmitted:
		return "Diajukan"
	case AssessmentStatusReviewed:
		return "Sudah direviu"
	}
	return string(m.AssessmentStatus)
}

// =========================
// Model: journal_assessment_responses
// =========================

type ResponseModel struct {
	ResponseID           uuid.UUID `gorm:"type:uuid;primaryKey;column:response_id" json:"response_id"`
	ResponseAssessmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_response_assessment_indicator;column:response_assessment_id" json:"response_assessment_id"`
	ResponseIndicatorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_response_assessment_indicator;index;column:response_indicator_id" json:"response_indicator_id"`

	// Jawaban (sesuai answer_type indikator)
	ResponseAnswerBoolean *bool   `gorm:"column:response_answer_boolean" json:"response_answer_boolean,omitempty"`
	ResponseAnswerScale   *int    `gorm:"type:smallint;column:response_answer_scale" json:"response_answer_scale,omitempty"`
	ResponseAnswerText    *string `gorm:"type:text;column:response_answer_text" json:"response_answer_text,omitempty"`

	ResponseScore       float64    `gorm:"type:numeric(6,2);not null;default:0;column:response_score" json:"response_score"`
	// bobot indikator saat dinilai; dasar max_score assessment
	ResponseMaxScore    float64    `gorm:"type:numeric(6,2);not null;default:0;column:response_max_score" json:"response_max_score"`
	ResponseManualScore *float64   `gorm:"type:numeric(6,2);column:response_manual_score" json:"response_manual_score,omitempty"`
	ResponseScoredBy    *uuid.UUID `gorm:"type:uuid;column:response_scored_by" json:"response_scored_by,omitempty"`

	ResponseNotes         *string `gorm:"type:text;column:response_notes" json:"response_notes,omitempty"`
	ResponseHasAttachment bool    `gorm:"not null;default:false;column:response_has_attachment" json:"response_has_attachment"`

	ResponseCreatedBy *uuid.UUID `gorm:"type:uuid;column:response_created_by" json:"response_created_by,omitempty"`
	ResponseUpdatedBy *uuid.UUID `gorm:"type:uuid;column:response_updated_by" json:"response_updated_by,omitempty"`

	ResponseCreatedAt time.Time `gorm:"not null;autoCreateTime;column:response_created_at" json:"response_created_at"`
	ResponseUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:response_updated_at" json:"response_updated_at"`
}

func (ResponseModel) TableName() string { return "journal_assessment_responses" }

func (m *ResponseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ResponseID == uuid.Nil {
		m.ResponseID = uuid.New()
	}
	return nil
}
