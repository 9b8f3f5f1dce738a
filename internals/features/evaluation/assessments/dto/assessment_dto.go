// file: internals/features/evaluation/assessments/dto/assessment_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	model "jurnalku_backend/internals/features/evaluation/assessments/model"
	"jurnalku_backend/internals/features/evaluation/assessments/service"
)

/* =========================================================
   1) REQUEST DTO
========================================================= */

type CreateAssessmentRequest struct {
	AssessmentJournalID  uuid.UUID  `json:"assessment_journal_id"`
	AssessmentTemplateID *uuid.UUID `json:"assessment_template_id"` // kosong → template akreditasi aktif
	AssessmentPeriod     string     `json:"assessment_period"`
	AssessmentNotes      *string    `json:"assessment_notes"`
}

func (r *CreateAssessmentRequest) ToInput() service.CreateAssessmentInput {
	return service.CreateAssessmentInput{
		JournalID:  r.AssessmentJournalID,
		TemplateID: r.AssessmentTemplateID,
		Period:     strings.TrimSpace(r.AssessmentPeriod),
		Notes:      r.AssessmentNotes,
	}
}

// Satu jawaban per indikator; hanya field sesuai answer_type yang dipakai.
type SaveResponseRequest struct {
	ResponseIndicatorID   uuid.UUID `json:"response_indicator_id"`
	ResponseAnswerBoolean *bool     `json:"response_answer_boolean"`
	ResponseAnswerScale   *int      `json:"response_answer_scale"`
	ResponseAnswerText    *string   `json:"response_answer_text"`
	ResponseNotes         *string   `json:"response_notes"`
	ResponseHasAttachment bool      `json:"response_has_attachment"`
}

func (r *SaveResponseRequest) ToInput() service.SaveResponseInput {
	return service.SaveResponseInput{
		IndicatorID: r.ResponseIndicatorID,
		Answer: service.Answer{
			Boolean: r.ResponseAnswerBoolean,
			Scale:   r.ResponseAnswerScale,
			Text:    r.ResponseAnswerText,
		},
		Notes:         r.ResponseNotes,
		HasAttachment: r.ResponseHasAttachment,
	}
}

// Reviewer diambil dari X-Actor-ID.
type ReviewRequest struct {
	AssessmentNotes      *string `json:"assessment_notes"`
	AssessmentAdminNotes *string `json:"assessment_admin_notes"`
}

func (r *ReviewRequest) ToInput(reviewer uuid.UUID) service.ReviewInput {
	return service.ReviewInput{
		ReviewerID: reviewer,
		Notes:      r.AssessmentNotes,
		AdminNotes: r.AssessmentAdminNotes,
	}
}

type GradeResponseRequest struct {
	ResponseManualScore *float64 `json:"response_manual_score" validate:"required"`
}

/* =========================================================
   2) RESPONSE DTO
========================================================= */

type AssessmentResponse struct {
	*model.AssessmentModel
	AssessmentStatusLabel string `json:"assessment_status_label"`
	AssessmentGrade       string `json:"assessment_grade"`
}

func FromModel(m *model.AssessmentModel) AssessmentResponse {
	return AssessmentResponse{
		AssessmentModel:       m,
		AssessmentStatusLabel: m.StatusLabel(),
		AssessmentGrade:       service.Grade(m.AssessmentPercentage),
	}
}

func FromModels(rows []model.AssessmentModel) []AssessmentResponse {
	out := make([]AssessmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
