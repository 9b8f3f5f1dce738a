// file: internals/features/evaluation/assessments/service/workflow_service.go
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
	"gorm.io/gorm/clause"

	model "jurnalku_backend/internals/features/evaluation/assessments/model"
	"jurnalku_backend/internals/features/evaluation/evalerr"
	tmodel "jurnalku_backend/internals/features/evaluation/templates/model"
	"jurnalku_backend/internals/metrics"
)

/*
   Alur assessment: draft → submitted → reviewed.
   - response hanya bisa diubah saat draft
   - submit menilai ulang semua jawaban dengan bobot saat itu lalu membekukannya
     (response_max_score); setelah itu bobot indikator dikunci oleh guard
   - review hanya dari submitted
   Skor turunan (total/max/percentage) selalu dihitung ulang dari response,
   tidak pernah diinput dari luar.
*/

type WorkflowService struct {
	DB     *gorm.DB
	Engine *ScoringEngine
	Log    *zap.Logger
	Now    func() time.Time

	validate *validator.Validate
}

func NewWorkflowService(db *gorm.DB, engine *ScoringEngine, log *zap.Logger) *WorkflowService {
	if engine == nil {
		engine = NewScoringEngine(TextScoringPendingReview)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WorkflowService{
		DB:       db,
		Engine:   engine,
		Log:      log,
		Now:      func() time.Time { return time.Now().UTC() },
		validate: validator.New(),
	}
}

func actorPtr(actor uuid.UUID) *uuid.UUID {
	if actor == uuid.Nil {
		return nil
	}
	a := actor
	return &a
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

type CreateAssessmentInput struct {
	JournalID  uuid.UUID  `validate:"required"`
	TemplateID *uuid.UUID // nil → template akreditasi yang aktif
	Period     string     `validate:"required,max=40"`
	Notes      *string
}

type SaveResponseInput struct {
	IndicatorID   uuid.UUID `validate:"required"`
	Answer        Answer
	Notes         *string
	HasAttachment bool
}

type ReviewInput struct {
	ReviewerID uuid.UUID `validate:"required"`
	Notes      *string
	AdminNotes *string
}

/* =========================================================
   CREATE / GET
========================================================= */

func (s *WorkflowService) CreateAssessment(ctx context.Context, in CreateAssessmentInput, actor uuid.UUID) (*model.AssessmentModel, error) {
	in.Period = strings.TrimSpace(in.Period)
	if err := evalerr.FromValidator(s.validate.Struct(&in)); err != nil {
		return nil, err
	}

	var row model.AssessmentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tpl tmodel.TemplateModel
		q := tx.Where("template_record_status = ?", tmodel.RecordStatusActive)
		if in.TemplateID != nil {
			q = q.Where("template_id = ?", *in.TemplateID)
		} else {
			q = q.Where("template_type = ? AND template_is_active = ?", tmodel.TemplateTypeAccreditation, true).
				Order("template_version DESC")
		}
		if err := q.Take(&tpl).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if in.TemplateID != nil {
					return fmt.Errorf("template %s: %w", *in.TemplateID, evalerr.ErrNotFound)
				}
				return fmt.Errorf("active accreditation template: %w", evalerr.ErrNotFound)
			}
			return err
		}

		row = model.AssessmentModel{
			AssessmentJournalID:  in.JournalID,
			AssessmentTemplateID: tpl.TemplateID,
			AssessmentPeriod:     in.Period,
			AssessmentStatus:     model.AssessmentStatusDraft,
			AssessmentNotes:      in.Notes,
			AssessmentCreatedBy:  actorPtr(actor),
			AssessmentUpdatedBy:  actorPtr(actor),
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("[WorkflowService] assessment created",
		zap.String("assessment_id", row.AssessmentID.String()),
		zap.String("template_id", row.AssessmentTemplateID.String()))
	return &row, nil
}

// GetAssessment: assessment + response (urut waktu input).
func (s *WorkflowService) GetAssessment(ctx context.Context, id uuid.UUID) (*model.AssessmentModel, error) {
	var a model.AssessmentModel
	err := s.DB.WithContext(ctx).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("response_created_at ASC, response_id ASC")
		}).
		Where("assessment_id = ?", id).
		Take(&a).Error
	if err != nil {
		return nil, notFound("assessment", id, err)
	}
	return &a, nil
}

func (s *WorkflowService) ListAssessments(ctx context.Context, journalID uuid.UUID) ([]model.AssessmentModel, error) {
	var rows []model.AssessmentModel
	if err := s.DB.WithContext(ctx).
		Where("assessment_journal_id = ?", journalID).
		Order("assessment_created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

/* =========================================================
   RESPONSES
========================================================= */

// SaveResponse: upsert satu jawaban (unik per assessment × indikator) lalu
// hitung ulang total assessment. Hanya saat draft.
func (s *WorkflowService) SaveResponse(ctx context.Context, assessmentID uuid.UUID, in SaveResponseInput, actor uuid.UUID) (*model.ResponseModel, error) {
	if err := evalerr.FromValidator(s.validate.Struct(&in)); err != nil {
		return nil, err
	}

	var out model.ResponseModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := lockAssessment(tx, assessmentID)
		if err != nil {
			return err
		}
		if a.AssessmentStatus != model.AssessmentStatusDraft {
			return &evalerr.InvalidStateError{
				Entity: "assessment", ID: a.AssessmentID,
				State: string(a.AssessmentStatus), Action: "edit responses",
			}
		}

		var ind tmodel.IndicatorModel
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Where("indicator_id = ? AND indicator_record_status = ?", in.IndicatorID, tmodel.RecordStatusActive).
			Take(&ind).Error; err != nil {
			return notFound("indicator", in.IndicatorID, err)
		}
		if ind.IndicatorTemplateID == nil || *ind.IndicatorTemplateID != a.AssessmentTemplateID {
			return evalerr.Validation("indicator_id", "indicator %s does not belong to the assessment template", ind.IndicatorCode)
		}
		if !ind.IndicatorIsActive {
			return evalerr.Validation("indicator_id", "indicator %s is not active", ind.IndicatorCode)
		}

		score, err := s.Engine.Score(&ind, in.Answer)
		if err != nil {
			return err
		}

		var resp model.ResponseModel
		err = tx.Where("response_assessment_id = ? AND response_indicator_id = ?", assessmentID, in.IndicatorID).
			Take(&resp).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp = model.ResponseModel{
				ResponseAssessmentID: assessmentID,
				ResponseIndicatorID:  in.IndicatorID,
				ResponseCreatedBy:    actorPtr(actor),
			}
		case err != nil:
			return err
		}

		resp.ResponseAnswerBoolean = nil
		resp.ResponseAnswerScale = nil
		resp.ResponseAnswerText = nil
		switch ind.IndicatorAnswerType {
		case tmodel.AnswerTypeBoolean:
			resp.ResponseAnswerBoolean = in.Answer.Boolean
		case tmodel.AnswerTypeScale:
			resp.ResponseAnswerScale = in.Answer.Scale
		case tmodel.AnswerTypeText:
			resp.ResponseAnswerText = in.Answer.Text
		}
		// jawaban berubah → nilai manual lama tidak berlaku
		resp.ResponseManualScore = nil
		resp.ResponseScoredBy = nil
		resp.ResponseScore = score
		resp.ResponseMaxScore = ind.IndicatorWeight
		resp.ResponseNotes = in.Notes
		resp.ResponseHasAttachment = in.HasAttachment
		resp.ResponseUpdatedBy = actorPtr(actor)
		if err := tx.Save(&resp).Error; err != nil {
			return err
		}

		if err := RefreshTotals(tx, a); err != nil {
			return err
		}
		a.AssessmentUpdatedBy = actorPtr(actor)
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		out = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* =========================================================
   TRANSITIONS
========================================================= */

// Submit: draft → submitted. Indikator yang direferensikan di-lock FOR SHARE
// supaya delete/deactivate yang berjalan bersamaan menunggu atau gagal.
func (s *WorkflowService) Submit(ctx context.Context, assessmentID uuid.UUID, actor uuid.UUID) (*model.AssessmentModel, error) {
	var out *model.AssessmentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := lockAssessment(tx, assessmentID)
		if err != nil {
			return err
		}
		if a.AssessmentStatus != model.AssessmentStatusDraft {
			return &evalerr.InvalidStateError{
				Entity: "assessment", ID: a.AssessmentID,
				State: string(a.AssessmentStatus), Action: "submit",
			}
		}

		var responses []model.ResponseModel
		if err := tx.Where("response_assessment_id = ?", assessmentID).Find(&responses).Error; err != nil {
			return err
		}
		if err := s.rescore(tx, assessmentID, responses); err != nil {
			return err
		}

		if err := RefreshTotals(tx, a); err != nil {
			return err
		}
		now := s.Now()
		a.AssessmentStatus = model.AssessmentStatusSubmitted
		a.AssessmentSubmittedAt = &now
		a.AssessmentUpdatedBy = actorPtr(actor)
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		s.Log.Warn("[WorkflowService] submit rejected",
			zap.String("assessment_id", assessmentID.String()), zap.Error(err))
		return nil, err
	}

	metrics.AssessmentsSubmitted.Inc()
	s.Log.Info("[WorkflowService] assessment submitted",
		zap.String("assessment_id", assessmentID.String()),
		zap.Float64("percentage", out.AssessmentPercentage))
	return out, nil
}

// Review: submitted → reviewed. Total dihitung ulang dari skor beku + nilai manual.
func (s *WorkflowService) Review(ctx context.Context, assessmentID uuid.UUID, in ReviewInput) (*model.AssessmentModel, error) {
	if err := evalerr.FromValidator(s.validate.Struct(&in)); err != nil {
		return nil, err
	}

	var out *model.AssessmentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := lockAssessment(tx, assessmentID)
		if err != nil {
			return err
		}
		if a.AssessmentStatus != model.AssessmentStatusSubmitted {
			return &evalerr.InvalidStateError{
				Entity: "assessment", ID: a.AssessmentID,
				State: string(a.AssessmentStatus), Action: "review",
			}
		}
		if err := RefreshTotals(tx, a); err != nil {
			return err
		}
		now := s.Now()
		a.AssessmentStatus = model.AssessmentStatusReviewed
		a.AssessmentReviewedAt = &now
		a.AssessmentReviewedBy = actorPtr(in.ReviewerID)
		a.AssessmentUpdatedBy = actorPtr(in.ReviewerID)
		if in.Notes != nil {
			a.AssessmentNotes = in.Notes
		}
		if in.AdminNotes != nil {
			a.AssessmentAdminNotes = in.AdminNotes
		}
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.AssessmentsReviewed.Inc()
	s.Log.Info("[WorkflowService] assessment reviewed",
		zap.String("assessment_id", assessmentID.String()),
		zap.String("reviewer_id", in.ReviewerID.String()))
	return out, nil
}

// GradeTextResponse: nilai manual untuk jawaban uraian (0..bobot beku), hanya
// saat assessment sudah submitted dan belum direviu.
func (s *WorkflowService) GradeTextResponse(ctx context.Context, responseID uuid.UUID, score float64, reviewer uuid.UUID) (*model.ResponseModel, error) {
	if reviewer == uuid.Nil {
		return nil, evalerr.Validation("reviewer_id", "reviewer is required")
	}

	var out model.ResponseModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resp model.ResponseModel
		if err := tx.Where("response_id = ?", responseID).Take(&resp).Error; err != nil {
			return notFound("response", responseID, err)
		}
		a, err := lockAssessment(tx, resp.ResponseAssessmentID)
		if err != nil {
			return err
		}
		if a.AssessmentStatus != model.AssessmentStatusSubmitted {
			return &evalerr.InvalidStateError{
				Entity: "assessment", ID: a.AssessmentID,
				State: string(a.AssessmentStatus), Action: "grade text responses",
			}
		}

		var ind tmodel.IndicatorModel
		if err := tx.Where("indicator_id = ?", resp.ResponseIndicatorID).Take(&ind).Error; err != nil {
			return notFound("indicator", resp.ResponseIndicatorID, err)
		}
		if ind.IndicatorAnswerType != tmodel.AnswerTypeText {
			return evalerr.Validation("response_id", "indicator %s is not a text indicator", ind.IndicatorCode)
		}
		score = tmodel.Round2(score)
		if score < 0 || score > resp.ResponseMaxScore {
			return evalerr.Validation("score", "score %.2f is outside 0..%.2f", score, resp.ResponseMaxScore)
		}

		resp.ResponseManualScore = &score
		resp.ResponseScore = score
		resp.ResponseScoredBy = actorPtr(reviewer)
		resp.ResponseUpdatedBy = actorPtr(reviewer)
		if err := tx.Save(&resp).Error; err != nil {
			return err
		}
		if err := RefreshTotals(tx, a); err != nil {
			return err
		}
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		out = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* =========================================================
   READ MODELS
========================================================= */

// CompletionPercentage: indikator terjawab ÷ indikator aktif di template × 100.
func (s *WorkflowService) CompletionPercentage(ctx context.Context, assessmentID uuid.UUID) (float64, error) {
	db := s.DB.WithContext(ctx)
	var a model.AssessmentModel
	if err := db.Where("assessment_id = ?", assessmentID).Take(&a).Error; err != nil {
		return 0, notFound("assessment", assessmentID, err)
	}
	return completion(db, &a)
}

func completion(db *gorm.DB, a *model.AssessmentModel) (float64, error) {
	var total int64
	if err := db.Model(&tmodel.IndicatorModel{}).
		Where("indicator_template_id = ? AND indicator_is_active = ? AND indicator_record_status = ?",
			a.AssessmentTemplateID, true, tmodel.RecordStatusActive).
		Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	var answered int64
	if err := db.Model(&model.ResponseModel{}).
		Joins("JOIN evaluation_indicators i ON i.indicator_id = journal_assessment_responses.response_indicator_id").
		Where("journal_assessment_responses.response_assessment_id = ?", a.AssessmentID).
		Where("i.indicator_is_active = ? AND i.indicator_record_status = ?", true, tmodel.RecordStatusActive).
		Count(&answered).Error; err != nil {
		return 0, err
	}
	return tmodel.Round2(float64(answered) / float64(total) * 100), nil
}

type Summary struct {
	AssessmentID uuid.UUID              `json:"assessment_id"`
	Status       model.AssessmentStatus `json:"status"`
	Totals       Totals                 `json:"totals"`
	Grade        string                 `json:"grade"`
	Completion   float64                `json:"completion"`
	Answered     int                    `json:"answered"`
	PendingText  int                    `json:"pending_text"`
}

// Summary: ringkasan untuk dashboard/reviewer.
func (s *WorkflowService) Summary(ctx context.Context, assessmentID uuid.UUID) (*Summary, error) {
	db := s.DB.WithContext(ctx)
	a, err := s.GetAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	comp, err := completion(db, a)
	if err != nil {
		return nil, err
	}

	// full_weight_when_present: uraian sudah dinilai saat disimpan, tidak ada antrean
	var pending int64
	if s.Engine.TextPolicy == TextScoringPendingReview {
		if err := db.Model(&model.ResponseModel{}).
			Joins("JOIN evaluation_indicators i ON i.indicator_id = journal_assessment_responses.response_indicator_id").
			Where("journal_assessment_responses.response_assessment_id = ?", a.AssessmentID).
			Where("i.indicator_answer_type = ? AND journal_assessment_responses.response_manual_score IS NULL", tmodel.AnswerTypeText).
			Count(&pending).Error; err != nil {
			return nil, err
		}
	}

	return &Summary{
		AssessmentID: a.AssessmentID,
		Status:       a.AssessmentStatus,
		Totals: Totals{
			Total:      a.AssessmentTotalScore,
			Max:        a.AssessmentMaxScore,
			Percentage: a.AssessmentPercentage,
		},
		Grade:       Grade(a.AssessmentPercentage),
		Completion:  comp,
		Answered:    len(a.Responses),
		PendingText: int(pending),
	}, nil
}

/* =========================================================
   INTERNAL
========================================================= */

func lockAssessment(tx *gorm.DB, id uuid.UUID) (*model.AssessmentModel, error) {
	var a model.AssessmentModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("assessment_id = ?", id).
		Take(&a).Error; err != nil {
		return nil, notFound("assessment", id, err)
	}
	return &a, nil
}

// rescore: nilai ulang tiap jawaban dari jawaban mentahnya terhadap indikator
// saat ini, dan bekukan bobotnya. Indikator di-lock FOR SHARE supaya
// delete/deactivate/ubah bobot yang berjalan bersamaan menunggu atau gagal.
func (s *WorkflowService) rescore(tx *gorm.DB, assessmentID uuid.UUID, responses []model.ResponseModel) error {
	if len(responses) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(responses))
	for _, r := range responses {
		ids = append(ids, r.ResponseIndicatorID)
	}

	var inds []tmodel.IndicatorModel
	if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
		Where("indicator_id IN ? AND indicator_record_status = ?", ids, tmodel.RecordStatusActive).
		Find(&inds).Error; err != nil {
		return err
	}
	if len(inds) != len(ids) {
		return &evalerr.ReferentialIntegrityError{
			Entity: "assessment",
			ID:     assessmentID,
			Reason: fmt.Sprintf("%d answered indicators were removed", len(ids)-len(inds)),
		}
	}
	byID := make(map[uuid.UUID]*tmodel.IndicatorModel, len(inds))
	for i := range inds {
		byID[inds[i].IndicatorID] = &inds[i]
	}

	for i := range responses {
		r := &responses[i]
		ind := byID[r.ResponseIndicatorID]
		score := r.ResponseScore
		if r.ResponseManualScore == nil {
			var err error
			score, err = s.Engine.Score(ind, Answer{
				Boolean: r.ResponseAnswerBoolean,
				Scale:   r.ResponseAnswerScale,
				Text:    r.ResponseAnswerText,
			})
			if err != nil {
				return fmt.Errorf("rescore indicator %s: %w", ind.IndicatorCode, err)
			}
		}
		if score == r.ResponseScore && ind.IndicatorWeight == r.ResponseMaxScore {
			continue
		}
		if err := tx.Model(&model.ResponseModel{}).
			Where("response_id = ?", r.ResponseID).
			Updates(map[string]any{
				"response_score":     score,
				"response_max_score": ind.IndicatorWeight,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

// RefreshTotals: hitung ulang total/max/percentage dari response yang tersimpan
// (skor dan bobot beku per response). Caller yang menyimpan assessment-nya.
func RefreshTotals(tx *gorm.DB, a *model.AssessmentModel) error {
	var responses []model.ResponseModel
	if err := tx.Where("response_assessment_id = ?", a.AssessmentID).Find(&responses).Error; err != nil {
		return err
	}
	t := Recompute(responses)
	a.AssessmentTotalScore = t.Total
	a.AssessmentMaxScore = t.Max
	a.AssessmentPercentage = t.Percentage
	return nil
}
