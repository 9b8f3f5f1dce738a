package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jurnalku_backend/internals/databases/dbtest"
	amodel "jurnalku_backend/internals/features/evaluation/assessments/model"
	guard "jurnalku_backend/internals/features/evaluation/integrity/service"
	model "jurnalku_backend/internals/features/evaluation/templates/model"
)

var testActor = uuid.MustParse("11111111-1111-1111-1111-111111111111")

func newTestService(t *testing.T) (*HierarchyService, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	return NewHierarchyService(db, guard.NewGuardService(db, nil), nil), db
}

// rubric: 2 Unsur (60/40), masing-masing 1 Sub-Unsur; Unsur A punya 2 indikator
// dan 1 essay, Unsur B punya 1 indikator.
type rubric struct {
	Template   *model.TemplateModel
	CatA, CatB *model.CategoryModel
	SubA, SubB *model.SubCategoryModel
	IndA1      *model.IndicatorModel
	IndA2      *model.IndicatorModel
	IndB1      *model.IndicatorModel
	Essay      *model.EssayQuestionModel
}

func seedRubric(t *testing.T, s *HierarchyService, typ model.TemplateType) *rubric {
	t.Helper()
	ctx := context.Background()
	r := &rubric{}
	var err error

	r.Template, err = s.CreateTemplate(ctx, CreateTemplateInput{Name: "Akreditasi Jurnal", Type: typ}, testActor)
	require.NoError(t, err)

	r.CatA, err = s.CreateCategory(ctx, r.Template.TemplateID, CreateCategoryInput{Code: "A", Name: "Penamaan Jurnal", Weight: 60}, testActor)
	require.NoError(t, err)
	r.CatB, err = s.CreateCategory(ctx, r.Template.TemplateID, CreateCategoryInput{Code: "B", Name: "Kelembagaan", Weight: 40}, testActor)
	require.NoError(t, err)

	r.SubA, err = s.CreateSubCategory(ctx, r.CatA.CategoryID, CreateSubCategoryInput{Code: "A.1", Name: "Judul"}, testActor)
	require.NoError(t, err)
	r.SubB, err = s.CreateSubCategory(ctx, r.CatB.CategoryID, CreateSubCategoryInput{Code: "B.1", Name: "Penerbit"}, testActor)
	require.NoError(t, err)

	r.IndA1, err = s.CreateIndicator(ctx, r.SubA.SubCategoryID, CreateIndicatorInput{
		Code: "A.1.1", Question: "Judul spesifik?", Weight: 30, AnswerType: model.AnswerTypeBoolean,
	}, testActor)
	require.NoError(t, err)
	r.IndA2, err = s.CreateIndicator(ctx, r.SubA.SubCategoryID, CreateIndicatorInput{
		Code: "A.1.2", Question: "Kualitas judul", Weight: 30, AnswerType: model.AnswerTypeScale,
	}, testActor)
	require.NoError(t, err)
	r.IndB1, err = s.CreateIndicator(ctx, r.SubB.SubCategoryID, CreateIndicatorInput{
		Code: "B.1.1", Question: "Penerbit berbadan hukum?", Weight: 40, AnswerType: model.AnswerTypeBoolean,
	}, testActor)
	require.NoError(t, err)

	r.Essay, err = s.CreateEssayQuestion(ctx, r.CatA.CategoryID, CreateEssayQuestionInput{
		Code: "EA1", Question: "Jelaskan fokus dan ruang lingkup", IsRequired: true,
	}, testActor)
	require.NoError(t, err)
	return r
}

// useIndicator: assessment berstatus status dengan satu response ke indikator.
func useIndicator(t *testing.T, db *gorm.DB, templateID, indicatorID uuid.UUID, status amodel.AssessmentStatus) {
	t.Helper()
	a := amodel.AssessmentModel{
		AssessmentJournalID:  uuid.New(),
		AssessmentTemplateID: templateID,
		AssessmentPeriod:     "2026-1",
		AssessmentStatus:     status,
	}
	require.NoError(t, db.Create(&a).Error)
	yes := true
	require.NoError(t, db.Create(&amodel.ResponseModel{
		ResponseAssessmentID:  a.AssessmentID,
		ResponseIndicatorID:   indicatorID,
		ResponseAnswerBoolean: &yes,
	}).Error)
}
