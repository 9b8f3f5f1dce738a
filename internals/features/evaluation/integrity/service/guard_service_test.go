package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jurnalku_backend/internals/databases/dbtest"
	amodel "jurnalku_backend/internals/features/evaluation/assessments/model"
	"jurnalku_backend/internals/features/evaluation/evalerr"
	tmodel "jurnalku_backend/internals/features/evaluation/templates/model"
)

type tree struct {
	template  tmodel.TemplateModel
	category  tmodel.CategoryModel
	sub       tmodel.SubCategoryModel
	indicator tmodel.IndicatorModel
}

// seedTree: satu template → satu Unsur → satu Sub-Unsur → satu indikator.
func seedTree(t *testing.T, db *gorm.DB, active bool) *tree {
	t.Helper()
	tr := &tree{}
	tr.template = tmodel.TemplateModel{TemplateName: "T", TemplateType: tmodel.TemplateTypeAccreditation, TemplateVersion: 1, TemplateIsActive: active}
	require.NoError(t, db.Create(&tr.template).Error)
	tr.category = tmodel.CategoryModel{CategoryTemplateID: tr.template.TemplateID, CategoryCode: "A", CategoryName: "A", CategoryWeight: 100}
	require.NoError(t, db.Create(&tr.category).Error)
	tr.sub = tmodel.SubCategoryModel{SubCategoryCategoryID: tr.category.CategoryID, SubCategoryTemplateID: tr.template.TemplateID, SubCategoryCode: "A.1", SubCategoryName: "A.1"}
	require.NoError(t, db.Create(&tr.sub).Error)
	subID, tplID := tr.sub.SubCategoryID, tr.template.TemplateID
	tr.indicator = tmodel.IndicatorModel{
		IndicatorSubCategoryID: &subID,
		IndicatorTemplateID:    &tplID,
		IndicatorCode:          "A.1.1",
		IndicatorQuestion:      "?",
		IndicatorWeight:        100,
		IndicatorAnswerType:    tmodel.AnswerTypeBoolean,
		IndicatorIsActive:      true,
	}
	require.NoError(t, db.Create(&tr.indicator).Error)
	return tr
}

func respond(t *testing.T, db *gorm.DB, tr *tree, status amodel.AssessmentStatus) {
	t.Helper()
	a := amodel.AssessmentModel{
		AssessmentJournalID:  uuid.New(),
		AssessmentTemplateID: tr.template.TemplateID,
		AssessmentPeriod:     "2026-1",
		AssessmentStatus:     status,
	}
	require.NoError(t, db.Create(&a).Error)
	yes := true
	require.NoError(t, db.Create(&amodel.ResponseModel{
		ResponseAssessmentID:  a.AssessmentID,
		ResponseIndicatorID:   tr.indicator.IndicatorID,
		ResponseAnswerBoolean: &yes,
		ResponseScore:         100,
	}).Error)
}

func TestCanDelete_FinalizedUsage(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		status amodel.AssessmentStatus
		want   bool
	}{
		{"submitted blocks", amodel.AssessmentStatusSubmitted, false},
		{"reviewed blocks", amodel.AssessmentStatusReviewed, false},
		{"draft does not block", amodel.AssessmentStatusDraft, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := dbtest.Open(t)
			g := NewGuardService(db, nil)
			tr := seedTree(t, db, false)
			respond(t, db, tr, tt.status)

			for kind, id := range map[tmodel.EntityKind]uuid.UUID{
				tmodel.EntityTemplate:    tr.template.TemplateID,
				tmodel.EntityCategory:    tr.category.CategoryID,
				tmodel.EntitySubCategory: tr.sub.SubCategoryID,
				tmodel.EntityIndicator:   tr.indicator.IndicatorID,
			} {
				ok, err := g.CanDelete(ctx, kind, id)
				require.NoError(t, err, kind)
				assert.Equal(t, tt.want, ok, kind)
			}
		})
	}
}

func TestCanDelete_SoleActiveTemplate(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	g := NewGuardService(db, nil)

	first := seedTree(t, db, true)
	ok, err := g.CanDelete(ctx, tmodel.EntityTemplate, first.template.TemplateID)
	require.NoError(t, err)
	assert.False(t, ok, "only active accreditation template")

	// Unsur di bawahnya tetap boleh
	ok, err = g.CanDelete(ctx, tmodel.EntityCategory, first.category.CategoryID)
	require.NoError(t, err)
	assert.True(t, ok)

	seedTree(t, db, true)
	ok, err = g.CanDelete(ctx, tmodel.EntityTemplate, first.template.TemplateID)
	require.NoError(t, err)
	assert.True(t, ok, "another active template exists")
}

func TestCheck_ReturnsTypedError(t *testing.T) {
	db := dbtest.Open(t)
	g := NewGuardService(db, nil)
	tr := seedTree(t, db, false)
	respond(t, db, tr, amodel.AssessmentStatusSubmitted)

	err := db.Transaction(func(tx *gorm.DB) error {
		return g.Check(tx, tmodel.EntitySubCategory, tr.sub.SubCategoryID)
	})
	require.Error(t, err)

	var rie *evalerr.ReferentialIntegrityError
	require.ErrorAs(t, err, &rie)
	assert.Equal(t, tr.sub.SubCategoryID, rie.ID)
	assert.Equal(t, string(tmodel.EntitySubCategory), rie.Entity)
}

func TestCanDelete_UnknownEntityFailsClosed(t *testing.T) {
	db := dbtest.Open(t)
	g := NewGuardService(db, nil)

	ok, err := g.CanDelete(context.Background(), tmodel.EntityCategory, uuid.New())
	assert.False(t, ok)
	assert.ErrorIs(t, err, evalerr.ErrNotFound)
}

func TestIndicatorIDsUnder(t *testing.T) {
	db := dbtest.Open(t)
	tr := seedTree(t, db, false)

	// indikator retired tidak ikut
	retired := tr.indicator
	retired.IndicatorID = uuid.Nil
	retired.IndicatorCode = "A.1.2"
	retired.IndicatorRecordStatus = tmodel.RecordStatusRetired
	require.NoError(t, db.Create(&retired).Error)

	for _, kind := range []tmodel.EntityKind{tmodel.EntityTemplate, tmodel.EntityCategory, tmodel.EntitySubCategory} {
		var id uuid.UUID
		switch kind {
		case tmodel.EntityTemplate:
			id = tr.template.TemplateID
		case tmodel.EntityCategory:
			id = tr.category.CategoryID
		default:
			id = tr.sub.SubCategoryID
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			ids, err := IndicatorIDsUnder(tx, kind, id)
			require.NoError(t, err)
			assert.Equal(t, []uuid.UUID{tr.indicator.IndicatorID}, ids, kind)
			return nil
		})
		require.NoError(t, err)
	}
}
