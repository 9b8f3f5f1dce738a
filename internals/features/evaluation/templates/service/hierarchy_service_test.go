package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	amodel "jurnalku_backend/internals/features/evaluation/assessments/model"
	"jurnalku_backend/internals/features/evaluation/evalerr"
	model "jurnalku_backend/internals/features/evaluation/templates/model"
)

func TestCreateTemplate(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	t.Run("version increments per type and new templates start inactive", func(t *testing.T) {
		t1, err := s.CreateTemplate(ctx, CreateTemplateInput{Name: "Akreditasi 2025", Type: model.TemplateTypeAccreditation}, testActor)
		require.NoError(t, err)
		t2, err := s.CreateTemplate(ctx, CreateTemplateInput{Name: "Akreditasi 2026", Type: model.TemplateTypeAccreditation}, testActor)
		require.NoError(t, err)
		idx, err := s.CreateTemplate(ctx, CreateTemplateInput{Name: "Indeksasi", Type: model.TemplateTypeIndexation}, testActor)
		require.NoError(t, err)

		assert.Equal(t, 1, t1.TemplateVersion)
		assert.Equal(t, 2, t2.TemplateVersion)
		assert.Equal(t, 1, idx.TemplateVersion)
		assert.False(t, t2.TemplateIsActive)
		require.NotNil(t, t1.TemplateCreatedBy)
		assert.Equal(t, testActor, *t1.TemplateCreatedBy)
	})

	t.Run("invalid type is a validation error", func(t *testing.T) {
		_, err := s.CreateTemplate(ctx, CreateTemplateInput{Name: "X", Type: "ranking"}, testActor)
		require.Error(t, err)
		assert.True(t, evalerr.IsValidation(err))
	})

	t.Run("blank name is a validation error", func(t *testing.T) {
		_, err := s.CreateTemplate(ctx, CreateTemplateInput{Name: "   ", Type: model.TemplateTypeIndexation}, testActor)
		assert.True(t, evalerr.IsValidation(err))
	})
}

func TestCreateChildren_OrderAndDenormalizedTemplate(t *testing.T) {
	s, _ := newTestService(t)
	r := seedRubric(t, s, model.TemplateTypeAccreditation)

	assert.Equal(t, 0, r.CatA.CategoryDisplayOrder)
	assert.Equal(t, 1, r.CatB.CategoryDisplayOrder)
	assert.Equal(t, 0, r.IndA1.IndicatorSortOrder)
	assert.Equal(t, 1, r.IndA2.IndicatorSortOrder)

	assert.Equal(t, r.Template.TemplateID, r.SubA.SubCategoryTemplateID)
	require.NotNil(t, r.IndA1.IndicatorTemplateID)
	assert.Equal(t, r.Template.TemplateID, *r.IndA1.IndicatorTemplateID)
	assert.Equal(t, r.Template.TemplateID, r.Essay.EssayQuestionTemplateID)
	assert.True(t, r.IndA1.IndicatorIsActive)
	assert.False(t, r.IndA1.IsLegacy())
	assert.Equal(t, 500, r.Essay.EssayQuestionMaxWords)
}

func TestCreateIndicator_Validation(t *testing.T) {
	s, _ := newTestService(t)
	r := seedRubric(t, s, model.TemplateTypeAccreditation)
	ctx := context.Background()

	_, err := s.CreateIndicator(ctx, r.SubA.SubCategoryID, CreateIndicatorInput{
		Code: "A.1.3", Question: "?", Weight: 5, AnswerType: "essay",
	}, testActor)
	assert.True(t, evalerr.IsValidation(err))

	_, err = s.CreateIndicator(ctx, r.SubA.SubCategoryID, CreateIndicatorInput{
		Code: "A.1.3", Question: "?", Weight: 101, AnswerType: model.AnswerTypeBoolean,
	}, testActor)
	assert.True(t, evalerr.IsValidation(err))

	inactive := false
	ind, err := s.CreateIndicator(ctx, r.SubA.SubCategoryID, CreateIndicatorInput{
		Code: "A.1.3", Question: "Draft", Weight: 0, AnswerType: model.AnswerTypeText, IsActive: &inactive,
	}, testActor)
	require.NoError(t, err)

	got, err := s.findIndicator(s.DB, ind.IndicatorID)
	require.NoError(t, err)
	assert.False(t, got.IndicatorIsActive)
}

func TestUpdateIndicator_AnswerTypeLockedOnceAnswered(t *testing.T) {
	s, db := newTestService(t)
	r := seedRubric(t, s, model.TemplateTypeAccreditation)
	ctx := context.Background()

	scale := model.AnswerTypeScale
	_, err := s.UpdateIndicator(ctx, r.IndB1.IndicatorID, UpdateIndicatorInput{AnswerType: &scale}, testActor)
	require.NoError(t, err, "no responses yet")

	useIndicator(t, db, r.Template.TemplateID, r.IndA1.IndicatorID, amodel.AssessmentStatusDraft)
	_, err = s.UpdateIndicator(ctx, r.IndA1.IndicatorID, UpdateIndicatorInput{AnswerType: &scale}, testActor)
	require.Error(t, err)
	assert.True(t, evalerr.IsValidation(err))

	w := 25.0
	upd, err := s.UpdateIndicator(ctx, r.IndA1.IndicatorID, UpdateIndicatorInput{Weight: &w}, testActor)
	require.NoError(t, err)
	assert.Equal(t, 25.0, upd.IndicatorWeight)
}

func TestGetTemplate_NotFound(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.GetTemplate(context.Background(), testActor)
	assert.True(t, errors.Is(err, evalerr.ErrNotFound))
}

func TestListTemplates(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	a := seedRubric(t, s, model.TemplateTypeAccreditation)
	seedRubric(t, s, model.TemplateTypeIndexation)

	_, err := s.ActivateTemplate(ctx, a.Template.TemplateID, testActor)
	require.NoError(t, err)

	all, err := s.ListTemplates(ctx, nil, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	typ := model.TemplateTypeAccreditation
	active, err := s.ListTemplates(ctx, &typ, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a.Template.TemplateID, active[0].TemplateID)

	got, err := s.ActiveTemplate(ctx, model.TemplateTypeAccreditation)
	require.NoError(t, err)
	assert.Equal(t, a.Template.TemplateID, got.TemplateID)

	_, err = s.ActiveTemplate(ctx, model.TemplateTypeIndexation)
	assert.ErrorIs(t, err, evalerr.ErrNotFound)
}
