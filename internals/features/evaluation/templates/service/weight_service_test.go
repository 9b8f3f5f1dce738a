package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jurnalku_backend/internals/features/evaluation/evalerr"
	model "jurnalku_backend/internals/features/evaluation/templates/model"
)

func TestTotalCategoryWeight(t *testing.T) {
	s, _ := newTestService(t)
	r := seedRubric(t, s, model.TemplateTypeAccreditation)
	ctx := context.Background()

	total, err := s.TotalCategoryWeight(ctx, r.Template.TemplateID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, total)

	// Unsur yang di-retire tidak dihitung
	require.NoError(t, s.DeleteCategory(ctx, r.CatB.CategoryID, testActor))
	total, err = s.TotalCategoryWeight(ctx, r.Template.TemplateID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, total)
}

func TestValidateWeights(t *testing.T) {
	s, _ := newTestService(t)
	r := seedRubric(t, s, model.TemplateTypeAccreditation)
	ctx := context.Background()

	rep, err := s.ValidateWeights(ctx, r.Template.TemplateID)
	require.NoError(t, err)
	assert.True(t, rep.Balanced)
	assert.Empty(t, rep.Warnings)
	require.Len(t, rep.Categories, 2)
	assert.True(t, rep.Categories[0].Balanced)

	w := 20.0
	_, err = s.UpdateIndicator(ctx, r.IndA2.IndicatorID, UpdateIndicatorInput{Weight: &w}, testActor)
	require.NoError(t, err)

	rep, err = s.ValidateWeights(ctx, r.Template.TemplateID)
	require.NoError(t, err)
	assert.True(t, rep.Balanced, "category total is still 100")
	assert.False(t, rep.Categories[0].Balanced)
	assert.Equal(t, 50.0, rep.Categories[0].IndicatorSum)
	assert.Len(t, rep.Warnings, 1)
}

func TestActivateTemplate(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	t.Run("rejects unbalanced category weights", func(t *testing.T) {
		r := seedRubric(t, s, model.TemplateTypeIndexation)
		w := 45.5
		_, err := s.UpdateCategory(ctx, r.CatB.CategoryID, UpdateCategoryInput{Weight: &w}, testActor)
		require.NoError(t, err, "edits only warn")

		_, err = s.ActivateTemplate(ctx, r.Template.TemplateID, testActor)
		require.Error(t, err)
		assert.True(t, evalerr.IsValidation(err))
	})

	t.Run("activating one deactivates siblings of the same type", func(t *testing.T) {
		first := seedRubric(t, s, model.TemplateTypeAccreditation)
		second := seedRubric(t, s, model.TemplateTypeAccreditation)

		_, err := s.ActivateTemplate(ctx, first.Template.TemplateID, testActor)
		require.NoError(t, err)
		got, err := s.ActivateTemplate(ctx, second.Template.TemplateID, testActor)
		require.NoError(t, err)
		assert.True(t, got.TemplateIsActive)

		reloaded, err := s.GetTemplate(ctx, first.Template.TemplateID)
		require.NoError(t, err)
		assert.False(t, reloaded.TemplateIsActive)
	})

	t.Run("tolerance of one hundredth", func(t *testing.T) {
		r := seedRubric(t, s, model.TemplateTypeIndexation)
		w := 40.01
		_, err := s.UpdateCategory(ctx, r.CatB.CategoryID, UpdateCategoryInput{Weight: &w}, testActor)
		require.NoError(t, err)
		_, err = s.ActivateTemplate(ctx, r.Template.TemplateID, testActor)
		assert.NoError(t, err)
	})
}

func TestDeactivateTemplate_SoleActiveBlocked(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	r := seedRubric(t, s, model.TemplateTypeAccreditation)
	_, err := s.ActivateTemplate(ctx, r.Template.TemplateID, testActor)
	require.NoError(t, err)

	err = s.DeactivateTemplate(ctx, r.Template.TemplateID, testActor)
	require.Error(t, err)
	assert.True(t, evalerr.IsReferentialIntegrity(err))
}
