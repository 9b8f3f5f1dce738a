package templates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jurnalku_backend/internals/databases/dbtest"
	"jurnalku_backend/internals/features/evaluation/evalerr"
	iservice "jurnalku_backend/internals/features/evaluation/integrity/service"
	model "jurnalku_backend/internals/features/evaluation/templates/model"
	"jurnalku_backend/internals/features/evaluation/templates/service"
)

var admin = uuid.MustParse("55555555-5555-5555-5555-555555555555")

func newStore(t *testing.T) *service.HierarchyService {
	t.Helper()
	db := dbtest.Open(t)
	return service.NewHierarchyService(db, iservice.NewGuardService(db, nil), nil)
}

func TestSeedTemplateFromYAML(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	tree, err := SeedTemplateFromYAML(ctx, store, nil, "data_akreditasi.yaml", admin)
	require.NoError(t, err)

	assert.Equal(t, model.TreeCounts{Categories: 8, SubCategories: 9, Indicators: 12, EssayQuestions: 1}, tree.Counts())
	assert.True(t, tree.TemplateIsActive)
	assert.Equal(t, 1, tree.TemplateVersion)
	require.NotNil(t, tree.TemplateEffectiveDate)
	assert.Equal(t, "2026-01-01", tree.TemplateEffectiveDate.Format("2006-01-02"))

	rep, err := store.ValidateWeights(ctx, tree.TemplateID)
	require.NoError(t, err)
	assert.True(t, rep.Balanced, "warnings: %v", rep.Warnings)

	// urutan mengikuti file
	assert.Equal(t, "A", tree.Categories[0].CategoryCode)
	assert.Equal(t, "H", tree.Categories[7].CategoryCode)
	c := tree.Categories[2]
	require.Len(t, c.SubCategories, 2)
	assert.Equal(t, "C.2", c.SubCategories[1].SubCategoryCode)
	assert.Equal(t, model.AnswerTypeText, c.SubCategories[1].Indicators[0].IndicatorAnswerType)
	assert.Equal(t, 300, c.EssayQuestions[0].EssayQuestionMaxWords)

	t.Run("seeding again creates the next version", func(t *testing.T) {
		again, err := SeedTemplateFromYAML(ctx, store, nil, "data_akreditasi.yaml", admin)
		require.NoError(t, err)
		assert.Equal(t, 2, again.TemplateVersion)

		first, err := store.GetTemplate(ctx, tree.TemplateID)
		require.NoError(t, err)
		assert.False(t, first.TemplateIsActive, "activation replaces the previous active template")
	})
}

func TestSeedTemplate_UnbalancedActivationRollsBack(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	seed, err := ParseTemplateYAML([]byte(`
name: Tidak Seimbang
type: accreditation
activate: true
categories:
  - code: A
    name: Unsur A
    weight: 60
    sub_categories:
      - code: A.1
        name: Sub A
        indicators:
          - {code: A.1.1, question: "?", weight: 60, answer_type: boolean}
`))
	require.NoError(t, err)

	_, err = SeedTemplate(ctx, store, nil, seed, admin)
	require.Error(t, err)
	assert.True(t, evalerr.IsValidation(err))

	live, err := store.ListTemplates(ctx, nil, false)
	require.NoError(t, err)
	assert.Empty(t, live, "half-built template is retired")
}

func TestParseTemplateYAML(t *testing.T) {
	_, err := ParseTemplateYAML([]byte("name: X\ntype: accreditation\nweigth: 1\n"))
	assert.Error(t, err, "unknown field")

	_, err = ParseTemplateYAML([]byte("type: accreditation\n"))
	assert.Error(t, err, "missing name")

	seed, err := ParseTemplateYAML([]byte("name: X\ntype: indexation\n"))
	require.NoError(t, err)
	assert.Equal(t, "indexation", seed.Type)
	assert.False(t, seed.Activate)
}

func TestSeedTemplate_InvalidIndicator(t *testing.T) {
	store := newStore(t)
	seed := &TemplateSeed{
		Name: "Rusak",
		Type: "indexation",
		Categories: []CategorySeed{{
			Code: "A", Name: "A", Weight: 100,
			SubCategories: []SubCategorySeed{{
				Code: "A.1", Name: "A.1",
				Indicators: []IndicatorSeed{{Code: "A.1.1", Question: "?", Weight: 100, AnswerType: "pilihan"}},
			}},
		}},
	}
	_, err := SeedTemplate(context.Background(), store, nil, seed, admin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indicator A.1.1")
}
