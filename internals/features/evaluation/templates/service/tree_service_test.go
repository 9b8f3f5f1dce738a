package service

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "jurnalku_backend/internals/features/evaluation/templates/model"
)

// shape: kode + urutan per level, tanpa ID, untuk dibandingkan antar salinan.
type nodeShape struct {
	Code  string
	Order int
	Kids  []nodeShape
}

func treeShape(tree *model.TemplateTree) []nodeShape {
	out := []nodeShape{}
	for _, c := range tree.Categories {
		cs := nodeShape{Code: c.CategoryCode, Order: c.CategoryDisplayOrder}
		for _, sc := range c.SubCategories {
			ss := nodeShape{Code: sc.SubCategoryCode, Order: sc.SubCategoryDisplayOrder}
			for _, ind := range sc.Indicators {
				ss.Kids = append(ss.Kids, nodeShape{Code: ind.IndicatorCode, Order: ind.IndicatorSortOrder})
			}
			cs.Kids = append(cs.Kids, ss)
		}
		for _, eq := range c.EssayQuestions {
			cs.Kids = append(cs.Kids, nodeShape{Code: "essay:" + eq.EssayQuestionCode, Order: eq.EssayQuestionDisplayOrder})
		}
		out = append(out, cs)
	}
	return out
}

func collectIDs(tree *model.TemplateTree) map[uuid.UUID]bool {
	ids := map[uuid.UUID]bool{tree.TemplateID: true}
	for _, c := range tree.Categories {
		ids[c.CategoryID] = true
		for _, sc := range c.SubCategories {
			ids[sc.SubCategoryID] = true
			for _, ind := range sc.Indicators {
				ids[ind.IndicatorID] = true
			}
		}
		for _, eq := range c.EssayQuestions {
			ids[eq.EssayQuestionID] = true
		}
	}
	return ids
}

func TestLoadTree(t *testing.T) {
	s, _ := newTestService(t)
	r := seedRubric(t, s, model.TemplateTypeAccreditation)
	ctx := context.Background()

	tree, err := s.LoadTree(ctx, r.Template.TemplateID, false)
	require.NoError(t, err)

	assert.Equal(t, model.TreeCounts{Categories: 2, SubCategories: 2, Indicators: 3, EssayQuestions: 1}, tree.Counts())
	require.Len(t, tree.Categories, 2)
	assert.Equal(t, "A", tree.Categories[0].CategoryCode)
	assert.Equal(t, "B", tree.Categories[1].CategoryCode)
	assert.Equal(t, 60.0, tree.Categories[0].IndicatorWeightSum())
	assert.NotNil(t, tree.Categories[1].EssayQuestions, "empty levels are non-nil slices")

	t.Run("activeOnly filters inactive indicators", func(t *testing.T) {
		_, err := s.SetIndicatorActive(ctx, r.IndA2.IndicatorID, false, testActor)
		require.NoError(t, err)

		full, err := s.LoadTree(ctx, r.Template.TemplateID, false)
		require.NoError(t, err)
		active, err := s.LoadTree(ctx, r.Template.TemplateID, true)
		require.NoError(t, err)
		assert.Equal(t, 3, full.Counts().Indicators)
		assert.Equal(t, 2, active.Counts().Indicators)
	})
}

func TestCloneTemplate(t *testing.T) {
	s, _ := newTestService(t)
	r := seedRubric(t, s, model.TemplateTypeAccreditation)
	ctx := context.Background()

	// urutan tidak berurutan supaya terlihat kalau clone me-renumber
	order := 7
	_, err := s.UpdateCategory(ctx, r.CatB.CategoryID, UpdateCategoryInput{DisplayOrder: &order}, testActor)
	require.NoError(t, err)
	inactive := false
	_, err = s.UpdateEssayQuestion(ctx, r.Essay.EssayQuestionID, UpdateEssayQuestionInput{IsActive: &inactive}, testActor)
	require.NoError(t, err)

	_, err = s.ActivateTemplate(ctx, r.Template.TemplateID, testActor)
	require.NoError(t, err)

	src, err := s.LoadTree(ctx, r.Template.TemplateID, false)
	require.NoError(t, err)

	clone, err := s.CloneTemplate(ctx, r.Template.TemplateID, nil, testActor)
	require.NoError(t, err)

	t.Run("same counts", func(t *testing.T) {
		assert.Equal(t, src.Counts(), clone.Counts())
	})

	t.Run("new template is inactive with next version and default name", func(t *testing.T) {
		assert.NotEqual(t, src.TemplateID, clone.TemplateID)
		assert.False(t, clone.TemplateIsActive)
		assert.Equal(t, src.TemplateVersion+1, clone.TemplateVersion)
		assert.Equal(t, "Akreditasi Jurnal (Salinan)", clone.TemplateName)
		assert.Equal(t, src.TemplateType, clone.TemplateType)
	})

	t.Run("all ids are new", func(t *testing.T) {
		srcIDs := collectIDs(src)
		for id := range collectIDs(clone) {
			assert.False(t, srcIDs[id], "id %s reused from source", id)
		}
	})

	t.Run("orders and structure preserved", func(t *testing.T) {
		if diff := cmp.Diff(treeShape(src), treeShape(clone)); diff != "" {
			t.Errorf("clone shape mismatch (-src +clone):\n%s", diff)
		}
		assert.Equal(t, 7, clone.Categories[1].CategoryDisplayOrder)
	})

	t.Run("children point at the clone", func(t *testing.T) {
		for _, c := range clone.Categories {
			assert.Equal(t, clone.TemplateID, c.CategoryTemplateID)
			for _, sc := range c.SubCategories {
				assert.Equal(t, c.CategoryID, sc.SubCategoryCategoryID)
				assert.Equal(t, clone.TemplateID, sc.SubCategoryTemplateID)
				for _, ind := range sc.Indicators {
					require.NotNil(t, ind.IndicatorSubCategoryID)
					assert.Equal(t, sc.SubCategoryID, *ind.IndicatorSubCategoryID)
					assert.Equal(t, clone.TemplateID, *ind.IndicatorTemplateID)
				}
			}
			for _, eq := range c.EssayQuestions {
				assert.Equal(t, c.CategoryID, eq.EssayQuestionCategoryID)
				assert.False(t, eq.EssayQuestionIsActive, "active flag copied")
			}
		}
	})

	t.Run("source untouched and still active", func(t *testing.T) {
		again, err := s.LoadTree(ctx, r.Template.TemplateID, false)
		require.NoError(t, err)
		assert.True(t, again.TemplateIsActive)
		assert.Equal(t, src.Counts(), again.Counts())
	})

	t.Run("custom name", func(t *testing.T) {
		name := "Akreditasi 2027"
		c2, err := s.CloneTemplate(ctx, r.Template.TemplateID, &name, testActor)
		require.NoError(t, err)
		assert.Equal(t, name, c2.TemplateName)
		assert.Equal(t, src.TemplateVersion+2, c2.TemplateVersion)
	})
}
