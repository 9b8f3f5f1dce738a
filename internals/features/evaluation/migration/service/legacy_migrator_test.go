package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jurnalku_backend/internals/databases/dbtest"
	"jurnalku_backend/internals/features/evaluation/evalerr"
	mmodel "jurnalku_backend/internals/features/evaluation/migration/model"
	tmodel "jurnalku_backend/internals/features/evaluation/templates/model"
)

var admin = uuid.MustParse("44444444-4444-4444-4444-444444444444")

func newTemplate(t *testing.T, db *gorm.DB) tmodel.TemplateModel {
	t.Helper()
	tpl := tmodel.TemplateModel{TemplateName: "Akreditasi", TemplateType: tmodel.TemplateTypeAccreditation, TemplateVersion: 1}
	require.NoError(t, db.Create(&tpl).Error)
	return tpl
}

func legacyIndicator(t *testing.T, db *gorm.DB, code, cat, sub string, weight float64, order int) tmodel.IndicatorModel {
	t.Helper()
	ind := tmodel.IndicatorModel{
		IndicatorCode:       code,
		IndicatorQuestion:   code + "?",
		IndicatorWeight:     weight,
		IndicatorAnswerType: tmodel.AnswerTypeBoolean,
		IndicatorIsActive:   true,
		IndicatorSortOrder:  order,
	}
	if cat != "" {
		ind.IndicatorLegacyCategory = &cat
	}
	if sub != "" {
		ind.IndicatorLegacySubCategory = &sub
	}
	require.NoError(t, db.Create(&ind).Error)
	return ind
}

func countRows(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func TestRun_GroupsAndWeights(t *testing.T) {
	db := dbtest.Open(t)
	tpl := newTemplate(t, db)
	m := NewLegacyMigrator(db, nil)

	legacyIndicator(t, db, "A.1.1", "Penamaan Jurnal", "Judul", 2.00, 0)
	legacyIndicator(t, db, "A.1.2", "Penamaan Jurnal", "Judul", 1.50, 1)
	legacyIndicator(t, db, "A.2.1", "Penamaan Jurnal", "Singkatan", 2.00, 2)
	legacyIndicator(t, db, "A.2.2", "Penamaan Jurnal", "Singkatan", 1.00, 3)
	legacyIndicator(t, db, "B.1.1", "Kelembagaan", "Penerbit", 3.00, 4)

	rep, err := m.Run(context.Background(), tpl.TemplateID, admin)
	require.NoError(t, err)

	assert.True(t, rep.OK(), "errors: %+v", rep.Errors)
	assert.Equal(t, 5, rep.Migrated)
	assert.Zero(t, rep.Failed)
	assert.Equal(t, 2, rep.CategoriesCreated)
	assert.Equal(t, 3, rep.SubCategoriesCreated)
	require.NotNil(t, rep.RunID)

	require.Len(t, rep.Categories, 2)
	assert.Equal(t, "Penamaan Jurnal", rep.Categories[0].Name)
	assert.Equal(t, "A", rep.Categories[0].Code)
	assert.Equal(t, 6.50, rep.Categories[0].Weight)
	assert.Equal(t, "B", rep.Categories[1].Code)

	var cats []tmodel.CategoryModel
	require.NoError(t, db.Where("category_template_id = ?", tpl.TemplateID).
		Order("category_display_order").Find(&cats).Error)
	require.Len(t, cats, 2)
	assert.Equal(t, 0, cats[0].CategoryDisplayOrder)
	assert.Equal(t, 1, cats[1].CategoryDisplayOrder)
	assert.Equal(t, 6.50, cats[0].CategoryWeight)

	var subs []tmodel.SubCategoryModel
	require.NoError(t, db.Where("sub_category_category_id = ?", cats[0].CategoryID).
		Order("sub_category_display_order").Find(&subs).Error)
	require.Len(t, subs, 2)
	assert.Equal(t, "A.1", subs[0].SubCategoryCode)
	assert.Equal(t, "Judul", subs[0].SubCategoryName)
	assert.Equal(t, "A.2", subs[1].SubCategoryCode)

	var legacyLeft int64
	require.NoError(t, db.Model(&tmodel.IndicatorModel{}).
		Where("indicator_sub_category_id IS NULL").Count(&legacyLeft).Error)
	assert.Zero(t, legacyLeft)

	var sum float64
	require.NoError(t, db.Model(&tmodel.IndicatorModel{}).
		Joins("JOIN evaluation_sub_categories s ON s.sub_category_id = evaluation_indicators.indicator_sub_category_id").
		Where("s.sub_category_category_id = ?", cats[0].CategoryID).
		Select("SUM(indicator_weight)").Scan(&sum).Error)
	assert.InDelta(t, cats[0].CategoryWeight, sum, 0.01)

	var migrated tmodel.IndicatorModel
	require.NoError(t, db.Where("indicator_code = ?", "B.1.1").Take(&migrated).Error)
	require.NotNil(t, migrated.IndicatorTemplateID)
	assert.Equal(t, tpl.TemplateID, *migrated.IndicatorTemplateID)
}

func TestRun_Idempotent(t *testing.T) {
	db := dbtest.Open(t)
	tpl := newTemplate(t, db)
	m := NewLegacyMigrator(db, nil)
	ctx := context.Background()

	legacyIndicator(t, db, "A.1.1", "Unsur A", "Sub A", 2, 0)
	legacyIndicator(t, db, "A.1.2", "Unsur A", "Sub A", 3, 1)

	_, err := m.Run(ctx, tpl.TemplateID, admin)
	require.NoError(t, err)

	cats := countRows(t, db, &tmodel.CategoryModel{})
	subs := countRows(t, db, &tmodel.SubCategoryModel{})
	runs := countRows(t, db, &mmodel.MigrationRunModel{})

	again, err := m.Run(ctx, tpl.TemplateID, admin)
	require.NoError(t, err)
	assert.Zero(t, again.Migrated)
	assert.Zero(t, again.Failed)
	assert.Nil(t, again.RunID, "nothing persisted")

	assert.Equal(t, cats, countRows(t, db, &tmodel.CategoryModel{}))
	assert.Equal(t, subs, countRows(t, db, &tmodel.SubCategoryModel{}))
	assert.Equal(t, runs, countRows(t, db, &mmodel.MigrationRunModel{}))
}

func TestRun_PartialFailureContinues(t *testing.T) {
	db := dbtest.Open(t)
	tpl := newTemplate(t, db)
	m := NewLegacyMigrator(db, nil)

	legacyIndicator(t, db, "A.1.1", "Unsur A", "Sub A", 2, 0)
	blank := legacyIndicator(t, db, "X.9", "", "Sub tanpa unsur", 1, 1)
	legacyIndicator(t, db, "A.1.2", "Unsur A", "Sub A", 3, 2)

	rep, err := m.Run(context.Background(), tpl.TemplateID, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Migrated)
	assert.Equal(t, 1, rep.Failed)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, evalerr.MigrationUnmatchedKey, rep.Errors[0].Kind)
	require.NotNil(t, rep.Errors[0].IndicatorID)
	assert.Equal(t, blank.IndicatorID, *rep.Errors[0].IndicatorID)
	assert.Equal(t, 5.0, rep.Categories[0].Weight)

	var run mmodel.MigrationRunModel
	require.NoError(t, db.Take(&run, "migration_run_id = ?", *rep.RunID).Error)
	assert.Equal(t, 2, run.MigrationRunMigrated)
	assert.Equal(t, 1, run.MigrationRunFailed)
	assert.Contains(t, string(run.MigrationRunReport), string(evalerr.MigrationUnmatchedKey))

	runs, err := m.ListRuns(context.Background(), &tpl.TemplateID)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRun_UnknownTemplate(t *testing.T) {
	db := dbtest.Open(t)
	_, err := NewLegacyMigrator(db, nil).Run(context.Background(), uuid.New(), admin)
	assert.ErrorIs(t, err, evalerr.ErrNotFound)
}

func TestCodes(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  string
	}{
		{"dotted", []string{"A.1.1", "A.1.2", "A.2.1"}, "A"},
		{"single sub", []string{"A.1.1", "A.1.2"}, "A"},
		{"single code", []string{"B.1.1"}, "B"},
		{"segment boundary", []string{"A.10", "A.11"}, "A"},
		{"dash separators", []string{"II-3-1", "II-4-2"}, "II"},
		{"no common prefix", []string{"X1", "Y2"}, "U3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categoryCode(tt.codes, 2))
		})
	}

	assert.Equal(t, "A.1", subCategoryCode("A.1.2"))
	assert.Equal(t, "II-3", subCategoryCode("II-3-1"))
	assert.Equal(t, "IND", subCategoryCode("IND"))
}
