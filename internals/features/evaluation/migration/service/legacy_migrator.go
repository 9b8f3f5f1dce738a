// file: internals/features/evaluation/migration/service/legacy_migrator.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jurnalku_backend/internals/features/evaluation/evalerr"
	mmodel "jurnalku_backend/internals/features/evaluation/migration/model"
	tmodel "jurnalku_backend/internals/features/evaluation/templates/model"
	"jurnalku_backend/internals/metrics"
)

/*
   LegacyMigrator: indikator flat (category/sub_category string, sub_category_id null)
   → Unsur / Sub-Unsur di bawah satu template.
   Satu transaksi; kegagalan per indikator dikumpulkan di Report, tidak membatalkan batch.
   Jalan kedua (tidak ada indikator legacy) tidak menulis apa pun.
*/

type LegacyMigrator struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewLegacyMigrator(db *gorm.DB, log *zap.Logger) *LegacyMigrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &LegacyMigrator{DB: db, Log: log}
}

type CreatedCategory struct {
	CategoryID    uuid.UUID `json:"category_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Weight        float64   `json:"weight"`
	SubCategories int       `json:"sub_categories"`
	Indicators    int       `json:"indicators"`
}

type Report struct {
	TemplateID           uuid.UUID                `json:"template_id"`
	Migrated             int                      `json:"migrated"`
	Failed               int                      `json:"failed"`
	CategoriesCreated    int                      `json:"categories_created"`
	SubCategoriesCreated int                      `json:"sub_categories_created"`
	Categories           []CreatedCategory        `json:"categories"`
	Errors               []evalerr.MigrationError `json:"errors"`
	RunID                *uuid.UUID               `json:"run_id,omitempty"`
}

// OK: tidak ada kegagalan sama sekali (termasuk validation pass).
func (r *Report) OK() bool { return len(r.Errors) == 0 }

func (r *Report) addError(e evalerr.MigrationError) {
	r.Errors = append(r.Errors, e)
}

type subGroup struct {
	name       string
	indicators []tmodel.IndicatorModel
}

type catGroup struct {
	name     string
	subs     []*subGroup
	subIndex map[string]*subGroup
}

/* =========================================================
   RUN
========================================================= */

func (m *LegacyMigrator) Run(ctx context.Context, templateID uuid.UUID, actor uuid.UUID) (*Report, error) {
	rep := &Report{
		TemplateID: templateID,
		Categories: []CreatedCategory{},
		Errors:     []evalerr.MigrationError{},
	}
	var by *uuid.UUID
	if actor != uuid.Nil {
		a := actor
		by = &a
	}

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tpl tmodel.TemplateModel
		if err := tx.Where("template_id = ? AND template_record_status = ?", templateID, tmodel.RecordStatusActive).
			Take(&tpl).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("template %s: %w", templateID, evalerr.ErrNotFound)
			}
			return err
		}

		var legacy []tmodel.IndicatorModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("indicator_sub_category_id IS NULL AND indicator_record_status = ?", tmodel.RecordStatusActive).
			Order("indicator_sort_order ASC, indicator_created_at ASC, indicator_id ASC").
			Find(&legacy).Error; err != nil {
			return err
		}
		if len(legacy) == 0 {
			return nil
		}

		groups := groupLegacy(legacy, rep)
		if len(groups) == 0 {
			return m.persistRun(tx, rep, by)
		}

		baseOrder, err := nextCategoryOrder(tx, templateID)
		if err != nil {
			return err
		}

		createdCats := make([]uuid.UUID, 0, len(groups))
		createdSubs := make([]uuid.UUID, 0)
		weights := make(map[uuid.UUID]float64, len(groups))

		for ci, g := range groups {
			var (
				codes []string
				sum   float64
				count int
			)
			for _, sg := range g.subs {
				for _, ind := range sg.indicators {
					codes = append(codes, ind.IndicatorCode)
					sum += ind.IndicatorWeight
					count++
				}
			}

			cat := tmodel.CategoryModel{
				CategoryTemplateID:   templateID,
				CategoryCode:         categoryCode(codes, ci),
				CategoryName:         g.name,
				CategoryWeight:       tmodel.Round2(sum),
				CategoryDisplayOrder: baseOrder + ci,
				CategoryCreatedBy:    by,
				CategoryUpdatedBy:    by,
			}
			if err := tx.Create(&cat).Error; err != nil {
				return fmt.Errorf("create category %q: %w", g.name, err)
			}
			createdCats = append(createdCats, cat.CategoryID)
			weights[cat.CategoryID] = cat.CategoryWeight

			for si, sg := range g.subs {
				sc := tmodel.SubCategoryModel{
					SubCategoryCategoryID:   cat.CategoryID,
					SubCategoryTemplateID:   templateID,
					SubCategoryCode:         subCategoryCode(sg.indicators[0].IndicatorCode),
					SubCategoryName:         sg.name,
					SubCategoryDisplayOrder: si,
					SubCategoryCreatedBy:    by,
					SubCategoryUpdatedBy:    by,
				}
				if err := tx.Create(&sc).Error; err != nil {
					return fmt.Errorf("create sub category %q: %w", sg.name, err)
				}
				createdSubs = append(createdSubs, sc.SubCategoryID)

				ids := make([]uuid.UUID, 0, len(sg.indicators))
				for _, ind := range sg.indicators {
					ids = append(ids, ind.IndicatorID)
				}
				res := tx.Model(&tmodel.IndicatorModel{}).
					Where("indicator_id IN ? AND indicator_sub_category_id IS NULL", ids).
					Updates(map[string]any{
						"indicator_sub_category_id": sc.SubCategoryID,
						"indicator_template_id":     templateID,
						"indicator_updated_by":      by,
					})
				if res.Error != nil {
					return res.Error
				}
				rep.Migrated += int(res.RowsAffected)
			}

			rep.Categories = append(rep.Categories, CreatedCategory{
				CategoryID:    cat.CategoryID,
				Code:          cat.CategoryCode,
				Name:          cat.CategoryName,
				Weight:        cat.CategoryWeight,
				SubCategories: len(g.subs),
				Indicators:    count,
			})
		}
		rep.CategoriesCreated = len(createdCats)
		rep.SubCategoriesCreated = len(createdSubs)

		if err := validateMigration(tx, rep, legacy, createdSubs, weights); err != nil {
			return err
		}
		return m.persistRun(tx, rep, by)
	})
	if err != nil {
		m.Log.Error("[LegacyMigrator] run failed", zap.String("template_id", templateID.String()), zap.Error(err))
		return nil, err
	}

	metrics.LegacyIndicatorsMigrated.WithLabelValues("migrated").Add(float64(rep.Migrated))
	metrics.LegacyIndicatorsMigrated.WithLabelValues("failed").Add(float64(rep.Failed))
	m.Log.Info("[LegacyMigrator] done",
		zap.String("template_id", templateID.String()),
		zap.Int("migrated", rep.Migrated),
		zap.Int("failed", rep.Failed),
		zap.Int("issues", len(rep.Errors)))
	return rep, nil
}

// groupLegacy: kelompok per category lalu sub_category, urutan first-seen.
// Key kosong → MigrationError (unmatched_key), indikator dilewati.
func groupLegacy(legacy []tmodel.IndicatorModel, rep *Report) []*catGroup {
	var groups []*catGroup
	index := make(map[string]*catGroup)

	for _, ind := range legacy {
		cat, sub := ind.LegacyKey()
		if cat == "" || sub == "" {
			id := ind.IndicatorID
			rep.Failed++
			rep.addError(evalerr.MigrationError{
				Kind:        evalerr.MigrationUnmatchedKey,
				IndicatorID: &id,
				Key:         cat + " / " + sub,
				Message:     fmt.Sprintf("indicator %s has no category/sub category key", ind.IndicatorCode),
			})
			continue
		}
		g, ok := index[cat]
		if !ok {
			g = &catGroup{name: cat, subIndex: make(map[string]*subGroup)}
			index[cat] = g
			groups = append(groups, g)
		}
		sg, ok := g.subIndex[sub]
		if !ok {
			sg = &subGroup{name: sub}
			g.subIndex[sub] = sg
			g.subs = append(g.subs, sg)
		}
		sg.indicators = append(sg.indicators, ind)
	}
	return groups
}

func nextCategoryOrder(tx *gorm.DB, templateID uuid.UUID) (int, error) {
	var max int
	if err := tx.Model(&tmodel.CategoryModel{}).
		Where("category_template_id = ? AND category_record_status = ?", templateID, tmodel.RecordStatusActive).
		Select("COALESCE(MAX(category_display_order), -1)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

/* =========================================================
   VALIDATION PASS (dilaporkan, tidak di-throw)
========================================================= */

func validateMigration(tx *gorm.DB, rep *Report, legacy []tmodel.IndicatorModel, subIDs []uuid.UUID, weights map[uuid.UUID]float64) error {
	reported := make(map[uuid.UUID]bool, len(rep.Errors))
	for _, e := range rep.Errors {
		if e.IndicatorID != nil {
			reported[*e.IndicatorID] = true
		}
	}

	// (a) indikator yang masih null
	ids := make([]uuid.UUID, 0, len(legacy))
	for _, ind := range legacy {
		ids = append(ids, ind.IndicatorID)
	}
	var remaining []uuid.UUID
	if err := tx.Model(&tmodel.IndicatorModel{}).
		Where("indicator_id IN ? AND indicator_sub_category_id IS NULL", ids).
		Pluck("indicator_id", &remaining).Error; err != nil {
		return err
	}
	for _, id := range remaining {
		if reported[id] {
			continue
		}
		rep.Failed++
		rep.addError(evalerr.MigrationError{
			Kind:        evalerr.MigrationUnassigned,
			IndicatorID: &id,
			Message:     "indicator still has no sub category",
		})
	}

	// (b) Sub-Unsur tanpa indikator
	if len(subIDs) > 0 {
		type subCount struct {
			SubCategoryID uuid.UUID
			N             int64
		}
		var counts []subCount
		if err := tx.Model(&tmodel.IndicatorModel{}).
			Select("indicator_sub_category_id AS sub_category_id, COUNT(*) AS n").
			Where("indicator_sub_category_id IN ? AND indicator_record_status = ?", subIDs, tmodel.RecordStatusActive).
			Group("indicator_sub_category_id").
			Scan(&counts).Error; err != nil {
			return err
		}
		have := make(map[uuid.UUID]int64, len(counts))
		for _, c := range counts {
			have[c.SubCategoryID] = c.N
		}
		for _, id := range subIDs {
			if have[id] > 0 {
				continue
			}
			rep.addError(evalerr.MigrationError{
				Kind:     evalerr.MigrationOrphan,
				EntityID: &id,
				Message:  "sub category has no indicators",
			})
		}
	}

	// (c) Σ bobot indikator per Unsur = bobot Unsur (±0.01)
	if len(weights) > 0 {
		catIDs := make([]uuid.UUID, 0, len(weights))
		for id := range weights {
			catIDs = append(catIDs, id)
		}
		type catSum struct {
			CategoryID uuid.UUID
			Total      float64
		}
		var sums []catSum
		if err := tx.Table("evaluation_indicators AS i").
			Select("s.sub_category_category_id AS category_id, COALESCE(SUM(i.indicator_weight), 0) AS total").
			Joins("JOIN evaluation_sub_categories s ON s.sub_category_id = i.indicator_sub_category_id").
			Where("s.sub_category_category_id IN ? AND i.indicator_record_status = ?", catIDs, tmodel.RecordStatusActive).
			Group("s.sub_category_category_id").
			Scan(&sums).Error; err != nil {
			return err
		}
		got := make(map[uuid.UUID]float64, len(sums))
		for _, s := range sums {
			got[s.CategoryID] = tmodel.Round2(s.Total)
		}
		for _, c := range rep.Categories {
			if tmodel.WeightsEqual(got[c.CategoryID], c.Weight) {
				continue
			}
			id := c.CategoryID
			rep.addError(evalerr.MigrationError{
				Kind:     evalerr.MigrationWeightMismatch,
				EntityID: &id,
				Key:      c.Name,
				Message:  fmt.Sprintf("indicator weights sum to %.2f, category weight is %.2f", got[c.CategoryID], c.Weight),
			})
		}
	}
	return nil
}

// persistRun: hanya dipanggil kalau ada yang ditulis atau gagal di batch ini.
func (m *LegacyMigrator) persistRun(tx *gorm.DB, rep *Report, by *uuid.UUID) error {
	body, err := sonic.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode migration report: %w", err)
	}
	run := mmodel.MigrationRunModel{
		MigrationRunTemplateID: rep.TemplateID,
		MigrationRunMigrated:   rep.Migrated,
		MigrationRunFailed:     rep.Failed,
		MigrationRunReport:     datatypes.JSON(body),
		MigrationRunActorID:    by,
	}
	if err := tx.Create(&run).Error; err != nil {
		return err
	}
	id := run.MigrationRunID
	rep.RunID = &id
	return nil
}

// ListRuns: riwayat migrasi, terbaru dulu.
func (m *LegacyMigrator) ListRuns(ctx context.Context, templateID *uuid.UUID) ([]mmodel.MigrationRunModel, error) {
	q := m.DB.WithContext(ctx).Order("migration_run_created_at DESC")
	if templateID != nil {
		q = q.Where("migration_run_template_id = ?", *templateID)
	}
	var rows []mmodel.MigrationRunModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
