package templates

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	model "jurnalku_backend/internals/features/evaluation/templates/model"
	"jurnalku_backend/internals/features/evaluation/templates/service"
)

/* =========================================================
   YAML shape
========================================================= */

type IndicatorSeed struct {
	Code               string  `yaml:"code"`
	Question           string  `yaml:"question"`
	Description        *string `yaml:"description"`
	Weight             float64 `yaml:"weight"`
	AnswerType         string  `yaml:"answer_type"`
	RequiresAttachment bool    `yaml:"requires_attachment"`
	Active             *bool   `yaml:"active"`
}

type SubCategorySeed struct {
	Code        string          `yaml:"code"`
	Name        string          `yaml:"name"`
	Description *string         `yaml:"description"`
	Indicators  []IndicatorSeed `yaml:"indicators"`
}

type EssayQuestionSeed struct {
	Code     string  `yaml:"code"`
	Question string  `yaml:"question"`
	Guidance *string `yaml:"guidance"`
	MaxWords int     `yaml:"max_words"`
	Required bool    `yaml:"required"`
}

type CategorySeed struct {
	Code           string              `yaml:"code"`
	Name           string              `yaml:"name"`
	Weight         float64             `yaml:"weight"`
	Description    *string             `yaml:"description"`
	SubCategories  []SubCategorySeed   `yaml:"sub_categories"`
	EssayQuestions []EssayQuestionSeed `yaml:"essay_questions"`
}

type TemplateSeed struct {
	Name          string         `yaml:"name"`
	Type          string         `yaml:"type"`
	EffectiveDate string         `yaml:"effective_date"`
	Description   *string        `yaml:"description"`
	Activate      bool           `yaml:"activate"`
	Categories    []CategorySeed `yaml:"categories"`
}

// HierarchyStore: operasi hierarki yang dipakai seeder.
type HierarchyStore interface {
	CreateTemplate(ctx context.Context, in service.CreateTemplateInput, actor uuid.UUID) (*model.TemplateModel, error)
	CreateCategory(ctx context.Context, templateID uuid.UUID, in service.CreateCategoryInput, actor uuid.UUID) (*model.CategoryModel, error)
	CreateSubCategory(ctx context.Context, categoryID uuid.UUID, in service.CreateSubCategoryInput, actor uuid.UUID) (*model.SubCategoryModel, error)
	CreateIndicator(ctx context.Context, subCategoryID uuid.UUID, in service.CreateIndicatorInput, actor uuid.UUID) (*model.IndicatorModel, error)
	CreateEssayQuestion(ctx context.Context, categoryID uuid.UUID, in service.CreateEssayQuestionInput, actor uuid.UUID) (*model.EssayQuestionModel, error)
	ActivateTemplate(ctx context.Context, templateID uuid.UUID, actor uuid.UUID) (*model.TemplateModel, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
	LoadTree(ctx context.Context, templateID uuid.UUID, activeOnly bool) (*model.TemplateTree, error)
}

/* =========================================================
   Parse
========================================================= */

// ParseTemplateYAML: field yang tidak dikenal ditolak supaya typo tidak diam-diam hilang.
func ParseTemplateYAML(content []byte) (*TemplateSeed, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var seed TemplateSeed
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode template yaml: %w", err)
	}
	if strings.TrimSpace(seed.Name) == "" {
		return nil, fmt.Errorf("decode template yaml: name is required")
	}
	return &seed, nil
}

/* =========================================================
   Seed
========================================================= */

func SeedTemplateFromYAML(ctx context.Context, store HierarchyStore, log *zap.Logger, filePath string, actor uuid.UUID) (*model.TemplateTree, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("[SeedTemplate] membaca file", zap.String("path", filePath))

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	seed, err := ParseTemplateYAML(content)
	if err != nil {
		return nil, err
	}
	return SeedTemplate(ctx, store, log, seed, actor)
}

// SeedTemplate membuat template baru (selalu versi baru, tidak menimpa) lalu
// mengisi hierarkinya. Gagal di tengah → template setengah jadi di-retire.
func SeedTemplate(ctx context.Context, store HierarchyStore, log *zap.Logger, seed *TemplateSeed, actor uuid.UUID) (*model.TemplateTree, error) {
	if log == nil {
		log = zap.NewNop()
	}

	in := service.CreateTemplateInput{
		Name:        strings.TrimSpace(seed.Name),
		Type:        model.TemplateType(strings.ToLower(strings.TrimSpace(seed.Type))),
		Description: seed.Description,
	}
	if d := strings.TrimSpace(seed.EffectiveDate); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, fmt.Errorf("effective_date %q: %w", d, err)
		}
		in.EffectiveDate = &t
	}

	tpl, err := store.CreateTemplate(ctx, in, actor)
	if err != nil {
		return nil, err
	}

	if err := fill(ctx, store, tpl.TemplateID, seed, actor); err != nil {
		if derr := store.DeleteTemplate(ctx, tpl.TemplateID, actor); derr != nil {
			log.Warn("[SeedTemplate] gagal membersihkan template", zap.String("template_id", tpl.TemplateID.String()), zap.Error(derr))
		}
		return nil, err
	}

	tree, err := store.LoadTree(ctx, tpl.TemplateID, false)
	if err != nil {
		return nil, err
	}
	counts := tree.Counts()
	log.Info("[SeedTemplate] template dibuat",
		zap.String("template_id", tpl.TemplateID.String()),
		zap.Int("version", tree.TemplateVersion),
		zap.Int("categories", counts.Categories),
		zap.Int("indicators", counts.Indicators),
		zap.Bool("active", tree.TemplateIsActive))
	return tree, nil
}

func fill(ctx context.Context, store HierarchyStore, templateID uuid.UUID, seed *TemplateSeed, actor uuid.UUID) error {
	for _, c := range seed.Categories {
		cat, err := store.CreateCategory(ctx, templateID, service.CreateCategoryInput{
			Code:        c.Code,
			Name:        c.Name,
			Weight:      c.Weight,
			Description: c.Description,
		}, actor)
		if err != nil {
			return fmt.Errorf("category %s: %w", c.Code, err)
		}

		for _, sc := range c.SubCategories {
			sub, err := store.CreateSubCategory(ctx, cat.CategoryID, service.CreateSubCategoryInput{
				Code:        sc.Code,
				Name:        sc.Name,
				Description: sc.Description,
			}, actor)
			if err != nil {
				return fmt.Errorf("sub category %s: %w", sc.Code, err)
			}
			for _, ind := range sc.Indicators {
				if _, err := store.CreateIndicator(ctx, sub.SubCategoryID, service.CreateIndicatorInput{
					Code:               ind.Code,
					Question:           ind.Question,
					Description:        ind.Description,
					Weight:             ind.Weight,
					AnswerType:         model.AnswerType(strings.ToLower(strings.TrimSpace(ind.AnswerType))),
					RequiresAttachment: ind.RequiresAttachment,
					IsActive:           ind.Active,
				}, actor); err != nil {
					return fmt.Errorf("indicator %s: %w", ind.Code, err)
				}
			}
		}

		for _, eq := range c.EssayQuestions {
			if _, err := store.CreateEssayQuestion(ctx, cat.CategoryID, service.CreateEssayQuestionInput{
				Code:       eq.Code,
				Question:   eq.Question,
				Guidance:   eq.Guidance,
				MaxWords:   eq.MaxWords,
				IsRequired: eq.Required,
			}, actor); err != nil {
				return fmt.Errorf("essay question %s: %w", eq.Code, err)
			}
		}
	}

	if seed.Activate {
		if _, err := store.ActivateTemplate(ctx, templateID, actor); err != nil {
			return fmt.Errorf("activate: %w", err)
		}
	}
	return nil
}
