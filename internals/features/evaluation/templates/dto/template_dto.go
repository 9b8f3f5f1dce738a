// file: internals/features/evaluation/templates/dto/template_dto.go
package dto

import (
	"strings"
	"time"

	"jurnalku_backend/internals/features/evaluation/evalerr"
	model "jurnalku_backend/internals/features/evaluation/templates/model"
	"jurnalku_backend/internals/features/evaluation/templates/service"
)

const dateLayout = "2006-01-02"

/* =========================================================
   Helpers
========================================================= */

func parseDate(field string, p *string) (*time.Time, error) {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*p))
	if err != nil {
		return nil, evalerr.Validation(field, "format tanggal harus YYYY-MM-DD")
	}
	return &t, nil
}

/* =========================================================
   1) REQUEST DTO (key JSON = nama kolom)
========================================================= */

type CreateTemplateRequest struct {
	TemplateName          string             `json:"template_name"`
	TemplateType          model.TemplateType `json:"template_type"`
	TemplateVersion       int                `json:"template_version"` // 0 → versi berikutnya
	TemplateEffectiveDate *string            `json:"template_effective_date"`
	TemplateDescription   *string            `json:"template_description"`
}

func (r *CreateTemplateRequest) ToInput() (service.CreateTemplateInput, error) {
	eff, err := parseDate("template_effective_date", r.TemplateEffectiveDate)
	if err != nil {
		return service.CreateTemplateInput{}, err
	}
	return service.CreateTemplateInput{
		Name:          strings.TrimSpace(r.TemplateName),
		Type:          model.TemplateType(strings.ToLower(strings.TrimSpace(string(r.TemplateType)))),
		Version:       r.TemplateVersion,
		EffectiveDate: eff,
		Description:   r.TemplateDescription,
	}, nil
}

// Update (partial)
type UpdateTemplateRequest struct {
	TemplateName          *string `json:"template_name"`
	TemplateEffectiveDate *string `json:"template_effective_date"`
	TemplateDescription   *string `json:"template_description"`
}

func (r *UpdateTemplateRequest) ToInput() (service.UpdateTemplateInput, error) {
	eff, err := parseDate("template_effective_date", r.TemplateEffectiveDate)
	if err != nil {
		return service.UpdateTemplateInput{}, err
	}
	return service.UpdateTemplateInput{
		Name:          r.TemplateName,
		EffectiveDate: eff,
		Description:   r.TemplateDescription,
	}, nil
}

type CloneTemplateRequest struct {
	TemplateName *string `json:"template_name"`
}

/* =========================================================
   2) RESPONSE DTO
========================================================= */

type TemplateTreeResponse struct {
	*model.TemplateTree
	Counts model.TreeCounts `json:"counts"`
}

func FromTree(t *model.TemplateTree) TemplateTreeResponse {
	return TemplateTreeResponse{TemplateTree: t, Counts: t.Counts()}
}

type TemplateListItem struct {
	model.TemplateModel
	TemplateLabel string `json:"template_label"`
}

func FromTemplates(rows []model.TemplateModel) []TemplateListItem {
	out := make([]TemplateListItem, 0, len(rows))
	for i := range rows {
		out = append(out, TemplateListItem{TemplateModel: rows[i], TemplateLabel: rows[i].Label()})
	}
	return out
}

type CanDeleteResponse struct {
	Entity    model.EntityKind `json:"entity"`
	ID        string           `json:"id"`
	CanDelete bool             `json:"can_delete"`
}
