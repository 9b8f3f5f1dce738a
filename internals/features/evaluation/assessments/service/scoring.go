// file: internals/features/evaluation/assessments/service/scoring.go
package service

import (
	"fmt"
	"strings"

	amodel "jurnalku_backend/internals/features/evaluation/assessments/model"
	"jurnalku_backend/internals/features/evaluation/evalerr"
	tmodel "jurnalku_backend/internals/features/evaluation/templates/model"
)

/* =========================================================
   TEXT SCORING POLICY
========================================================= */

// TextScoringPolicy: keputusan produk untuk jawaban uraian, wajib eksplisit.
//   - pending_review           : skor 0 sampai reviewer memberi nilai manual
//   - full_weight_when_present : teks tidak kosong langsung dapat bobot penuh
type TextScoringPolicy string

const (
	TextScoringPendingReview TextScoringPolicy = "pending_review"
	TextScoringFullWeight    TextScoringPolicy = "full_weight_when_present"
)

func ParseTextScoringPolicy(s string) (TextScoringPolicy, error) {
	switch p := TextScoringPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return TextScoringPendingReview, nil
	case TextScoringPendingReview, TextScoringFullWeight:
		return p, nil
	default:
		return "", fmt.Errorf("unknown text scoring policy %q", s)
	}
}

/* =========================================================
   ANSWER
========================================================= */

// Answer: nilai mentah, hanya field yang sesuai answer_type yang dibaca.
type Answer struct {
	Boolean *bool   `json:"boolean,omitempty"`
	Scale   *int    `json:"scale,omitempty"`
	Text    *string `json:"text,omitempty"`
}

func BoolAnswer(v bool) Answer { return Answer{Boolean: &v} }

func ScaleAnswer(v int) Answer { return Answer{Scale: &v} }

func TextAnswer(v string) Answer { return Answer{Text: &v} }

/* =========================================================
   ENGINE
========================================================= */

type ScoringEngine struct {
	TextPolicy TextScoringPolicy
}

func NewScoringEngine(policy TextScoringPolicy) *ScoringEngine {
	if policy == "" {
		policy = TextScoringPendingReview
	}
	return &ScoringEngine{TextPolicy: policy}
}

// Score menghitung skor satu jawaban terhadap indikatornya.
//   boolean : true → bobot, false → 0
//   scale   : (v/5) × bobot, v wajib 1..5
//   text    : lihat TextScoringPolicy
func (e *ScoringEngine) Score(ind *tmodel.IndicatorModel, ans Answer) (float64, error) {
	w := ind.IndicatorWeight
	switch ind.IndicatorAnswerType {
	case tmodel.AnswerTypeBoolean:
		if ans.Boolean == nil {
			return 0, evalerr.Validation("answer.boolean", "indicator %s expects a boolean answer", ind.IndicatorCode)
		}
		if *ans.Boolean {
			return w, nil
		}
		return 0, nil

	case tmodel.AnswerTypeScale:
		if ans.Scale == nil {
			return 0, evalerr.Validation("answer.scale", "indicator %s expects a scale answer", ind.IndicatorCode)
		}
		v := *ans.Scale
		if v < tmodel.ScaleMin || v > tmodel.ScaleMax {
			return 0, evalerr.Validation("answer.scale", "scale value %d is outside %d..%d", v, tmodel.ScaleMin, tmodel.ScaleMax)
		}
		return tmodel.Round2(float64(v) / float64(tmodel.ScaleMax) * w), nil

	case tmodel.AnswerTypeText:
		if ans.Text == nil {
			return 0, evalerr.Validation("answer.text", "indicator %s expects a text answer", ind.IndicatorCode)
		}
		if e.TextPolicy == TextScoringFullWeight && strings.TrimSpace(*ans.Text) != "" {
			return w, nil
		}
		return 0, nil
	}
	return 0, evalerr.Validation("answer_type", "unknown answer type %q", ind.IndicatorAnswerType)
}

/* =========================================================
   AGGREGATION
========================================================= */

type Totals struct {
	Total      float64 `json:"total"`
	Max        float64 `json:"max"`
	Percentage float64 `json:"percentage"`
}

// Recompute: total = Σ skor response; max = Σ bobot yang dibekukan di tiap response
// (bukan seluruh rubrik). Coverage dihitung terpisah (CompletionPercentage).
func Recompute(responses []amodel.ResponseModel) Totals {
	var t Totals
	for _, r := range responses {
		t.Total += r.ResponseScore
		t.Max += r.ResponseMaxScore
	}
	t.Total = tmodel.Round2(t.Total)
	t.Max = tmodel.Round2(t.Max)
	if t.Max > 0 {
		t.Percentage = tmodel.Round2(t.Total / t.Max * 100)
	}
	return t
}

// Grade: banding A..E dari persentase skor.
func Grade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "E"
	}
}
