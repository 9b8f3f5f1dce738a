// file: internals/features/evaluation/templates/model/weights.go
package model

import "math"

const (
	// TargetTemplateWeight: Σ bobot Unsur per template.
	TargetTemplateWeight = 100.0
	// WeightTolerance: toleransi perbandingan bobot (2 desimal).
	WeightTolerance = 0.01
)

// Round2 membulatkan ke presisi kolom numeric(.,2).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func WeightsEqual(a, b float64) bool {
	return math.Abs(Round2(a)-Round2(b)) <= WeightTolerance+1e-9
}

// =========================
// Enum: Entity Kind (target guard / delete)
// =========================

type EntityKind string

const (
	EntityTemplate    EntityKind = "template"
	EntityCategory    EntityKind = "category"
	EntitySubCategory EntityKind = "sub_category"
	EntityIndicator   EntityKind = "indicator"
)
