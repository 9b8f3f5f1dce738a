// file: internals/features/evaluation/templates/model/tree.go
package model

// Tree read-model (hasil LoadTree), bukan tabel.

type SubCategoryNode struct {
	SubCategoryModel
	Indicators []IndicatorModel `json:"indicators"`
}

type CategoryNode struct {
	CategoryModel
	SubCategories  []SubCategoryNode    `json:"sub_categories"`
	EssayQuestions []EssayQuestionModel `json:"essay_questions"`
}

type TemplateTree struct {
	TemplateModel
	Categories []CategoryNode `json:"categories"`
}

type TreeCounts struct {
	Categories     int `json:"categories"`
	SubCategories  int `json:"sub_categories"`
	Indicators     int `json:"indicators"`
	EssayQuestions int `json:"essay_questions"`
}

func (t *TemplateTree) Counts() TreeCounts {
	var c TreeCounts
	for _, cat := range t.Categories {
		c.Categories++
		c.EssayQuestions += len(cat.EssayQuestions)
		for _, sub := range cat.SubCategories {
			c.SubCategories++
			c.Indicators += len(sub.Indicators)
		}
	}
	return c
}

// IndicatorWeightSum: Σ bobot indikator di bawah satu Unsur.
func (n *CategoryNode) IndicatorWeightSum() float64 {
	var sum float64
	for _, sub := range n.SubCategories {
		for _, ind := range sub.Indicators {
			sum += ind.IndicatorWeight
		}
	}
	return sum
}
