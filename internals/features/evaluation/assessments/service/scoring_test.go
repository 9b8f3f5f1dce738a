package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "jurnalku_backend/internals/features/evaluation/assessments/model"
	"jurnalku_backend/internals/features/evaluation/evalerr"
	tmodel "jurnalku_backend/internals/features/evaluation/templates/model"
)

func indicator(t tmodel.AnswerType, weight float64) *tmodel.IndicatorModel {
	return &tmodel.IndicatorModel{
		IndicatorID:         uuid.New(),
		IndicatorCode:       "X.1.1",
		IndicatorAnswerType: t,
		IndicatorWeight:     weight,
	}
}

func TestScore(t *testing.T) {
	e := NewScoringEngine(TextScoringPendingReview)

	tests := []struct {
		name    string
		ind     *tmodel.IndicatorModel
		answer  Answer
		want    float64
		wantErr bool
	}{
		{"boolean true gives full weight", indicator(tmodel.AnswerTypeBoolean, 2.0), BoolAnswer(true), 2.0, false},
		{"boolean false gives zero", indicator(tmodel.AnswerTypeBoolean, 2.0), BoolAnswer(false), 0, false},
		{"scale 4 of 5", indicator(tmodel.AnswerTypeScale, 3.0), ScaleAnswer(4), 2.4, false},
		{"scale 5 of 5", indicator(tmodel.AnswerTypeScale, 3.0), ScaleAnswer(5), 3.0, false},
		{"scale 1 of 5", indicator(tmodel.AnswerTypeScale, 2.5), ScaleAnswer(1), 0.5, false},
		{"scale 6 out of range", indicator(tmodel.AnswerTypeScale, 3.0), ScaleAnswer(6), 0, true},
		{"scale 0 out of range", indicator(tmodel.AnswerTypeScale, 3.0), ScaleAnswer(0), 0, true},
		{"wrong answer kind", indicator(tmodel.AnswerTypeBoolean, 1.0), ScaleAnswer(3), 0, true},
		{"text pending review", indicator(tmodel.AnswerTypeText, 4.0), TextAnswer("uraian"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Score(tt.ind, tt.answer)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, evalerr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScore_TextFullWeightPolicy(t *testing.T) {
	e := NewScoringEngine(TextScoringFullWeight)
	ind := indicator(tmodel.AnswerTypeText, 4.0)

	got, err := e.Score(ind, TextAnswer("ada isinya"))
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)

	got, err = e.Score(ind, TextAnswer("   "))
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestParseTextScoringPolicy(t *testing.T) {
	p, err := ParseTextScoringPolicy("")
	require.NoError(t, err)
	assert.Equal(t, TextScoringPendingReview, p)

	p, err = ParseTextScoringPolicy(" Full_Weight_When_Present ")
	require.NoError(t, err)
	assert.Equal(t, TextScoringFullWeight, p)

	_, err = ParseTextScoringPolicy("half")
	assert.Error(t, err)
}

func TestRecompute(t *testing.T) {
	got := Recompute([]model.ResponseModel{
		{ResponseIndicatorID: uuid.New(), ResponseScore: 2.4, ResponseMaxScore: 3.0},
		{ResponseIndicatorID: uuid.New(), ResponseScore: 2.0, ResponseMaxScore: 2.0},
	})

	assert.Equal(t, Totals{Total: 4.4, Max: 5.0, Percentage: 88.0}, got)

	t.Run("no responses", func(t *testing.T) {
		assert.Equal(t, Totals{}, Recompute(nil))
	})

	t.Run("score never exceeds the frozen weight", func(t *testing.T) {
		got := Recompute([]model.ResponseModel{{ResponseScore: 2, ResponseMaxScore: 2}})
		assert.Equal(t, 100.0, got.Percentage)
	})
}

func TestGrade(t *testing.T) {
	cases := map[float64]string{
		100: "A", 90: "A", 89.99: "B", 80: "B", 79.5: "C", 70: "C", 60: "D", 59.99: "E", 0: "E",
	}
	for pct, want := range cases {
		assert.Equal(t, want, Grade(pct), "percentage %.2f", pct)
	}
}
