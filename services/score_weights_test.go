package services

import (
	"testing"

	"nestly_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScoreWeightsSumToOne(t *testing.T) {
	w := DefaultScoreWeights()
	sum := w.Budget + w.Bedroom + w.Amenity + w.Location + w.Feature
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestAggregateScore(t *testing.T) {
	w := DefaultScoreWeights()

	tests := []struct {
		name      string
		breakdown map[string]int
		want      int
	}{
		{
			"all factors perfect",
			map[string]int{
				models.FactorBudget:   100,
				models.FactorBedroom:  100,
				models.FactorAmenity:  100,
				models.FactorLocation: 100,
				models.FactorFeature:  100,
			},
			100,
		},
		{
			"budget zero drags the total",
			map[string]int{
				models.FactorBudget:   0,
				models.FactorBedroom:  100,
				models.FactorAmenity:  100,
				models.FactorLocation: 100,
				models.FactorFeature:  100,
			},
			70,
		},
		{
			"single factor renormalizes to itself",
			map[string]int{models.FactorBudget: 50},
			50,
		},
		{
			"missing factors drop out",
			map[string]int{
				models.FactorBudget:  100,
				models.FactorBedroom: 100,
			},
			100,
		},
		{
			"unknown factor names are ignored",
			map[string]int{
				models.FactorBudget: 100,
				"walkability":       0,
			},
			100,
		},
		{"empty breakdown", map[string]int{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateScore(tt.breakdown, w))
		})
	}
}

func TestAggregateScoreIsDeterministic(t *testing.T) {
	w := DefaultScoreWeights()
	breakdown := map[string]int{
		models.FactorBudget:   80,
		models.FactorBedroom:  75,
		models.FactorAmenity:  50,
		models.FactorLocation: 40,
		models.FactorFeature:  67,
	}

	first := AggregateScore(breakdown, w)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, AggregateScore(breakdown, w))
	}
}

func TestLoadScoreWeightsDefaults(t *testing.T) {
	w, err := LoadScoreWeights("")
	require.NoError(t, err)
	assert.Equal(t, DefaultScoreWeights(), w)
}

func TestLoadScoreWeightsMissingFileFallsBack(t *testing.T) {
	w, err := LoadScoreWeights("testdata/does-not-exist.yaml")
	assert.Error(t, err)
	assert.Equal(t, DefaultScoreWeights(), w)
}

func TestLoadScoreWeightsEnvOverride(t *testing.T) {
	t.Setenv("MATCH_WEIGHT_BUDGET", "0.5")

	w, err := LoadScoreWeights("")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, w.Budget, 1e-9)
	assert.InDelta(t, DefaultScoreWeights().Bedroom, w.Bedroom, 1e-9)
}
