package services

import (
	"fmt"
	"math"

	"nestly_server/models"

	"github.com/spf13/viper"
)

// ScoreWeights holds the relative weight of each scoring factor. Weights
// are configuration, never per-call inputs; the defaults sum to 1.0 and
// AggregateScore renormalizes, so overrides need not.
type ScoreWeights struct {
	Budget   float64 `mapstructure:"budget"`
	Bedroom  float64 `mapstructure:"bedroom"`
	Amenity  float64 `mapstructure:"amenity"`
	Location float64 `mapstructure:"location"`
	Feature  float64 `mapstructure:"feature"`
}

// DefaultScoreWeights returns the baseline weight policy.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Budget:   0.30,
		Bedroom:  0.20,
		Amenity:  0.20,
		Location: 0.15,
		Feature:  0.15,
	}
}

// LoadScoreWeights reads weight overrides from an optional config file and
// MATCH_WEIGHT_* environment variables, falling back to the defaults on
// any read error.
func LoadScoreWeights(path string) (ScoreWeights, error) {
	w := DefaultScoreWeights()

	v := viper.New()
	v.SetDefault("budget", w.Budget)
	v.SetDefault("bedroom", w.Bedroom)
	v.SetDefault("amenity", w.Amenity)
	v.SetDefault("location", w.Location)
	v.SetDefault("feature", w.Feature)

	v.SetEnvPrefix("MATCH_WEIGHT")
	for _, key := range []string{"budget", "bedroom", "amenity", "location", "feature"} {
		_ = v.BindEnv(key)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return w, fmt.Errorf("read weights config: %w", err)
		}
	}

	if err := v.Unmarshal(&w); err != nil {
		return DefaultScoreWeights(), fmt.Errorf("unmarshal weights: %w", err)
	}
	return w, nil
}

func (w ScoreWeights) forFactor(name string) float64 {
	switch name {
	case models.FactorBudget:
		return w.Budget
	case models.FactorBedroom:
		return w.Bedroom
	case models.FactorAmenity:
		return w.Amenity
	case models.FactorLocation:
		return w.Location
	case models.FactorFeature:
		return w.Feature
	}
	return 0
}

// AggregateScore combines a factor breakdown into one 0-100 total as the
// weighted mean over the factors present. Factors missing from the
// breakdown simply drop out and the remaining weights renormalize, so a
// partial breakdown is never an error.
func AggregateScore(breakdown map[string]int, w ScoreWeights) int {
	var sum, sumWeights float64
	for name, score := range breakdown {
		fw := w.forFactor(name)
		if fw <= 0 {
			continue
		}
		sumWeights += fw
		sum += fw * float64(score)
	}
	if sumWeights <= 0 {
		return 0
	}
	return clampScore(int(math.Round(sum / sumWeights)))
}
