package services

import (
	"math"
	"strings"

	"nestly_server/models"
)

// Score a property gets on the location factor when the user has stated
// preferred areas and this property is in none of them.
const locationMissScore = 40

// ComputeBreakdown runs every factor calculator and returns the sub-scores
// keyed by factor name. All calculators are pure: same inputs, same output.
func ComputeBreakdown(prefs models.UserPreferences, p models.Property) map[string]int {
	return map[string]int{
		models.FactorBudget:   BudgetScore(prefs, p),
		models.FactorBedroom:  BedroomScore(prefs, p),
		models.FactorAmenity:  AmenityScore(prefs, p),
		models.FactorLocation: LocationScore(prefs, p),
		models.FactorFeature:  FeatureScore(prefs, p),
	}
}

// BudgetScore rates how well the price fits the user's budget range.
// Inside [min,max] is 100; outside, the score drops linearly with the
// distance from the nearest bound, scaled by the size of the range.
func BudgetScore(prefs models.UserPreferences, p models.Property) int {
	min, max := prefs.BudgetMin, prefs.BudgetMax
	if min <= 0 && max <= 0 {
		return 100 // no budget stated, no constraint
	}
	if (min <= 0 || p.Price >= min) && (max <= 0 || p.Price <= max) {
		return 100
	}

	var dist float64
	if min > 0 && p.Price < min {
		dist = min - p.Price
	} else {
		dist = p.Price - max
	}

	span := max - min
	if span <= 0 {
		// Only one bound was stated; scale by that bound instead.
		span = math.Max(min, max)
	}
	if span <= 0 {
		return 0
	}
	return clampScore(int(math.Round(100 * (1 - dist/span))))
}

// BedroomScore is 100 when the bedroom count is one the user asked for,
// and loses 25 points per bedroom of distance from the nearest desired
// count otherwise.
func BedroomScore(prefs models.UserPreferences, p models.Property) int {
	if len(prefs.Bedrooms) == 0 {
		return 100
	}
	nearest := -1
	for _, want := range prefs.Bedrooms {
		d := p.Bedrooms - want
		if d < 0 {
			d = -d
		}
		if nearest < 0 || d < nearest {
			nearest = d
		}
	}
	return clampScore(100 - 25*nearest)
}

// AmenityScore is the share of the user's desired amenities the property
// actually has, scaled to 0-100. An empty desired set is no constraint
// and scores 100.
func AmenityScore(prefs models.UserPreferences, p models.Property) int {
	if len(prefs.Amenities) == 0 {
		return 100
	}
	have := make(map[string]struct{}, len(p.Amenities))
	for _, a := range p.Amenities {
		have[normalize(a)] = struct{}{}
	}

	wanted, matched := 0, 0
	for _, want := range prefs.Amenities {
		w := normalize(want)
		if w == "" {
			continue
		}
		wanted++
		if _, ok := have[w]; ok {
			matched++
		}
	}
	if wanted == 0 {
		return 100
	}
	return clampScore(int(math.Round(100 * float64(matched) / float64(wanted))))
}

// LocationScore is 100 when the property's city or neighborhood is one of
// the user's preferred areas (or none were stated), and a fixed lower
// score otherwise.
func LocationScore(prefs models.UserPreferences, p models.Property) int {
	if len(prefs.Locations) == 0 {
		return 100
	}
	city, hood := normalize(p.City), normalize(p.Neighborhood)
	for _, loc := range prefs.Locations {
		l := normalize(loc)
		if l == "" {
			continue
		}
		if l == city || l == hood {
			return 100
		}
	}
	return locationMissScore
}

// FeatureScore averages the boolean feature matches. A feature matches
// when the user did not ask for it or the property has it, so each of
// pet-friendly, furnished and parking contributes an equal third.
func FeatureScore(prefs models.UserPreferences, p models.Property) int {
	matches := 0
	if !prefs.PetFriendly || p.PetFriendly {
		matches++
	}
	if !prefs.Furnished || p.Furnished {
		matches++
	}
	if !prefs.Parking || p.Parking {
		matches++
	}
	return clampScore(int(math.Round(100 * float64(matches) / 3)))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
