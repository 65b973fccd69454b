package chainmate

import "math"

// Portfolio health thresholds on the diversity score.
const (
	healthConcentratedBelow = 30
	healthModerateBelow     = 70
)

// DiversityScore computes a normalized Shannon-entropy concentration score
// over token USD values. 0 means all value sits in one holding, 100 means a
// perfectly even split. Empty and single-token lists score 0: a single
// holding has zero maximum entropy, so the ratio is short-circuited before
// the division.
func DiversityScore(values []float64) int {
	if len(values) == 0 {
		return 0
	}

	total := 0.0
	for _, v := range values {
		total += v
	}
	if total <= 0 {
		return 0
	}

	entropy := 0.0
	for _, v := range values {
		w := v / total
		if w > 0 {
			entropy -= w * math.Log(w)
		}
	}

	maxEntropy := math.Log(float64(len(values)))
	if maxEntropy <= 0 {
		return 0
	}
	return int(math.Round(entropy / maxEntropy * 100))
}

// HealthForScore derives the three-tier portfolio health label from a
// diversity score.
func HealthForScore(score int) PortfolioHealth {
	switch {
	case score < healthConcentratedBelow:
		return HealthConcentrated
	case score < healthModerateBelow:
		return HealthModerate
	default:
		return HealthDiversified
	}
}
