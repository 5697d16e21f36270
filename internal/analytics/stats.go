package analytics

import (
	"math"
	"sort"

	"gradecli/pkg/contracts/domain"
)

// DefaultPercentiles are the percentiles reported when the caller has no
// preference of its own.
var DefaultPercentiles = []float64{25, 50, 75, 90, 95}

// Distribution summarizes the final grades of the given records. Records
// without a computed final grade are excluded from the numeric fields and
// counted under Incomplete instead.
func Distribution(records []domain.EnrichedRecord) domain.DistributionStats {
	stats := domain.DistributionStats{Letters: make(map[string]int)}

	var grades []float64
	for _, r := range records {
		if r.FinalGrade == nil {
			stats.Incomplete++
			continue
		}
		grades = append(grades, *r.FinalGrade)
		stats.Letters[r.LetterGrade]++
	}

	stats.Count = len(grades)
	if stats.Count == 0 {
		return stats
	}

	sorted := sortedCopy(grades)
	stats.Mean = ptr(mean(grades))
	stats.Median = ptr(percentileOf(sorted, 50))
	stats.Mode = ptr(mode(grades))
	stats.StdDev = ptr(populationStdDev(grades))
	stats.Min = ptr(sorted[0])
	stats.Max = ptr(sorted[len(sorted)-1])
	return stats
}

// Percentiles computes the requested percentiles over values using linear
// interpolation at rank p/100 x (n-1). Empty input yields an empty map.
func Percentiles(values []float64, ps []float64) map[float64]float64 {
	result := make(map[float64]float64, len(ps))
	if len(values) == 0 {
		return result
	}

	sorted := sortedCopy(values)
	for _, p := range ps {
		result[p] = percentileOf(sorted, p)
	}
	return result
}

// percentileOf interpolates the p-th percentile (p in [0,100]) over an
// already sorted, non-empty slice.
func percentileOf(sorted []float64, p float64) float64 {
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	frac := rank - float64(lower)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStdDev divides by n, not n-1: the roster is the whole cohort
// under study, not a sample of a larger one.
func populationStdDev(values []float64) float64 {
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// mode returns the most frequent value; ties resolve to the smallest
// such value so repeated runs agree.
func mode(values []float64) float64 {
	freq := make(map[float64]int, len(values))
	for _, v := range values {
		freq[v]++
	}

	best := values[0]
	bestCount := 0
	for v, count := range freq {
		if count > bestCount || (count == bestCount && v < best) {
			best = v
			bestCount = count
		}
	}
	return best
}

func ptr(v float64) *float64 {
	return &v
}
