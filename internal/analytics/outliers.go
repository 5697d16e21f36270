package analytics

import (
	"math"

	"gradecli/pkg/contracts/domain"
)

// minIQRObservations is the smallest value set for which quartile fences
// are meaningful.
const minIQRObservations = 4

// iqrFenceFactor is the classic Tukey multiplier.
const iqrFenceFactor = 1.5

// zScoreCutoff flags values more than this many standard deviations from
// the mean.
const zScoreCutoff = 3.0

// OutliersIQR flags values outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR], with the
// quartiles computed by the same interpolation as Percentiles. Fewer than
// four values yields an empty report with nil bounds. Flagged values keep
// their input order.
func OutliersIQR(values []float64) domain.OutlierReport {
	report := domain.OutlierReport{Method: domain.OutlierMethodIQR}
	if len(values) < minIQRObservations {
		return report
	}

	sorted := sortedCopy(values)
	q1 := percentileOf(sorted, 25)
	q3 := percentileOf(sorted, 75)
	iqr := q3 - q1

	report.LowerBound = ptr(q1 - iqrFenceFactor*iqr)
	report.UpperBound = ptr(q3 + iqrFenceFactor*iqr)

	for _, v := range values {
		switch {
		case v < *report.LowerBound:
			report.Low = append(report.Low, v)
		case v > *report.UpperBound:
			report.High = append(report.High, v)
		}
	}
	return report
}

// OutliersZScore flags values more than three population standard
// deviations from the mean. A zero standard deviation (all values equal)
// flags nothing rather than dividing by zero.
func OutliersZScore(values []float64) domain.OutlierReport {
	report := domain.OutlierReport{Method: domain.OutlierMethodZScore}
	if len(values) == 0 {
		return report
	}

	m := mean(values)
	sd := populationStdDev(values)
	if sd == 0 {
		return report
	}

	report.LowerBound = ptr(m - zScoreCutoff*sd)
	report.UpperBound = ptr(m + zScoreCutoff*sd)

	for _, v := range values {
		if math.Abs(v-m) <= zScoreCutoff*sd {
			continue
		}
		if v < m {
			report.Low = append(report.Low, v)
		} else {
			report.High = append(report.High, v)
		}
	}
	return report
}
