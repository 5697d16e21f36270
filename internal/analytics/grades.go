// Package analytics computes weighted grades and descriptive statistics
// over ingested rosters. Every function is pure: inputs in, fresh result
// out, no state between calls. Arithmetic over an empty value set yields
// a missing (nil) result, never a panic.
package analytics

import (
	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

// ComputeFinal enriches each record with its quiz average, weighted final
// grade, and letter grade. Input records are not mutated and input order
// is preserved.
//
// Weights for missing components are renormalized across the present
// ones, so a student with no attendance score is graded on the other
// components scaled up proportionally rather than taking an implicit
// zero. A record with every component missing gets a nil final grade and
// no letter.
func ComputeFinal(records []domain.StudentRecord, cfg config.Config) []domain.EnrichedRecord {
	enriched := make([]domain.EnrichedRecord, 0, len(records))
	for _, record := range records {
		e := domain.EnrichedRecord{StudentRecord: record}
		e.QuizAverage = quizAverage(record.QuizScores)
		e.FinalGrade = weightedGrade(component{e.QuizAverage, cfg.Weights.Quizzes},
			component{record.Midterm, cfg.Weights.Midterm},
			component{record.Final, cfg.Weights.Final},
			component{record.AttendancePercent, cfg.Weights.Attendance})
		if e.FinalGrade != nil {
			e.LetterGrade = cfg.GradeScale.Letter(*e.FinalGrade)
		}
		enriched = append(enriched, e)
	}
	return enriched
}

// component pairs a possibly-missing score with its configured weight.
type component struct {
	score  *float64
	weight float64
}

// quizAverage returns the arithmetic mean of the present quiz scores, or
// nil when all five are missing.
func quizAverage(scores [domain.QuizCount]*float64) *float64 {
	var sum float64
	var n int
	for _, s := range scores {
		if s != nil {
			sum += *s
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// weightedGrade computes the weighted sum over the present components
// with their weights rescaled to sum to 1. Nil when no component is
// present, or when the present components carry zero total weight.
func weightedGrade(components ...component) *float64 {
	var weightSum, total float64
	for _, c := range components {
		if c.score == nil {
			continue
		}
		weightSum += c.weight
		total += *c.score * c.weight
	}
	if weightSum <= 0 {
		return nil
	}
	grade := total / weightSum
	return &grade
}
