package analytics

import (
	"sort"

	"gradecli/pkg/contracts/domain"
)

// AtRisk returns the records whose final grade falls below the threshold,
// sorted ascending so the weakest student comes first. Records without a
// final grade are never at risk; they are incomplete.
func AtRisk(records []domain.EnrichedRecord, threshold float64) []domain.EnrichedRecord {
	var atRisk []domain.EnrichedRecord
	for _, r := range records {
		if r.FinalGrade != nil && *r.FinalGrade < threshold {
			atRisk = append(atRisk, r)
		}
	}
	sort.SliceStable(atRisk, func(i, j int) bool {
		return *atRisk[i].FinalGrade < *atRisk[j].FinalGrade
	})
	return atRisk
}

// TopPerformers returns up to n records with the highest final grades,
// descending. Incomplete records are skipped.
func TopPerformers(records []domain.EnrichedRecord, n int) []domain.EnrichedRecord {
	var complete []domain.EnrichedRecord
	for _, r := range records {
		if r.FinalGrade != nil {
			complete = append(complete, r)
		}
	}
	sort.SliceStable(complete, func(i, j int) bool {
		return *complete[i].FinalGrade > *complete[j].FinalGrade
	})
	if n > 0 && len(complete) > n {
		complete = complete[:n]
	}
	return complete
}
