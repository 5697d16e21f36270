package analytics

import (
	"sort"

	"gradecli/pkg/contracts/domain"
)

// Improvements compares each student's final exam score against their
// quiz average, for every record where both are present. Entries are
// sorted by delta descending, ties broken by student ID ascending, so the
// head of the slice is the most improved student and entries with a
// negative delta are the decliners.
func Improvements(records []domain.EnrichedRecord) []domain.ImprovementEntry {
	var entries []domain.ImprovementEntry
	for _, r := range records {
		if r.QuizAverage == nil || r.Final == nil {
			continue
		}

		entry := domain.ImprovementEntry{
			StudentID:   r.StudentID,
			FirstName:   r.FirstName,
			LastName:    r.LastName,
			Section:     r.Section,
			QuizAverage: *r.QuizAverage,
			Final:       *r.Final,
			Delta:       *r.Final - *r.QuizAverage,
		}
		// A zero quiz average makes the percentage undefined, not infinite.
		if entry.QuizAverage != 0 {
			pct := entry.Delta / entry.QuizAverage * 100
			entry.Pct = &pct
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Delta != entries[j].Delta {
			return entries[i].Delta > entries[j].Delta
		}
		return entries[i].StudentID < entries[j].StudentID
	})
	return entries
}

// Declining returns the entries whose final exam fell short of their quiz
// average, in the same order Improvements produced them.
func Declining(entries []domain.ImprovementEntry) []domain.ImprovementEntry {
	var declining []domain.ImprovementEntry
	for _, e := range entries {
		if e.Declined() {
			declining = append(declining, e)
		}
	}
	return declining
}
