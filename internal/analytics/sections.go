package analytics

import (
	"sort"

	"gradecli/pkg/contracts/domain"
)

// CompareSections groups the records by section and computes a
// distribution per group. Sections are whatever values the roster
// carries, not a predefined list; a section whose records all lack a
// final grade still appears, with count 0 and nil numeric fields.
func CompareSections(records []domain.EnrichedRecord) map[string]domain.DistributionStats {
	bySection := make(map[string][]domain.EnrichedRecord)
	for _, r := range records {
		bySection[r.Section] = append(bySection[r.Section], r)
	}

	result := make(map[string]domain.DistributionStats, len(bySection))
	for section, group := range bySection {
		result[section] = Distribution(group)
	}
	return result
}

// Sections returns the distinct section names of the records, sorted,
// for deterministic per-section exports.
func Sections(records []domain.EnrichedRecord) []string {
	seen := make(map[string]struct{})
	var sections []string
	for _, r := range records {
		if _, ok := seen[r.Section]; ok {
			continue
		}
		seen[r.Section] = struct{}{}
		sections = append(sections, r.Section)
	}
	sort.Strings(sections)
	return sections
}
