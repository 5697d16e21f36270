package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradecli/pkg/contracts/domain"
)

func TestCompareSections(t *testing.T) {
	records := []domain.EnrichedRecord{
		enrichedWithGrade("S001", "A", "A", 90),
		enrichedWithGrade("S002", "A", "C", 70),
		enrichedWithGrade("S003", "B", "B", 80),
		{StudentRecord: domain.StudentRecord{StudentID: "S004", Section: "C"}}, // no grade
	}

	bySection := CompareSections(records)
	require.Len(t, bySection, 3)

	a := bySection["A"]
	assert.Equal(t, 2, a.Count)
	require.NotNil(t, a.Mean)
	assert.InDelta(t, 80, *a.Mean, 1e-9)

	b := bySection["B"]
	assert.Equal(t, 1, b.Count)
	assert.Equal(t, map[string]int{"B": 1}, b.Letters)

	// A section with no complete records still appears, empty.
	c := bySection["C"]
	assert.Equal(t, 0, c.Count)
	assert.Equal(t, 1, c.Incomplete)
	assert.Nil(t, c.Mean)
}

func TestCompareSectionsEmpty(t *testing.T) {
	assert.Empty(t, CompareSections(nil))
}

func TestSectionsSortedDistinct(t *testing.T) {
	records := []domain.EnrichedRecord{
		enrichedWithGrade("S001", "B", "A", 90),
		enrichedWithGrade("S002", "A", "A", 91),
		enrichedWithGrade("S003", "B", "A", 92),
	}
	assert.Equal(t, []string{"A", "B"}, Sections(records))
}
