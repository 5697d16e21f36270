package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradecli/pkg/contracts/domain"
)

func TestAtRisk(t *testing.T) {
	records := []domain.EnrichedRecord{
		enrichedWithGrade("S001", "A", "C", 72),
		enrichedWithGrade("S002", "A", "F", 41),
		enrichedWithGrade("S003", "A", "F", 55),
		{StudentRecord: domain.StudentRecord{StudentID: "S004", Section: "A"}}, // incomplete
	}

	atRisk := AtRisk(records, 60)
	require.Len(t, atRisk, 2)
	assert.Equal(t, "S002", atRisk[0].StudentID, "weakest grade first")
	assert.Equal(t, "S003", atRisk[1].StudentID)
}

func TestAtRiskBoundary(t *testing.T) {
	records := []domain.EnrichedRecord{enrichedWithGrade("S001", "A", "D", 60)}
	assert.Empty(t, AtRisk(records, 60), "threshold is strictly below")
}

func TestTopPerformers(t *testing.T) {
	records := []domain.EnrichedRecord{
		enrichedWithGrade("S001", "A", "C", 75),
		enrichedWithGrade("S002", "A", "A", 98),
		enrichedWithGrade("S003", "A", "B", 88),
		{StudentRecord: domain.StudentRecord{StudentID: "S004", Section: "A"}},
	}

	top := TopPerformers(records, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "S002", top[0].StudentID)
	assert.Equal(t, "S003", top[1].StudentID)

	all := TopPerformers(records, 0)
	assert.Len(t, all, 3, "n=0 means no cap")
}
