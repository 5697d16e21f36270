package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradecli/pkg/contracts/domain"
)

func improvable(id string, quizAvg, final float64) domain.EnrichedRecord {
	return domain.EnrichedRecord{
		StudentRecord: domain.StudentRecord{StudentID: id, Section: "A", Final: score(final)},
		QuizAverage:   score(quizAvg),
	}
}

func TestImprovementsDeltaAndPct(t *testing.T) {
	entries := Improvements([]domain.EnrichedRecord{improvable("S001", 70, 85)})

	require.Len(t, entries, 1)
	assert.InDelta(t, 15, entries[0].Delta, 1e-9)
	require.NotNil(t, entries[0].Pct)
	assert.InDelta(t, 21.43, *entries[0].Pct, 0.01)
}

func TestImprovementsZeroQuizAverage(t *testing.T) {
	entries := Improvements([]domain.EnrichedRecord{improvable("S001", 0, 50)})

	require.Len(t, entries, 1)
	assert.InDelta(t, 50, entries[0].Delta, 1e-9)
	assert.Nil(t, entries[0].Pct, "division by zero reported as missing")
}

func TestImprovementsSkipsIncomplete(t *testing.T) {
	records := []domain.EnrichedRecord{
		{StudentRecord: domain.StudentRecord{StudentID: "S001", Final: score(80)}},  // no quiz avg
		{StudentRecord: domain.StudentRecord{StudentID: "S002"}, QuizAverage: score(70)}, // no final
	}
	assert.Empty(t, Improvements(records))
}

func TestImprovementsOrdering(t *testing.T) {
	records := []domain.EnrichedRecord{
		improvable("S003", 70, 80), // delta 10
		improvable("S001", 80, 60), // delta -20
		improvable("S004", 50, 60), // delta 10, ties with S003
		improvable("S002", 40, 70), // delta 30
	}

	entries := Improvements(records)
	require.Len(t, entries, 4)

	var ids []string
	for _, e := range entries {
		ids = append(ids, e.StudentID)
	}
	assert.Equal(t, []string{"S002", "S003", "S004", "S001"}, ids,
		"descending delta, ties ascending by student ID")

	assert.True(t, entries[3].Declined())
	assert.False(t, entries[0].Declined())

	declining := Declining(entries)
	require.Len(t, declining, 1)
	assert.Equal(t, "S001", declining[0].StudentID)
}
