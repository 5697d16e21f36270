package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

func score(v float64) *float64 {
	return &v
}

func quizzes(vs ...float64) [domain.QuizCount]*float64 {
	var out [domain.QuizCount]*float64
	for i, v := range vs {
		out[i] = score(v)
	}
	return out
}

func TestComputeFinalCompleteRecord(t *testing.T) {
	records := []domain.StudentRecord{{
		StudentID:         "S001",
		Section:           "A",
		QuizScores:        quizzes(80, 85, 90, 75, 95),
		Midterm:           score(88),
		Final:             score(92),
		AttendancePercent: score(100),
	}}

	enriched := ComputeFinal(records, config.Default())
	require.Len(t, enriched, 1)

	e := enriched[0]
	require.NotNil(t, e.QuizAverage)
	assert.InDelta(t, 85, *e.QuizAverage, 1e-9)
	require.NotNil(t, e.FinalGrade)
	// 85*.3 + 88*.3 + 92*.3 + 100*.1
	assert.InDelta(t, 89.5, *e.FinalGrade, 1e-9)
	assert.Equal(t, "B", e.LetterGrade)
}

func TestComputeFinalRenormalizesMissingComponents(t *testing.T) {
	records := []domain.StudentRecord{{
		StudentID:  "S001",
		Section:    "A",
		QuizScores: quizzes(80, 80, 80, 80, 80),
		Midterm:    score(90),
		Final:      score(90),
		// Attendance missing: remaining weights rescale from 0.9 to 1.
	}}

	enriched := ComputeFinal(records, config.Default())
	e := enriched[0]

	require.NotNil(t, e.QuizAverage)
	assert.InDelta(t, 80, *e.QuizAverage, 1e-9)
	require.NotNil(t, e.FinalGrade)
	assert.InDelta(t, 86.6667, *e.FinalGrade, 1e-3)
	assert.Equal(t, "B", e.LetterGrade)
}

func TestComputeFinalPartialQuizzes(t *testing.T) {
	records := []domain.StudentRecord{{
		StudentID:  "S001",
		Section:    "A",
		QuizScores: [domain.QuizCount]*float64{score(60), nil, score(90), nil, nil},
	}}

	e := ComputeFinal(records, config.Default())[0]
	require.NotNil(t, e.QuizAverage)
	assert.InDelta(t, 75, *e.QuizAverage, 1e-9, "mean of present quizzes only")
	require.NotNil(t, e.FinalGrade)
	assert.InDelta(t, 75, *e.FinalGrade, 1e-9, "quizzes are the only present component")
}

func TestComputeFinalAllMissing(t *testing.T) {
	records := []domain.StudentRecord{{StudentID: "S001", Section: "A"}}

	e := ComputeFinal(records, config.Default())[0]
	assert.Nil(t, e.QuizAverage)
	assert.Nil(t, e.FinalGrade)
	assert.Empty(t, e.LetterGrade)
}

func TestComputeFinalIsIdempotent(t *testing.T) {
	records := []domain.StudentRecord{
		{StudentID: "S001", Section: "A", QuizScores: quizzes(70, 75), Final: score(80)},
		{StudentID: "S002", Section: "B", Midterm: score(55)},
	}
	cfg := config.Default()

	first := ComputeFinal(records, cfg)
	second := ComputeFinal(records, cfg)
	assert.Equal(t, first, second)
}

func TestComputeFinalDoesNotMutateInput(t *testing.T) {
	records := []domain.StudentRecord{
		{StudentID: "S001", Section: "A", QuizScores: quizzes(70)},
	}
	before := records[0]
	ComputeFinal(records, config.Default())
	assert.Equal(t, before, records[0])
}
