package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradecli/internal/analytics"
	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

func score(v float64) *float64 {
	return &v
}

func fixedClock() time.Time {
	return time.Date(2026, 5, 15, 10, 30, 0, 0, time.UTC)
}

func testRoster(t *testing.T) []domain.EnrichedRecord {
	t.Helper()
	records := []domain.StudentRecord{
		{
			StudentID: "S001", LastName: "Smith", FirstName: "Jane", Section: "A",
			QuizScores: [domain.QuizCount]*float64{score(92), score(95), score(90), score(94), score(89)},
			Midterm:    score(93), Final: score(96), AttendancePercent: score(100),
		},
		{
			StudentID: "S002", LastName: "Jones", FirstName: "Bob", Section: "A",
			QuizScores: [domain.QuizCount]*float64{score(40), score(45), nil, nil, nil},
			Midterm:    score(50), Final: score(42), AttendancePercent: score(60),
		},
		{
			StudentID: "S003", LastName: "Lee", FirstName: "Ana", Section: "B",
		},
	}
	return analytics.ComputeFinal(records, config.Default())
}

func TestSummary(t *testing.T) {
	g := NewGenerator(config.Default(), fixedClock)
	out := g.Summary(testRoster(t))

	assert.Contains(t, out, "STUDENT PERFORMANCE SUMMARY REPORT")
	assert.Contains(t, out, "Generated: 2026-05-15 10:30:00")
	assert.Contains(t, out, "Total Students: 3")
	assert.Contains(t, out, "Students with Complete Data: 2")
	assert.Contains(t, out, "Students with Missing Data: 1")
	assert.Contains(t, out, "AT-RISK STUDENTS (Below 60):")
	assert.Contains(t, out, "Bob Jones (ID: S002)")
	// Every configured letter shows up even when its count is zero.
	assert.Contains(t, out, "D: 0 students (0.0%)")
}

func TestSummaryEmptyRoster(t *testing.T) {
	g := NewGenerator(config.Default(), fixedClock)
	out := g.Summary(nil)

	assert.Contains(t, out, "Total Students: 0")
	assert.Contains(t, out, "Average Final Grade: Missing")
	assert.Contains(t, out, "Total: 0 students")
}

func TestSectionReport(t *testing.T) {
	g := NewGenerator(config.Default(), fixedClock)
	out := g.Section("A", testRoster(t))

	assert.Contains(t, out, "SECTION A REPORT")
	assert.Contains(t, out, "Total Students: 2")
	// Sorted by final grade descending: Jane first.
	janeIdx := strings.Index(out, "1. Jane Smith")
	bobIdx := strings.Index(out, "2. Bob Jones")
	require.Greater(t, janeIdx, 0)
	assert.Greater(t, bobIdx, janeIdx)
}

func TestSectionReportUnknownSection(t *testing.T) {
	g := NewGenerator(config.Default(), fixedClock)
	assert.Equal(t, "No students found in section Z", g.Section("Z", testRoster(t)))
}

func TestAtRiskReport(t *testing.T) {
	g := NewGenerator(config.Default(), fixedClock)
	out := g.AtRisk(testRoster(t))

	assert.Contains(t, out, "TOTAL AT-RISK STUDENTS: 1")
	assert.Contains(t, out, "1. Bob Jones")
	assert.Contains(t, out, "Component Breakdown:")
	assert.Contains(t, out, "Quiz Average: 42.50")
}

func TestAtRiskReportNone(t *testing.T) {
	g := NewGenerator(config.Default(), fixedClock)
	out := g.AtRisk(nil)
	assert.Contains(t, out, "No students are currently at risk!")
}

func TestTopPerformersReport(t *testing.T) {
	g := NewGenerator(config.Default(), fixedClock)
	out := g.TopPerformers(testRoster(t), 1)

	assert.Contains(t, out, "TOP 1 PERFORMERS")
	assert.Contains(t, out, "1. Jane Smith")
	assert.NotContains(t, out, "Bob Jones")
}

func TestStudentReport(t *testing.T) {
	roster := testRoster(t)
	g := NewGenerator(config.Default(), fixedClock)

	out := g.Student(roster[1])
	assert.Contains(t, out, "Student ID: S002")
	assert.Contains(t, out, "Quiz 3: Missing")
	assert.Contains(t, out, "Quiz Average: 42.50")
	assert.Contains(t, out, "Letter: F")

	incomplete := g.Student(roster[2])
	assert.Contains(t, incomplete, "Grade cannot be calculated (missing data)")
}

func TestStudentReportIdentityFallback(t *testing.T) {
	records := []domain.StudentRecord{
		{
			LastName: "Nguyen", FirstName: "Mai", Section: "C",
			QuizScores: [domain.QuizCount]*float64{score(80), score(82), score(78), score(85), score(90)},
			Midterm:    score(88), Final: score(91), AttendancePercent: score(95),
		},
	}
	roster := analytics.ComputeFinal(records, config.Default())
	g := NewGenerator(config.Default(), fixedClock)

	// No student_id on the row: identity falls back to name plus section.
	out := g.Student(roster[0])
	assert.Contains(t, out, "Student ID: Nguyen,Mai/C")
}
