package domain

import (
	"fmt"
	"strings"
)

// QuizCount is the number of quiz slots in a roster row.
const QuizCount = 5

// StudentRecord is one validated roster row. Numeric fields are pointers:
// nil means the score was absent in the source, which is distinct from a
// zero score and never coerced to one.
type StudentRecord struct {
	StudentID         string                `json:"student_id"`
	LastName          string                `json:"last_name"`
	FirstName         string                `json:"first_name"`
	Section           string                `json:"section"`
	QuizScores        [QuizCount]*float64   `json:"quiz_scores"`
	Midterm           *float64              `json:"midterm"`
	Final             *float64              `json:"final"`
	AttendancePercent *float64              `json:"attendance_percent"`
}

// Identity returns the stable identity of the record: the student ID when
// present, otherwise name plus section.
func (r StudentRecord) Identity() string {
	if r.StudentID != "" {
		return r.StudentID
	}
	return fmt.Sprintf("%s,%s/%s", r.LastName, r.FirstName, r.Section)
}

// FullName returns "First Last" with a single space regardless of which
// parts are present.
func (r StudentRecord) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// EnrichedRecord is a StudentRecord plus the computed grade fields.
// QuizAverage and FinalGrade are nil when the inputs they need are all
// missing; LetterGrade is empty exactly when FinalGrade is nil.
type EnrichedRecord struct {
	StudentRecord

	QuizAverage *float64 `json:"quiz_average"`
	FinalGrade  *float64 `json:"final_grade"`
	LetterGrade string   `json:"letter_grade,omitempty"`
}

// RejectReason classifies why a roster row was discarded during ingest.
type RejectReason string

const (
	// ReasonMissingSection marks rows without a section value.
	ReasonMissingSection RejectReason = "missing_section"
)

// InvalidNumeric builds the reject reason for a cell that does not parse
// as a number, e.g. "invalid_numeric:quiz3".
func InvalidNumeric(field string) RejectReason {
	return RejectReason("invalid_numeric:" + field)
}

// OutOfRange builds the reject reason for a numeric cell outside [0,100],
// e.g. "out_of_range:midterm".
func OutOfRange(field string) RejectReason {
	return RejectReason("out_of_range:" + field)
}

// Reject records one discarded roster row together with the reason.
// Line is 1-based and counts the header row, matching what a user sees
// in a spreadsheet editor.
type Reject struct {
	Line   int          `json:"line"`
	Raw    []string     `json:"raw"`
	Reason RejectReason `json:"reason"`
}
