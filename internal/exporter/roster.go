package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gradecli/internal/analytics"
	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

// AtRiskFileName is the fixed name of the at-risk CSV export.
const AtRiskFileName = "at_risk_students.csv"

var sectionHeaders = []string{
	"student_id", "last_name", "first_name", "section",
	"quiz1", "quiz2", "quiz3", "quiz4", "quiz5",
	"quiz_average", "midterm", "final", "attendance_percent",
	"final_grade", "letter_grade",
}

var atRiskHeaders = []string{
	"student_id", "last_name", "first_name", "section",
	"quiz_average", "midterm", "final", "attendance_percent",
	"final_grade", "letter_grade",
}

// SectionCSVs writes one CSV per observed section, named
// section_<name>.csv, preserving each section's roster order.
func (e *Exporter) SectionCSVs(records []domain.EnrichedRecord) error {
	for _, section := range analytics.Sections(records) {
		var rows [][]string
		for _, r := range records {
			if r.Section != section {
				continue
			}
			row := []string{r.StudentID, r.LastName, r.FirstName, r.Section}
			for _, q := range r.QuizScores {
				row = append(row, formatScore(q))
			}
			row = append(row,
				formatScore(r.QuizAverage),
				formatScore(r.Midterm),
				formatScore(r.Final),
				formatScore(r.AttendancePercent),
				formatScore(r.FinalGrade),
				r.LetterGrade,
			)
			rows = append(rows, row)
		}

		name := fmt.Sprintf("section_%s.csv", section)
		if err := e.WriteCSV(name, sectionHeaders, rows); err != nil {
			return fmt.Errorf("export section %s: %w", section, err)
		}
	}
	return nil
}

// AtRiskCSV writes the students below the threshold, weakest first.
// Nothing is written when no student is at risk.
func (e *Exporter) AtRiskCSV(records []domain.EnrichedRecord, threshold float64) error {
	atRisk := analytics.AtRisk(records, threshold)
	if len(atRisk) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(atRisk))
	for _, r := range atRisk {
		rows = append(rows, []string{
			r.StudentID, r.LastName, r.FirstName, r.Section,
			formatScore(r.QuizAverage),
			formatScore(r.Midterm),
			formatScore(r.Final),
			formatScore(r.AttendancePercent),
			formatScore(r.FinalGrade),
			r.LetterGrade,
		})
	}

	return e.WriteCSV(AtRiskFileName, atRiskHeaders, rows)
}

// jsonExport is the on-disk shape of the JSON dump.
type jsonExport struct {
	Metadata jsonMetadata            `json:"metadata"`
	Students []domain.EnrichedRecord `json:"students"`
	Rejects  []domain.Reject         `json:"rejects"`
}

type jsonMetadata struct {
	Generated     time.Time      `json:"generated"`
	TotalStudents int            `json:"total_students"`
	TotalRejects  int            `json:"total_rejects"`
	Weights       config.Weights `json:"weights"`
	AtRisk        float64        `json:"at_risk_threshold"`
}

// JSON writes the full analysis as a single JSON document, including the
// rows that were rejected during ingest and the weights the grades were
// computed with.
func (e *Exporter) JSON(name string, records []domain.EnrichedRecord, rejects []domain.Reject, cfg config.Config) error {
	export := jsonExport{
		Metadata: jsonMetadata{
			Generated:     time.Now().UTC(),
			TotalStudents: len(records),
			TotalRejects:  len(rejects),
			Weights:       cfg.Weights,
			AtRisk:        cfg.Thresholds.AtRisk,
		},
		Students: records,
		Rejects:  rejects,
	}

	fullPath := e.path(name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", fullPath, err)
	}
	return nil
}
