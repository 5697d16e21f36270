package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"gradecli/internal/analytics"
	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

const (
	rosterSheet  = "Roster"
	summarySheet = "Summary"
)

// Workbook writes an Excel workbook with the enriched roster on one
// sheet and the overall and per-section distributions on another.
func (e *Exporter) Workbook(name string, records []domain.EnrichedRecord, cfg config.Config) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), rosterSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := e.writeRosterSheet(f, records); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	if err := e.writeSummarySheet(f, records, cfg); err != nil {
		return err
	}

	fullPath := e.path(name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("save workbook %s: %w", fullPath, err)
	}

	e.logger.Info("workbook written", "path", fullPath, "students", len(records))
	return nil
}

func (e *Exporter) writeRosterSheet(f *excelize.File, records []domain.EnrichedRecord) error {
	if err := setRow(f, rosterSheet, 1, toAnyRow(sectionHeaders)); err != nil {
		return err
	}

	for i, r := range records {
		row := []any{r.StudentID, r.LastName, r.FirstName, r.Section}
		for _, q := range r.QuizScores {
			row = append(row, scoreCell(q))
		}
		row = append(row,
			scoreCell(r.QuizAverage),
			scoreCell(r.Midterm),
			scoreCell(r.Final),
			scoreCell(r.AttendancePercent),
			scoreCell(r.FinalGrade),
			r.LetterGrade,
		)
		if err := setRow(f, rosterSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeSummarySheet(f *excelize.File, records []domain.EnrichedRecord, cfg config.Config) error {
	if err := setRow(f, summarySheet, 1, []any{
		"section", "count", "incomplete", "mean", "median", "std_dev", "min", "max",
	}); err != nil {
		return err
	}

	writeStats := func(rowNum int, label string, stats domain.DistributionStats) error {
		return setRow(f, summarySheet, rowNum, []any{
			label, stats.Count, stats.Incomplete,
			scoreCell(stats.Mean), scoreCell(stats.Median), scoreCell(stats.StdDev),
			scoreCell(stats.Min), scoreCell(stats.Max),
		})
	}

	if err := writeStats(2, "ALL", analytics.Distribution(records)); err != nil {
		return err
	}

	bySection := analytics.CompareSections(records)
	for i, section := range analytics.Sections(records) {
		if err := writeStats(i+3, section, bySection[section]); err != nil {
			return err
		}
	}
	return nil
}

// scoreCell turns a possibly-missing score into a cell value: the number
// itself, or an empty cell.
func scoreCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func toAnyRow(cells []string) []any {
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

func setRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}
