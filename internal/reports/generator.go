// Package reports renders plain-text reports over enriched roster
// records. The generator only formats; every number it prints comes from
// the analytics package.
package reports

import (
	"fmt"
	"strings"
	"time"

	"gradecli/internal/analytics"
	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

const (
	separatorWidth = 80
	// atRiskPreview caps how many at-risk students the summary lists
	// before trailing off with a count.
	atRiskPreview = 10
)

// Generator renders text reports for one roster analysis run.
type Generator struct {
	cfg config.Config
	now func() time.Time
}

// NewGenerator creates a report generator. The clock is injectable for
// tests; pass nil for time.Now.
func NewGenerator(cfg config.Config, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{cfg: cfg, now: now}
}

func (g *Generator) timestamp() string {
	return g.now().Format("2006-01-02 15:04:05")
}

func separator() string {
	return strings.Repeat("=", separatorWidth)
}

// fmtScore renders a possibly-missing score.
func fmtScore(v *float64) string {
	if v == nil {
		return "Missing"
	}
	return fmt.Sprintf("%.2f", *v)
}

// Summary renders the overall run summary: totals, letter distribution,
// and the head of the at-risk list.
func (g *Generator) Summary(records []domain.EnrichedRecord) string {
	stats := analytics.Distribution(records)
	atRisk := analytics.AtRisk(records, g.cfg.Thresholds.AtRisk)

	var b strings.Builder
	fmt.Fprintln(&b, "STUDENT PERFORMANCE SUMMARY REPORT")
	fmt.Fprintf(&b, "Generated: %s\n\n", g.timestamp())

	fmt.Fprintln(&b, "OVERVIEW:")
	fmt.Fprintf(&b, "  Total Students: %d\n", len(records))
	fmt.Fprintf(&b, "  Students with Complete Data: %d\n", stats.Count)
	fmt.Fprintf(&b, "  Students with Missing Data: %d\n", stats.Incomplete)
	fmt.Fprintf(&b, "  Average Final Grade: %s\n\n", fmtScore(stats.Mean))

	fmt.Fprintln(&b, "LETTER GRADE DISTRIBUTION:")
	g.writeLetterDistribution(&b, stats)
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "AT-RISK STUDENTS (Below %.0f):\n", g.cfg.Thresholds.AtRisk)
	fmt.Fprintf(&b, "  Total: %d students\n", len(atRisk))
	for i, r := range atRisk {
		if i == atRiskPreview {
			fmt.Fprintf(&b, "    ... and %d more\n", len(atRisk)-atRiskPreview)
			break
		}
		fmt.Fprintf(&b, "    - %s (ID: %s): %.2f\n", r.FullName(), r.StudentID, *r.FinalGrade)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, separator())
	return b.String()
}

// Section renders the report for one section: overview, letter
// distribution, and the student list sorted by final grade descending.
func (g *Generator) Section(section string, records []domain.EnrichedRecord) string {
	var sectionRecords []domain.EnrichedRecord
	for _, r := range records {
		if r.Section == section {
			sectionRecords = append(sectionRecords, r)
		}
	}
	if len(sectionRecords) == 0 {
		return fmt.Sprintf("No students found in section %s", section)
	}

	stats := analytics.Distribution(sectionRecords)
	ranked := analytics.TopPerformers(sectionRecords, 0)

	var b strings.Builder
	fmt.Fprintln(&b, separator())
	fmt.Fprintf(&b, "SECTION %s REPORT\n", section)
	fmt.Fprintln(&b, separator())
	fmt.Fprintf(&b, "Generated: %s\n\n", g.timestamp())

	fmt.Fprintln(&b, "SECTION OVERVIEW:")
	fmt.Fprintf(&b, "  Total Students: %d\n", len(sectionRecords))
	fmt.Fprintf(&b, "  Students with Complete Data: %d\n", stats.Count)
	fmt.Fprintf(&b, "  Students with Missing Data: %d\n", stats.Incomplete)
	fmt.Fprintf(&b, "  Average Grade: %s\n\n", fmtScore(stats.Mean))

	fmt.Fprintln(&b, "LETTER GRADE DISTRIBUTION:")
	g.writeLetterDistribution(&b, stats)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "STUDENT LIST:")
	for i, r := range ranked {
		fmt.Fprintf(&b, "  %d. %s - %.2f (%s)\n", i+1, r.FullName(), *r.FinalGrade, r.LetterGrade)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, separator())
	return b.String()
}

// AtRisk renders the detailed at-risk report, weakest student first,
// with a per-component breakdown of where each student is losing points.
func (g *Generator) AtRisk(records []domain.EnrichedRecord) string {
	atRisk := analytics.AtRisk(records, g.cfg.Thresholds.AtRisk)

	var b strings.Builder
	fmt.Fprintln(&b, separator())
	fmt.Fprintln(&b, "AT-RISK STUDENTS REPORT")
	fmt.Fprintln(&b, separator())
	fmt.Fprintf(&b, "Generated: %s\n", g.timestamp())
	fmt.Fprintf(&b, "Threshold: Below %.0f\n\n", g.cfg.Thresholds.AtRisk)

	fmt.Fprintf(&b, "TOTAL AT-RISK STUDENTS: %d\n\n", len(atRisk))

	if len(atRisk) == 0 {
		fmt.Fprintln(&b, "No students are currently at risk!")
	} else {
		fmt.Fprintln(&b, "DETAILED LIST:")
		for i, r := range atRisk {
			fmt.Fprintf(&b, "\n%d. %s\n", i+1, r.FullName())
			fmt.Fprintf(&b, "   Student ID: %s\n", r.Identity())
			fmt.Fprintf(&b, "   Section: %s\n", r.Section)
			fmt.Fprintf(&b, "   Final Grade: %.2f (%s)\n", *r.FinalGrade, r.LetterGrade)
			fmt.Fprintln(&b, "   Component Breakdown:")
			if r.QuizAverage != nil {
				fmt.Fprintf(&b, "     Quiz Average: %.2f\n", *r.QuizAverage)
			}
			if r.Midterm != nil {
				fmt.Fprintf(&b, "     Midterm: %.2f\n", *r.Midterm)
			}
			if r.Final != nil {
				fmt.Fprintf(&b, "     Final Exam: %.2f\n", *r.Final)
			}
			if r.AttendancePercent != nil {
				fmt.Fprintf(&b, "     Attendance: %.2f\n", *r.AttendancePercent)
			}
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, separator())
	return b.String()
}

// TopPerformers renders the top-n list, best grade first.
func (g *Generator) TopPerformers(records []domain.EnrichedRecord, n int) string {
	top := analytics.TopPerformers(records, n)

	var b strings.Builder
	fmt.Fprintln(&b, separator())
	fmt.Fprintf(&b, "TOP %d PERFORMERS\n", n)
	fmt.Fprintln(&b, separator())
	fmt.Fprintf(&b, "Generated: %s\n\n", g.timestamp())

	for i, r := range top {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.FullName())
		fmt.Fprintf(&b, "   Student ID: %s\n", r.Identity())
		fmt.Fprintf(&b, "   Section: %s\n", r.Section)
		fmt.Fprintf(&b, "   Final Grade: %.2f (%s)\n\n", *r.FinalGrade, r.LetterGrade)
	}

	fmt.Fprintln(&b, separator())
	return b.String()
}

// Student renders an individual student report with every component
// spelled out, missing scores included.
func (g *Generator) Student(r domain.EnrichedRecord) string {
	var b strings.Builder
	fmt.Fprintln(&b, separator())
	fmt.Fprintln(&b, "INDIVIDUAL STUDENT REPORT")
	fmt.Fprintln(&b, separator())
	fmt.Fprintf(&b, "Student ID: %s\n", r.Identity())
	fmt.Fprintf(&b, "Name: %s\n", r.FullName())
	fmt.Fprintf(&b, "Section: %s\n\n", r.Section)

	fmt.Fprintln(&b, "QUIZ SCORES:")
	for i, q := range r.QuizScores {
		fmt.Fprintf(&b, "  Quiz %d: %s\n", i+1, fmtScore(q))
	}
	if r.QuizAverage != nil {
		fmt.Fprintf(&b, "  Quiz Average: %.2f\n", *r.QuizAverage)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "EXAM SCORES:")
	fmt.Fprintf(&b, "  Midterm: %s\n", fmtScore(r.Midterm))
	fmt.Fprintf(&b, "  Final: %s\n\n", fmtScore(r.Final))

	fmt.Fprintln(&b, "ATTENDANCE:")
	fmt.Fprintf(&b, "  Attendance: %s\n\n", fmtScore(r.AttendancePercent))

	fmt.Fprintln(&b, "FINAL GRADE:")
	if r.FinalGrade != nil {
		fmt.Fprintf(&b, "  Numeric: %.2f\n", *r.FinalGrade)
		fmt.Fprintf(&b, "  Letter: %s\n", r.LetterGrade)
	} else {
		fmt.Fprintln(&b, "  Grade cannot be calculated (missing data)")
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, separator())
	return b.String()
}

// writeLetterDistribution prints one line per configured letter, in
// scale order, with the share of complete records.
func (g *Generator) writeLetterDistribution(b *strings.Builder, stats domain.DistributionStats) {
	for _, letter := range g.cfg.GradeScale.Letters() {
		count := stats.Letters[letter]
		var pct float64
		if stats.Count > 0 {
			pct = float64(count) / float64(stats.Count) * 100
		}
		fmt.Fprintf(b, "  %s: %d students (%.1f%%)\n", letter, count, pct)
	}
}
