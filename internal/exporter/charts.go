package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"gradecli/internal/analytics"
	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

const (
	chartWidth  = 640
	chartHeight = 480

	// histogramBins buckets the 0-100 grade range ten points at a time.
	histogramBins = 10

	// improvementChartLimit caps how many students the improvement chart
	// shows.
	improvementChartLimit = 10
)

// GradeHistogram renders the final-grade distribution as a bar chart
// with ten-point buckets. No file is written for an empty grade set.
func (e *Exporter) GradeHistogram(name string, records []domain.EnrichedRecord) error {
	var grades []float64
	for _, r := range records {
		if r.FinalGrade != nil {
			grades = append(grades, *r.FinalGrade)
		}
	}
	if len(grades) == 0 {
		return nil
	}

	counts := make([]int, histogramBins)
	for _, g := range grades {
		bin := int(g / 100 * histogramBins)
		if bin >= histogramBins { // a perfect 100 lands in the top bucket
			bin = histogramBins - 1
		}
		counts[bin] = counts[bin] + 1
	}

	bars := make([]chart.Value, 0, histogramBins)
	for i, count := range counts {
		lo := i * (100 / histogramBins)
		hi := lo + 100/histogramBins
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%d-%d", lo, hi),
			Value: float64(count),
		})
	}

	return e.renderBarChart(name, "Grade Distribution", bars)
}

// LetterBars renders one bar per configured letter grade.
func (e *Exporter) LetterBars(name string, records []domain.EnrichedRecord, scale config.GradeScale) error {
	stats := analytics.Distribution(records)
	if stats.Count == 0 {
		return nil
	}

	bars := make([]chart.Value, 0, len(scale))
	for _, letter := range scale.Letters() {
		bars = append(bars, chart.Value{
			Label: letter,
			Value: float64(stats.Letters[letter]),
		})
	}

	return e.renderBarChart(name, "Letter Grades", bars)
}

// PercentileBars renders the grade each percentile cut lands on.
func (e *Exporter) PercentileBars(name string, percentiles map[float64]float64) error {
	if len(percentiles) == 0 {
		return nil
	}

	ps := make([]float64, 0, len(percentiles))
	for p := range percentiles {
		ps = append(ps, p)
	}
	sort.Float64s(ps)

	bars := make([]chart.Value, 0, len(ps))
	for _, p := range ps {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%.0fth", p),
			Value: percentiles[p],
		})
	}

	return e.renderBarChart(name, "Grade Percentiles", bars)
}

// ImprovementBars renders the largest final-versus-quiz deltas, one bar
// per student, most improved first.
func (e *Exporter) ImprovementBars(name string, entries []domain.ImprovementEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if len(entries) > improvementChartLimit {
		entries = entries[:improvementChartLimit]
	}

	bars := make([]chart.Value, 0, len(entries))
	for _, entry := range entries {
		label := entry.LastName
		if initial := firstRune(entry.FirstName); initial != 0 {
			label = fmt.Sprintf("%c. %s", initial, entry.LastName)
		}
		bars = append(bars, chart.Value{Label: label, Value: entry.Delta})
	}

	return e.renderBarChart(name, "Most Improved (Final vs Quiz Avg)", bars)
}

func (e *Exporter) renderBarChart(name, title string, bars []chart.Value) error {
	graph := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: chartWidth / (2 * len(bars)),
		Bars:     bars,
	}

	fullPath := e.path(name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create chart %s: %w", fullPath, err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("render chart %s: %w", name, err)
	}

	e.logger.Info("chart written", "path", fullPath, "bars", len(bars))
	return nil
}

// firstRune returns the first rune of s, or 0 when s is empty. Indexing
// byte zero would mangle multibyte initials.
func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
