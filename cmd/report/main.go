// Command report runs the batch pipeline: ingest a roster, compute final
// grades, print the class reports, and write the CSV, JSON, XLSX, and
// chart exports.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gradecli/internal/analytics"
	"gradecli/internal/config"
	"gradecli/internal/exporter"
	"gradecli/internal/infrastructure"
	"gradecli/internal/ingest"
	"gradecli/internal/reports"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional, defaults apply)")
	input := flag.String("input", "", "roster file, csv or xlsx (overrides config)")
	output := flag.String("output", "", "output directory for exports (overrides config)")
	topN := flag.Int("top", 5, "number of top performers to report")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.Paths.Input = *input
	}
	if *output != "" {
		cfg.Paths.OutputDir = *output
	}

	logger, closer, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	if err := run(cfg, logger, *topN); err != nil {
		logger.Error("report failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger, topN int) error {
	records, rejects, err := ingest.New(logger).IngestFile(cfg.Paths.Input)
	if err != nil {
		if errors.Is(err, ingest.ErrSourceNotFound) {
			return fmt.Errorf("roster %s does not exist", cfg.Paths.Input)
		}
		return err
	}
	logger.Info("roster ingested",
		"source", cfg.Paths.Input,
		"students", len(records),
		"rejects", len(rejects))

	enriched := analytics.ComputeFinal(records, cfg)

	gen := reports.NewGenerator(cfg, time.Now)
	fmt.Println(gen.Summary(enriched))
	for _, section := range analytics.Sections(enriched) {
		fmt.Println(gen.Section(section, enriched))
	}
	fmt.Println(gen.AtRisk(enriched))
	fmt.Println(gen.TopPerformers(enriched, topN))

	exp := exporter.New(cfg.Paths.OutputDir, logger)
	if err := exp.SectionCSVs(enriched); err != nil {
		return fmt.Errorf("section csvs: %w", err)
	}
	if err := exp.AtRiskCSV(enriched, cfg.Thresholds.AtRisk); err != nil {
		return fmt.Errorf("at-risk csv: %w", err)
	}
	if err := exp.JSON("analysis.json", enriched, rejects, cfg); err != nil {
		return fmt.Errorf("json export: %w", err)
	}
	if err := exp.Workbook("analysis.xlsx", enriched, cfg); err != nil {
		return fmt.Errorf("workbook export: %w", err)
	}

	grades := make([]float64, 0, len(enriched))
	for _, r := range enriched {
		if r.FinalGrade != nil {
			grades = append(grades, *r.FinalGrade)
		}
	}
	if err := exp.GradeHistogram("grade_histogram.png", enriched); err != nil {
		return fmt.Errorf("grade histogram: %w", err)
	}
	if err := exp.LetterBars("letter_distribution.png", enriched, cfg.GradeScale); err != nil {
		return fmt.Errorf("letter chart: %w", err)
	}
	if err := exp.PercentileBars("percentiles.png", analytics.Percentiles(grades, analytics.DefaultPercentiles)); err != nil {
		return fmt.Errorf("percentile chart: %w", err)
	}
	if err := exp.ImprovementBars("most_improved.png", analytics.Improvements(enriched)); err != nil {
		return fmt.Errorf("improvement chart: %w", err)
	}

	logger.Info("exports written", "output_dir", cfg.Paths.OutputDir)
	return nil
}
