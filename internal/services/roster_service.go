// Package services holds the application layer between transport and the
// analytics core. Handlers call services; services call ingest and
// analytics and never touch HTTP types.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gradecli/internal/analytics"
	"gradecli/internal/config"
	apierrors "gradecli/internal/errors"
	"gradecli/internal/ingest"
	"gradecli/pkg/contracts/domain"
)

// Analysis is an enriched roster plus the rows that failed validation.
type Analysis struct {
	Records []domain.EnrichedRecord `json:"students"`
	Rejects []domain.Reject         `json:"rejects"`
}

// RosterService loads rosters and answers analysis queries over them.
// The service is stateless across requests: each query re-reads the
// configured input, so edits to the roster file show up without a restart.
type RosterService struct {
	cfg      config.Config
	logger   *slog.Logger
	ingestor *ingest.Ingestor

	analysisDuration prometheus.Histogram
}

// NewRosterService creates a roster service.
func NewRosterService(cfg config.Config, logger *slog.Logger) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "roster_service"))
	return &RosterService{
		cfg:      cfg,
		logger:   logger,
		ingestor: ingest.New(logger),
	}
}

// RegisterMetrics registers the analysis duration histogram on reg.
func (s *RosterService) RegisterMetrics(reg prometheus.Registerer) {
	s.analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roster_analysis_duration_seconds",
		Help:    "Time spent ingesting the roster and computing final grades",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(s.analysisDuration)
}

// Load ingests the configured roster and computes final grades.
func (s *RosterService) Load(ctx context.Context) (*Analysis, error) {
	start := time.Now()

	records, rejects, err := s.ingestor.IngestFile(s.cfg.Paths.Input)
	if err != nil {
		if errors.Is(err, ingest.ErrSourceNotFound) {
			return nil, apierrors.RosterNotFound(s.cfg.Paths.Input)
		}
		return nil, fmt.Errorf("ingest roster: %w", err)
	}

	analysis := &Analysis{
		Records: analytics.ComputeFinal(records, s.cfg),
		Rejects: rejects,
	}

	if s.analysisDuration != nil {
		s.analysisDuration.Observe(time.Since(start).Seconds())
	}

	s.logger.InfoContext(ctx, "roster analyzed",
		slog.String("source", s.cfg.Paths.Input),
		slog.Int("students", len(analysis.Records)),
		slog.Int("rejects", len(analysis.Rejects)),
	)
	return analysis, nil
}

// AnalyzeUpload ingests an uploaded roster, choosing the parser by file
// extension, and computes final grades. The upload never replaces the
// configured input.
func (s *RosterService) AnalyzeUpload(ctx context.Context, filename string, r io.Reader) (*Analysis, error) {
	var (
		records []domain.StudentRecord
		rejects []domain.Reject
		err     error
	)
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		records, rejects, err = s.ingestor.IngestXLSXReader(r)
	} else {
		records, rejects, err = s.ingestor.IngestCSV(r)
	}
	if err != nil {
		return nil, apierrors.ErrValidation("file", err.Error())
	}

	s.logger.InfoContext(ctx, "upload analyzed",
		slog.String("filename", filename),
		slog.Int("students", len(records)),
		slog.Int("rejects", len(rejects)),
	)

	return &Analysis{
		Records: analytics.ComputeFinal(records, s.cfg),
		Rejects: rejects,
	}, nil
}

// Distribution returns descriptive statistics over the class.
func (s *RosterService) Distribution(ctx context.Context) (domain.DistributionStats, error) {
	analysis, err := s.Load(ctx)
	if err != nil {
		return domain.DistributionStats{}, err
	}
	return analytics.Distribution(analysis.Records), nil
}

// Percentiles returns the default percentile cut points of the final
// grades.
func (s *RosterService) Percentiles(ctx context.Context) (map[float64]float64, error) {
	analysis, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Percentiles(finalGrades(analysis.Records), analytics.DefaultPercentiles), nil
}

// Sections returns per-section distribution statistics.
func (s *RosterService) Sections(ctx context.Context) (map[string]domain.DistributionStats, error) {
	analysis, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.CompareSections(analysis.Records), nil
}

// Outliers flags unusually low or high final grades using the given
// method.
func (s *RosterService) Outliers(ctx context.Context, method domain.OutlierMethod) (domain.OutlierReport, error) {
	analysis, err := s.Load(ctx)
	if err != nil {
		return domain.OutlierReport{}, err
	}

	grades := finalGrades(analysis.Records)
	switch method {
	case domain.OutlierMethodZScore:
		return analytics.OutliersZScore(grades), nil
	case domain.OutlierMethodIQR, "":
		return analytics.OutliersIQR(grades), nil
	default:
		return domain.OutlierReport{}, apierrors.ErrValidation("method",
			fmt.Sprintf("unknown outlier method %q, want iqr or zscore", method))
	}
}

// Improvements ranks students by how their final exam compares to their
// quiz average.
func (s *RosterService) Improvements(ctx context.Context) ([]domain.ImprovementEntry, error) {
	analysis, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Improvements(analysis.Records), nil
}

// AtRisk returns students below the configured threshold, weakest first.
func (s *RosterService) AtRisk(ctx context.Context) ([]domain.EnrichedRecord, error) {
	analysis, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.AtRisk(analysis.Records, s.cfg.Thresholds.AtRisk), nil
}

// Top returns the n highest final grades. n <= 0 returns everyone with a
// computed grade, best first.
func (s *RosterService) Top(ctx context.Context, n int) ([]domain.EnrichedRecord, error) {
	analysis, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.TopPerformers(analysis.Records, n), nil
}

// finalGrades collects the computed final grades, skipping records too
// incomplete to have one.
func finalGrades(records []domain.EnrichedRecord) []float64 {
	grades := make([]float64, 0, len(records))
	for _, r := range records {
		if r.FinalGrade != nil {
			grades = append(grades, *r.FinalGrade)
		}
	}
	return grades
}
