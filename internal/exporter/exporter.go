// Package exporter writes analysis results to the output directory:
// per-section and at-risk CSVs, a JSON dump, an Excel workbook, and PNG
// charts. It consumes the analytics result shapes and never computes
// numbers of its own.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Exporter writes report artifacts under a single output directory.
type Exporter struct {
	outputDir string
	logger    *slog.Logger
}

// New creates an Exporter rooted at outputDir. A nil logger falls back
// to slog.Default.
func New(outputDir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		outputDir: outputDir,
		logger:    logger.With(slog.String("component", "exporter")),
	}
}

// path resolves a file name inside the output directory.
func (e *Exporter) path(name string) string {
	return filepath.Join(e.outputDir, name)
}

// WriteCSV writes one CSV file into the output directory, creating the
// directory as needed. The UTF-8 BOM keeps Excel from mangling names
// with non-ASCII characters.
func (e *Exporter) WriteCSV(name string, headers []string, rows [][]string) error {
	fullPath := e.path(name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", fullPath, err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	e.logger.Info("csv written",
		slog.String("path", fullPath),
		slog.Int("rows", len(rows)))

	return writer.Error()
}
