// Package ingest reads student rosters from delimited sources and turns
// them into validated StudentRecord values. Malformed rows are collected
// as rejects rather than failing the run; only an unreadable source is
// fatal.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gradecli/pkg/contracts/domain"
)

// ErrSourceNotFound signals that the roster source itself could not be
// opened. Callers must halt on it instead of proceeding with an empty
// roster.
var ErrSourceNotFound = errors.New("roster source not found")

// textColumns are the columns carried over verbatim (after trimming).
var textColumns = []string{"student_id", "last_name", "first_name", "section"}

// numericColumns are the score columns, in roster order. Cells must be
// blank or parse as a number in [0,100].
var numericColumns = []string{
	"quiz1", "quiz2", "quiz3", "quiz4", "quiz5",
	"midterm", "final", "attendance_percent",
}

// Ingestor parses roster files into StudentRecord values.
type Ingestor struct {
	logger *slog.Logger
}

// New creates an Ingestor. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{logger: logger.With(slog.String("component", "ingest"))}
}

// IngestFile reads the roster at path, choosing the parser by extension:
// .xlsx via excelize, anything else as comma-delimited text.
func (g *Ingestor) IngestFile(path string) ([]domain.StudentRecord, []domain.Reject, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return g.IngestXLSX(path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, nil, fmt.Errorf("open roster %s: %w", path, err)
	}
	defer file.Close()

	return g.IngestCSV(file)
}

// IngestCSV parses a comma-delimited roster from r. The first row must be
// a header naming at least the section column; unknown columns are
// ignored. Output order matches input order and every data row produces
// exactly one record or one reject.
func (g *Ingestor) IngestCSV(r io.Reader) ([]domain.StudentRecord, []domain.Reject, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read roster rows: %w", err)
	}
	return g.ingestRows(rows)
}

// ingestRows is the shared core for both source formats.
func (g *Ingestor) ingestRows(rows [][]string) ([]domain.StudentRecord, []domain.Reject, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("roster is empty: missing header row")
	}

	columns, err := mapHeader(rows[0])
	if err != nil {
		return nil, nil, err
	}

	var records []domain.StudentRecord
	var rejects []domain.Reject

	for i, row := range rows[1:] {
		line := i + 2 // 1-based, counting the header
		record, reason := parseRow(row, columns)
		if reason != "" {
			rejects = append(rejects, domain.Reject{Line: line, Raw: row, Reason: reason})
			continue
		}
		records = append(records, record)
	}

	g.logger.Info("roster ingested",
		slog.Int("rows", len(rows)-1),
		slog.Int("records", len(records)),
		slog.Int("rejects", len(rejects)))

	return records, rejects, nil
}

// mapHeader resolves column name to index. Headers are matched after
// trimming and lowercasing, and a UTF-8 BOM on the first cell is
// stripped so files saved by Excel round-trip cleanly.
func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if name != "" {
			columns[name] = i
		}
	}
	if _, ok := columns["section"]; !ok {
		return nil, fmt.Errorf("roster header is missing required column %q", "section")
	}
	return columns, nil
}

// parseRow validates one data row. It returns a zero record and a
// non-empty reason when the row must be rejected.
func parseRow(row []string, columns map[string]int) (domain.StudentRecord, domain.RejectReason) {
	cell := func(name string) string {
		if idx, ok := columns[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	record := domain.StudentRecord{
		StudentID: cell("student_id"),
		LastName:  cell("last_name"),
		FirstName: cell("first_name"),
		Section:   cell("section"),
	}
	if record.Section == "" {
		return domain.StudentRecord{}, domain.ReasonMissingSection
	}

	for _, field := range numericColumns {
		raw := cell(field)
		if raw == "" {
			continue // missing marker stays nil
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(value) {
			// ParseFloat accepts "NaN", which would poison every
			// downstream aggregate and compares false against the
			// range bounds below.
			return domain.StudentRecord{}, domain.InvalidNumeric(field)
		}
		if value < 0 || value > 100 {
			return domain.StudentRecord{}, domain.OutOfRange(field)
		}

		switch field {
		case "midterm":
			record.Midterm = &value
		case "final":
			record.Final = &value
		case "attendance_percent":
			record.AttendancePercent = &value
		default: // quiz1..quiz5
			slot := int(field[len(field)-1] - '1')
			record.QuizScores[slot] = &value
		}
	}

	return record, ""
}
