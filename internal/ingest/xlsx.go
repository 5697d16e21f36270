package ingest

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"gradecli/pkg/contracts/domain"
)

// IngestXLSX reads a roster from the first sheet of an Excel workbook.
// The sheet must carry the same header contract as the CSV format.
func (g *Ingestor) IngestXLSX(path string) ([]domain.StudentRecord, []domain.Reject, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	return g.ingestWorkbook(f)
}

// IngestXLSXReader reads a roster workbook from a stream, for uploads that
// never touch the filesystem.
func (g *Ingestor) IngestXLSXReader(r io.Reader) ([]domain.StudentRecord, []domain.Reject, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return g.ingestWorkbook(f)
}

func (g *Ingestor) ingestWorkbook(f *excelize.File) ([]domain.StudentRecord, []domain.Reject, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return g.ingestRows(rows)
}
