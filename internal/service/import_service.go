package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"citizen_registry/internal/metrics"
	"citizen_registry/internal/model"
	"citizen_registry/internal/repository"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFileType = errors.New("only CSV, XLSX, and XLS files are allowed")

// ImportService runs the bulk NIN upload pipeline over a staged file
type ImportService interface {
	ImportFile(ctx context.Context, path string) (*model.ImportResult, error)
}

type importService struct {
	repo    repository.NINRecordRepository
	metrics *metrics.Metrics
}

// NewImportService creates a new ImportService
func NewImportService(repo repository.NINRecordRepository, m *metrics.Metrics) ImportService {
	return &importService{repo: repo, metrics: m}
}

// ImportFile parses the staged upload by extension, normalizes each row and
// upserts it keyed by the NIN hash. Rows are committed independently:
// per-row failures are counted and the batch continues. The staged file is
// removed on every exit path; a failed cleanup is logged, never surfaced.
func (s *importService) ImportFile(ctx context.Context, path string) (*model.ImportResult, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove staged upload %s: %v", path, err)
		}
	}()

	var (
		rows []Row
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	case ".xls":
		rows, err = readXLS(path)
	default:
		return nil, ErrUnsupportedFileType
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse uploaded file: %w", err)
	}

	return s.processRows(ctx, rows), nil
}

func (s *importService) processRows(ctx context.Context, rows []Row) *model.ImportResult {
	result := &model.ImportResult{}
	for _, row := range rows {
		rec, ok := NormalizeRow(row)
		if !ok {
			continue // skipped rows count as neither success nor error
		}
		if err := s.repo.UpsertByHash(ctx, rec); err != nil {
			log.Printf("Record error for %s: %v", rec.NINMasked, err)
			result.Errors++
			s.metrics.IncImportRowErrors()
			continue
		}
		result.Count++
		s.metrics.IncRecordsImported()
	}
	return result
}

// readCSV streams comma-separated rows; the first line defines the columns.
func readCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // upstream files are ragged

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var rows []Row
	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, NewRow(header, cells))
	}
	return rows, nil
}

// readXLSX reads the first sheet of a modern workbook as a tabular grid.
func readXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(grid) < 2 {
		return nil, nil
	}

	header := grid[0]
	rows := make([]Row, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		rows = append(rows, NewRow(header, cells))
	}
	return rows, nil
}

// readXLS reads the first sheet of a legacy Excel workbook.
func readXLS(path string) ([]Row, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, err
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil
	}
	headerRow := sheet.Row(0)
	if headerRow == nil {
		return nil, nil
	}

	var header []string
	for c := 0; c <= headerRow.LastCol(); c++ {
		header = append(header, headerRow.Col(c))
	}

	var rows []Row
	for i := 1; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			continue
		}
		cells := make([]string, len(header))
		for c := range header {
			cells[c] = r.Col(c)
		}
		rows = append(rows, NewRow(header, cells))
	}
	return rows, nil
}
