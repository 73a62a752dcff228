package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vsinha/receiptaging/pkg/application/dto"
	"github.com/vsinha/receiptaging/pkg/application/services/aging"
	"github.com/vsinha/receiptaging/pkg/domain/entities"
	"github.com/vsinha/receiptaging/pkg/domain/repositories"
)

// batchSheetName matches the default sheet name of the batch output workbook
const batchSheetName = "Sheet1"

// SourceFinder locates the newest source report in a folder
type SourceFinder interface {
	FindLatest(dir string) (string, error)
}

// BatchRequest describes one batch run
type BatchRequest struct {
	Folder        string
	InputFile     string // skips discovery when set; output goes beside it
	ReferenceDate entities.Date
}

// ReportService wires loading, aging and writing for both delivery modes
type ReportService struct {
	aggregator *aging.Aggregator
	finder     SourceFinder
	writer     repositories.TableWriter
	readers    map[string]repositories.TableReader
}

// NewReportService creates a report service. Readers are registered per file extension.
func NewReportService(
	aggregator *aging.Aggregator,
	finder SourceFinder,
	writer repositories.TableWriter,
) *ReportService {
	return &ReportService{
		aggregator: aggregator,
		finder:     finder,
		writer:     writer,
		readers:    make(map[string]repositories.TableReader),
	}
}

// RegisterReader makes files with the given extension loadable
func (s *ReportService) RegisterReader(ext string, reader repositories.TableReader) {
	s.readers[strings.ToLower(ext)] = reader
}

// RunBatch summarizes the newest piece report in a folder into the batch output workbook
func (s *ReportService) RunBatch(ctx context.Context, req BatchRequest) (*dto.BatchResult, error) {
	source, outputDir := req.InputFile, req.Folder
	if source == "" {
		if req.Folder == "" {
			return nil, &entities.MissingInputError{Source: "configuration", Detail: "no folder or input file given"}
		}
		latest, err := s.finder.FindLatest(req.Folder)
		if err != nil {
			return nil, err
		}
		source = latest
	} else {
		outputDir = filepath.Dir(source)
	}

	table, err := s.loadFile(source)
	if err != nil {
		return nil, err
	}

	report, err := s.aggregator.Summarize(ctx, table, req.ReferenceDate)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize %s: %w", filepath.Base(source), err)
	}

	output := filepath.Join(outputDir, entities.BatchOutputFileName)
	if err := s.writeFile(output, report.Table); err != nil {
		return nil, err
	}

	return &dto.BatchResult{
		SourceFile: source,
		OutputFile: output,
		Report:     report,
	}, nil
}

// BuildAgingReport annotates an uploaded report and renders it as a workbook
func (s *ReportService) BuildAgingReport(
	ctx context.Context,
	name string,
	r io.Reader,
	today entities.Date,
) (*dto.InteractiveResult, error) {
	if name == "" || r == nil {
		return nil, &entities.MissingInputError{Source: "upload", Detail: "no file uploaded"}
	}

	reader, err := s.readerFor(name)
	if err != nil {
		return nil, err
	}
	table, err := reader.ReadTable(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	report, err := s.aggregator.Annotate(ctx, table, today)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.writer.WriteTable(&buf, entities.InteractiveSheetName, report.Table); err != nil {
		return nil, err
	}

	return &dto.InteractiveResult{
		SourceName: name,
		Report:     report,
		Workbook:   buf.Bytes(),
	}, nil
}

// SupportedExtensions lists the registered file extensions in sorted order
func (s *ReportService) SupportedExtensions() []string {
	exts := make([]string, 0, len(s.readers))
	for ext := range s.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func (s *ReportService) readerFor(name string) (repositories.TableReader, error) {
	ext := strings.ToLower(filepath.Ext(name))
	reader, ok := s.readers[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q: expected one of %s", ext, strings.Join(s.SupportedExtensions(), ", "))
	}
	return reader, nil
}

func (s *ReportService) loadFile(filename string) (*entities.Table, error) {
	reader, err := s.readerFor(filename)
	if err != nil {
		return nil, err
	}

	table, err := reader.LoadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(filename), err)
	}
	return table, nil
}

func (s *ReportService) writeFile(filename string, table *entities.Table) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}

	if err := s.writer.WriteTable(file, batchSheetName, table); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return file.Close()
}
