package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/vsinha/receiptaging/pkg/application/services"
	"github.com/vsinha/receiptaging/pkg/application/services/aging"
	"github.com/vsinha/receiptaging/pkg/domain/entities"
	domainservices "github.com/vsinha/receiptaging/pkg/domain/services"
	"github.com/vsinha/receiptaging/pkg/infrastructure/discovery"
	"github.com/vsinha/receiptaging/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/receiptaging/pkg/infrastructure/repositories/xlsx"
	"github.com/vsinha/receiptaging/pkg/interfaces/cli/output"
)

// Config holds configuration for the batch command
type Config struct {
	Folder        string
	InputFile     string
	ReferenceDate string
	Format        string
	Verbose       bool
	Progress      bool
	Help          bool
	Stdout        io.Writer
}

// BatchCommand aggregates the newest piece report in a folder
type BatchCommand struct {
	config Config
}

// NewBatchCommand creates a new batch command with the given configuration
func NewBatchCommand(config Config) *BatchCommand {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	return &BatchCommand{
		config: config,
	}
}

// Execute runs the batch command
func (c *BatchCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	today, err := ReferenceDate(c.config.ReferenceDate)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		c.printHeader(today)
	}

	var opts []aging.Option
	if c.config.Progress {
		bar := progressbar.Default(-1, "Aggregating rows")
		defer bar.Finish()
		opts = append(opts, aging.WithProgress(bar))
	}

	service := NewReportService(aging.NewAggregator(opts...))

	startTime := time.Now()
	result, err := service.RunBatch(ctx, services.BatchRequest{
		Folder:        c.config.Folder,
		InputFile:     c.config.InputFile,
		ReferenceDate: today,
	})
	if err != nil {
		return err
	}

	return output.Generate(result, output.Config{
		Format:  c.config.Format,
		Verbose: c.config.Verbose,
		Elapsed: time.Since(startTime),
		Writer:  c.config.Stdout,
	})
}

// NewReportService wires the loaders, discovery and writer around an aggregator
func NewReportService(aggregator *aging.Aggregator) *services.ReportService {
	service := services.NewReportService(aggregator, discovery.NewFinder(), xlsx.NewWriter())
	service.RegisterReader(".xlsx", xlsx.NewLoader())
	service.RegisterReader(".csv", csv.NewLoader())
	return service
}

// ReferenceDate parses a reference date flag, defaulting to the current local date
func ReferenceDate(value string) (entities.Date, error) {
	if value == "" {
		return entities.Today(), nil
	}
	return domainservices.NewDateNormalizer().ParseReference(value)
}

// validateInputs checks the output format and that an input source was given
func (c *BatchCommand) validateInputs() error {
	if err := output.ValidateFormat(c.config.Format); err != nil {
		return err
	}

	if c.config.InputFile != "" {
		if _, err := os.Stat(c.config.InputFile); err != nil {
			return fmt.Errorf("input file not found: %s", c.config.InputFile)
		}
		return nil
	}

	if c.config.Folder == "" {
		return &entities.MissingInputError{
			Source: "configuration",
			Detail: "set -folder or AGING_FOLDER, or pass -input",
		}
	}

	info, err := os.Stat(c.config.Folder)
	if err != nil {
		return fmt.Errorf("folder not found: %s", c.config.Folder)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", c.config.Folder)
	}
	return nil
}

// printHeader displays the run configuration
func (c *BatchCommand) printHeader(today entities.Date) {
	w := c.config.Stdout
	fmt.Fprintf(w, "🚀 Receipt Aging Report\n")
	fmt.Fprintf(w, "=======================\n")
	if c.config.InputFile != "" {
		fmt.Fprintf(w, "📁 Input: %s\n", c.config.InputFile)
	} else {
		abs, err := filepath.Abs(c.config.Folder)
		if err != nil {
			abs = c.config.Folder
		}
		fmt.Fprintf(w, "📁 Folder: %s\n", abs)
	}
	fmt.Fprintf(w, "📅 Reference Date: %s\n\n", today)
}

// showHelp displays the help message
func (c *BatchCommand) showHelp() {
	fmt.Fprintf(c.config.Stdout, `Receipt Aging Report - group piece reports by lot and age them by receipt date

USAGE:
    aging [batch] -folder <dir>            # Aggregate the newest piece report in a folder
    aging [batch] -input <file>            # Aggregate one file, output beside it
    aging serve -addr :8080                # Start the upload/preview web interface
    aging generate -output <dir>           # Write a sample piece report

BATCH OPTIONS:
    -folder <dir>       Folder to scan (default: $AGING_FOLDER)
    -input <file>       Explicit .xlsx or .csv input, skips folder discovery
    -date <date>        Reference date as M/D/YYYY or YYYY-MM-DD (default: today)
    -format <fmt>       Output format: text, json (default: text)
    -verbose            Print a summary and the first %d output rows
    -progress           Show a progress bar while aggregating
    -help               Show this help message

DISCOVERY:
    The newest .xlsx file whose name contains "piece" or "report" is used.
    Excel lock files (~$...) and %s are ignored.

OUTPUT:
    %s is written to the scanned folder and overwritten on each run.
    One row per Group ID (or LP), summed quantities, and three aging columns:
        %s
        %s
        %s
`,
		entities.PreviewRows,
		entities.BatchOutputFileName,
		entities.BatchOutputFileName,
		entities.ColumnDaysSinceReceipt,
		entities.ColumnWeeksSinceReceipt,
		entities.ColumnWeeksFromMonthStart,
	)
}
