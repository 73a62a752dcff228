package commands

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
	"github.com/vsinha/receiptaging/pkg/infrastructure/repositories/xlsx"
)

// SampleFileName is the workbook written by the generate command
const SampleFileName = "piece_report_sample.xlsx"

// GenerateConfig holds configuration for sample report generation
type GenerateConfig struct {
	Groups        int    // Number of distinct Group IDs
	MaxPieces     int    // Maximum pieces (rows) per group
	HistoryDays   int    // Receipt dates fall within this many days before the reference date
	ReferenceDate string // Reference date, defaults to today
	OutputDir     string // Output directory for the generated workbook
	Seed          int64  // Random seed for reproducible generation
	Help          bool   // Show help
	Verbose       bool   // Verbose output
	Stdout        io.Writer
}

// GenerateCommand writes a synthetic piece report
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.MaxPieces <= 0 {
		config.MaxPieces = 4
	}
	if config.HistoryDays <= 0 {
		config.HistoryDays = 180
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// sampleColumns is the header of a generated piece report
var sampleColumns = []string{
	"Group ID",
	"LP",
	"Item",
	"Description",
	"Location",
	entities.ColumnReceiptDate,
	"Count Qty On Hand",
	"Net Weight On Hand",
	"Grs Weight On Hand",
	"Count Qty Committed",
	"Count Qty Uncommitted",
	"Count Qty On Hold",
}

var sampleItems = []struct {
	code        string
	description string
}{
	{"CHK-BRST", "Chicken Breast Boneless"},
	{"CHK-THGH", "Chicken Thigh Skin-On"},
	{"BF-CHUCK", "Beef Chuck Roll"},
	{"BF-BRSK", "Beef Brisket Packer"},
	{"PK-LOIN", "Pork Loin Center Cut"},
	{"PK-BELLY", "Pork Belly Skinless"},
	{"TK-WHOLE", "Whole Turkey Frozen"},
}

var sampleLocations = []string{
	"COOLER-01",
	"COOLER-02",
	"FREEZER-A",
	"FREEZER-B",
	"DOCK-IN",
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}

	if cmd.config.Groups <= 0 {
		return fmt.Errorf("validation error: -groups must be positive")
	}

	today, err := ReferenceDate(cmd.config.ReferenceDate)
	if err != nil {
		return err
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.config.Stdout,
			"🔧 Generating piece report with %d groups, up to %d pieces each, %d days of history\n",
			cmd.config.Groups,
			cmd.config.MaxPieces,
			cmd.config.HistoryDays,
		)
		fmt.Fprintf(cmd.config.Stdout, "📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Fprintf(cmd.config.Stdout, "🎲 Random seed: %d\n", cmd.config.Seed)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	table, err := cmd.generateTable(ctx, today)
	if err != nil {
		return err
	}

	path := filepath.Join(cmd.config.OutputDir, SampleFileName)
	if err := xlsx.NewWriter().WriteFile(path, "Pieces", table); err != nil {
		return fmt.Errorf("failed to write sample report: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.config.Stdout, "✅ Wrote %d pieces to %s\n", table.Len(), path)
	}
	return nil
}

// generateTable builds one row per piece. Pieces of a group share a receipt date.
func (cmd *GenerateCommand) generateTable(ctx context.Context, today entities.Date) (*entities.Table, error) {
	var rows [][]entities.Value
	lp := 100000

	for g := 1; g <= cmd.config.Groups; g++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		groupID := fmt.Sprintf("LOT-%05d", g)
		item := sampleItems[cmd.rand.Intn(len(sampleItems))]
		received := cmd.generateReceiptDate(today)
		pieces := 1 + cmd.rand.Intn(cmd.config.MaxPieces)

		for p := 0; p < pieces; p++ {
			lp++
			count := int64(1 + cmd.rand.Intn(40))
			committed := int64(cmd.rand.Intn(int(count) + 1))
			onHold := int64(0)
			if cmd.rand.Intn(10) == 0 {
				onHold = count - committed
			}
			net := cmd.generateWeight(count)
			gross := net.Add(decimal.NewFromInt(count).Mul(decimal.RequireFromString("0.35")))

			rows = append(rows, []entities.Value{
				entities.Text(groupID),
				entities.Text(fmt.Sprintf("LP%d", lp)),
				entities.Text(item.code),
				entities.Text(item.description),
				entities.Text(sampleLocations[cmd.rand.Intn(len(sampleLocations))]),
				cmd.receiptCell(received),
				entities.Int(count),
				entities.FixedNumber(net, 2),
				entities.FixedNumber(gross, 2),
				entities.Int(committed),
				entities.Int(count - committed),
				entities.Int(onHold),
			})
		}
	}

	return entities.NewTable(sampleColumns, rows), nil
}

// generateReceiptDate picks a date within the configured history window
func (cmd *GenerateCommand) generateReceiptDate(today entities.Date) entities.Date {
	offset := cmd.rand.Intn(cmd.config.HistoryDays + 1)
	return entities.DateOf(today.Time().AddDate(0, 0, -offset))
}

// receiptCell mixes real date cells with M/D/YYYY text, as exports do
func (cmd *GenerateCommand) receiptCell(d entities.Date) entities.Value {
	if cmd.rand.Intn(2) == 0 {
		return entities.DateValue(d)
	}
	return entities.Text(fmt.Sprintf("%d/%d/%d", int(d.Month), d.Day, d.Year))
}

// generateWeight creates a net weight of 2 to 12 pounds per case
func (cmd *GenerateCommand) generateWeight(count int64) decimal.Decimal {
	perCase := decimal.NewFromInt(int64(200 + cmd.rand.Intn(1001))).Shift(-2)
	return perCase.Mul(decimal.NewFromInt(count)).Round(2)
}

// printHelp shows usage information
func (cmd *GenerateCommand) printHelp() {
	fmt.Fprintf(cmd.config.Stdout, `Piece Report Generator

USAGE:
    aging generate [OPTIONS]

OPTIONS:
    -groups <N>         Number of distinct Group IDs (default: 50)
    -max-pieces <N>     Maximum pieces per group (default: 4)
    -history <N>        Receipt dates fall within N days of the reference date (default: 180)
    -date <date>        Reference date as M/D/YYYY or YYYY-MM-DD (default: today)
    -output <DIR>       Output directory (default: .)
    -seed <N>           Random seed for reproducible generation (optional)
    -verbose            Enable verbose output
    -help               Show this help message

The workbook is written as %s and is picked up by "aging batch -folder <DIR>".

EXAMPLES:
    aging generate -groups 200 -output ./reports -seed 12345
`, SampleFileName)
}
