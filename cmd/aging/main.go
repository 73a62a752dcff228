package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vsinha/receiptaging/pkg/infrastructure/config"
	"github.com/vsinha/receiptaging/pkg/interfaces/cli/commands"
)

// command is implemented by every subcommand
type command interface {
	Execute(ctx context.Context) error
}

func main() {
	cfg := config.Load()

	name, args := "batch", os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "batch", "serve", "generate":
			name, args = args[0], args[1:]
		}
	}

	var cmd command
	switch name {
	case "serve":
		cmd = newServeCommand(cfg, args)
	case "generate":
		cmd = newGenerateCommand(cfg, args)
	default:
		cmd = newBatchCommand(cfg, args)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newBatchCommand(cfg config.Config, args []string) command {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	var (
		folder        = fs.String("folder", cfg.Folder, "Folder to scan for the newest piece report")
		inputFile     = fs.String("input", "", "Explicit .xlsx or .csv input file (skips discovery)")
		referenceDate = fs.String("date", cfg.ReferenceDate, "Reference date as M/D/YYYY or YYYY-MM-DD (default: today)")
		format        = fs.String("format", "text", "Output format: text, json")
		verbose       = fs.Bool("verbose", cfg.Verbose, "Enable verbose output")
		progress      = fs.Bool("progress", false, "Show a progress bar while aggregating")
		help          = fs.Bool("help", false, "Show help message")
	)
	fs.Parse(args)

	return commands.NewBatchCommand(commands.Config{
		Folder:        *folder,
		InputFile:     *inputFile,
		ReferenceDate: *referenceDate,
		Format:        *format,
		Verbose:       *verbose,
		Progress:      *progress,
		Help:          *help,
	})
}

func newServeCommand(cfg config.Config, args []string) command {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		addr       = fs.String("addr", cfg.Addr, "Address to serve")
		maxReports = fs.Int("max-reports", cfg.MaxReports, "Rendered reports kept for download")
		verbose    = fs.Bool("verbose", cfg.Verbose, "Log every request")
		help       = fs.Bool("help", false, "Show help message")
	)
	fs.Parse(args)

	return commands.NewServeCommand(commands.ServeConfig{
		Addr:       *addr,
		MaxReports: *maxReports,
		Verbose:    *verbose,
		Help:       *help,
	})
}

func newGenerateCommand(cfg config.Config, args []string) command {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		groups        = fs.Int("groups", 50, "Number of distinct Group IDs")
		maxPieces     = fs.Int("max-pieces", 4, "Maximum pieces per group")
		history       = fs.Int("history", 180, "Receipt dates fall within this many days of the reference date")
		referenceDate = fs.String("date", cfg.ReferenceDate, "Reference date as M/D/YYYY or YYYY-MM-DD (default: today)")
		outputDir     = fs.String("output", ".", "Output directory for the generated workbook")
		seed          = fs.Int64("seed", 0, "Random seed for reproducible generation")
		verbose       = fs.Bool("verbose", cfg.Verbose, "Enable verbose output")
		help          = fs.Bool("help", false, "Show help message")
	)
	fs.Parse(args)

	return commands.NewGenerateCommand(commands.GenerateConfig{
		Groups:        *groups,
		MaxPieces:     *maxPieces,
		HistoryDays:   *history,
		ReferenceDate: *referenceDate,
		OutputDir:     *outputDir,
		Seed:          *seed,
		Help:          *help,
		Verbose:       *verbose,
	})
}
