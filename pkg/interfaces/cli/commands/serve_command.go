package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vsinha/receiptaging/pkg/application/services/aging"
	"github.com/vsinha/receiptaging/pkg/infrastructure/config"
	"github.com/vsinha/receiptaging/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/receiptaging/pkg/interfaces/web"
)

// ServeConfig holds configuration for the web interface
type ServeConfig struct {
	Addr       string
	MaxReports int
	Verbose    bool
	Help       bool
	Stdout     io.Writer
}

// ServeCommand runs the interactive upload and download server
type ServeCommand struct {
	config ServeConfig
}

// NewServeCommand creates a new serve command
func NewServeCommand(config ServeConfig) *ServeCommand {
	if config.MaxReports <= 0 {
		config.MaxReports = memory.DefaultReportCapacity
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	return &ServeCommand{config: config}
}

// Execute serves until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.Addr == "" {
		return fmt.Errorf("validation error: -addr must not be empty")
	}

	server, err := c.newServer()
	if err != nil {
		return err
	}
	return server.Listen(ctx, c.config.Addr)
}

func (c *ServeCommand) newServer() (*web.Server, error) {
	service := NewReportService(aging.NewAggregator())
	store := memory.NewReportRepository(c.config.MaxReports)

	var opts []web.Option
	if c.config.Verbose {
		opts = append(opts, web.WithRequestLog())
	}
	return web.NewServer(service, store, opts...)
}

// showHelp displays the help message
func (c *ServeCommand) showHelp() {
	fmt.Fprintf(c.config.Stdout, `Receipt Aging Report - web interface

USAGE:
    aging serve [OPTIONS]

OPTIONS:
    -addr <addr>        Listen address (default: $AGING_ADDR or %s)
    -max-reports <N>    Rendered reports kept for download (default: %d)
    -verbose            Log every request
    -help               Show this help message

Open the address in a browser, upload a piece report, pick the reference
date and download the annotated workbook.
`, config.DefaultAddr, memory.DefaultReportCapacity)
}
