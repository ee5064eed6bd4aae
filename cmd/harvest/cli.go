package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Dependencies holds shared services and configuration for command
// execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Scrape  ScrapeCmd  `cmd:"" help:"Run a scrape from a config file and write records to the configured output"`
	Preview PreviewCmd `cmd:"" help:"Fetch one page and print the extracted records without writing output"`
	Version VersionCmd `cmd:"" help:"Print the version"`
}

// ScrapeCmd is the "scrape" subcommand. Flags override the config file.
type ScrapeCmd struct {
	Config      string        `arg:"" help:"Path to a YAML or JSON scraper config"`
	URL         []string      `short:"u" help:"Override the config URLs (repeatable)"`
	Output      string        `short:"o" help:"Override the output path"`
	Format      string        `short:"f" help:"Override the output format: csv, json or database"`
	Append      bool          `help:"Append to existing output instead of replacing it"`
	Timeout     time.Duration `help:"Override the per-request timeout"`
	Retries     int           `help:"Override the fetch attempt count"`
	Concurrency int           `help:"Override the number of URLs scraped in parallel"`
	UserAgent   string        `help:"Override the User-Agent header"`
	Proxy       string        `help:"Override the proxy URL"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URL    string `arg:"" help:"Page URL to preview"`
	Kind   string `short:"k" default:"ecommerce" help:"Record kind: ecommerce, business or content"`
	Config string `short:"c" help:"Optional config file for selectors and options"`
	Limit  int    `short:"n" default:"5" help:"Maximum records to print"`
}

// VersionCmd is the "version" subcommand.
type VersionCmd struct{}
