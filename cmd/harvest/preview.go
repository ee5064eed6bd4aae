package main

import (
	"encoding/json"
	"fmt"

	"github.com/abrsjh/harvest"
	"github.com/abrsjh/harvest/goquery"
	harvesthttp "github.com/abrsjh/harvest/http"
	"github.com/abrsjh/harvest/yaml"
)

// Run executes the preview command. It fetches a single page, extracts
// records and prints them as JSON without touching any output file.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	cfg := &harvest.Config{Kind: harvest.Kind(c.Kind)}
	if c.Config != "" {
		loaded, err := yaml.LoadConfig(c.Config)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
		cfg = loaded
	}
	cfg.Normalize()
	if !cfg.Kind.Valid() {
		return harvest.Errorf(harvest.EINVALID, "unknown record kind: %q", c.Kind)
	}
	if !harvest.ValidTargetURL(c.URL) {
		return harvest.Errorf(harvest.EINVALID, "invalid URL: %q", c.URL)
	}

	fetcher, err := harvesthttp.NewFetcher(harvesthttp.WithTimeout(cfg.Timeout.Duration()))
	if err != nil {
		return err
	}
	defer fetcher.Close()

	html, err := fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	records, err := goquery.NewExtractor(cfg).Extract(html, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	limit := c.Limit
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}

	out, err := json.MarshalIndent(records[:limit], "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	fmt.Fprintf(deps.Stderr, "%d records found, showing %d\n", len(records), limit)
	return nil
}
