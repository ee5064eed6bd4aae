package yaml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abrsjh/harvest"
	harvestyaml "github.com/abrsjh/harvest/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("loads a full YAML config", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "config.yaml", `
scraper:
  kind: business
  urls:
    - https://example.com/directory
  selectors:
    business_container: ".member-card"
    phone: ".phone-number"
  output:
    format: csv
    path: out.csv
  timeout: 45s
  delay: 2
  rotate_user_agent: random
  validate_emails: true
  follow_next_page: true
  max_pages: 10
`)

		cfg, err := harvestyaml.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, harvest.KindBusiness, cfg.Kind)
		assert.Equal(t, []string{"https://example.com/directory"}, cfg.URLs)
		assert.Equal(t, ".member-card", cfg.Selectors["business_container"])
		assert.Equal(t, ".phone-number", cfg.Selectors["phone"])
		assert.Equal(t, harvest.FormatCSV, cfg.Output.Format)
		assert.Equal(t, "out.csv", cfg.Output.Path)
		assert.Equal(t, 45*time.Second, cfg.Timeout.Duration())
		assert.Equal(t, 2*time.Second, cfg.Delay.Duration())
		assert.Equal(t, "random", cfg.RotateUA)
		assert.True(t, cfg.ValidateEmails)
		assert.True(t, cfg.FollowNextPage)
		assert.Equal(t, 10, cfg.MaxPages)
	})

	t.Run("loads a JSON config", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "config.json", `{
  "scraper": {
    "kind": "content",
    "urls": ["https://blog.example.com"],
    "output": {"format": "json", "path": "posts.json", "indent": true},
    "generate_summary": true
  }
}`)

		cfg, err := harvestyaml.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, harvest.KindContent, cfg.Kind)
		assert.Equal(t, harvest.FormatJSON, cfg.Output.Format)
		assert.True(t, cfg.Output.Indent)
		assert.True(t, cfg.GenerateSummary)
	})

	t.Run("fills defaults for unset fields", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "config.yaml", `
scraper:
  urls: ["https://example.com"]
  output:
    path: out.json
`)

		cfg, err := harvestyaml.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, harvest.KindEcommerce, cfg.Kind)
		assert.Equal(t, harvest.FormatJSON, cfg.Output.Format)
		assert.Equal(t, harvest.DefaultTimeout, cfg.Timeout.Duration())
		assert.Equal(t, harvest.DefaultMaxPages, cfg.MaxPages)
		assert.Equal(t, harvest.DefaultRetries, cfg.Retries)
	})

	t.Run("returns ENOTFOUND for a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := harvestyaml.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed YAML", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "config.yaml", "scraper: [unclosed")

		_, err := harvestyaml.LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("returns EINVALID when the scraper section is missing", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "config.yaml", "other: {}")

		_, err := harvestyaml.LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
