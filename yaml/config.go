// Package yaml loads harvest configuration from YAML or JSON files.
package yaml

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abrsjh/harvest"
)

// configFile is the on-disk layout. Settings live under a "scraper" root
// key so that config files remain extensible.
type configFile struct {
	Scraper *harvest.Config `yaml:"scraper" json:"scraper"`
}

// LoadConfig reads a scraper configuration from path. The format is
// chosen by extension: .json parses as JSON, anything else as YAML.
// Defaults are filled in via Normalize; call Validate separately.
func LoadConfig(path string) (*harvest.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, harvest.Errorf(harvest.ENOTFOUND, "config file not found: %s", path)
		}
		return nil, harvest.Errorf(harvest.EINTERNAL, "read config file: %v", err)
	}
	return ParseConfig(data, filepath.Ext(path))
}

// ParseConfig parses configuration data. ext selects the format as in
// LoadConfig.
func ParseConfig(data []byte, ext string) (*harvest.Config, error) {
	var file configFile
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, harvest.Errorf(harvest.EINVALID, "parse config: %v", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, harvest.Errorf(harvest.EINVALID, "parse config: %v", err)
		}
	}

	if file.Scraper == nil {
		return nil, harvest.Errorf(harvest.EINVALID, "config file is missing the scraper section")
	}

	cfg := file.Scraper
	cfg.Normalize()
	return cfg, nil
}
