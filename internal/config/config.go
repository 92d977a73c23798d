// internal/config/config.go
//
// This package handles runtime configuration. Each working directory gets
// an elements.yaml describing where the dataset lives and where reports go.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "elements.yaml"

const defaultConfigYAML = `# elementarium configuration
version: 1

# Dataset sources. Paths are resolved against this file's directory.
data:
  elements: elements.csv
  groups: groups.json

# Report targets. Generators overwrite these files unconditionally.
reports:
  html: periodic_table.html
  json: selected_elements.json
  markdown: group_overview.md

# Session journal.
log: elementarium.log
`

// DataConfig points at the two dataset sources.
type DataConfig struct {
	Elements string `yaml:"elements"`
	Groups   string `yaml:"groups"`
}

// ReportConfig holds the output path per report format.
type ReportConfig struct {
	HTML     string `yaml:"html"`
	JSON     string `yaml:"json"`
	Markdown string `yaml:"markdown"`
}

// FileConfig models elements.yaml.
type FileConfig struct {
	Version int          `yaml:"version"`
	Data    DataConfig   `yaml:"data"`
	Reports ReportConfig `yaml:"reports"`
	Log     string       `yaml:"log"`
}

// Config holds the runtime configuration for a session.
type Config struct {
	// BaseDir is the directory the tool was started from; relative paths
	// in the file resolve against it.
	BaseDir string

	File FileConfig
}

// Load reads elements.yaml from baseDir, writing a commented default file
// first when none exists.
func Load(baseDir string) (*Config, error) {
	cfg := &Config{BaseDir: baseDir, File: defaultFileConfig()}
	path := cfg.Path()
	if err := ensureConfigFile(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.File = parsed
	return cfg, nil
}

// Path returns the on-disk location of the configuration file.
func (c *Config) Path() string {
	return filepath.Join(c.BaseDir, FileName)
}

// ElementsPath returns the resolved element table path.
func (c *Config) ElementsPath() string {
	return c.resolve(c.File.Data.Elements)
}

// GroupsPath returns the resolved group table path.
func (c *Config) GroupsPath() string {
	return c.resolve(c.File.Data.Groups)
}

// HTMLReportPath returns the resolved HTML report target.
func (c *Config) HTMLReportPath() string {
	return c.resolve(c.File.Reports.HTML)
}

// JSONExportPath returns the resolved JSON export target.
func (c *Config) JSONExportPath() string {
	return c.resolve(c.File.Reports.JSON)
}

// MarkdownReportPath returns the resolved Markdown report target.
func (c *Config) MarkdownReportPath() string {
	return c.resolve(c.File.Reports.Markdown)
}

// LogPath returns the resolved session journal path.
func (c *Config) LogPath() string {
	return c.resolve(c.File.Log)
}

func (c *Config) resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(c.BaseDir, path))
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version: 1,
		Data: DataConfig{
			Elements: "elements.csv",
			Groups:   "groups.json",
		},
		Reports: ReportConfig{
			HTML:     "periodic_table.html",
			JSON:     "selected_elements.json",
			Markdown: "group_overview.md",
		},
		Log: "elementarium.log",
	}
}

func (fc *FileConfig) applyDefaults() {
	def := defaultFileConfig()
	if fc.Version == 0 {
		fc.Version = def.Version
	}
	if strings.TrimSpace(fc.Data.Elements) == "" {
		fc.Data.Elements = def.Data.Elements
	}
	if strings.TrimSpace(fc.Data.Groups) == "" {
		fc.Data.Groups = def.Data.Groups
	}
	if strings.TrimSpace(fc.Reports.HTML) == "" {
		fc.Reports.HTML = def.Reports.HTML
	}
	if strings.TrimSpace(fc.Reports.JSON) == "" {
		fc.Reports.JSON = def.Reports.JSON
	}
	if strings.TrimSpace(fc.Reports.Markdown) == "" {
		fc.Reports.Markdown = def.Reports.Markdown
	}
	if strings.TrimSpace(fc.Log) == "" {
		fc.Log = def.Log
	}
}

func (fc *FileConfig) normalize() {
	fc.Data.Elements = strings.TrimSpace(fc.Data.Elements)
	fc.Data.Groups = strings.TrimSpace(fc.Data.Groups)
	fc.Reports.HTML = strings.TrimSpace(fc.Reports.HTML)
	fc.Reports.JSON = strings.TrimSpace(fc.Reports.JSON)
	fc.Reports.Markdown = strings.TrimSpace(fc.Reports.Markdown)
	fc.Log = strings.TrimSpace(fc.Log)
}

func (fc FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}
	targets := map[string]string{
		"reports.html":     fc.Reports.HTML,
		"reports.json":     fc.Reports.JSON,
		"reports.markdown": fc.Reports.Markdown,
	}
	for key, value := range targets {
		if value == "" {
			return fmt.Errorf("%s is required", key)
		}
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("config: write default %s: %w", path, err)
	}
	return nil
}
