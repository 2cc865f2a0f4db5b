// Package config loads pipeline settings from YAML, the environment and an
// optional .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/commentscope/pkg/commentscope/internalerr"
)

// Config holds every stage's settings.
type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Taxonomy TaxonomyConfig `yaml:"taxonomy"`
	Report   ReportConfig   `yaml:"report"`
	YouTube  YouTubeConfig  `yaml:"youtube"`
	LLM      LLMConfig      `yaml:"llm"`
	Log      LogConfig      `yaml:"log"`
}

type PathsConfig struct {
	RawDir       string `yaml:"raw_dir"`
	ProcessedDir string `yaml:"processed_dir"`
	ReportDir    string `yaml:"report_dir"`
	URLsFile     string `yaml:"urls_file"`
}

// TaxonomyConfig points at a theme file. Empty means the built-in taxonomy.
type TaxonomyConfig struct {
	Path string `yaml:"path"`
}

type ReportConfig struct {
	TopN int `yaml:"top_n"`
}

type YouTubeConfig struct {
	APIKey              string  `yaml:"-"`
	MaxCommentsPerVideo int     `yaml:"max_comments_per_video"`
	PageSize            int     `yaml:"page_size"`
	TextFormat          string  `yaml:"text_format"`
	RequestsPerSecond   float64 `yaml:"requests_per_second"`
}

type LLMConfig struct {
	BaseURL           string `yaml:"base_url"`
	APIKey            string `yaml:"-"`
	Model             string `yaml:"model"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
	MaxComments       int    `yaml:"max_comments"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	out := "output_dir"
	return &Config{
		Paths: PathsConfig{
			RawDir:       filepath.Join(out, "raw_comments"),
			ProcessedDir: filepath.Join(out, "processed_comments"),
			ReportDir:    filepath.Join(out, "analysis_results"),
			URLsFile:     "youtube_urls.txt",
		},
		Report: ReportConfig{TopN: 10},
		YouTube: YouTubeConfig{
			MaxCommentsPerVideo: 200,
			PageSize:            100,
			TextFormat:          "plainText",
			RequestsPerSecond:   5,
		},
		LLM: LLMConfig{
			Model:             "gpt-3.5-turbo",
			RequestsPerMinute: 60,
			MaxComments:       1000,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads a YAML file over the defaults. Keys absent from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(internalerr.ErrInvalidConfig, "parse %s: %v", path, err)
	}
	return cfg, nil
}

// LoadEnvFile seeds the process environment from a .env file. Variables
// already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return errors.Wrapf(godotenv.Load(path), "load env file %s", path)
}

// ApplyEnv overlays secrets and overrides from the environment.
func (c *Config) ApplyEnv() {
	c.YouTube.APIKey = getEnv("YOUTUBE_API_KEY", c.YouTube.APIKey)
	c.LLM.APIKey = getEnv("OPENAI_API_KEY", c.LLM.APIKey)
	c.LLM.BaseURL = getEnv("OPENAI_BASE_URL", c.LLM.BaseURL)
	c.LLM.Model = getEnv("OPENAI_MODEL", c.LLM.Model)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Report.TopN = getEnvAsInt("REPORT_TOP_N", c.Report.TopN)
}

// Validate rejects settings no stage can run with.
func (c *Config) Validate() error {
	dirs := []struct {
		name, value string
	}{
		{"paths.raw_dir", c.Paths.RawDir},
		{"paths.processed_dir", c.Paths.ProcessedDir},
		{"paths.report_dir", c.Paths.ReportDir},
	}
	for _, d := range dirs {
		if d.value == "" {
			return errors.Wrapf(internalerr.ErrInvalidConfig, "%s must be set", d.name)
		}
	}

	limits := []struct {
		name  string
		value int
	}{
		{"report.top_n", c.Report.TopN},
		{"youtube.max_comments_per_video", c.YouTube.MaxCommentsPerVideo},
		{"youtube.page_size", c.YouTube.PageSize},
		{"llm.max_comments", c.LLM.MaxComments},
	}
	for _, l := range limits {
		if l.value <= 0 {
			return errors.Wrapf(internalerr.ErrInvalidConfig, "%s must be positive, got %d", l.name, l.value)
		}
	}
	if c.LLM.RequestsPerMinute < 0 {
		return errors.Wrapf(internalerr.ErrInvalidConfig, "llm.requests_per_minute must not be negative, got %d", c.LLM.RequestsPerMinute)
	}
	if c.YouTube.PageSize > 100 {
		return errors.Wrapf(internalerr.ErrInvalidConfig, "youtube.page_size must be at most 100, got %d", c.YouTube.PageSize)
	}
	if c.YouTube.RequestsPerSecond <= 0 {
		return errors.Wrapf(internalerr.ErrInvalidConfig, "youtube.requests_per_second must be positive")
	}
	switch c.YouTube.TextFormat {
	case "plainText", "html":
	default:
		return errors.Wrapf(internalerr.ErrInvalidConfig, "youtube.text_format must be plainText or html, got %q", c.YouTube.TextFormat)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
