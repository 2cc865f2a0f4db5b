package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/commentscope/pkg/commentscope/internalerr"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Report.TopN != 10 || cfg.LLM.MaxComments != 1000 || cfg.YouTube.MaxCommentsPerVideo != 200 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Paths.ReportDir != filepath.Join("output_dir", "analysis_results") {
		t.Fatalf("unexpected report dir %s", cfg.Paths.ReportDir)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
paths:
  report_dir: /tmp/reports
report:
  top_n: 5
llm:
  model: gpt-4o-mini
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Paths.ReportDir != "/tmp/reports" || cfg.Report.TopN != 5 || cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Paths.RawDir != filepath.Join("output_dir", "raw_comments") || cfg.LLM.MaxComments != 1000 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeTemp(t, "config.yaml", "report: [unclosed")
	if _, err := LoadConfig(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero top n", func(c *Config) { c.Report.TopN = 0 }},
		{"negative max comments", func(c *Config) { c.LLM.MaxComments = -1 }},
		{"page size too large", func(c *Config) { c.YouTube.PageSize = 101 }},
		{"empty report dir", func(c *Config) { c.Paths.ReportDir = "" }},
		{"bad text format", func(c *Config) { c.YouTube.TextFormat = "markdown" }},
		{"zero request rate", func(c *Config) { c.YouTube.RequestsPerSecond = 0 }},
		{"negative llm rate", func(c *Config) { c.LLM.RequestsPerMinute = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateAllowsUnthrottledLLM(t *testing.T) {
	cfg := Default()
	cfg.LLM.RequestsPerMinute = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero llm rate means unthrottled, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REPORT_TOP_N", "not-a-number")
	unsetEnv(t, "OPENAI_MODEL")

	cfg := Default()
	cfg.ApplyEnv()
	if cfg.YouTube.APIKey != "yt-key" || cfg.LLM.APIKey != "sk-test" {
		t.Fatalf("secrets not applied: %+v", cfg)
	}
	if cfg.LLM.BaseURL != "http://localhost:8080/v1" || cfg.Log.Level != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Report.TopN != 10 || cfg.LLM.Model != "gpt-3.5-turbo" {
		t.Fatalf("invalid or unset values should keep defaults: %+v", cfg)
	}
}

func TestLoaderDefaults(t *testing.T) {
	unsetEnv(t, "REPORT_TOP_N")
	loader := &Loader{}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Taxonomy == nil || comp.Taxonomy.Len() != 30 {
		t.Fatalf("expected built-in taxonomy, got %v", comp.Taxonomy)
	}
	if comp.Config.Report.TopN != 10 {
		t.Fatalf("unexpected top n %d", comp.Config.Report.TopN)
	}
}

func TestLoaderEnvFileAndTaxonomy(t *testing.T) {
	unsetEnv(t, "OPENAI_API_KEY")
	envPath := writeTemp(t, ".env", "OPENAI_API_KEY=from-dotenv\n")
	taxPath := writeTemp(t, "themes.yaml", `
themes:
  - name: fees
    keywords: [fee]
  - name: country_egypt
    keywords: [egypt]
`)
	cfgPath := writeTemp(t, "config.yaml", "taxonomy:\n  path: /does/not/exist.yaml\n")

	loader := &Loader{ConfigPath: cfgPath, TaxonomyPath: taxPath, EnvPath: envPath}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Config.LLM.APIKey != "from-dotenv" {
		t.Fatalf("expected key from .env, got %q", comp.Config.LLM.APIKey)
	}
	if comp.Taxonomy.Len() != 2 {
		t.Fatalf("flag taxonomy should win, got %d themes", comp.Taxonomy.Len())
	}
	if comp.Config.Taxonomy.Path != taxPath {
		t.Fatalf("expected resolved taxonomy path %s, got %s", taxPath, comp.Config.Taxonomy.Path)
	}
}

func TestLoaderIgnoreEnv(t *testing.T) {
	t.Setenv("REPORT_TOP_N", "3")
	t.Setenv("LOG_LEVEL", "debug")
	unsetEnv(t, "OPENAI_API_KEY")
	envPath := writeTemp(t, ".env", "OPENAI_API_KEY=from-dotenv\n")

	loader := &Loader{EnvPath: envPath, IgnoreEnv: true}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Config.Report.TopN != 10 || comp.Config.Log.Level != "info" {
		t.Fatalf("environment should be ignored: %+v", comp.Config)
	}
	if _, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
		t.Fatal(".env file should not be loaded")
	}
}

func TestLoaderMissingEnvFileIgnored(t *testing.T) {
	loader := &Loader{EnvPath: filepath.Join(t.TempDir(), ".env")}
	if _, err := loader.Load(); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}
}

func TestLoaderBadTaxonomy(t *testing.T) {
	taxPath := writeTemp(t, "themes.yaml", "themes:\n  - name: fees\n    keywords: []\n")
	loader := &Loader{TaxonomyPath: taxPath}
	if _, err := loader.Load(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
