package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyEnvToConfig_FillsUnsetOnly(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("LLM_MODEL", "env-model")
	t.Setenv("JOBS_TIMEOUT", "3s")
	t.Setenv("VERBOSE", "true")

	cfg := Config{LLMModel: "flag-model"}
	ApplyEnvToConfig(&cfg)

	if cfg.LLMAPIKey != "env-key" {
		t.Fatalf("expected key from env, got %q", cfg.LLMAPIKey)
	}
	if cfg.LLMModel != "flag-model" {
		t.Fatalf("explicit value must win over env, got %q", cfg.LLMModel)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout from env, got %v", cfg.Timeout)
	}
	if !cfg.Verbose {
		t.Fatal("expected verbose from env")
	}
}

func TestApplyEnvToConfig_LLMAPIKeyAlias(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LLM_API_KEY", "alias-key")

	var cfg Config
	ApplyEnvToConfig(&cfg)
	if cfg.LLMAPIKey != "alias-key" {
		t.Fatalf("expected LLM_API_KEY honored, got %q", cfg.LLMAPIKey)
	}
}

func TestLoadConfigFile_AndMergePrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gojobsearch.yaml")
	content := `
baseURL: https://example.com/jobs/results/
timeout: 20s
listen: ":9090"
llm:
  base: https://llm.example.com/v1
  model: file-model
  key: file-key
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	cfg := Config{LLMModel: "flag-model"}
	MergeFileConfig(&cfg, fc)

	if cfg.BaseURL != "https://example.com/jobs/results/" {
		t.Fatalf("expected base from file, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 20*time.Second {
		t.Fatalf("expected timeout from file, got %v", cfg.Timeout)
	}
	if cfg.LLMModel != "flag-model" {
		t.Fatalf("file must not override explicit values, got %q", cfg.LLMModel)
	}
	if cfg.LLMAPIKey != "file-key" || cfg.ListenAddr != ":9090" {
		t.Fatalf("expected remaining fields filled from file, got %+v", cfg)
	}
}

func TestLoadConfigFile_MissingFile(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()
	if cfg.BaseURL == "" || cfg.UserAgent == "" || cfg.Timeout <= 0 {
		t.Fatalf("expected defaults applied, got %+v", cfg)
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("expected 10s default timeout, got %v", cfg.Timeout)
	}
}
