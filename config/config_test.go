package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("READ_TIMEOUT", "10s")
	t.Setenv("WRITE_TIMEOUT", "20s")
	t.Setenv("LOG_DIR", filepath.Join(dir, "logs"))
	t.Setenv("MEDIA_DIR", filepath.Join(dir, "media"))
	t.Setenv("DB_PATH", filepath.Join(dir, "data.db"))
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("ASSEMBLYAI_API_KEY", "aai-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("OPENAI_MAX_TRANSCRIPT_CHARS", "1000")
	t.Setenv("ASSEMBLYAI_POLL_INTERVAL", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("expected 9090, got %s", cfg.ServerPort)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Errorf("expected 10s, got %s", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != 20*time.Second {
		t.Errorf("expected 20s, got %s", cfg.WriteTimeout)
	}
	if cfg.YouTube.APIKey != "yt-key" {
		t.Errorf("expected yt-key, got %s", cfg.YouTube.APIKey)
	}
	if cfg.AssemblyAI.PollInterval != 2*time.Second {
		t.Errorf("expected 2s, got %s", cfg.AssemblyAI.PollInterval)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("expected gpt-4o, got %s", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.MaxTranscriptChars != 1000 {
		t.Errorf("expected 1000, got %d", cfg.OpenAI.MaxTranscriptChars)
	}

	// Directories should have been created by validation.
	if _, err := os.Stat(cfg.Media.Dir); err != nil {
		t.Errorf("media dir not created: %v", err)
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("LOG_DIR", filepath.Join(dir, "logs"))
	t.Setenv("MEDIA_DIR", filepath.Join(dir, "media"))
	t.Setenv("DB_PATH", filepath.Join(dir, "data.db"))
	t.Setenv("ASSEMBLYAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when API keys are missing")
	}
}

func TestValidateSpaces(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("LOG_DIR", filepath.Join(dir, "logs"))
	t.Setenv("MEDIA_DIR", filepath.Join(dir, "media"))
	t.Setenv("DB_PATH", filepath.Join(dir, "data.db"))
	t.Setenv("ASSEMBLYAI_API_KEY", "aai-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")
	t.Setenv("SPACES_ENABLED", "true")
	t.Setenv("SPACES_BUCKET", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when archiving enabled without bucket")
	}
}
