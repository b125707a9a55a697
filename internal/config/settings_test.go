package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.MaxParallel != 5 {
		t.Errorf("MaxParallel = %d, want 5", s.MaxParallel)
	}
	if s.RetryAttempts != 5 {
		t.Errorf("RetryAttempts = %d, want 5", s.RetryAttempts)
	}
	if s.StartPage != 1 || s.EndPage != 0 {
		t.Errorf("pages = [%d, %d], want [1, 0]", s.StartPage, s.EndPage)
	}
	if !strings.HasSuffix(s.OutputDir, filepath.Join("Downloads", "xkcd")) {
		t.Errorf("OutputDir = %q, want suffix Downloads/xkcd", s.OutputDir)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `output_dir: /tmp/comics
max_parallel: 8
retry_attempts: 3
timeout: 30s
end_page: 100
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if s.OutputDir != "/tmp/comics" {
		t.Errorf("OutputDir = %q, want %q", s.OutputDir, "/tmp/comics")
	}
	if s.MaxParallel != 8 {
		t.Errorf("MaxParallel = %d, want 8", s.MaxParallel)
	}
	if s.RetryAttempts != 3 {
		t.Errorf("RetryAttempts = %d, want 3", s.RetryAttempts)
	}
	if s.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", s.Timeout)
	}
	if s.EndPage != 100 {
		t.Errorf("EndPage = %d, want 100", s.EndPage)
	}
	// Untouched keys keep defaults
	if s.StartPage != 1 {
		t.Errorf("StartPage = %d, want 1", s.StartPage)
	}
}

func TestLoad_JSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	want := DefaultSettings()
	want.OutputDir = "/srv/xkcd"
	want.MaxParallel = 3
	want.Timeout = 15 * time.Second
	want.MaxImageSize = 1200

	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *s != *DefaultSettings() {
		t.Errorf("missing file should yield defaults, got %+v", s)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad json", "config.json", `{"max_parallel": "many"}`},
		{"bad yaml", "config.yml", "max_parallel: [1, 2"},
		{"bad timeout", "config.yaml", "timeout: soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("XKCD_OUTPUT_DIR", "/env/xkcd")
	t.Setenv("XKCD_MAX_PARALLEL", "12")
	t.Setenv("XKCD_TIMEOUT", "5s")

	s := DefaultSettings()
	if err := s.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if s.OutputDir != "/env/xkcd" {
		t.Errorf("OutputDir = %q, want %q", s.OutputDir, "/env/xkcd")
	}
	if s.MaxParallel != 12 {
		t.Errorf("MaxParallel = %d, want 12", s.MaxParallel)
	}
	if s.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", s.Timeout)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("XKCD_RETRY_ATTEMPTS", "lots")

	if err := DefaultSettings().LoadFromEnv(); err == nil {
		t.Error("expected error for non-numeric XKCD_RETRY_ATTEMPTS")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"no output dir", func(s *Settings) { s.OutputDir = "" }},
		{"zero start", func(s *Settings) { s.StartPage = 0 }},
		{"end before start", func(s *Settings) { s.StartPage = 10; s.EndPage = 5 }},
		{"zero parallel", func(s *Settings) { s.MaxParallel = 0 }},
		{"zero retries", func(s *Settings) { s.RetryAttempts = 0 }},
		{"negative image size", func(s *Settings) { s.MaxImageSize = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestExpandOutputDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	s := DefaultSettings()
	s.OutputDir = "~/Downloads/xkcd"
	if got, want := s.ExpandOutputDir(), filepath.Join(home, "Downloads", "xkcd"); got != want {
		t.Errorf("ExpandOutputDir() = %q, want %q", got, want)
	}

	s.OutputDir = "/abs/path"
	if got := s.ExpandOutputDir(); got != "/abs/path" {
		t.Errorf("ExpandOutputDir() = %q, want /abs/path", got)
	}
}

func TestHTTPOptions(t *testing.T) {
	s := DefaultSettings()
	s.RetryAttempts = 2
	s.Timeout = 3 * time.Second

	opts := s.HTTPOptions()
	if opts.RetryAttempts != 2 {
		t.Errorf("RetryAttempts = %d, want 2", opts.RetryAttempts)
	}
	if opts.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", opts.Timeout)
	}
}
