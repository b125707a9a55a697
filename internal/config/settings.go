package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/handiism/xkcd-downloader/internal/http"
	"github.com/handiism/xkcd-downloader/internal/model"
	"github.com/handiism/xkcd-downloader/internal/xkcd"
)

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	OutputDir     string
	SiteURL       string
	StartPage     int
	EndPage       int // 0 = latest page
	MaxParallel   int
	RetryAttempts int
	Timeout       time.Duration
	UserAgent     string

	// Image settings
	MaxImageSize int // 0 = keep original
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		OutputDir:     filepath.Join(homeDir, "Downloads", "xkcd"),
		SiteURL:       xkcd.DefaultSite,
		StartPage:     1,
		EndPage:       0,
		MaxParallel:   5,
		RetryAttempts: 5,
		Timeout:       60 * time.Second,
		UserAgent:     "xkcd-downloader",
		MaxImageSize:  0,
	}
}

// fileSettings is the on-disk form of Settings. Pointers tell absent keys
// from zero values; the timeout is a duration string such as "30s".
type fileSettings struct {
	OutputDir     *string `json:"output_dir" yaml:"output_dir"`
	SiteURL       *string `json:"site_url" yaml:"site_url"`
	StartPage     *int    `json:"start_page" yaml:"start_page"`
	EndPage       *int    `json:"end_page" yaml:"end_page"`
	MaxParallel   *int    `json:"max_parallel" yaml:"max_parallel"`
	RetryAttempts *int    `json:"retry_attempts" yaml:"retry_attempts"`
	Timeout       *string `json:"timeout" yaml:"timeout"`
	UserAgent     *string `json:"user_agent" yaml:"user_agent"`
	MaxImageSize  *int    `json:"max_image_size" yaml:"max_image_size"`
}

// Load reads settings from a JSON or YAML file.
//
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
// Keys missing from the file keep their default value. A missing file
// yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	var fs fileSettings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fs)
	default:
		err = json.Unmarshal(data, &fs)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	settings := DefaultSettings()
	if err := settings.apply(fs); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *Settings) apply(fs fileSettings) error {
	if fs.OutputDir != nil {
		s.OutputDir = *fs.OutputDir
	}
	if fs.SiteURL != nil {
		s.SiteURL = *fs.SiteURL
	}
	if fs.StartPage != nil {
		s.StartPage = *fs.StartPage
	}
	if fs.EndPage != nil {
		s.EndPage = *fs.EndPage
	}
	if fs.MaxParallel != nil {
		s.MaxParallel = *fs.MaxParallel
	}
	if fs.RetryAttempts != nil {
		s.RetryAttempts = *fs.RetryAttempts
	}
	if fs.Timeout != nil {
		d, err := time.ParseDuration(*fs.Timeout)
		if err != nil {
			return fmt.Errorf("parse timeout: %w", err)
		}
		s.Timeout = d
	}
	if fs.UserAgent != nil {
		s.UserAgent = *fs.UserAgent
	}
	if fs.MaxImageSize != nil {
		s.MaxImageSize = *fs.MaxImageSize
	}
	return nil
}

// LoadFromEnv overrides settings from environment variables.
// Environment variables use the XKCD_ prefix.
func (s *Settings) LoadFromEnv() error {
	if v := os.Getenv("XKCD_OUTPUT_DIR"); v != "" {
		s.OutputDir = v
	}
	if v := os.Getenv("XKCD_SITE_URL"); v != "" {
		s.SiteURL = v
	}
	if v := os.Getenv("XKCD_MAX_PARALLEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse XKCD_MAX_PARALLEL: %w", err)
		}
		s.MaxParallel = n
	}
	if v := os.Getenv("XKCD_RETRY_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse XKCD_RETRY_ATTEMPTS: %w", err)
		}
		s.RetryAttempts = n
	}
	if v := os.Getenv("XKCD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse XKCD_TIMEOUT: %w", err)
		}
		s.Timeout = d
	}
	if v := os.Getenv("XKCD_MAX_IMAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse XKCD_MAX_IMAGE_SIZE: %w", err)
		}
		s.MaxImageSize = n
	}
	return nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	out := map[string]any{
		"output_dir":     s.OutputDir,
		"site_url":       s.SiteURL,
		"start_page":     s.StartPage,
		"end_page":       s.EndPage,
		"max_parallel":   s.MaxParallel,
		"retry_attempts": s.RetryAttempts,
		"timeout":        s.Timeout.String(),
		"user_agent":     s.UserAgent,
		"max_image_size": s.MaxImageSize,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if s.OutputDir == "" {
		return errors.New("config: output directory is required")
	}
	if s.SiteURL == "" {
		return errors.New("config: site URL is required")
	}
	if s.StartPage < 1 {
		return errors.New("config: start page must be at least 1")
	}
	if s.EndPage != 0 && s.EndPage < s.StartPage {
		return fmt.Errorf("config: end page %d is before start page %d", s.EndPage, s.StartPage)
	}
	if s.MaxParallel <= 0 {
		return errors.New("config: max parallel must be positive")
	}
	if s.RetryAttempts <= 0 {
		return errors.New("config: retry attempts must be positive")
	}
	if s.MaxImageSize < 0 {
		return errors.New("config: max image size must not be negative")
	}
	return nil
}

// ExpandOutputDir returns OutputDir with a leading "~" replaced by the
// user's home directory.
func (s *Settings) ExpandOutputDir() string {
	dir := s.OutputDir
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return dir
}

// Range returns the configured page range. An end of zero means the
// latest page has to be discovered.
func (s *Settings) Range() model.Range {
	return model.Range{Start: model.PageNumber(s.StartPage), End: model.PageNumber(s.EndPage)}
}

// HTTPOptions converts settings to HTTP client options.
func (s *Settings) HTTPOptions() http.Options {
	opts := http.DefaultOptions()
	if s.RetryAttempts > 0 {
		opts.RetryAttempts = s.RetryAttempts
	}
	if s.Timeout > 0 {
		opts.Timeout = s.Timeout
	}
	if s.UserAgent != "" {
		opts.UserAgent = s.UserAgent
	}
	return opts
}
