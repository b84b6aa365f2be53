package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds catalog builder settings. Paths, timeout and delay are fixed
// by DefaultConfig; only Verbose and MetricsAddr are set from flags.
type Config struct {
	InputFile     string
	ArtistColumns []string
	OutputFile    string

	APIEndpoint    string
	SiteURL        string
	SearchLinkBase string
	Placeholder    string
	Ratings        []string

	Timeout       time.Duration
	Delay         time.Duration
	UserAgent     string
	DedupeMaxSize int

	Verbose     bool
	MetricsAddr string
}

// DefaultConfig returns the settings every run uses.
func DefaultConfig() *Config {
	return &Config{
		InputFile:      "Jsp.csv",
		ArtistColumns:  []string{"Artist Name(s)", "artist", "Artist"},
		OutputFile:     "artists_enriched.json",
		APIEndpoint:    "https://api.duckduckgo.com/",
		SiteURL:        "https://duckduckgo.com",
		SearchLinkBase: "https://open.spotify.com/search/artist%3A",
		Placeholder:    "https://via.placeholder.com/400x400.png?text=Artist",
		Ratings:        []string{"★★★★★", "★★★★½", "★★★★", "★★★½"},
		Timeout:        8 * time.Second,
		Delay:          600 * time.Millisecond,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		DedupeMaxSize:  4096,
		Verbose:        false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputFile) == "" {
		return fmt.Errorf("input file cannot be empty")
	}
	if len(c.ArtistColumns) == 0 {
		return fmt.Errorf("at least one artist column is required")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}

	if err := validateAbsURL("API endpoint", c.APIEndpoint); err != nil {
		return err
	}
	if err := validateAbsURL("site URL", c.SiteURL); err != nil {
		return err
	}
	if c.SearchLinkBase == "" {
		return fmt.Errorf("search link base cannot be empty")
	}
	if c.Placeholder == "" {
		return fmt.Errorf("placeholder cannot be empty")
	}
	if len(c.Ratings) == 0 {
		return fmt.Errorf("ratings cannot be empty")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay cannot be negative")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.DedupeMaxSize <= 0 {
		return fmt.Errorf("dedupe max size must be positive")
	}

	return nil
}

func validateAbsURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be http or https", name)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}
