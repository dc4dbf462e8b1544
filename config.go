package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MyOne00/portfolio/internal/repofeed"
)

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

type Config struct {
	Port          string
	GitHubOwner   string
	GitHubToken   string
	GitHubAPIURL  string
	FallbackDelay time.Duration
	DBPath        string
	TemplateGlob  string
	StaticDir     string
	ImagesDir     string
	AdminUsername string
	AdminPassword string
	SMTP          SMTPConfig
	Debug         bool
}

// LoadConfig reads the configuration through getenv, normally os.Getenv
// after the .env file has been autoloaded.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:          get("PORT", "8080"),
		GitHubOwner:   get("GITHUB_OWNER", "MyOne00"),
		GitHubToken:   getenv("GITHUB_TOKEN"),
		GitHubAPIURL:  getenv("GITHUB_API_URL"),
		FallbackDelay: repofeed.DefaultFallbackDelay,
		DBPath:        get("DB_PATH", "portfolio.db"),
		TemplateGlob:  get("TEMPLATE_GLOB", "templates/*"),
		StaticDir:     get("STATIC_DIR", "./static"),
		ImagesDir:     get("IMAGES_DIR", "./images"),
		AdminUsername: getenv("ADMIN_USERNAME"),
		AdminPassword: getenv("ADMIN_PASSWORD"),
		SMTP: SMTPConfig{
			Host: get("SMTP_HOST", "smtp.gmail.com"),
			Port: get("SMTP_PORT", "587"),
			User: getenv("SMTP_USER"),
			Pass: getenv("SMTP_PASS"),
			To:   getenv("TO_EMAIL"),
		},
		Debug: getenv("DEBUG") == "true",
	}

	if cfg.SMTP.To == "" {
		cfg.SMTP.To = cfg.SMTP.User
	}

	if raw := getenv("FALLBACK_DELAY"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("FALLBACK_DELAY must be a non-negative duration, got %q", raw)
		}
		cfg.FallbackDelay = d
	}

	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if cfg.GitHubOwner == "" {
		return errors.New("GITHUB_OWNER must be set")
	}
	p, err := strconv.Atoi(cfg.Port)
	if err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("PORT must be a TCP port number, got %q", cfg.Port)
	}
	if cfg.DBPath == "" {
		return errors.New("DB_PATH must be set")
	}
	return nil
}

func (c SMTPConfig) Configured() bool {
	return c.User != "" && c.Pass != ""
}
