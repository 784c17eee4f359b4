package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tableflip.dev/canvastui/pkg/canvas"
)

// DefaultCachePath is where the last fetched feed body is kept.
const DefaultCachePath = "/tmp/canvastui.json"

var (
	ErrMissingToken = errors.New("config: CANVAS_ACCESS_TOKEN is not set")
	ErrMissingURL   = errors.New("config: CANVAS_URL is not set")
	ErrInvalidURL   = errors.New("config: CANVAS_URL is invalid")
)

// Config is everything the process needs before the UI starts.
type Config struct {
	BaseURL     string `json:"url"`
	AccessToken string `json:"-"`
	Cache       string `json:"cache"`
	LogFile     string `json:"log"`
	Browser     string `json:"browser"`
}

// CachePath satisfies store.Config.
func (c *Config) CachePath() string {
	return c.Cache
}

// Load reads CANVAS_* environment variables and any flags registered on fs.
// Flags win over environment, environment wins over defaults.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("cache", DefaultCachePath)
	v.SetEnvPrefix("CANVAS")
	v.AutomaticEnv()

	for key, env := range map[string]string{
		"access_token": "CANVAS_ACCESS_TOKEN",
		"url":          "CANVAS_URL",
		"cache":        "CANVAS_CACHE",
		"log":          "CANVAS_LOG",
		"browser":      "BROWSER",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", env, err)
		}
	}
	if fs != nil {
		for _, name := range []string{"cache", "log", "browser"} {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, fmt.Errorf("config: bind --%s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		BaseURL:     strings.TrimSpace(v.GetString("url")),
		AccessToken: strings.TrimSpace(v.GetString("access_token")),
		Browser:     strings.TrimSpace(v.GetString("browser")),
	}
	var err error
	if cfg.Cache, err = expand(v.GetString("cache")); err != nil {
		return nil, err
	}
	if cfg.LogFile, err = expand(v.GetString("log")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports configuration the process cannot start without.
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return ErrMissingToken
	}
	if c.BaseURL == "" {
		return ErrMissingURL
	}
	if _, err := canvas.ParseBaseURL(c.BaseURL); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return nil
}

// Client builds the feed client; call Validate first.
func (c *Config) Client() (*canvas.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return canvas.New(c.BaseURL, c.AccessToken)
}

func expand(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	out, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("config: expand %q: %w", path, err)
	}
	return out, nil
}
