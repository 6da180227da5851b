package config

import (
	"fmt"
	"net/url"
	"time"

	"cardsearch/internal/cards"
	"cardsearch/internal/search"
	"cardsearch/internal/widget"
)

// This file defines the configuration structures used by viper_config.go
// The actual loading is handled by viper in viper_config.go

// ServerConfig represents the application configuration
type ServerConfig struct {
	Server ServerSettings `mapstructure:"server"`
	API    APISettings    `mapstructure:"api"`
	Widget WidgetSettings `mapstructure:"widget"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Port            string        `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout     time.Duration `mapstructure:"idleTimeout"` // 0 for SSE support
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	RequestTimeout  time.Duration `mapstructure:"requestTimeout"` // middleware timeout for regular requests
	SessionTimeout  time.Duration `mapstructure:"sessionTimeout"` // idle sessions are dropped after this

	// Rate limiting (using golang.org/x/time/rate)
	RateLimit      float64 `mapstructure:"rateLimit"` // requests per second
	RateLimitBurst int     `mapstructure:"rateLimitBurst"`

	MaxRequestSize int64    `mapstructure:"maxRequestSize"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`

	LogLevel string `mapstructure:"logLevel"`
}

// APISettings points the card client at the card database
type APISettings struct {
	BaseURL   string        `mapstructure:"baseURL"`
	Path      string        `mapstructure:"path"`
	UserAgent string        `mapstructure:"userAgent"`
	Timeout   time.Duration `mapstructure:"timeout"` // 0 keeps the transport defaults
}

// WidgetSettings controls what the search widget looks like and says
type WidgetSettings struct {
	Title       string          `mapstructure:"title"`
	DisplayMode string          `mapstructure:"displayMode"`
	DefaultMode string          `mapstructure:"defaultMode"` // used when the form has no search field
	Messages    search.Messages `mapstructure:"messages"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Port:            "8080",
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    0, // SSE streams stay open
			IdleTimeout:     0,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
			SessionTimeout:  2 * time.Hour,

			RateLimit:      10,
			RateLimitBurst: 20,

			MaxRequestSize: 1048576, // 1MB
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},

			LogLevel: "info",
		},
		API: APISettings{
			BaseURL:   cards.DefaultBaseURL,
			Path:      cards.DefaultPath,
			UserAgent: cards.DefaultUserAgent,
		},
		Widget: WidgetSettings{
			Title:       "Buscador de cartas",
			DisplayMode: string(widget.DisplayMulti),
			DefaultMode: string(search.ModeExactName),
			Messages:    search.DefaultMessages(),
		},
	}
}

// Validate checks if the configuration is valid
func (c *ServerConfig) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT environment variable must be set")
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("rateLimit must be positive")
	}
	if c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("rateLimitBurst must be at least 1")
	}
	if c.Server.MaxRequestSize < 1024 {
		return fmt.Errorf("maxRequestSize must be at least 1024 bytes")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("requestTimeout must be positive")
	}
	if c.Server.SessionTimeout < time.Minute {
		return fmt.Errorf("sessionTimeout must be at least 1m")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.baseURL must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}

	if _, err := widget.ParseDisplayMode(c.Widget.DisplayMode); err != nil {
		return fmt.Errorf("widget.displayMode: %w", err)
	}
	if c.Widget.DefaultMode != "" && search.ParseMode(c.Widget.DefaultMode) == search.ModeUnspecified {
		return fmt.Errorf("widget.defaultMode %q is not a search mode", c.Widget.DefaultMode)
	}

	// Fill messages the config file left out
	c.Widget.Messages = c.Widget.Messages.WithDefaults()

	return nil
}

// Display returns the parsed display mode
func (c *ServerConfig) Display() widget.DisplayMode {
	mode, err := widget.ParseDisplayMode(c.Widget.DisplayMode)
	if err != nil {
		return widget.DisplayMulti
	}
	return mode
}

// DefaultSearchMode returns the mode used when a form omits the search field
func (c *ServerConfig) DefaultSearchMode() search.Mode {
	if c.Widget.DefaultMode == "" {
		return search.ModeExactName
	}
	return search.ParseMode(c.Widget.DefaultMode)
}

// ClientOptions returns the card client options
func (c *ServerConfig) ClientOptions() cards.Options {
	return cards.Options{
		BaseURL:   c.API.BaseURL,
		Path:      c.API.Path,
		UserAgent: c.API.UserAgent,
		Timeout:   c.API.Timeout,
	}
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
