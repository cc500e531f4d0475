package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is the data-mart API the dashboard reads from
const DefaultAPIBaseURL = "https://data-mart-dy4i.onrender.com/api/"

// MinViewTTL is the shortest accepted idle view lifetime
const MinViewTTL = time.Second

// Config 应用配置
type Config struct {
	Port           string
	APIBaseURL     string
	DBPath         string // optional SQLite catalog store, empty uses the builtin catalog
	RequestTimeout time.Duration
	ViewTTL        time.Duration // idle views are evicted after this long
	RateLimit      int
	RateWindow     time.Duration
	LogLevel       string
}

// Options are the command-line overrides, applied on top of the environment
type Options struct {
	Port           string        `short:"p" long:"port" description:"listen address, e.g. :8080"`
	APIBaseURL     string        `short:"u" long:"api-base-url" description:"data-mart API base URL"`
	DBPath         string        `long:"db-path" description:"SQLite file holding the indicator catalog"`
	RequestTimeout time.Duration `long:"request-timeout" description:"upstream request timeout"`
	ViewTTL        time.Duration `long:"view-ttl" description:"idle view lifetime"`
	LogLevel       string        `short:"l" long:"log-level" description:"debug, info, warn or error"`
}

// Load 加载配置. A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}

	timeout, err := durationEnv("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	viewTTL, err := durationEnv("VIEW_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	rateWindow, err := durationEnv("RATE_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	rateLimit, err := intEnv("RATE_LIMIT", 120)
	if err != nil {
		return nil, err
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	cfg := &Config{
		Port:           listenAddr(port),
		APIBaseURL:     baseURL,
		DBPath:         os.Getenv("DB_PATH"),
		RequestTimeout: timeout,
		ViewTTL:        viewTTL,
		RateLimit:      rateLimit,
		RateWindow:     rateWindow,
		LogLevel:       logLevel,
	}
	return cfg, cfg.Validate()
}

// ParseFlags parses args and applies the flags that were set to cfg
func ParseFlags(cfg *Config, args []string) error {
	var opt Options
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = "indicators-dashboard"

	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	if opt.Port != "" {
		cfg.Port = listenAddr(opt.Port)
	}
	if opt.APIBaseURL != "" {
		cfg.APIBaseURL = opt.APIBaseURL
	}
	if opt.DBPath != "" {
		cfg.DBPath = opt.DBPath
	}
	if opt.RequestTimeout > 0 {
		cfg.RequestTimeout = opt.RequestTimeout
	}
	if opt.ViewTTL > 0 {
		cfg.ViewTTL = opt.ViewTTL
	}
	if opt.LogLevel != "" {
		cfg.LogLevel = opt.LogLevel
	}
	return cfg.Validate()
}

// IsHelp reports whether err comes from -h/--help
func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}

// Validate checks the settings that would otherwise fail at first use
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API base URL %q", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.ViewTTL < MinViewTTL {
		return fmt.Errorf("view TTL must be at least %s, got %s", MinViewTTL, c.ViewTTL)
	}
	if c.RateLimit <= 0 || c.RateWindow <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d per %s", c.RateLimit, c.RateWindow)
	}
	return nil
}

// listenAddr turns a bare port such as 8080 into :8080 and keeps host:port as is
func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
