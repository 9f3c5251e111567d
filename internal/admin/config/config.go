// Package config loads runtime settings for the admin server and gatectl from
// defaults, an optional TOML file and environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultAddress        = ":8080"
	defaultBasePath       = "/admin"
	defaultCSRFCookieName = "csrftoken"
	defaultCSRFHeaderName = "X-CSRFToken"
	defaultEnvironment    = "Development"
	defaultLogLevel       = "info"
	defaultGateBaseURL    = "http://localhost:8080"
	defaultConfigFile     = "admin.toml"
)

// Config captures runtime configuration organised by concern.
type Config struct {
	Server ServerConfig `toml:"server"`
	CSRF   CSRFConfig   `toml:"csrf"`
	Log    LogConfig    `toml:"log"`
	Gate   GateConfig   `toml:"gate"`
}

// ServerConfig configures the admin HTTP server.
type ServerConfig struct {
	Address     string `toml:"address"`
	BasePath    string `toml:"base_path"`
	Environment string `toml:"environment"`
}

// CSRFConfig names the anti-forgery cookie and header.
type CSRFConfig struct {
	CookieName string `toml:"cookie_name"`
	HeaderName string `toml:"header_name"`
	Secure     bool   `toml:"secure"`
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string `toml:"level"`
}

// GateConfig points gatectl at an admin deployment.
type GateConfig struct {
	BaseURL string `toml:"base_url"`
	// AdminPrefix follows server.base_path unless set explicitly.
	AdminPrefix string `toml:"admin_prefix"`
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// LookupFunc resolves environment variables. os.LookupEnv satisfies it.
type LookupFunc func(string) (string, bool)

// Option customises Load.
type Option func(*loadOptions)

type loadOptions struct {
	lookup      LookupFunc
	searchPaths []string
}

// WithLookup overrides the environment lookup, mainly for tests.
func WithLookup(fn LookupFunc) Option {
	return func(o *loadOptions) {
		if fn != nil {
			o.lookup = fn
		}
	}
}

// WithSearchPaths overrides the directories scanned for admin.toml.
func WithSearchPaths(paths ...string) Option {
	return func(o *loadOptions) {
		o.searchPaths = paths
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:     defaultAddress,
			BasePath:    defaultBasePath,
			Environment: defaultEnvironment,
		},
		CSRF: CSRFConfig{
			CookieName: defaultCSRFCookieName,
			HeaderName: defaultCSRFHeaderName,
		},
		Log: LogConfig{Level: defaultLogLevel},
		Gate: GateConfig{
			BaseURL:     defaultGateBaseURL,
			AdminPrefix: strings.TrimPrefix(defaultBasePath, "/"),
		},
	}
}

// Load resolves configuration. GPARK_CONFIG names an explicit TOML file, which
// must exist; otherwise admin.toml is picked up from the first search path
// containing it.
func Load(opts ...Option) (Config, error) {
	o := loadOptions{lookup: os.LookupEnv, searchPaths: SearchPaths()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Default()
	cfg.Gate.AdminPrefix = ""

	if path, ok := lookupTrimmed(o.lookup, "GPARK_CONFIG"); ok {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	} else if path := findFile(defaultConfigFile, o.searchPaths); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, o.lookup); err != nil {
		return Config{}, err
	}
	if cfg.Gate.AdminPrefix == "" {
		cfg.Gate.AdminPrefix = strings.Trim(cfg.Server.BasePath, "/")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required fields.
func (c Config) Validate() error {
	var fields []string
	if strings.TrimSpace(c.Server.Address) == "" {
		fields = append(fields, "server.address")
	}
	if strings.TrimSpace(c.CSRF.CookieName) == "" {
		fields = append(fields, "csrf.cookie_name")
	}
	if strings.TrimSpace(c.CSRF.HeaderName) == "" {
		fields = append(fields, "csrf.header_name")
	}
	if u, err := url.Parse(strings.TrimSpace(c.Gate.BaseURL)); err != nil || u.Scheme == "" || u.Host == "" {
		fields = append(fields, "gate.base_url")
	}
	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

// SearchPaths lists directories scanned for admin.toml, highest priority first.
func SearchPaths() []string {
	paths := []string{filepath.Join("/etc", "gpark")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "gpark"))
	}
	return append(paths, ".")
}

func findFile(name string, dirs []string) string {
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func applyEnv(cfg *Config, lookup LookupFunc) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"ADMIN_HTTP_ADDR", &cfg.Server.Address},
		{"ADMIN_BASE_PATH", &cfg.Server.BasePath},
		{"ADMIN_ENVIRONMENT", &cfg.Server.Environment},
		{"ADMIN_CSRF_COOKIE", &cfg.CSRF.CookieName},
		{"ADMIN_CSRF_HEADER", &cfg.CSRF.HeaderName},
		{"LOG_LEVEL", &cfg.Log.Level},
		{"GATECTL_BASE_URL", &cfg.Gate.BaseURL},
		{"GATECTL_ADMIN_PREFIX", &cfg.Gate.AdminPrefix},
	}
	for _, s := range strs {
		if v, ok := lookupTrimmed(lookup, s.key); ok {
			*s.dst = v
		}
	}

	if v, ok := lookupTrimmed(lookup, "ADMIN_CSRF_SECURE"); ok {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{fields: []string{"ADMIN_CSRF_SECURE"}}
		}
		cfg.CSRF.Secure = secure
	}
	return nil
}

func lookupTrimmed(lookup LookupFunc, key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
