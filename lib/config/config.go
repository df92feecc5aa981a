package config

import (
	"fmt"
	"minecomply/lib/constants"
	"minecomply/lib/util"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the client configuration read from the environment
type Config struct {
	APIBaseURL          string        `env:"MINECOMPLY_API_BASE_URL"`
	DevHostURI          string        `env:"MINECOMPLY_DEV_HOST_URI"`
	ExpoDevHostURI      string        `env:"EXPO_DEV_SERVER_HOST_URI"`
	UseSSM              bool          `env:"MINECOMPLY_USE_SSM"           envDefault:"false"`
	CognitoClientID     string        `env:"MINECOMPLY_COGNITO_CLIENT_ID"`
	CognitoClientSecret string        `env:"MINECOMPLY_COGNITO_CLIENT_SECRET"`
	Region              string        `env:"AWS_REGION"                   envDefault:"us-east-2"`
	LogLevel            string        `env:"LOG_LEVEL"                    envDefault:"info"`
	IsLocal             bool          `env:"IS_LOCAL"                     envDefault:"false"`
	SessionFile         string        `env:"MINECOMPLY_SESSION_FILE"`
	HTTPTimeout         time.Duration `env:"MINECOMPLY_HTTP_TIMEOUT"      envDefault:"30s"`
	OTelEndpoint        string        `env:"MINECOMPLY_OTEL_ENDPOINT"`
}

// Load parses Config from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	return &cfg, nil
}

// DevHostURIs returns the dev server host candidates in lookup order
func (cfg *Config) DevHostURIs() []string {
	return []string{cfg.DevHostURI, cfg.ExpoDevHostURI}
}

// ResolveAPIBaseURL picks the API origin: the explicit setting, then the SSM
// parameter, then http://<dev host>:3000, then http://localhost:3000.
// ssmParams may be nil when SSM is disabled.
func ResolveAPIBaseURL(cfg *Config, ssmParams map[string]string) string {
	if explicit := util.SanitizeBaseURL(cfg.APIBaseURL); explicit != "" {
		return explicit
	}
	if fromSSM := util.SanitizeBaseURL(ssmParams[constants.API_BASE_URL]); fromSSM != "" {
		return fromSSM
	}
	for _, candidate := range cfg.DevHostURIs() {
		if host := parseHost(candidate); host != "" {
			return "http://" + host + ":" + constants.DEV_SERVER_PORT
		}
	}
	return constants.DEFAULT_API_BASE_URL
}

// ResolveCognitoClientID prefers the environment over SSM
func ResolveCognitoClientID(cfg *Config, ssmParams map[string]string) string {
	return util.FirstNonEmpty(strings.TrimSpace(cfg.CognitoClientID), strings.TrimSpace(ssmParams[constants.COGNITO_CLIENT_ID]))
}

// parseHost extracts the hostname from a URI or a bare host:port
func parseHost(candidate string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ""
	}
	if !strings.Contains(candidate, "://") {
		candidate = "http://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
