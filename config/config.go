// Package config loads the auth store configuration from YAML and the environment.
package config

import (
	"fmt"
	neturl "net/url"

	"github.com/viant/authstore/cookie"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "AUTHSTORE_"

	defaultSignupPath = "/auth/signup"
	defaultTokenField = "token"
)

// Config defines the backend endpoint and the cookie the session is persisted into.
type Config struct {
	BaseURL    string            `yaml:"baseURL" json:"baseURL" env:"BASE_URL"`
	SignupPath string            `yaml:"signupPath,omitempty" json:"signupPath,omitempty" env:"SIGNUP_PATH"`
	TokenField string            `yaml:"tokenField,omitempty" json:"tokenField,omitempty" env:"TOKEN_FIELD"`
	Headers    map[string]string `yaml:"headers,omitempty" json:"headers,omitempty" env:"HEADERS"`
	Cookie     cookie.Config     `yaml:"cookie,omitempty" json:"cookie,omitempty" envPrefix:"COOKIE_"`
}

// Init applies defaults; the cookie is scoped to the API base URL unless configured.
func (c *Config) Init() {
	if c.SignupPath == "" {
		c.SignupPath = defaultSignupPath
	}
	if c.TokenField == "" {
		c.TokenField = defaultTokenField
	}
	if c.Cookie.Site == "" {
		c.Cookie.Site = c.BaseURL
	}
	c.Cookie.Init()
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("baseURL was empty")
	}
	URL, err := neturl.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid baseURL %v: %w", c.BaseURL, err)
	}
	if URL.Scheme != "http" && URL.Scheme != "https" {
		return fmt.Errorf("invalid baseURL %v: unsupported scheme %q", c.BaseURL, URL.Scheme)
	}
	if URL.Host == "" {
		return fmt.Errorf("invalid baseURL %v: missing host", c.BaseURL)
	}
	return nil
}
