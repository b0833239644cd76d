package cookie

import (
	"context"
	"net/http"
	"time"
)

const (
	// DefaultName is the cookie holding the encoded auth session.
	DefaultName = "auth"
	// DefaultPath is the cookie path used when none is configured.
	DefaultPath = "/"

	TypeMemory = "memory"
	TypeJar    = "jar"
	TypeRedis  = "redis"
)

// Store reads and writes named cookies.
type Store interface {
	// Get returns the cookie value and whether it was present.
	Get(ctx context.Context, name string) (string, bool, error)
	// Set writes the cookie; a negative MaxAge removes it.
	Set(ctx context.Context, cookie *http.Cookie) error
	// Delete removes the named cookie.
	Delete(ctx context.Context, name string) error
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr,omitempty" json:"addr,omitempty" env:"ADDR"`
	Password string `yaml:"password,omitempty" json:"password,omitempty" env:"PASSWORD"`
	DB       int    `yaml:"db,omitempty" json:"db,omitempty" env:"DB"`
	Prefix   string `yaml:"prefix,omitempty" json:"prefix,omitempty" env:"PREFIX"`
}

// Config defines the cookie backend and the attributes of written cookies.
// Unset attributes fall back to the backend defaults: no expiry, no domain, no security flags.
type Config struct {
	Type     string      `yaml:"type,omitempty" json:"type,omitempty" env:"TYPE"`
	URL      string      `yaml:"url,omitempty" json:"url,omitempty" env:"URL"`
	Site     string      `yaml:"site,omitempty" json:"site,omitempty" env:"SITE"`
	Name     string      `yaml:"name,omitempty" json:"name,omitempty" env:"NAME"`
	Path     string      `yaml:"path,omitempty" json:"path,omitempty" env:"PATH"`
	Domain   string      `yaml:"domain,omitempty" json:"domain,omitempty" env:"DOMAIN"`
	MaxAge   int         `yaml:"maxAge,omitempty" json:"maxAge,omitempty" env:"MAX_AGE"`
	Secure   bool        `yaml:"secure,omitempty" json:"secure,omitempty" env:"SECURE"`
	HTTPOnly bool        `yaml:"httpOnly,omitempty" json:"httpOnly,omitempty" env:"HTTP_ONLY"`
	Redis    RedisConfig `yaml:"redis,omitempty" json:"redis,omitempty" envPrefix:"REDIS_"`
}

// Init applies defaults.
func (c *Config) Init() {
	if c.Type == "" {
		c.Type = TypeMemory
		if c.URL != "" {
			c.Type = TypeJar
		}
	}
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "authstore:"
	}
}

// Cookie returns a cookie carrying value with the configured attributes.
func (c *Config) Cookie(value string) *http.Cookie {
	name := c.Name
	if name == "" {
		name = DefaultName
	}
	path := c.Path
	if path == "" {
		path = DefaultPath
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   c.Domain,
		MaxAge:   c.MaxAge,
		Secure:   c.Secure,
		HttpOnly: c.HTTPOnly,
	}
}

// expiry resolves the absolute expiry of a cookie; zero means session cookie,
// removed reports a cookie that deletes the slot.
func expiry(cookie *http.Cookie, now time.Time) (expires time.Time, removed bool) {
	switch {
	case cookie.MaxAge < 0:
		return time.Time{}, true
	case cookie.MaxAge > 0:
		return now.Add(time.Duration(cookie.MaxAge) * time.Second), false
	case !cookie.Expires.IsZero():
		return cookie.Expires, !now.Before(cookie.Expires)
	}
	return time.Time{}, false
}
