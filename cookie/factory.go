package cookie

import (
	"context"
	"fmt"
	"net/http"
)

// New creates a Store for cfg.Type.
func New(ctx context.Context, cfg *Config) (Store, error) {
	cfg.Init()
	switch cfg.Type {
	case TypeMemory:
		return NewMemoryStore(), nil
	case TypeJar:
		jar, err := NewJar(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return NewJarStore(jar, cfg.Site, cfg)
	case TypeRedis:
		return NewRedisStore(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported cookie store type: %v", cfg.Type)
	}
}

// JarOf returns the cookie jar backing store, if any.
func JarOf(store Store) (http.CookieJar, bool) {
	jarred, ok := store.(interface{ Jar() http.CookieJar })
	if !ok {
		return nil, false
	}
	return jarred.Jar(), true
}
