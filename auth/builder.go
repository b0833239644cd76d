package auth

import (
	"context"
	"log"

	"github.com/viant/authstore/api"
	"github.com/viant/authstore/config"
	"github.com/viant/authstore/cookie"
)

// NewFromConfig builds the cookie store and API client described by cfg and creates a Store.
// A jar backed cookie store is attached to the API client so the auth cookie is sent with requests.
// A non nil logger is shared by the store and the API client.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *log.Logger, options ...Option) (*Store, error) {
	cfg.Init()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cookies, err := cookie.New(ctx, &cfg.Cookie)
	if err != nil {
		return nil, err
	}
	var clientOptions []api.Option
	if jar, ok := cookie.JarOf(cookies); ok {
		clientOptions = append(clientOptions, api.WithCookieJar(jar))
	}
	if logger != nil {
		clientOptions = append(clientOptions, api.WithLogger(logger))
	}
	for key, value := range cfg.Headers {
		clientOptions = append(clientOptions, api.WithHeader(key, value))
	}
	storeOptions := []Option{
		WithClient(api.New(cfg.BaseURL, clientOptions...)),
		WithCookieStore(cookies),
		WithCookieConfig(&cfg.Cookie),
		WithSignupPath(cfg.SignupPath),
		WithTokenField(cfg.TokenField),
	}
	if logger != nil {
		storeOptions = append(storeOptions, WithLogger(logger))
	}
	return New(ctx, append(storeOptions, options...)...)
}
