package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/viant/authstore/auth"
	"github.com/viant/authstore/auth/mock"
	"github.com/viant/authstore/config"
	"github.com/viant/authstore/cookie"
)

// Run executes the command line with args
func Run(args []string) error {
	return run(context.Background(), args, os.Stdout)
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	logger := log.New(io.Discard, "", 0)
	if options.Verbose {
		logger = log.New(os.Stderr, "[authstore] ", log.LstdFlags)
	}
	if parser.Active != nil && parser.Active.Name == "mock" {
		return serveMock(&options.Mock, logger)
	}

	store, err := newStore(ctx, options, logger)
	if err != nil {
		return err
	}
	switch parser.Active.Name {
	case "signup":
		body, err := options.Signup.body()
		if err != nil {
			return err
		}
		aSession, err := store.Signup(ctx, body)
		if err != nil {
			return err
		}
		if aSession == nil {
			_, err = fmt.Fprintln(stdout, "no session")
			return err
		}
		return printJSON(stdout, aSession.Payload())
	case "show":
		aSession := store.Session()
		if aSession == nil {
			_, err = fmt.Fprintln(stdout, "no session")
			return err
		}
		return printJSON(stdout, aSession.Payload())
	case "token":
		token, err := store.Token()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, token.AccessToken)
		return err
	case "clear":
		return store.Clear(ctx)
	}
	return fmt.Errorf("unsupported command: %v", parser.Active.Name)
}

func newStore(ctx context.Context, options *Options, logger *log.Logger) (*auth.Store, error) {
	cfg, err := loadConfig(ctx, options)
	if err != nil {
		return nil, err
	}
	return auth.NewFromConfig(ctx, cfg, logger)
}

// loadConfig reads the configuration and applies the command line overrides.
func loadConfig(ctx context.Context, options *Options) (*config.Config, error) {
	cfg, err := config.Load(ctx, options.Config)
	if err != nil {
		return nil, err
	}
	if options.BaseURL != "" {
		// an explicitly configured cookie site is kept
		if cfg.Cookie.Site == "" || cfg.Cookie.Site == cfg.BaseURL {
			cfg.Cookie.Site = options.BaseURL
		}
		cfg.BaseURL = options.BaseURL
	}
	if options.CookieJar != "" {
		cfg.Cookie.Type = cookie.TypeJar
		cfg.Cookie.URL = options.CookieJar
	}
	if cfg.Cookie.Type == cookie.TypeMemory && options.Config == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.Cookie.Type = cookie.TypeJar
		cfg.Cookie.URL = filepath.Join(home, ".authstore", "cookies.json")
	}
	return cfg, nil
}

func (o *SignupOptions) body() (any, error) {
	if o.Data != "" {
		if !json.Valid([]byte(o.Data)) {
			return nil, fmt.Errorf("invalid --data JSON")
		}
		return json.RawMessage(o.Data), nil
	}
	body := map[string]string{}
	if o.Email != "" {
		body["email"] = o.Email
	}
	if o.Password != "" {
		body["password"] = o.Password
	}
	if o.Name != "" {
		body["name"] = o.Name
	}
	return body, nil
}

func printJSON(w io.Writer, payload json.RawMessage) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func serveMock(options *MockOptions, logger *log.Logger) error {
	var mockOptions []mock.Option
	if options.Key != "" {
		mockOptions = append(mockOptions, mock.WithSigningKey([]byte(options.Key)))
	}
	service, err := mock.New(mockOptions...)
	if err != nil {
		return err
	}
	log.Printf("mock signup backend listening on %v", options.Addr)
	logger.Printf("POST http://%v%v", options.Addr, auth.DefaultSignupPath)
	return http.ListenAndServe(options.Addr, service.Handler())
}
