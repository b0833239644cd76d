package cookie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	neturl "net/url"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs"
)

// Jar is an http.CookieJar that persists cookies as a JSON snapshot at an afs URL
// and rehydrates them on construction. An empty URL keeps the jar in memory.
type Jar struct {
	mu      sync.RWMutex
	inner   *cookiejar.Jar
	fs      afs.Service
	url     string
	index   map[string]*persistedCookie
	lastErr error
}

type persistedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain"`
	HostOnly bool      `json:"hostOnly,omitempty"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
}

func (p *persistedCookie) key() string {
	return p.Domain + "|" + p.Path + "|" + p.Name
}

func (p *persistedCookie) expired(now time.Time) bool {
	return !p.Expires.IsZero() && !now.Before(p.Expires)
}

type cookieSnapshot struct {
	Cookies []*persistedCookie `json:"cookies"`
}

// NewJar creates a jar persisted at URL.
func NewJar(ctx context.Context, URL string) (*Jar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	j := &Jar{inner: inner, fs: afs.New(), url: URL, index: map[string]*persistedCookie{}}
	if err = j.load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load cookie jar %v: %w", URL, err)
	}
	return j, nil
}

// URL returns the snapshot location.
func (j *Jar) URL() string {
	return j.url
}

// Err returns the last persistence error raised by SetCookies.
func (j *Jar) Err() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.lastErr
}

func (j *Jar) Cookies(u *neturl.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

// SetCookies implements http.CookieJar; persistence failures are kept in Err.
func (j *Jar) SetCookies(u *neturl.URL, cookies []*http.Cookie) {
	_ = j.setCookies(context.Background(), u, cookies)
}

func (j *Jar) setCookies(ctx context.Context, u *neturl.URL, cookies []*http.Cookie) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inner.SetCookies(u, cookies)
	now := time.Now()
	for _, c := range cookies {
		pc := newPersistedCookie(u, c)
		expires, removed := expiry(c, now)
		if removed {
			delete(j.index, pc.key())
			continue
		}
		pc.Expires = expires
		j.index[pc.key()] = pc
	}
	j.lastErr = j.persist(ctx)
	return j.lastErr
}

func newPersistedCookie(u *neturl.URL, c *http.Cookie) *persistedCookie {
	domain := strings.TrimPrefix(strings.TrimSpace(c.Domain), ".")
	hostOnly := domain == ""
	if hostOnly {
		domain = u.Host
		if host, _, err := net.SplitHostPort(domain); err == nil && host != "" {
			domain = host
		}
	}
	path := c.Path
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return &persistedCookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   strings.ToLower(domain),
		HostOnly: hostOnly,
		Path:     path,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
}

func (j *Jar) persist(ctx context.Context) error {
	if j.url == "" {
		return nil
	}
	snapshot := cookieSnapshot{Cookies: make([]*persistedCookie, 0, len(j.index))}
	now := time.Now()
	for key, pc := range j.index {
		if pc.expired(now) {
			delete(j.index, key)
			continue
		}
		snapshot.Cookies = append(snapshot.Cookies, pc)
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	return j.fs.Upload(ctx, j.url, 0o600, bytes.NewReader(data))
}

func (j *Jar) load(ctx context.Context) error {
	if j.url == "" {
		return nil
	}
	exists, err := j.fs.Exists(ctx, j.url)
	if err != nil || !exists {
		return err
	}
	data, err := j.fs.DownloadWithURL(ctx, j.url)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var snapshot cookieSnapshot
	if err = json.Unmarshal(data, &snapshot); err != nil {
		return err
	}
	now := time.Now()
	for _, pc := range snapshot.Cookies {
		if pc == nil || pc.expired(now) {
			continue
		}
		scheme := "http"
		if pc.Secure {
			scheme = "https"
		}
		u := &neturl.URL{Scheme: scheme, Host: pc.Domain, Path: pc.Path}
		aCookie := &http.Cookie{
			Name:     pc.Name,
			Value:    pc.Value,
			Path:     pc.Path,
			Expires:  pc.Expires,
			Secure:   pc.Secure,
			HttpOnly: pc.HttpOnly,
		}
		if !pc.HostOnly {
			aCookie.Domain = pc.Domain
		}
		j.inner.SetCookies(u, []*http.Cookie{aCookie})
		j.index[pc.key()] = pc
	}
	return nil
}

type jarStore struct {
	jar  *Jar
	site *neturl.URL
	cfg  *Config
}

// Jar returns the underlying cookie jar, so it can be attached to an http.Client.
func (s *jarStore) Jar() http.CookieJar {
	return s.jar
}

func (s *jarStore) Get(ctx context.Context, name string) (string, bool, error) {
	for _, c := range s.jar.Cookies(s.site) {
		if c.Name == name {
			return c.Value, true, nil
		}
	}
	return "", false, nil
}

func (s *jarStore) Set(ctx context.Context, cookie *http.Cookie) error {
	return s.jar.setCookies(ctx, s.site, []*http.Cookie{cookie})
}

func (s *jarStore) Delete(ctx context.Context, name string) error {
	removal := s.cfg.Cookie("")
	removal.Name = name
	removal.MaxAge = -1
	return s.jar.setCookies(ctx, s.site, []*http.Cookie{removal})
}

// NewJarStore returns a Store reading and writing cookies of jar scoped to site.
func NewJarStore(jar *Jar, site string, cfg *Config) (Store, error) {
	if site == "" {
		return nil, fmt.Errorf("cookie site was empty")
	}
	siteURL, err := neturl.Parse(site)
	if err != nil {
		return nil, fmt.Errorf("invalid cookie site %v: %w", site, err)
	}
	if siteURL.Host == "" {
		return nil, fmt.Errorf("invalid cookie site %v: missing host", site)
	}
	if cfg == nil {
		cfg = &Config{}
	}
	return &jarStore{jar: jar, site: siteURL, cfg: cfg}, nil
}
