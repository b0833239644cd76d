package cookie

import (
	"context"
	"net/http"
	"sync"
	"time"
)

type memoryCookie struct {
	value   string
	expires time.Time
}

type memoryStore struct {
	mu      sync.RWMutex
	cookies map[string]*memoryCookie
}

func (m *memoryStore) Get(ctx context.Context, name string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	aCookie, ok := m.cookies[name]
	if !ok {
		return "", false, nil
	}
	if !aCookie.expires.IsZero() && !time.Now().Before(aCookie.expires) {
		return "", false, nil
	}
	return aCookie.value, true, nil
}

func (m *memoryStore) Set(ctx context.Context, cookie *http.Cookie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	expires, removed := expiry(cookie, time.Now())
	if removed {
		delete(m.cookies, cookie.Name)
		return nil
	}
	m.cookies[cookie.Name] = &memoryCookie{value: cookie.Value, expires: expires}
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cookies, name)
	return nil
}

// NewMemoryStore returns a process local Store.
func NewMemoryStore() Store {
	return &memoryStore{cookies: map[string]*memoryCookie{}}
}
