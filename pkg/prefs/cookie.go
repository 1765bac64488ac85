package prefs

import (
	"net/http"
	"net/url"
	"sync"
	"time"
)

// CookieMaxAge keeps preference cookies for a year.
const CookieMaxAge = 365 * 24 * time.Hour

// CookieStore keeps preferences in cookies, one per key, scoped to the site
// origin. Reads see the request cookies and any value set during the same request.
type CookieStore struct {
	r *http.Request
	w http.ResponseWriter

	mu  sync.Mutex
	set map[string]string
}

// NewCookieStore returns a store for one request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{r: r, w: w, set: make(map[string]string)}
}

func (s *CookieStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	v, ok := s.set[key]
	s.mu.Unlock()
	if ok {
		return v, true, nil
	}

	c, err := s.r.Cookie(key)
	if err == http.ErrNoCookie {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	v, err = url.QueryUnescape(c.Value)
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *CookieStore) Set(key, value string) error {
	s.mu.Lock()
	s.set[key] = value
	s.mu.Unlock()

	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    url.QueryEscape(value),
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
