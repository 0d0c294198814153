package httpx

import (
	"net/http"
	"sync"
)

// CookieMode selects the SameSite policy of cookies set by the server.
type CookieMode string

const (
	// CookieModeSameSite sets SameSite=Strict.
	CookieModeSameSite CookieMode = "sameSite"
	// CookieModeCrossSite sets SameSite=None, which browsers only accept with Secure.
	CookieModeCrossSite CookieMode = "crossSite"
)

// Valid reports whether m is a known mode.
func (m CookieMode) Valid() bool {
	return m == CookieModeSameSite || m == CookieModeCrossSite
}

// RequestCookies reads cookies from one request and writes HTTP-only
// session cookies onto its response.
type RequestCookies struct {
	w    http.ResponseWriter
	r    *http.Request
	mode CookieMode

	mu  sync.Mutex
	set map[string]string
}

// NewRequestCookies binds a cookie store to a single HTTP exchange.
func NewRequestCookies(w http.ResponseWriter, r *http.Request, mode CookieMode) *RequestCookies {
	if !mode.Valid() {
		mode = CookieModeSameSite
	}
	return &RequestCookies{w: w, r: r, mode: mode, set: map[string]string{}}
}

// Cookie returns the value the client sent. Cookies set during this request
// are not visible here.
func (c *RequestCookies) Cookie(name string) (string, bool) {
	ck, err := c.r.Cookie(name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

// SetCookie writes an HTTP-only session cookie. Setting the same name twice
// in one exchange keeps only the last value.
func (c *RequestCookies) SetCookie(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if c.mode == CookieModeCrossSite {
		ck.SameSite = http.SameSiteNoneMode
		ck.Secure = true
	}

	if _, dup := c.set[name]; dup {
		c.dropSetCookie(name)
	}
	c.set[name] = value
	http.SetCookie(c.w, ck)
}

// Written returns the cookies set so far in this exchange.
func (c *RequestCookies) Written() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]string, len(c.set))
	for k, v := range c.set {
		out[k] = v
	}
	return out
}

func (c *RequestCookies) dropSetCookie(name string) {
	h := c.w.Header()
	var kept []string
	for _, line := range h.Values("Set-Cookie") {
		if parsed, err := http.ParseSetCookie(line); err == nil && parsed.Name == name {
			continue
		}
		kept = append(kept, line)
	}
	h.Del("Set-Cookie")
	for _, line := range kept {
		h.Add("Set-Cookie", line)
	}
}
