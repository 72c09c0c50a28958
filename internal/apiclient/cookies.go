package apiclient

import (
	"net/http"
	"strings"
)

// CookiePrefix namespaces relayed backend cookies in the browser.
const CookiePrefix = "api_"

// CookiesFromRequest returns the backend cookies the browser holds for us,
// with the relay prefix stripped.
func CookiesFromRequest(r *http.Request) []*http.Cookie {
	var out []*http.Cookie
	for _, ck := range r.Cookies() {
		if !strings.HasPrefix(ck.Name, CookiePrefix) || len(ck.Name) == len(CookiePrefix) {
			continue
		}
		out = append(out, &http.Cookie{Name: strings.TrimPrefix(ck.Name, CookiePrefix), Value: ck.Value})
	}
	return out
}

// Relay writes the cookie changes made by the backend during this session to w.
// New or changed cookies are set, and cookies the backend cleared are expired.
func (s *Session) Relay(w http.ResponseWriter, secure bool) {
	current := make(map[string]string)
	for _, ck := range s.Cookies() {
		current[ck.Name] = ck.Value
	}
	for name, value := range current {
		if prev, ok := s.seeded[name]; ok && prev == value {
			continue
		}
		http.SetCookie(w, &http.Cookie{
			Name:     CookiePrefix + name,
			Value:    value,
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	for name := range s.seeded {
		if _, ok := current[name]; ok {
			continue
		}
		http.SetCookie(w, &http.Cookie{
			Name:     CookiePrefix + name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
