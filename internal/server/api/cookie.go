package api

import (
	"net/http"
	"time"
)

// CookieName is the canonical token cookie name.
const CookieName = "jwt"

// readToken returns the token cookie value, or "" when absent.
func readToken(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

// writeToken sets the token cookie. HttpOnly is unconditional: the token
// must never be readable from JavaScript. The Secure flag and a
// cross-subdomain Domain attribute are deployment concerns handled at the
// proxy, not here.
func writeToken(w http.ResponseWriter, token string, validity time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(validity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearToken expires the token cookie.
func clearToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
