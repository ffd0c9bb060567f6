package session

import (
	"net/http"
	"time"
)

const CookieName = "X-Operator-Session"

func SessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

// DefaultExpiry is one operator shift.
func DefaultExpiry() time.Time {
	return time.Now().Add(12 * time.Hour)
}
