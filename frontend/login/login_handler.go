package login

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"stockpilot/infrastructure/argon"
	"stockpilot/infrastructure/cache"
	sessioncookie "stockpilot/infrastructure/session"
	"stockpilot/models"
)

// CreateLoginHandler checks the operator access code and issues a
// session cookie. There is a single shared principal; the code is
// verified against the argon2id hash configured at startup.
func CreateLoginHandler(accessCodeHash string, sessionCache *cache.OperatorSessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		code := strings.TrimSpace(r.FormValue("access_code"))
		if code == "" {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("access code is required"), http.StatusSeeOther)
			return
		}

		ok, err := argon.VerifyAccessCode(code, accessCodeHash)
		if err != nil || !ok {
			http.Redirect(w, r, "/login?error="+url.QueryEscape("invalid access code"), http.StatusSeeOther)
			return
		}

		session := models.Session{
			ID:        newSessionToken(),
			CreatedAt: time.Now(),
			ExpiresAt: sessioncookie.DefaultExpiry(),
		}
		sessionCache.Add(session)

		http.SetCookie(w, sessioncookie.SessionCookie(session.ID, 12*60*60))
		http.Redirect(w, r, "/ops", http.StatusSeeOther)
	}
}

// LogoutHandler drops the session and clears the cookie.
func LogoutHandler(sessionCache *cache.OperatorSessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessioncookie.CookieName)
		if err == nil && cookie.Value != "" {
			sessionCache.Delete(cookie.Value)
		}
		http.SetCookie(w, sessioncookie.SessionCookie("", -1))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// GetLoginScreenHandler renders the access-code form.
func GetLoginScreenHandler(w http.ResponseWriter, r *http.Request) {
	errorMessage := r.URL.Query().Get("error")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := GetLoginScreen(errorMessage).Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render login screen", http.StatusInternalServerError)
	}
}
