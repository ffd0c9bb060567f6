package login

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"stockpilot/infrastructure/argon"
	"stockpilot/infrastructure/cache"
	sessioncookie "stockpilot/infrastructure/session"
)

func loginRequest(code string) *http.Request {
	form := url.Values{"access_code": {code}}
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessioncookie.CookieName {
			return c
		}
	}
	return nil
}

func TestLoginIssuesSessionForCorrectCode(t *testing.T) {
	hash, err := argon.HashAccessCode("ops-2026")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	sessions := cache.NewOperatorSessionCache()
	handler := CreateLoginHandler(hash, sessions)

	rec := httptest.NewRecorder()
	handler(rec, loginRequest("ops-2026"))

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/ops" {
		t.Fatalf("expected redirect to /ops, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	cookie := sessionCookieFrom(t, rec)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("no session cookie issued")
	}
	if _, ok := sessions.Find(cookie.Value); !ok {
		t.Fatal("session not stored in cache")
	}
}

func TestLoginRejectsWrongCode(t *testing.T) {
	hash, err := argon.HashAccessCode("ops-2026")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	sessions := cache.NewOperatorSessionCache()
	handler := CreateLoginHandler(hash, sessions)

	rec := httptest.NewRecorder()
	handler(rec, loginRequest("wrong"))

	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?error=") {
		t.Fatalf("expected login redirect with error, got %q", loc)
	}
	if sessionCookieFrom(t, rec) != nil {
		t.Fatal("failed login must not issue a cookie")
	}
}

func TestLogoutDropsSessionAndClearsCookie(t *testing.T) {
	sessions := cache.NewOperatorSessionCache()
	hash, _ := argon.HashAccessCode("ops-2026")
	loginRec := httptest.NewRecorder()
	CreateLoginHandler(hash, sessions)(loginRec, loginRequest("ops-2026"))
	cookie := sessionCookieFrom(t, loginRec)
	if cookie == nil {
		t.Fatal("login did not issue a cookie")
	}

	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.AddCookie(cookie)
	rec := httptest.NewRecorder()
	LogoutHandler(sessions)(rec, r)

	if _, ok := sessions.Find(cookie.Value); ok {
		t.Fatal("session should be removed")
	}
	cleared := sessionCookieFrom(t, rec)
	if cleared == nil || cleared.MaxAge >= 0 {
		t.Fatal("cookie should be cleared with negative MaxAge")
	}
}
