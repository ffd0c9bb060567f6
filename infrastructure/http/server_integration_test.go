package http

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"stockpilot/frontend/flights"
	"stockpilot/frontend/pick"
	"stockpilot/infrastructure/argon"
	"stockpilot/infrastructure/backend"
	"stockpilot/infrastructure/cache"
)

func setupIntegrationServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	// Minimal stand-in for the catering backend.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /flights", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"flight_number":"IB3456","destination":"Londres Heathrow","departure_time":"2026-08-29T08:30:00Z"}]`))
	})
	mux.HandleFunc("GET /inventory", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("GET /inventory/summary", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_products":0,"total_lots":0,"lots":[]}`))
	})
	mux.HandleFunc("GET /inventory/by-product", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("GET /runs/stats", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})
	backendSrv := httptest.NewServer(mux)
	t.Cleanup(backendSrv.Close)

	api := backend.New(backendSrv.URL)
	flightSvc := flights.NewService(api, false)
	tracker := pick.NewTracker(api)
	sessions := cache.NewOperatorSessionCache()
	hash, err := argon.HashAccessCode("ops-2026")
	if err != nil {
		t.Fatalf("hash access code: %v", err)
	}

	s := NewServer("127.0.0.1:0", api, flightSvc, tracker, sessions, hash)
	ts := httptest.NewServer(s.router)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return ts, client
}

func csrfTokenFor(t *testing.T, ts *httptest.Server, client *http.Client) string {
	t.Helper()
	resp, err := client.Get(ts.URL + "/login")
	if err != nil {
		t.Fatalf("prime csrf: %v", err)
	}
	resp.Body.Close()
	u, _ := url.Parse(ts.URL)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == "X-CSRF-Token" {
			return c.Value
		}
	}
	t.Fatal("no csrf cookie issued")
	return ""
}

func doLogin(t *testing.T, ts *httptest.Server, client *http.Client, code string) *http.Response {
	t.Helper()
	token := csrfTokenFor(t, ts, client)
	form := url.Values{"access_code": {code}, "_csrf": {token}}
	resp, err := client.PostForm(ts.URL+"/login", form)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	resp.Body.Close()
	return resp
}

func TestUnauthenticatedOpsRedirectsToLogin(t *testing.T) {
	ts, client := setupIntegrationServer(t)

	resp, err := client.Get(ts.URL + "/ops")
	if err != nil {
		t.Fatalf("get /ops: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestLoginThenDashboard(t *testing.T) {
	ts, client := setupIntegrationServer(t)

	resp := doLogin(t, ts, client, "ops-2026")
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/ops" {
		t.Fatalf("login should redirect to /ops, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}

	page, err := client.Get(ts.URL + "/ops")
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	defer page.Body.Close()
	if page.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status %d", page.StatusCode)
	}
	body, _ := io.ReadAll(page.Body)
	if !strings.Contains(string(body), "IB3456") {
		t.Fatal("dashboard should list the pending flight")
	}
}

func TestPostWithoutCSRFTokenIsRejected(t *testing.T) {
	ts, client := setupIntegrationServer(t)
	doLogin(t, ts, client, "ops-2026")

	resp, err := client.PostForm(ts.URL+"/logout", url.Values{})
	if err != nil {
		t.Fatalf("post logout: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without csrf token, got %d", resp.StatusCode)
	}
}

func TestWrongAccessCodeStaysOnLogin(t *testing.T) {
	ts, client := setupIntegrationServer(t)

	resp := doLogin(t, ts, client, "nope")
	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, "/login?error=") {
		t.Fatalf("expected login error redirect, got %q", loc)
	}

	after, err := client.Get(ts.URL + "/ops")
	if err != nil {
		t.Fatalf("get /ops: %v", err)
	}
	after.Body.Close()
	if after.StatusCode != http.StatusSeeOther {
		t.Fatal("failed login must not grant access")
	}
}

func TestHealthAndMetricsAreOpen(t *testing.T) {
	ts, client := setupIntegrationServer(t)

	for _, path := range []string{"/health", "/metrics"} {
		resp, err := client.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status %d", path, resp.StatusCode)
		}
	}
}
