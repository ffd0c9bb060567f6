package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGet_DecodesJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/flights" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"flight_number":"IB123"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	var out []struct {
		FlightNumber string `json:"flight_number"`
	}
	if err := c.Get(context.Background(), "/flights", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out) != 1 || out[0].FlightNumber != "IB123" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestGet_NonSuccessStatusReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no products found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Get(context.Background(), "/flights/XX000", nil)
	if err == nil {
		t.Fatalf("expected error for 404 response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", apiErr.StatusCode)
	}
}

func TestPost_SendsJSONBodyAndContentType(t *testing.T) {
	var gotBody string
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	in := map[string]any{"lot_id": "L1", "cantidad": 3}
	if err := c.Post(context.Background(), "/inventory/lots", in, nil); err != nil {
		t.Fatalf("post: %v", err)
	}
	if gotType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", gotType)
	}
	if gotBody == "" {
		t.Fatalf("expected a request body")
	}
}

func TestDelete_NilOutIgnoresBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Delete(context.Background(), "/inventory/lots/L1", nil); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestTransportFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := New(srv.URL)
	if err := c.Get(context.Background(), "/flights", nil); err == nil {
		t.Fatalf("expected transport error against closed server")
	}
}
