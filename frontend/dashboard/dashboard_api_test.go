package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockpilot/frontend/flights"
	"stockpilot/infrastructure/backend"
)

func newDashboardBackend(t *testing.T, failStats bool) *backend.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /flights", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"flight_number":"UX1020","destination":"París Orly","departure_time":"2026-08-29T11:00:00Z"},
			{"flight_number":"IB3456","destination":"Londres Heathrow","departure_time":"2026-08-29T08:30:00Z"}
		]`))
	})
	mux.HandleFunc("GET /inventory", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"lot_id":"L1","id_individual":"u1","caducidad":"2030-01-01","product_name":"Agua Mineral"},
			{"lot_id":"L1","id_individual":"u2","caducidad":"2030-01-01","product_name":"Sandwich de Pollo"}
		]`))
	})
	mux.HandleFunc("GET /inventory/summary", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_products":2,"total_lots":1,"lots":[]}`))
	})
	mux.HandleFunc("GET /inventory/by-product", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("GET /runs/stats", func(w http.ResponseWriter, r *http.Request) {
		if failStats {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"completed_today":3,"efficiency":92.5,"total_runs_this_week":14,"average_time_per_run":6.2}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return backend.New(srv.URL)
}

func TestLoadSortsFlightsAndFlagsPriority(t *testing.T) {
	api := newDashboardBackend(t, false)
	svc := &flights.Service{API: api}

	ov := Load(context.Background(), svc, api)
	if ov.FlightsErr != "" || ov.InventoryErr != "" {
		t.Fatalf("unexpected section errors: %+v", ov)
	}
	if len(ov.Flights) != 2 || ov.Flights[0].FlightNumber != "IB3456" {
		t.Fatalf("flights not sorted ascending: %+v", ov.Flights)
	}
	priority, ok := ov.PriorityFlight()
	if !ok || priority.FlightNumber != "IB3456" {
		t.Fatalf("priority should be the earliest departure, got %+v", priority)
	}
	if ov.UniqueCount != 2 {
		t.Fatalf("unique products = %d, want 2", ov.UniqueCount)
	}
	if !ov.HaveStats || ov.Stats.CompletedToday != 3 {
		t.Fatalf("run stats not loaded: %+v", ov.Stats)
	}
}

func TestLoadToleratesMissingRunStats(t *testing.T) {
	api := newDashboardBackend(t, true)
	svc := &flights.Service{API: api}

	ov := Load(context.Background(), svc, api)
	if ov.HaveStats {
		t.Fatal("stats section should be absent when the endpoint fails")
	}
	if ov.FlightsErr != "" || len(ov.Flights) != 2 {
		t.Fatalf("stats failure must not affect flights: %+v", ov)
	}
}

func TestLoadReportsFlightFailureIndependently(t *testing.T) {
	api := newDashboardBackend(t, false)
	broken := backend.New("http://127.0.0.1:0")
	svc := &flights.Service{API: broken}

	ov := Load(context.Background(), svc, api)
	if ov.FlightsErr == "" {
		t.Fatal("expected flights section error")
	}
	if ov.InventoryErr != "" || ov.Summary.TotalProducts != 2 {
		t.Fatalf("inventory section should still load: %+v", ov)
	}
}
