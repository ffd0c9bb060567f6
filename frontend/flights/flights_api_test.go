package flights

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockpilot/infrastructure/backend"
)

func newFlightsBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /flights", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"flight_number":"IB3456","origin":"MAD","destination":"Londres Heathrow","departure_time":"2026-08-29T08:30:00Z"},
			{"flight_number":"UX1020","origin":"MAD","destination":"París Orly","departure_time":"2026-08-29T11:00:00Z"}
		]`))
	})
	mux.HandleFunc("GET /flights/IB3456", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"flight_number":"IB3456","product_name":"Sandwich de Pollo","category_quantity":40,"weight_kg":0.25},
			{"flight_number":"IB3456","product_name":"Agua Mineral 500ml","category_quantity":80,"weight_kg":0.5}
		]`))
	})
	mux.HandleFunc("POST /run/start/IB3456", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","message":"Run started for flight IB3456"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchFlights_AdaptsWireRecords(t *testing.T) {
	srv := newFlightsBackend(t)
	svc := NewService(backend.New(srv.URL), false)

	list, err := svc.FetchFlights(context.Background())
	if err != nil {
		t.Fatalf("fetch flights: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 flights, got %d", len(list))
	}
	if list[0].FlightNumber != "IB3456" || list[0].Destination != "Londres Heathrow" {
		t.Fatalf("unexpected first flight: %+v", list[0])
	}
	if list[0].DepartureTime.IsZero() {
		t.Fatalf("departure time should parse")
	}
}

func TestFetchFlightDetails_MergesFlightRecord(t *testing.T) {
	srv := newFlightsBackend(t)
	svc := NewService(backend.New(srv.URL), false)

	details, err := svc.FetchFlightDetails(context.Background(), "IB3456")
	if err != nil {
		t.Fatalf("fetch details: %v", err)
	}
	if details.Destination != "Londres Heathrow" {
		t.Fatalf("expected destination from /flights, got %q", details.Destination)
	}
	if len(details.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(details.Products))
	}
	if details.Products[0].Category != "Comida Fría" {
		t.Fatalf("expected inferred category, got %q", details.Products[0].Category)
	}
	if details.TotalUnits() != 120 {
		t.Fatalf("expected 120 total units, got %d", details.TotalUnits())
	}
}

func TestFetchFlights_ErrorPropagatesWithoutFallback(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close()

	svc := NewService(backend.New(srv.URL), false)
	if _, err := svc.FetchFlights(context.Background()); err == nil {
		t.Fatalf("expected error with fallback disabled")
	}
}

func TestFetchFlights_DemoFallbackSubstitutesDataset(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close()

	svc := NewService(backend.New(srv.URL), true)
	list, err := svc.FetchFlights(context.Background())
	if err != nil {
		t.Fatalf("fallback should swallow the fetch error, got %v", err)
	}
	if len(list) == 0 {
		t.Fatalf("expected demo flights")
	}
}

func TestStartRun_OKAndAckError(t *testing.T) {
	srv := newFlightsBackend(t)
	svc := NewService(backend.New(srv.URL), false)

	if err := svc.StartRun(context.Background(), "IB3456"); err != nil {
		t.Fatalf("start run: %v", err)
	}

	errSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","message":"no products found"}`))
	}))
	defer errSrv.Close()

	svc = NewService(backend.New(errSrv.URL), false)
	if err := svc.StartRun(context.Background(), "XX000"); err == nil {
		t.Fatalf("expected ack error to surface")
	}
}
