package pick

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"stockpilot/frontend/flights"
	"stockpilot/infrastructure/backend"
	"stockpilot/models"
)

func TestReconcileUsesSensorWhenPresent(t *testing.T) {
	status := models.RunStatus{
		Sensors: map[string]models.Sensor{
			"Agua": {Color: "amber", UnitsRemaining: 5, Active: true},
		},
		Basket: map[string]int{"Agua": 2},
	}
	got := Reconcile([]string{"Agua"}, status, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 status, got %d", len(got))
	}
	if got[0].Color != "amber" || got[0].UnitsRemaining != 5 {
		t.Fatalf("sensor data not applied: %+v", got[0])
	}
	if got[0].NeedsMore != 3 {
		t.Fatalf("needs more = %d, want 3", got[0].NeedsMore)
	}
}

func TestReconcileFallsBackToInventoryCount(t *testing.T) {
	inv := []models.InventoryItem{
		{ProductName: " agua ", IndividualID: "a1"},
		{ProductName: "AGUA", IndividualID: "a2"},
		{ProductName: "Sandwich", IndividualID: "s1"},
	}
	got := Reconcile([]string{"Agua", "Café"}, models.RunStatus{}, inv)

	if got[0].UnitsRemaining != 2 || got[0].Color != "green" {
		t.Fatalf("fallback count wrong: %+v", got[0])
	}
	if len(got[0].InventoryItems) != 2 {
		t.Fatalf("matched %d items, want 2", len(got[0].InventoryItems))
	}
	if got[1].UnitsRemaining != 0 || got[1].Color != "white" {
		t.Fatalf("empty fallback wrong: %+v", got[1])
	}
}

func TestReconcileKeepsManifestOrder(t *testing.T) {
	manifest := []string{"C", "A", "B"}
	got := Reconcile(manifest, models.RunStatus{}, nil)
	for i, name := range manifest {
		if got[i].ProductName != name {
			t.Fatalf("position %d: got %s, want %s", i, got[i].ProductName, name)
		}
	}
}

type runBackend struct {
	fail      atomic.Bool
	statusHit atomic.Int64
}

func newRunBackend(t *testing.T) (*runBackend, *backend.Client) {
	t.Helper()
	rb := &runBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /run/status", func(w http.ResponseWriter, r *http.Request) {
		rb.statusHit.Add(1)
		if rb.fail.Load() {
			http.Error(w, "sensor controller offline", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(models.RunStatus{
			Sensors: map[string]models.Sensor{"Agua": {Color: "green", UnitsRemaining: 4, Active: true}},
			Basket:  map[string]int{"Agua": 1},
		})
	})
	mux.HandleFunc("GET /inventory", func(w http.ResponseWriter, r *http.Request) {
		if rb.fail.Load() {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode([]models.InventoryItem{})
	})
	mux.HandleFunc("POST /run/take_one/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/run/take_one/")
		if name == "Agua" {
			json.NewEncoder(w).Encode(models.Ack{Status: "ok"})
			return
		}
		json.NewEncoder(w).Encode(models.Ack{Status: "error", Message: "unknown product"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return rb, backend.New(srv.URL)
}

func testTracker(api *backend.Client, names []string) *Tracker {
	tr := NewTracker(api)
	tr.generation = 1
	tr.active = true
	tr.manifest = names
	tr.flight = flights.FlightDetails{
		FlightNumber: "IB3456",
		Products:     []flights.Product{{ProductName: "Agua", CategoryQuantity: 4}},
	}
	return tr
}

func TestFailedCycleKeepsPreviousSnapshot(t *testing.T) {
	rb, api := newRunBackend(t)
	tr := testTracker(api, []string{"Agua"})

	tr.refresh(1, tr.manifest)
	snap := tr.CurrentSnapshot()
	if !snap.Loaded || snap.Err != "" || len(snap.Products) != 1 {
		t.Fatalf("unexpected snapshot after first cycle: %+v", snap)
	}

	rb.fail.Store(true)
	tr.refresh(1, tr.manifest)
	snap = tr.CurrentSnapshot()
	if snap.Err == "" {
		t.Fatal("expected sticky error after failed cycle")
	}
	if len(snap.Products) != 1 || snap.Products[0].UnitsRemaining != 4 {
		t.Fatalf("failed cycle should keep previous statuses: %+v", snap.Products)
	}

	rb.fail.Store(false)
	tr.refresh(1, tr.manifest)
	if snap = tr.CurrentSnapshot(); snap.Err != "" {
		t.Fatalf("successful cycle should clear error, got %q", snap.Err)
	}
}

func TestStaleGenerationIsDiscarded(t *testing.T) {
	_, api := newRunBackend(t)
	tr := testTracker(api, []string{"Agua"})

	tr.generation = 2 // the run was restarted while a cycle was in flight
	tr.refresh(1, []string{"Agua"})
	if snap := tr.CurrentSnapshot(); snap.Loaded || len(snap.Products) != 0 {
		t.Fatalf("stale cycle must not publish: %+v", snap)
	}
}

func TestTakeOneRejectsErrorAckWithoutRefresh(t *testing.T) {
	rb, api := newRunBackend(t)
	tr := testTracker(api, []string{"Agua"})

	before := rb.statusHit.Load()
	if err := tr.TakeOne(context.Background(), "Nada"); err == nil {
		t.Fatal("expected ack error")
	}
	if rb.statusHit.Load() != before {
		t.Fatal("failed take must not trigger a refresh cycle")
	}

	if err := tr.TakeOne(context.Background(), "Agua"); err != nil {
		t.Fatalf("take one: %v", err)
	}
	if rb.statusHit.Load() != before+1 {
		t.Fatal("successful take should refresh immediately")
	}
}

func TestActiveProductIsFirstIncomplete(t *testing.T) {
	snap := Snapshot{
		Flight: flights.FlightDetails{Products: []flights.Product{
			{ProductName: "Agua", CategoryQuantity: 2},
			{ProductName: "Sandwich", CategoryQuantity: 3},
		}},
		Products: []ProductStatus{
			{ProductName: "Agua", UnitsInBasket: 2},
			{ProductName: "Sandwich", UnitsInBasket: 1},
		},
	}
	active, ok := ActiveProduct(snap)
	if !ok || active.ProductName != "Sandwich" {
		t.Fatalf("active = %+v ok=%v, want Sandwich", active, ok)
	}

	snap.Products[1].UnitsInBasket = 3
	if _, ok := ActiveProduct(snap); ok {
		t.Fatal("all complete should report no active product")
	}
}

func TestStopEndsRunWithoutBackendCall(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	tr := testTracker(backend.New(srv.URL), []string{"Agua"})
	tr.stopCh = make(chan struct{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ops/run/stop", nil)
	CreateStopCommandHandler(tr)(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/ops?ok=") {
		t.Fatalf("redirect = %q, want /ops?ok=...", loc)
	}
	if tr.CurrentSnapshot().Active {
		t.Fatal("tracker should be inactive after stop")
	}
	if n := hits.Load(); n != 0 {
		t.Fatalf("stop issued %d backend requests, want none", n)
	}
}
