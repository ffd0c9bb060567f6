package pick

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"stockpilot/frontend/flights"
	"stockpilot/infrastructure/backend"
	"stockpilot/infrastructure/metrics"
	"stockpilot/models"
)

// DefaultPollInterval is how often the tracker re-reads the backend.
const DefaultPollInterval = 2 * time.Second

// ProductStatus is the reconciled picking state for one manifest line.
type ProductStatus struct {
	ProductName    string
	Color          string
	UnitsRemaining int
	UnitsInBasket  int
	NeedsMore      int
	InFlight       bool
	InventoryItems []models.InventoryItem
}

// Snapshot is an immutable view of the tracker handed to handlers.
type Snapshot struct {
	Active   bool
	Loaded   bool
	Err      string
	Flight   flights.FlightDetails
	Products []ProductStatus
}

// Tracker keeps a per-run polling loop against the backend and
// reconciles sensor, basket and inventory data into product statuses.
// A failed cycle keeps the previous statuses and raises a sticky
// error that the next successful cycle clears.
type Tracker struct {
	api      *backend.Client
	interval time.Duration

	mu         sync.Mutex
	generation int
	flight     flights.FlightDetails
	manifest   []string
	statuses   []ProductStatus
	loaded     bool
	lastError  string
	active     bool
	stopCh     chan struct{}
}

func NewTracker(api *backend.Client) *Tracker {
	return &Tracker{api: api, interval: DefaultPollInterval}
}

// Start begins polling for the given flight. Any previous loop is
// torn down and its in-flight responses are discarded.
func (t *Tracker) Start(flight flights.FlightDetails) {
	t.mu.Lock()
	if t.active {
		close(t.stopCh)
	}
	t.generation++
	gen := t.generation
	t.flight = flight
	t.manifest = flight.ProductNames()
	t.statuses = nil
	t.loaded = false
	t.lastError = ""
	t.active = true
	t.stopCh = make(chan struct{})
	stopCh := t.stopCh
	names := t.manifest
	t.mu.Unlock()

	go t.loop(gen, names, stopCh)
}

// Stop ends the active run. Responses still in flight are discarded.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return
	}
	close(t.stopCh)
	t.generation++
	t.active = false
}

func (t *Tracker) loop(gen int, names []string, stopCh chan struct{}) {
	t.refresh(gen, names)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			t.refresh(gen, names)
		}
	}
}

// refresh runs one full cycle: fetch status and inventory together,
// reconcile, and publish atomically if the run is still the current
// generation.
func (t *Tracker) refresh(gen int, names []string) {
	ctx := context.Background()

	var status models.RunStatus
	var inv []models.InventoryItem
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		status, err = GetRunStatus(gctx, t.api)
		return err
	})
	g.Go(func() error {
		var err error
		inv, err = fetchInventory(gctx, t.api)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.PollFailures.Inc()
		t.mu.Lock()
		if gen == t.generation {
			t.lastError = err.Error()
		}
		t.mu.Unlock()
		return
	}

	statuses := Reconcile(names, status, inv)

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.generation {
		metrics.StalePollsDiscarded.Inc()
		return
	}
	t.statuses = statuses
	t.loaded = true
	t.lastError = ""
	metrics.PollCycles.Inc()
}

func fetchInventory(ctx context.Context, api *backend.Client) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := api.Get(ctx, "/inventory", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Reconcile merges the sensor snapshot with the raw inventory, keyed
// by the manifest so the shelf order never changes mid-run. Products
// without a sensor reading fall back to counting inventory units.
func Reconcile(manifest []string, status models.RunStatus, inv []models.InventoryItem) []ProductStatus {
	out := make([]ProductStatus, 0, len(manifest))
	for _, name := range manifest {
		ps := ProductStatus{ProductName: name, InFlight: true}
		ps.UnitsInBasket = status.Basket[name]
		ps.InventoryItems = matchingItems(inv, name)

		if sensor, ok := status.Sensors[name]; ok {
			ps.Color = sensor.Color
			ps.UnitsRemaining = sensor.UnitsRemaining
		} else {
			ps.UnitsRemaining = len(ps.InventoryItems)
			if ps.UnitsRemaining > 0 {
				ps.Color = "green"
			} else {
				ps.Color = "white"
			}
		}
		ps.NeedsMore = ps.UnitsRemaining - ps.UnitsInBasket
		out = append(out, ps)
	}
	return out
}

func matchingItems(inv []models.InventoryItem, name string) []models.InventoryItem {
	want := strings.ToLower(strings.TrimSpace(name))
	var items []models.InventoryItem
	for _, it := range inv {
		if strings.ToLower(strings.TrimSpace(it.ProductName)) == want {
			items = append(items, it)
		}
	}
	return items
}

// TakeOne performs the mutation and, on success, re-runs a full cycle
// before returning so the next page render sees fresh data. A failed
// mutation skips the refresh entirely.
func (t *Tracker) TakeOne(ctx context.Context, productName string) error {
	if err := TakeOneProduct(ctx, t.api, productName); err != nil {
		return err
	}
	t.refreshCurrent()
	return nil
}

// PutOne mirrors TakeOne for returning a unit.
func (t *Tracker) PutOne(ctx context.Context, productName string) error {
	if err := PutOneProduct(ctx, t.api, productName); err != nil {
		return err
	}
	t.refreshCurrent()
	return nil
}

func (t *Tracker) refreshCurrent() {
	t.mu.Lock()
	gen := t.generation
	names := t.manifest
	active := t.active
	t.mu.Unlock()
	if !active {
		return
	}
	t.refresh(gen, names)
}

// CurrentSnapshot copies the tracker state for rendering.
func (t *Tracker) CurrentSnapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Active:   t.active,
		Loaded:   t.loaded,
		Err:      t.lastError,
		Flight:   t.flight,
		Products: append([]ProductStatus(nil), t.statuses...),
	}
}
