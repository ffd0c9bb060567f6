package pick

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"stockpilot/frontend/shared/html"
)

// GetRunScreenHandler renders the live picking screen. With no active
// run it sends the operator back to the dashboard.
func GetRunScreenHandler(tracker *Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := tracker.CurrentSnapshot()
		if !snap.Active {
			http.Redirect(w, r, "/ops?error="+url.QueryEscape("No active pick run"), http.StatusSeeOther)
			return
		}
		RunPage(snap, html.FlashFromRequest(r)).Render(r.Context(), w)
	}
}

// CreateTakeCommandHandler records one unit taken from a shelf. Taking
// from any shelf other than the active one is refused and surfaced as
// a security alert.
func CreateTakeCommandHandler(tracker *Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productName := chi.URLParam(r, "productName")
		snap := tracker.CurrentSnapshot()
		if !snap.Active {
			http.Redirect(w, r, "/ops?error="+url.QueryEscape("No active pick run"), http.StatusSeeOther)
			return
		}
		if active, ok := ActiveProduct(snap); ok && active.ProductName != productName {
			msg := fmt.Sprintf("Security alert: took %s from the wrong shelf, expected %s", productName, active.ProductName)
			redirectRunError(w, r, msg)
			return
		}
		if err := tracker.TakeOne(r.Context(), productName); err != nil {
			slog.Error("take one failed", slog.String("product", productName), slog.Any("err", err))
			redirectRunError(w, r, "Could not take "+productName)
			return
		}
		http.Redirect(w, r, "/ops/run", http.StatusSeeOther)
	}
}

// CreatePutCommandHandler returns one unit to its shelf.
func CreatePutCommandHandler(tracker *Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productName := chi.URLParam(r, "productName")
		if err := tracker.PutOne(r.Context(), productName); err != nil {
			slog.Error("put one failed", slog.String("product", productName), slog.Any("err", err))
			redirectRunError(w, r, "Could not return "+productName)
			return
		}
		http.Redirect(w, r, "/ops/run", http.StatusSeeOther)
	}
}

// CreateStopCommandHandler tears down the polling loop. The backend
// has no stop endpoint; a run simply ends when the operator walks away
// or the next run starts.
func CreateStopCommandHandler(tracker *Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracker.Stop()
		http.Redirect(w, r, "/ops?ok="+url.QueryEscape("Pick run finished"), http.StatusSeeOther)
	}
}

func redirectRunError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/ops/run?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

// ActiveProduct is the first shelf whose basket has not yet reached
// the manifest quantity.
func ActiveProduct(snap Snapshot) (ProductStatus, bool) {
	required := make(map[string]int, len(snap.Flight.Products))
	for _, p := range snap.Flight.Products {
		required[p.ProductName] = p.CategoryQuantity
	}
	for _, ps := range snap.Products {
		if ps.UnitsInBasket < required[ps.ProductName] {
			return ps, true
		}
	}
	return ProductStatus{}, false
}
