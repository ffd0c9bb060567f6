package inventory

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stockpilot/frontend/shared/html"
	"stockpilot/infrastructure/backend"
)

// PageQueryHandler renders the inventory screen in grouped or detailed
// projection. All three backend projections load together; a failure
// keeps the page recoverable behind an error panel.
func PageQueryHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewMode := r.URL.Query().Get("view")
		if viewMode != "detailed" {
			viewMode = "grouped"
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		ov, err := FetchOverview(r.Context(), api)
		if err != nil {
			slog.Error("inventory overview fetch failed", slog.Any("err", err))
			if renderErr := ErrorPage("Could not load inventory from the backend.").Render(r.Context(), w); renderErr != nil {
				http.Error(w, "failed to render inventory error page", http.StatusInternalServerError)
			}
			return
		}

		page := InventoryPage(ov, viewMode, html.FlashFromRequest(r))
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render inventory page", http.StatusInternalServerError)
		}
	}
}

// CreateLotCommandHandler handles the lot-creation form. A blank lot id
// gets a generated one so operators can leave the field empty.
func CreateLotCommandHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectError(w, r, "invalid form data")
			return
		}

		lotID := strings.TrimSpace(r.FormValue("lot_id"))
		if lotID == "" {
			lotID = "LOT-" + strings.ToUpper(uuid.NewString()[:8])
		}
		cantidad, err := strconv.Atoi(strings.TrimSpace(r.FormValue("cantidad")))
		if err != nil {
			redirectError(w, r, "quantity must be a number")
			return
		}
		dias, err := strconv.Atoi(strings.TrimSpace(r.FormValue("dias_caducidad")))
		if err != nil {
			redirectError(w, r, "days to expiry must be a number")
			return
		}
		productName := strings.TrimSpace(r.FormValue("product_name"))

		form := LotForm{LotID: lotID, Cantidad: cantidad, DiasCad: dias, ProductName: productName}
		if err := CreateLot(r.Context(), api, form); err != nil {
			slog.Error("create lot failed", slog.String("lot_id", lotID), slog.Any("err", err))
			redirectError(w, r, "failed to create lot")
			return
		}
		http.Redirect(w, r, "/ops/inventory?ok="+url.QueryEscape(fmt.Sprintf("Lot %s created (%d units)", lotID, cantidad)), http.StatusSeeOther)
	}
}

// DeleteCommandHandler removes a lot or a single unit; the backend
// decides which by the identifier.
func DeleteCommandHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identifier := chi.URLParam(r, "identifier")
		if strings.TrimSpace(identifier) == "" {
			http.Error(w, "missing identifier", http.StatusBadRequest)
			return
		}
		if err := DeleteLotOrUnit(r.Context(), api, identifier); err != nil {
			slog.Error("delete inventory entry failed", slog.String("identifier", identifier), slog.Any("err", err))
			redirectError(w, r, "failed to delete "+identifier)
			return
		}
		http.Redirect(w, r, "/ops/inventory?ok="+url.QueryEscape("Deleted "+identifier), http.StatusSeeOther)
	}
}

// AIReportCommandHandler proxies the AI report generation and serves the
// result as a download.
func AIReportCommandHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := GenerateReport(r.Context(), api)
		if err != nil {
			slog.Error("ai report generation failed", slog.Any("err", err))
			redirectError(w, r, "failed to generate report")
			return
		}
		if report.ContentType != "" {
			w.Header().Set("Content-Type", report.ContentType)
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
		_, _ = w.Write(report.Body)
	}
}

func redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/ops/inventory?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
