package preparation

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"stockpilot/frontend/flights"
	"stockpilot/frontend/pick"
	"stockpilot/frontend/shared/html"
)

// GetPreparationScreenHandler renders the manifest for a flight before
// the run starts.
func GetPreparationScreenHandler(svc *flights.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flightNumber := chi.URLParam(r, "flightNumber")
		details, err := svc.FetchFlightDetails(r.Context(), flightNumber)
		if err != nil {
			slog.Error("flight details load failed", slog.String("flight", flightNumber), slog.Any("err", err))
			http.Redirect(w, r, "/ops?error="+url.QueryEscape("Could not load flight "+flightNumber), http.StatusSeeOther)
			return
		}
		PreparationPage(details, html.FlashFromRequest(r)).Render(r.Context(), w)
	}
}

// CreateStartRunCommandHandler starts the backend run, points the
// tracker at the flight's manifest and sends the operator to the pick
// screen.
func CreateStartRunCommandHandler(svc *flights.Service, tracker *pick.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flightNumber := chi.URLParam(r, "flightNumber")
		details, err := svc.FetchFlightDetails(r.Context(), flightNumber)
		if err != nil {
			slog.Error("flight details load failed", slog.String("flight", flightNumber), slog.Any("err", err))
			redirectPrepError(w, r, flightNumber, "Could not load flight manifest")
			return
		}
		if err := svc.StartRun(r.Context(), flightNumber); err != nil {
			slog.Error("start run failed", slog.String("flight", flightNumber), slog.Any("err", err))
			redirectPrepError(w, r, flightNumber, "Could not start the pick run")
			return
		}
		tracker.Start(details)
		http.Redirect(w, r, "/ops/run", http.StatusSeeOther)
	}
}

// GetManifestPDFHandler streams the printable manifest.
func GetManifestPDFHandler(svc *flights.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flightNumber := chi.URLParam(r, "flightNumber")
		details, err := svc.FetchFlightDetails(r.Context(), flightNumber)
		if err != nil {
			slog.Error("flight details load failed", slog.String("flight", flightNumber), slog.Any("err", err))
			http.Error(w, "flight not available", http.StatusBadGateway)
			return
		}
		pdfBytes, err := renderManifestPDF(details, time.Now())
		if err != nil {
			slog.Error("manifest pdf render failed", slog.String("flight", flightNumber), slog.Any("err", err))
			http.Error(w, "could not render manifest", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "manifest-"+flightNumber+".pdf"))
		_, _ = w.Write(pdfBytes)
	}
}

func redirectPrepError(w http.ResponseWriter, r *http.Request, flightNumber, msg string) {
	http.Redirect(w, r, "/ops/flights/"+url.PathEscape(flightNumber)+"/preparation?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
