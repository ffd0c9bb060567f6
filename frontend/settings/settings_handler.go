package settings

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"stockpilot/frontend/shared/html"
	"stockpilot/infrastructure/backend"
)

// GetSettingsScreenHandler loads the current simulation settings.
func GetSettingsScreenHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := FetchSimulationSettings(r.Context(), api)
		if err != nil {
			slog.Error("settings load failed", slog.Any("err", err))
			http.Redirect(w, r, "/ops?error="+url.QueryEscape("Could not load settings"), http.StatusSeeOther)
			return
		}
		SettingsPage(current, html.FlashFromRequest(r)).Render(r.Context(), w)
	}
}

// UpdateSettingsCommandHandler saves the two-field form.
func UpdateSettingsCommandHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		multiplier, err := strconv.ParseFloat(r.FormValue("delivery_time_multiplier"), 64)
		if err != nil {
			redirectSettingsError(w, r, "Multiplier must be a number")
			return
		}
		form := SettingsForm{
			DeliveryTimeMultiplier: multiplier,
			AutoPlaceOrders:        r.FormValue("auto_place_orders") == "on",
		}
		if err := UpdateSimulationSettings(r.Context(), api, form); err != nil {
			slog.Error("settings update failed", slog.Any("err", err))
			redirectSettingsError(w, r, "Could not save settings (multiplier must be between 0.1 and 10)")
			return
		}
		http.Redirect(w, r, "/ops/settings?ok="+url.QueryEscape("Settings saved"), http.StatusSeeOther)
	}
}

func redirectSettingsError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/ops/settings?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
