package dashboard

import (
	"net/http"

	"stockpilot/frontend/flights"
	"stockpilot/frontend/shared/html"
	"stockpilot/infrastructure/backend"
)

// GetDashboardHandler renders the operations landing page.
func GetDashboardHandler(svc *flights.Service, api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ov := Load(r.Context(), svc, api)
		DashboardPage(ov, html.FlashFromRequest(r)).Render(r.Context(), w)
	}
}
