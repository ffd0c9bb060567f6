package http

import (
	"github.com/go-chi/chi/v5"

	"stockpilot/frontend/dashboard"
	"stockpilot/frontend/inventory"
	"stockpilot/frontend/login"
	"stockpilot/frontend/orders"
	"stockpilot/frontend/pick"
	"stockpilot/frontend/preparation"
	"stockpilot/frontend/settings"
)

// RegisterLoginRoutes registers login/logout routes.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.GetLoginScreenHandler)
	s.router.Post("/login", login.CreateLoginHandler(s.AccessCodeHash, s.SessionCache))
	s.router.Post("/logout", login.LogoutHandler(s.SessionCache))
}

// RegisterOpsRoutes registers the authenticated operations screens.
func (s *Server) RegisterOpsRoutes(r chi.Router) chi.Router {
	r.Get("/", dashboard.GetDashboardHandler(s.Flights, s.Backend))

	r.Get("/flights/{flightNumber}/preparation", preparation.GetPreparationScreenHandler(s.Flights))
	r.Post("/flights/{flightNumber}/run/start", preparation.CreateStartRunCommandHandler(s.Flights, s.Tracker))
	r.Get("/flights/{flightNumber}/manifest.pdf", preparation.GetManifestPDFHandler(s.Flights))

	r.Get("/run", pick.GetRunScreenHandler(s.Tracker))
	r.Post("/run/take/{productName}", pick.CreateTakeCommandHandler(s.Tracker))
	r.Post("/run/put/{productName}", pick.CreatePutCommandHandler(s.Tracker))
	r.Post("/run/stop", pick.CreateStopCommandHandler(s.Tracker))

	r.Get("/inventory", inventory.PageQueryHandler(s.Backend))
	r.Post("/inventory/lots", inventory.CreateLotCommandHandler(s.Backend))
	r.Post("/inventory/lots/{identifier}/delete", inventory.DeleteCommandHandler(s.Backend))
	r.Get("/inventory/export.csv", inventory.ExportCSVHandler(s.Backend))
	r.Post("/inventory/ai-report", inventory.AIReportCommandHandler(s.Backend))

	r.Get("/orders", orders.GetOrdersScreenHandler(s.Backend))
	r.Post("/orders", orders.CreateOrderCommandHandler(s.Backend))
	r.Post("/orders/{orderID}/receive", orders.CreateOrderActionHandler(s.Backend, "receive"))
	r.Post("/orders/{orderID}/place", orders.CreateOrderActionHandler(s.Backend, "place"))
	r.Post("/orders/{orderID}/delete", orders.CreateOrderActionHandler(s.Backend, "delete"))
	r.Get("/orders/{orderID}/qr.png", orders.GetOrderQRHandler(s.Backend))

	r.Get("/settings", settings.GetSettingsScreenHandler(s.Backend))
	r.Post("/settings", settings.UpdateSettingsCommandHandler(s.Backend))

	return r
}
