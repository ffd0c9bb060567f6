package stub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"stockpilot/models"
)

// Server is the development stand-in for the catering backend. It
// speaks the same REST surface the dashboard consumes.
type Server struct {
	store   *Store
	sensors *SensorController
	router  *chi.Mux
}

func NewServer(store *Store) *Server {
	s := &Server{
		store:   store,
		sensors: NewSensorController(),
		router:  chi.NewRouter(),
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/flights", s.handleFlights)
	s.router.Get("/flights/{flightNumber}", s.handleFlightManifest)

	s.router.Post("/run/start/{flightNumber}", s.handleRunStart)
	s.router.Get("/run/status", s.handleRunStatus)
	s.router.Post("/run/take_one/{productName}", s.handleTakeOne)
	s.router.Post("/run/put_one/{productName}", s.handlePutOne)
	s.router.Post("/run/stop", s.handleRunStop)
	s.router.Get("/runs/stats", s.handleRunStats)

	s.router.Get("/inventory", s.handleInventory)
	s.router.Get("/inventory/summary", s.handleInventorySummary)
	s.router.Get("/inventory/by-product", s.handleInventoryByProduct)
	s.router.Post("/inventory/lots", s.handleCreateLot)
	s.router.Delete("/inventory/lots/{identifier}", s.handleDeleteLotOrUnit)
	s.router.Post("/inventory/ai-report", s.handleAIReport)

	s.router.Get("/supplier/products", s.handleSupplierProducts)
	s.router.Get("/supplier/orders", s.handleListOrders)
	s.router.Post("/supplier/orders", s.handleCreateOrder)
	s.router.Post("/supplier/orders/{orderID}/receive", s.handleReceiveOrder)
	s.router.Post("/supplier/orders/{orderID}/place", s.handlePlaceOrder)
	s.router.Delete("/supplier/orders/{orderID}", s.handleDeleteOrder)

	s.router.Get("/simulation/settings", s.handleGetSettings)
	s.router.Post("/simulation/settings", s.handleUpdateSettings)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json failed", slog.Any("err", err))
	}
}

// writeErrorAck mirrors the real backend, which reports run mutation
// failures inside a 200 body.
func writeErrorAck(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, models.Ack{Status: "error", Message: message})
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, seededFlights())
}

func (s *Server) handleFlightManifest(w http.ResponseWriter, r *http.Request) {
	flightNumber := chi.URLParam(r, "flightNumber")
	manifest, ok := seededManifests()[flightNumber]
	if !ok {
		http.Error(w, "unknown flight", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, manifest)
}

func (s *Server) handleRunStart(w http.ResponseWriter, r *http.Request) {
	flightNumber := chi.URLParam(r, "flightNumber")
	manifest, ok := seededManifests()[flightNumber]
	if !ok {
		writeErrorAck(w, "no products found for flight "+flightNumber)
		return
	}
	// The dashboard never calls /run/stop; an open run is finished
	// when the next one starts.
	if prevID, ok := s.sensors.StopRun(); ok {
		if err := s.store.FinishRun(r.Context(), prevID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	runID, err := s.store.StartRun(r.Context(), flightNumber)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.sensors.StartRun(flightNumber, runID, manifest)
	writeJSON(w, http.StatusOK, models.Ack{Status: "ok", Message: "Run started for flight " + flightNumber})
}

func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	counts := make(map[string]int)
	if s.sensors.Active() {
		for product := range s.sensors.Status(nil).Basket {
			n, err := s.store.CountByProduct(r.Context(), product)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			counts[product] = n
		}
	}
	writeJSON(w, http.StatusOK, s.sensors.Status(counts))
}

func (s *Server) handleTakeOne(w http.ResponseWriter, r *http.Request) {
	productName := strings.TrimSpace(chi.URLParam(r, "productName"))
	unit, err := s.store.TakeEarliestUnit(r.Context(), productName)
	if err != nil {
		writeErrorAck(w, err.Error())
		return
	}
	if err := s.sensors.RecordTake(unit.ProductName, unit); err != nil {
		// Roll the shelf back if the controller refuses the take.
		_ = s.store.RestoreUnit(r.Context(), unit)
		writeErrorAck(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.Ack{Status: "ok"})
}

func (s *Server) handlePutOne(w http.ResponseWriter, r *http.Request) {
	productName := strings.TrimSpace(chi.URLParam(r, "productName"))
	unit, err := s.sensors.ReleaseTaken(productName)
	if err != nil {
		writeErrorAck(w, err.Error())
		return
	}
	if err := s.store.RestoreUnit(r.Context(), unit); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, models.Ack{Status: "ok"})
}

func (s *Server) handleRunStop(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.sensors.StopRun()
	if !ok {
		writeErrorAck(w, "no active run")
		return
	}
	if err := s.store.FinishRun(r.Context(), runID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, models.Ack{Status: "ok", Message: "Run finished"})
}

func (s *Server) handleRunStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.RunStats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListInventory(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleInventorySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.Summary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleInventoryByProduct(w http.ResponseWriter, r *http.Request) {
	groups, err := s.store.ByProduct(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleCreateLot(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusUnprocessableEntity)
		return
	}
	if err := s.store.CreateLot(r.Context(), req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, models.Ack{Status: "ok", Message: "Lot " + req.LotID + " created"})
}

func (s *Server) handleDeleteLotOrUnit(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")
	deleted, err := s.store.DeleteLotOrUnit(r.Context(), identifier)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "no lot or unit with id "+identifier, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, models.Ack{Status: "ok"})
}

// handleAIReport returns a JSON stock report. The real backend may
// answer with a downloadable file instead; the dashboard handles both.
func (s *Server) handleAIReport(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.Summary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	items, err := s.store.ListInventory(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	report := map[string]any{
		"generated_by":   "stub",
		"total_units":    len(items),
		"total_lots":     summary.TotalLots,
		"total_products": summary.TotalProducts,
		"lots":           summary.Lots,
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSupplierProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, supplierProducts())
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.store.ListOrders(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusUnprocessableEntity)
		return
	}
	order, err := s.store.CreateOrder(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleReceiveOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.ReceiveOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.PlaceOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteOrder(r.Context(), chi.URLParam(r, "orderID")); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, models.Ack{Status: "ok"})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.GetSettings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.SimulationSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "invalid body", http.StatusUnprocessableEntity)
		return
	}
	if settings.DeliveryTimeMultiplier <= 0 {
		http.Error(w, "delivery_time_multiplier must be positive", http.StatusUnprocessableEntity)
		return
	}
	if err := s.store.UpdateSettings(r.Context(), settings); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, models.Ack{Status: "ok"})
}
