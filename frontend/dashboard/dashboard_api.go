package dashboard

import (
	"context"
	"log/slog"
	"time"

	"stockpilot/frontend/flights"
	"stockpilot/frontend/inventory"
	"stockpilot/infrastructure/backend"
	"stockpilot/models"
)

// Overview is everything the dashboard renders. Sections load
// independently so a failing backend area degrades that section only.
type Overview struct {
	Flights      []flights.Flight
	FlightsErr   string
	Summary      models.InventorySummary
	RiskUnits    int
	UniqueCount  int
	InventoryErr string
	Stats        models.RunStats
	HaveStats    bool
}

// Load assembles the dashboard. Flights come back sorted by departure
// ascending; the first entry is the priority flight. Run stats are
// best-effort and never fail the page.
func Load(ctx context.Context, svc *flights.Service, api *backend.Client) Overview {
	var ov Overview

	list, err := svc.FetchFlights(ctx)
	if err != nil {
		ov.FlightsErr = "Could not load flights"
		slog.Error("dashboard flights load failed", slog.Any("err", err))
	} else {
		ov.Flights = flights.SortByDeparture(list)
	}

	inv, err := inventory.FetchOverview(ctx, api)
	if err != nil {
		ov.InventoryErr = "Could not load inventory summary"
		slog.Error("dashboard inventory load failed", slog.Any("err", err))
	} else {
		ov.Summary = inv.Summary
		ov.RiskUnits = inventory.RiskUnits(inv.Items, time.Now())
		ov.UniqueCount = inventory.UniqueProducts(inv.Items)
	}

	var stats models.RunStats
	if err := api.Get(ctx, "/runs/stats", &stats); err != nil {
		slog.Warn("run stats unavailable", slog.Any("err", err))
	} else {
		ov.Stats = stats
		ov.HaveStats = true
	}
	return ov
}

// PriorityFlight is the next departure, flagged on the flight table.
func (ov Overview) PriorityFlight() (flights.Flight, bool) {
	if len(ov.Flights) == 0 {
		return flights.Flight{}, false
	}
	return ov.Flights[0], true
}
