package flights

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"stockpilot/infrastructure/backend"
	"stockpilot/models"
)

// Service wraps the flight and run-start endpoints. When DemoFallback is
// set, flight reads substitute the fixed demo dataset on backend
// failure; every other call propagates errors unchanged.
type Service struct {
	API          *backend.Client
	DemoFallback bool
}

func NewService(api *backend.Client, demoFallback bool) *Service {
	return &Service{API: api, DemoFallback: demoFallback}
}

// FetchFlights lists pending flights, adapted to view models.
func (s *Service) FetchFlights(ctx context.Context) ([]Flight, error) {
	var wire []models.Flight
	if err := s.API.Get(ctx, "/flights", &wire); err != nil {
		if s.DemoFallback {
			slog.Warn("using demo flights, backend unavailable", slog.Any("err", err))
			return demoFlights(), nil
		}
		return nil, err
	}
	list := make([]Flight, 0, len(wire))
	for _, f := range wire {
		list = append(list, AdaptFlight(f))
	}
	return list, nil
}

// FetchFlightDetails loads a flight's manifest. The manifest endpoint
// only returns product rows, so destination and departure come from a
// second /flights read, mirroring the backend contract.
func (s *Service) FetchFlightDetails(ctx context.Context, flightNumber string) (FlightDetails, error) {
	var lines []models.ManifestLine
	if err := s.API.Get(ctx, "/flights/"+url.PathEscape(flightNumber), &lines); err != nil {
		if s.DemoFallback {
			slog.Warn("using demo flight details, backend unavailable",
				slog.String("flight", flightNumber), slog.Any("err", err))
			return demoFlightDetails(flightNumber)
		}
		return FlightDetails{}, err
	}

	details := FlightDetails{FlightNumber: flightNumber}
	var wire []models.Flight
	if err := s.API.Get(ctx, "/flights", &wire); err == nil {
		for _, f := range wire {
			if f.FlightNumber == flightNumber {
				details.Destination = f.Destination
				details.DepartureTime = parseDeparture(f.DepartureTime)
				details.DepartureRaw = f.DepartureTime
				break
			}
		}
	}
	if details.Destination == "" {
		details.Destination = "Unknown"
	}

	details.Products = make([]Product, 0, len(lines))
	for _, l := range lines {
		details.Products = append(details.Products, AdaptProduct(l))
	}
	return details, nil
}

// StartRun activates the backend sensors for a flight's pick run.
func (s *Service) StartRun(ctx context.Context, flightNumber string) error {
	var ack models.Ack
	if err := s.API.Post(ctx, "/run/start/"+url.PathEscape(flightNumber), nil, &ack); err != nil {
		return err
	}
	if ack.Status == "error" {
		return fmt.Errorf("start run: %s", ack.Message)
	}
	return nil
}
