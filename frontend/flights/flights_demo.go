package flights

import (
	"fmt"
	"time"

	"stockpilot/models"
)

// Fixed demo dataset substituted for flight reads when the backend is
// unreachable and DEMO_FALLBACK is enabled. Products run through the
// normal adaptation so categories and priority codes stay consistent.

var demoManifests = map[string][]models.ManifestLine{
	"IB3456": {
		{FlightNumber: "IB3456", ProductName: "Sandwich de Pollo", CategoryQuantity: 40, WeightKg: 0.25},
		{FlightNumber: "IB3456", ProductName: "Agua Mineral 500ml", CategoryQuantity: 80, WeightKg: 0.5},
		{FlightNumber: "IB3456", ProductName: "Café Premium", CategoryQuantity: 30, WeightKg: 0.02},
		{FlightNumber: "IB3456", ProductName: "Galletas de Chocolate", CategoryQuantity: 50, WeightKg: 0.1},
	},
	"UX1020": {
		{FlightNumber: "UX1020", ProductName: "Wrap Vegetal", CategoryQuantity: 35, WeightKg: 0.22},
		{FlightNumber: "UX1020", ProductName: "Jugo de Naranja", CategoryQuantity: 60, WeightKg: 0.33},
		{FlightNumber: "UX1020", ProductName: "Yogurt Natural", CategoryQuantity: 45, WeightKg: 0.15},
	},
	"VY8812": {
		{FlightNumber: "VY8812", ProductName: "Croissant de Mantequilla", CategoryQuantity: 25, WeightKg: 0.09},
		{FlightNumber: "VY8812", ProductName: "Fruta Fresca", CategoryQuantity: 40, WeightKg: 0.2},
		{FlightNumber: "VY8812", ProductName: "Brownie de Chocolate", CategoryQuantity: 20, WeightKg: 0.08},
	},
}

var demoRoutes = []models.Flight{
	{FlightNumber: "IB3456", Origin: "MAD", Destination: "Londres Heathrow", DepartureTime: demoDeparture(2)},
	{FlightNumber: "UX1020", Origin: "MAD", Destination: "París Orly", DepartureTime: demoDeparture(4)},
	{FlightNumber: "VY8812", Origin: "MAD", Destination: "Roma Fiumicino", DepartureTime: demoDeparture(6)},
}

func demoDeparture(hoursAhead int) string {
	return time.Now().Add(time.Duration(hoursAhead) * time.Hour).Truncate(time.Minute).Format(time.RFC3339)
}

func demoFlights() []Flight {
	list := make([]Flight, 0, len(demoRoutes))
	for _, f := range demoRoutes {
		list = append(list, AdaptFlight(f))
	}
	return list
}

func demoFlightDetails(flightNumber string) (FlightDetails, error) {
	lines, ok := demoManifests[flightNumber]
	if !ok {
		return FlightDetails{}, fmt.Errorf("no demo data for flight %s", flightNumber)
	}
	var route models.Flight
	for _, f := range demoRoutes {
		if f.FlightNumber == flightNumber {
			route = f
			break
		}
	}
	details := FlightDetails{
		FlightNumber:  flightNumber,
		Destination:   route.Destination,
		DepartureTime: parseDeparture(route.DepartureTime),
		DepartureRaw:  route.DepartureTime,
	}
	for _, l := range lines {
		details.Products = append(details.Products, AdaptProduct(l))
	}
	return details, nil
}
