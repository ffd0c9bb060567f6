package flights

import "time"

// Flight is the dashboard view model. DepartureRaw keeps the backend's
// original string for display when parsing fails.
type Flight struct {
	FlightNumber  string
	Destination   string
	DepartureTime time.Time
	DepartureRaw  string
}

// Product is one manifest line with the derived presentation fields.
// Category and PriorityLot are view-only and never serialized back to
// the backend.
type Product struct {
	ProductName      string
	Category         string
	CategoryQuantity int
	PriorityLot      string
}

// FlightDetails is a flight plus its product manifest.
type FlightDetails struct {
	FlightNumber  string
	Destination   string
	DepartureTime time.Time
	DepartureRaw  string
	Products      []Product
}

// TotalUnits is the running total shown on the preparation view.
func (d FlightDetails) TotalUnits() int {
	total := 0
	for _, p := range d.Products {
		total += p.CategoryQuantity
	}
	return total
}

// ProductNames is the manifest list handed to the run-status tracker.
func (d FlightDetails) ProductNames() []string {
	names := make([]string, 0, len(d.Products))
	for _, p := range d.Products {
		names = append(names, p.ProductName)
	}
	return names
}
