package flights

import (
	"sort"
	"strings"
	"time"
	"unicode/utf16"

	"stockpilot/models"
)

type categoryRule struct {
	keywords []string
	category string
}

// Ordered keyword table; first match wins. Matching is case-insensitive
// against the product name.
var categoryTable = []categoryRule{
	{[]string{"sandwich", "wrap", "ensalada"}, "Comida Fría"},
	{[]string{"agua", "jugo", "coca", "sprite"}, "Bebidas"},
	{[]string{"café", "té"}, "Bebidas Calientes"},
	{[]string{"galleta", "papas", "snack"}, "Snacks"},
	{[]string{"yogurt", "leche"}, "Lácteos"},
	{[]string{"pan", "croissant"}, "Panadería"},
	{[]string{"fruta", "vegetal"}, "Snacks Saludables"},
	{[]string{"cerveza", "vino"}, "Bebidas Alcohólicas"},
	{[]string{"pasta", "hamburguesa", "burrito"}, "Comida Caliente"},
	{[]string{"helado", "brownie", "postre"}, "Postres"},
}

const defaultCategory = "Otros"

// InferCategory derives a display category from the product name.
func InferCategory(productName string) string {
	name := strings.ToLower(productName)
	for _, rule := range categoryTable {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return defaultCategory
}

// PriorityLot folds a 32-bit string hash of the product name into a
// single letter A..Z. The code is deterministic and order-stable but
// semantically arbitrary; it exists only for visual grouping and is not
// derived from expiry data.
func PriorityLot(productName string) string {
	var h int32
	for _, u := range utf16.Encode([]rune(productName)) {
		h = h*31 + int32(u)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return string(rune('A' + v%26))
}

// AdaptFlight maps the backend wire record into the view model.
func AdaptFlight(f models.Flight) Flight {
	return Flight{
		FlightNumber:  f.FlightNumber,
		Destination:   f.Destination,
		DepartureTime: parseDeparture(f.DepartureTime),
		DepartureRaw:  f.DepartureTime,
	}
}

// AdaptProduct maps a manifest line and attaches the derived fields.
func AdaptProduct(p models.ManifestLine) Product {
	return Product{
		ProductName:      p.ProductName,
		Category:         InferCategory(p.ProductName),
		CategoryQuantity: p.CategoryQuantity,
		PriorityLot:      PriorityLot(p.ProductName),
	}
}

var departureLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseDeparture(v string) time.Time {
	for _, layout := range departureLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SortByDeparture orders flights by departure time ascending, stably:
// flights with identical departure times keep their original relative
// order. Flights whose departure could not be parsed sort last so a
// malformed record never claims the priority slot. The first element
// of the sorted list is the priority flight.
func SortByDeparture(list []Flight) []Flight {
	sorted := make([]Flight, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].DepartureTime, sorted[j].DepartureTime
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.Before(b)
	})
	return sorted
}
