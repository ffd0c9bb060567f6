package stub

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockpilot/models"
)

// catalogProduct extends the wire record with stub-only stocking data.
type catalogProduct struct {
	models.SupplierProduct
	ShelfLifeDays int
}

var supplierCatalog = []catalogProduct{
	{SupplierProduct: models.SupplierProduct{ProductName: "Sandwich de Pollo", WeightKg: 0.25, PricePerUnit: decimal.RequireFromString("1.20"), DeliveryTimeDays: 1, MinOrderQuantity: 50, Description: "Pollo asado con lechuga"}, ShelfLifeDays: 4},
	{SupplierProduct: models.SupplierProduct{ProductName: "Agua Mineral 500ml", WeightKg: 0.5, PricePerUnit: decimal.RequireFromString("0.35"), DeliveryTimeDays: 2, MinOrderQuantity: 50, Description: "Botella PET"}, ShelfLifeDays: 365},
	{SupplierProduct: models.SupplierProduct{ProductName: "Café Premium", WeightKg: 0.02, PricePerUnit: decimal.RequireFromString("0.55"), DeliveryTimeDays: 3, MinOrderQuantity: 100, Description: "Monodosis molido"}, ShelfLifeDays: 180},
	{SupplierProduct: models.SupplierProduct{ProductName: "Galletas de Chocolate", WeightKg: 0.1, PricePerUnit: decimal.RequireFromString("0.80"), DeliveryTimeDays: 2, MinOrderQuantity: 50, Description: "Paquete de 4"}, ShelfLifeDays: 90},
	{SupplierProduct: models.SupplierProduct{ProductName: "Wrap Vegetal", WeightKg: 0.22, PricePerUnit: decimal.RequireFromString("1.45"), DeliveryTimeDays: 1, MinOrderQuantity: 50, Description: "Tortilla integral"}, ShelfLifeDays: 3},
	{SupplierProduct: models.SupplierProduct{ProductName: "Jugo de Naranja", WeightKg: 0.33, PricePerUnit: decimal.RequireFromString("0.65"), DeliveryTimeDays: 2, MinOrderQuantity: 50, Description: "Brick 330ml"}, ShelfLifeDays: 60},
	{SupplierProduct: models.SupplierProduct{ProductName: "Yogurt Natural", WeightKg: 0.15, PricePerUnit: decimal.RequireFromString("0.50"), DeliveryTimeDays: 2, MinOrderQuantity: 50, Description: "Vaso 125g"}, ShelfLifeDays: 21},
	{SupplierProduct: models.SupplierProduct{ProductName: "Croissant de Mantequilla", WeightKg: 0.09, PricePerUnit: decimal.RequireFromString("0.95"), DeliveryTimeDays: 1, MinOrderQuantity: 50, Description: "Horneado diario"}, ShelfLifeDays: 2},
	{SupplierProduct: models.SupplierProduct{ProductName: "Fruta Fresca", WeightKg: 0.2, PricePerUnit: decimal.RequireFromString("0.70"), DeliveryTimeDays: 1, MinOrderQuantity: 50, Description: "Pieza variada"}, ShelfLifeDays: 5},
	{SupplierProduct: models.SupplierProduct{ProductName: "Brownie de Chocolate", WeightKg: 0.08, PricePerUnit: decimal.RequireFromString("1.10"), DeliveryTimeDays: 2, MinOrderQuantity: 50, Description: "Porción individual"}, ShelfLifeDays: 14},
}

func supplierProduct(name string) (catalogProduct, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, p := range supplierCatalog {
		if strings.ToLower(p.ProductName) == want {
			return p, true
		}
	}
	return catalogProduct{}, false
}

func supplierProducts() []models.SupplierProduct {
	out := make([]models.SupplierProduct, 0, len(supplierCatalog))
	for _, p := range supplierCatalog {
		out = append(out, p.SupplierProduct)
	}
	return out
}

// Seeded flight schedule. Departures are relative to process start so
// the demo always shows upcoming flights.
func seededFlights() []models.Flight {
	return []models.Flight{
		{FlightNumber: "IB3456", Origin: "MAD", Destination: "Londres Heathrow", DepartureTime: departureIn(2 * time.Hour)},
		{FlightNumber: "UX1020", Origin: "MAD", Destination: "París Orly", DepartureTime: departureIn(4 * time.Hour)},
		{FlightNumber: "VY8812", Origin: "MAD", Destination: "Roma Fiumicino", DepartureTime: departureIn(6 * time.Hour)},
	}
}

func seededManifests() map[string][]models.ManifestLine {
	return map[string][]models.ManifestLine{
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
}

func departureIn(d time.Duration) string {
	return time.Now().Add(d).Truncate(time.Minute).Format(time.RFC3339)
}
