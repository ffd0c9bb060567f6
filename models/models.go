package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Wire-format records shared by the dashboard services and the dev
// stub backend. Field names follow the backend's snake_case JSON; the
// view layer adapts them into presentation models.

type Flight struct {
	FlightNumber  string `json:"flight_number"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departure_time"`
}

type ManifestLine struct {
	FlightNumber     string  `json:"flight_number"`
	ProductName      string  `json:"product_name"`
	CategoryQuantity int     `json:"category_quantity"`
	WeightKg         float64 `json:"weight_kg"`
}

// InventoryItem is one physical unit. The bun tags serve the stub
// backend's storage; the dashboard itself never persists these.
type InventoryItem struct {
	bun.BaseModel `bun:"table:inventory" json:"-"`

	LotID        string `bun:"lot_id,notnull" json:"lot_id"`
	IndividualID string `bun:"id_individual,pk" json:"id_individual"`
	Expiry       string `bun:"caducidad,notnull" json:"caducidad"`
	ProductName  string `bun:"product_name,notnull" json:"product_name"`
}

type CreateLotRequest struct {
	LotID       string `json:"lot_id"`
	Cantidad    int    `json:"cantidad"`
	DiasCad     int    `json:"dias_caducidad"`
	ProductName string `json:"product_name"`
}

type LotSummary struct {
	LotID          string `json:"lot_id"`
	Cantidad       int    `json:"cantidad"`
	EarliestExpiry string `json:"fecha_caducidad_mas_temprana"`
}

type InventorySummary struct {
	TotalProducts int          `json:"total_products"`
	TotalLots     int          `json:"total_lots"`
	Lots          []LotSummary `json:"lots"`
}

type ProductLot struct {
	LotID          string   `json:"lot_id"`
	Cantidad       int      `json:"cantidad"`
	EarliestExpiry string   `json:"fecha_caducidad_mas_temprana"`
	IndividualIDs  []string `json:"ids_individuales"`
}

type ProductGroup struct {
	ProductName   string       `json:"product_name"`
	TotalQuantity int          `json:"total_quantity"`
	Lots          []ProductLot `json:"lots"`
}

// Sensor is one shelf reading during a pick run. Color and weights are
// backend-owned; the dashboard renders them verbatim.
type Sensor struct {
	Color          string  `json:"color"`
	CurrentWeight  float64 `json:"current_weight"`
	ExpectedWeight float64 `json:"expected_weight"`
	UnitsRemaining int     `json:"units_remaining"`
	Active         bool    `json:"active"`
}

type RunStatus struct {
	Sensors map[string]Sensor `json:"sensors"`
	Basket  map[string]int    `json:"basket"`
}

// Ack is the generic mutation acknowledgment. Some endpoints signal
// failure with Status "error" under a 2xx response.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SupplierProduct struct {
	ProductName      string          `json:"product_name"`
	WeightKg         float64         `json:"weight_kg"`
	PricePerUnit     decimal.Decimal `json:"price_per_unit"`
	DeliveryTimeDays int             `json:"delivery_time_days"`
	MinOrderQuantity int             `json:"min_order_quantity"`
	Description      string          `json:"description"`
}

const (
	OrderStatusInDelivery = "in_delivery"
	OrderStatusReceived   = "received"
	OrderStatusAvailable  = "available"
)

type Order struct {
	bun.BaseModel `bun:"table:orders" json:"-"`

	OrderID          string `bun:"order_id,pk" json:"order_id"`
	ProductName      string `bun:"product_name,notnull" json:"product_name"`
	Quantity         int    `bun:"quantity,notnull" json:"quantity"`
	Status           string `bun:"status,notnull" json:"status"`
	OrderDate        string `bun:"order_date,notnull" json:"order_date"`
	ExpectedDelivery string `bun:"expected_delivery" json:"expected_delivery"`
	ActualDelivery   string `bun:"actual_delivery" json:"actual_delivery,omitempty"`
	LotID            string `bun:"lot_id" json:"lot_id,omitempty"`
	QRCode           string `bun:"qr_code" json:"qr_code,omitempty"`
}

type CreateOrderRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type SimulationSettings struct {
	DeliveryTimeMultiplier float64 `json:"delivery_time_multiplier"`
	AutoPlaceOrders        bool    `json:"auto_place_orders"`
}

type RunStats struct {
	CompletedToday    int     `json:"completed_today"`
	Efficiency        float64 `json:"efficiency"`
	TotalRunsThisWeek int     `json:"total_runs_this_week"`
	AverageTimePerRun float64 `json:"average_time_per_run"`
}

// Session is an operator login session held in the in-memory cache.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
