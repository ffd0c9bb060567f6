package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"stockpilot/infrastructure/backend"
	"stockpilot/models"
)

func newOrdersBackend(t *testing.T) (*atomic.Bool, *backend.Client) {
	t.Helper()
	var created atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /supplier/orders", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"order_id":"ORD-1","product_name":"Agua Mineral 500ml","quantity":100,"status":"in_delivery","order_date":"2026-08-28","expected_delivery":"2026-08-31"},
			{"order_id":"ORD-2","product_name":"Sandwich de Pollo","quantity":60,"status":"received","order_date":"2026-08-25","expected_delivery":"2026-08-27","lot_id":"LOT-AB12"}
		]`))
	})
	mux.HandleFunc("GET /supplier/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"product_name":"Agua Mineral 500ml","weight_kg":0.5,"price_per_unit":"0.35","delivery_time_days":2,"min_order_quantity":50},
			{"product_name":"Sandwich de Pollo","weight_kg":0.25,"price_per_unit":"1.20","delivery_time_days":1,"min_order_quantity":50}
		]`))
	})
	mux.HandleFunc("POST /supplier/orders", func(w http.ResponseWriter, r *http.Request) {
		created.Store(true)
		var req models.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity < 50 {
			http.Error(w, "bad order", http.StatusUnprocessableEntity)
			return
		}
		json.NewEncoder(w).Encode(models.Ack{Status: "ok"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &created, backend.New(srv.URL)
}

func TestFetchOverviewLoadsBothTogether(t *testing.T) {
	_, api := newOrdersBackend(t)
	ov, err := FetchOverview(context.Background(), api)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(ov.Orders) != 2 || len(ov.Products) != 2 {
		t.Fatalf("unexpected overview: %d orders, %d products", len(ov.Orders), len(ov.Products))
	}
}

func TestCreateOrderValidatesBeforeNetwork(t *testing.T) {
	created, api := newOrdersBackend(t)

	if err := CreateOrder(context.Background(), api, OrderForm{ProductName: "Agua Mineral 500ml", Quantity: 49}); err == nil {
		t.Fatal("quantity below 50 must be rejected")
	}
	if created.Load() {
		t.Fatal("invalid order must not reach the network")
	}

	if err := CreateOrder(context.Background(), api, OrderForm{ProductName: "Agua Mineral 500ml", Quantity: 50}); err != nil {
		t.Fatalf("minimum quantity should pass: %v", err)
	}
	if !created.Load() {
		t.Fatal("valid order should have been sent")
	}
}

func TestAllowedActionIsExclusiveByStatus(t *testing.T) {
	cases := map[string]string{
		models.OrderStatusInDelivery: "receive",
		models.OrderStatusReceived:   "place",
		models.OrderStatusAvailable:  "delete",
		"cancelled":                  "",
	}
	for status, want := range cases {
		if got := AllowedAction(status); got != want {
			t.Fatalf("AllowedAction(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestOrderCost(t *testing.T) {
	products := []models.SupplierProduct{
		{ProductName: "Agua Mineral 500ml", PricePerUnit: decimal.RequireFromString("0.35")},
	}
	order := models.Order{ProductName: " agua mineral 500ml ", Quantity: 100}
	cost, ok := OrderCost(products, order)
	if !ok {
		t.Fatal("product should match case-insensitively")
	}
	if cost.StringFixed(2) != "35.00" {
		t.Fatalf("cost = %s, want 35.00", cost.StringFixed(2))
	}
	if _, ok := OrderCost(products, models.Order{ProductName: "Nada"}); ok {
		t.Fatal("unknown product must not produce a cost")
	}
}

func TestRenderLotQRPNG(t *testing.T) {
	qrPNG, err := renderLotQRPNG("LOT-AB12", 128)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(qrPNG, []byte("\x89PNG")) {
		t.Fatal("output is not a PNG")
	}
	if _, err := renderLotQRPNG("", 128); err == nil {
		t.Fatal("empty value must fail")
	}
}
