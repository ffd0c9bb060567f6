package orders

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"stockpilot/infrastructure/backend"
	"stockpilot/models"
)

var validate = validator.New()

// Overview pairs the order list with the supplier catalog; both are
// loaded together so the creation form and the table agree.
type Overview struct {
	Orders   []models.Order
	Products []models.SupplierProduct
}

func FetchOrders(ctx context.Context, api *backend.Client) ([]models.Order, error) {
	var orders []models.Order
	if err := api.Get(ctx, "/supplier/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func FetchSupplierProducts(ctx context.Context, api *backend.Client) ([]models.SupplierProduct, error) {
	var products []models.SupplierProduct
	if err := api.Get(ctx, "/supplier/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchOverview loads orders and the supplier catalog concurrently.
// Either failure fails the whole view.
func FetchOverview(ctx context.Context, api *backend.Client) (Overview, error) {
	var ov Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orders, err := FetchOrders(ctx, api)
		if err == nil {
			ov.Orders = orders
		}
		return err
	})
	g.Go(func() error {
		products, err := FetchSupplierProducts(ctx, api)
		if err == nil {
			ov.Products = products
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return ov, nil
}

// OrderForm is the creation input. Quantity is checked against the
// 50-unit minimum before any network call.
type OrderForm struct {
	ProductName string `validate:"required"`
	Quantity    int    `validate:"gte=50"`
}

func CreateOrder(ctx context.Context, api *backend.Client, form OrderForm) error {
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("invalid order: %w", err)
	}
	req := models.CreateOrderRequest{ProductName: form.ProductName, Quantity: form.Quantity}
	return api.Post(ctx, "/supplier/orders", req, nil)
}

func ReceiveOrder(ctx context.Context, api *backend.Client, orderID string) error {
	return api.Post(ctx, "/supplier/orders/"+url.PathEscape(orderID)+"/receive", nil, nil)
}

func PlaceOrder(ctx context.Context, api *backend.Client, orderID string) error {
	return api.Post(ctx, "/supplier/orders/"+url.PathEscape(orderID)+"/place", nil, nil)
}

func DeleteOrder(ctx context.Context, api *backend.Client, orderID string) error {
	return api.Delete(ctx, "/supplier/orders/"+url.PathEscape(orderID), nil)
}

// AllowedAction maps an order status to its single permitted action.
// The lifecycle is in_delivery → received → available → deleted.
func AllowedAction(status string) string {
	switch status {
	case models.OrderStatusInDelivery:
		return "receive"
	case models.OrderStatusReceived:
		return "place"
	case models.OrderStatusAvailable:
		return "delete"
	default:
		return ""
	}
}

// OrderCost is quantity times the supplier's unit price, exact decimal
// arithmetic. The bool is false when the product is not in the catalog.
func OrderCost(products []models.SupplierProduct, order models.Order) (decimal.Decimal, bool) {
	for _, p := range products {
		if strings.EqualFold(strings.TrimSpace(p.ProductName), strings.TrimSpace(order.ProductName)) {
			return p.PricePerUnit.Mul(decimal.NewFromInt(int64(order.Quantity))), true
		}
	}
	return decimal.Zero, false
}
