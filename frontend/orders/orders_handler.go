package orders

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"stockpilot/frontend/shared/html"
	"stockpilot/infrastructure/backend"
)

// GetOrdersScreenHandler renders the supplier-order table and the
// creation dialog.
func GetOrdersScreenHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ov, err := FetchOverview(r.Context(), api)
		if err != nil {
			slog.Error("orders load failed", slog.Any("err", err))
			http.Redirect(w, r, "/ops?error="+url.QueryEscape("Could not load orders"), http.StatusSeeOther)
			return
		}
		OrdersPage(ov, html.FlashFromRequest(r)).Render(r.Context(), w)
	}
}

// CreateOrderCommandHandler places a new supplier order from the form.
func CreateOrderCommandHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quantity, err := strconv.Atoi(r.FormValue("quantity"))
		if err != nil {
			redirectOrdersError(w, r, "Quantity must be a number")
			return
		}
		form := OrderForm{ProductName: r.FormValue("product_name"), Quantity: quantity}
		if err := CreateOrder(r.Context(), api, form); err != nil {
			slog.Error("create order failed", slog.String("product", form.ProductName), slog.Any("err", err))
			redirectOrdersError(w, r, "Could not create order (minimum quantity is 50)")
			return
		}
		http.Redirect(w, r, "/ops/orders?ok="+url.QueryEscape("Order placed"), http.StatusSeeOther)
	}
}

// CreateOrderActionHandler runs one lifecycle transition. The action
// is part of the route so each button posts to its own URL.
func CreateOrderActionHandler(api *backend.Client, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderID")
		var err error
		var okMsg string
		switch action {
		case "receive":
			err = ReceiveOrder(r.Context(), api, orderID)
			okMsg = "Order received"
		case "place":
			err = PlaceOrder(r.Context(), api, orderID)
			okMsg = "Order placed into inventory"
		case "delete":
			err = DeleteOrder(r.Context(), api, orderID)
			okMsg = "Order removed"
		default:
			http.NotFound(w, r)
			return
		}
		if err != nil {
			slog.Error("order action failed", slog.String("action", action), slog.String("order", orderID), slog.Any("err", err))
			redirectOrdersError(w, r, "Could not "+action+" order "+orderID)
			return
		}
		http.Redirect(w, r, "/ops/orders?ok="+url.QueryEscape(okMsg), http.StatusSeeOther)
	}
}

// GetOrderQRHandler serves the QR tag for an order's lot id.
func GetOrderQRHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderID")
		list, err := FetchOrders(r.Context(), api)
		if err != nil {
			http.Error(w, "orders unavailable", http.StatusBadGateway)
			return
		}
		for _, o := range list {
			if o.OrderID != orderID {
				continue
			}
			value := o.LotID
			if value == "" {
				value = o.QRCode
			}
			qrPNG, err := renderLotQRPNG(value, 320)
			if err != nil {
				http.Error(w, "no lot code for this order", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(qrPNG)
			return
		}
		http.NotFound(w, r)
	}
}

func redirectOrdersError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/ops/orders?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
