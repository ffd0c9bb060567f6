package orders

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"stockpilot/frontend/shared/html"
	"stockpilot/models"
)

func OrdersPage(ov Overview, flash html.Flash) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Supplier orders</h1>`); err != nil {
			return err
		}
		if err := orderTable(w, ov); err != nil {
			return err
		}
		return createForm(w, ov.Products)
	})
	return html.Page("Supplier orders", html.Opts{Active: "orders", Flash: flash}, body)
}

func orderTable(w io.Writer, ov Overview) error {
	if _, err := io.WriteString(w, `<table class="table"><thead><tr><th>Order</th><th>Product</th><th>Qty</th><th>Cost</th><th>Status</th><th>Expected</th><th>Lot</th><th></th></tr></thead><tbody>`); err != nil {
		return err
	}
	for _, o := range ov.Orders {
		cost := "-"
		if c, ok := OrderCost(ov.Products, o); ok {
			cost = "$" + c.StringFixed(2)
		}
		lot := ""
		if o.LotID != "" {
			lot = fmt.Sprintf(`<img class="qr" src="/ops/orders/%s/qr.png" alt="%s" title="%s">`,
				html.Esc(url.PathEscape(o.OrderID)), html.Esc(o.LotID), html.Esc(o.LotID))
		}
		if _, err := fmt.Fprintf(w,
			`<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td><td><span class="badge badge-%s">%s</span></td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			html.Esc(o.OrderID), html.Esc(o.ProductName), o.Quantity, cost,
			html.Esc(o.Status), html.Esc(o.Status), html.Esc(o.ExpectedDelivery), lot, actionButton(o)); err != nil {
			return err
		}
	}
	if len(ov.Orders) == 0 {
		if _, err := io.WriteString(w, `<tr><td colspan="8" class="muted">No orders yet</td></tr>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody></table>`)
	return err
}

// actionButton renders exactly one button per order, chosen by status.
func actionButton(o models.Order) string {
	action := AllowedAction(o.Status)
	if action == "" {
		return ""
	}
	label := map[string]string{"receive": "Receive", "place": "Place in inventory", "delete": "Delete"}[action]
	class := ""
	if action == "delete" {
		class = ` class="danger"`
	}
	return fmt.Sprintf(`<form method="post" action="/ops/orders/%s/%s"><button type="submit"%s>%s</button></form>`,
		html.Esc(url.PathEscape(o.OrderID)), action, class, label)
}

func createForm(w io.Writer, products []models.SupplierProduct) error {
	if _, err := io.WriteString(w, `<h2>New order</h2><form method="post" action="/ops/orders" class="order-form"><label>Product <select name="product_name" required><option value="">Choose…</option>`); err != nil {
		return err
	}
	for _, p := range products {
		if _, err := fmt.Fprintf(w, `<option value="%s">%s ($%s/unit, min %d)</option>`,
			html.Esc(p.ProductName), html.Esc(p.ProductName), p.PricePerUnit.StringFixed(2), p.MinOrderQuantity); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</select></label><label>Quantity <input type="number" name="quantity" min="50" value="50" required></label><button type="submit">Create order</button></form>`)
	return err
}
