package preparation

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"stockpilot/frontend/flights"
	"stockpilot/frontend/shared/html"
)

// PreparationPage shows the manifest table with inferred categories
// and priority-lot codes, a running unit total and the start-run
// action.
func PreparationPage(details flights.FlightDetails, flash html.Flash) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		departure := details.DepartureRaw
		if !details.DepartureTime.IsZero() {
			departure = details.DepartureTime.Format("Mon 02 Jan 15:04")
		}
		if _, err := fmt.Fprintf(w,
			`<header class="prep-header"><h1>Flight %s</h1><p class="muted">%s &middot; departs %s</p></header>`,
			html.Esc(details.FlightNumber), html.Esc(details.Destination), html.Esc(departure)); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<table class="table"><thead><tr><th>Product</th><th>Category</th><th>Quantity</th><th>Priority lot</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, p := range details.Products {
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td><span class="badge">%s</span></td><td>%d</td><td><span class="lot-code">%s</span></td></tr>`,
				html.Esc(p.ProductName), html.Esc(p.Category), p.CategoryQuantity, html.Esc(p.PriorityLot)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w,
			`</tbody><tfoot><tr><th colspan="2">Total units</th><th>%d</th><th></th></tr></tfoot></table>`,
			details.TotalUnits()); err != nil {
			return err
		}

		escaped := html.Esc(url.PathEscape(details.FlightNumber))
		_, err := fmt.Fprintf(w,
			`<div class="prep-actions"><form method="post" action="/ops/flights/%s/run/start"><button type="submit">Start pick run</button></form><a class="button secondary" href="/ops/flights/%s/manifest.pdf">Print manifest</a></div>`,
			escaped, escaped)
		return err
	})
	return html.Page("Preparation "+details.FlightNumber, html.Opts{Active: "dashboard", Flash: flash}, body)
}
