package inventory

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"stockpilot/frontend/shared/html"
)

// InventoryPage renders summary cards, the active projection and the
// lot-creation form.
func InventoryPage(ov Overview, viewMode string, flash html.Flash) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		now := time.Now()

		if _, err := fmt.Fprintf(w, `<h1>Inventory</h1>
<section class="cards">
<div class="card"><span class="card-label">Total units</span><span class="card-value">%d</span></div>
<div class="card"><span class="card-label">Lots</span><span class="card-value">%d</span></div>
<div class="card"><span class="card-label">Distinct products</span><span class="card-value">%d</span></div>
<div class="card card-alert"><span class="card-label">At-risk units (&le;3 days)</span><span class="card-value">%d</span></div>
</section>`,
			ov.Summary.TotalProducts, ov.Summary.TotalLots, UniqueProducts(ov.Items), RiskUnits(ov.Items, now)); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<div class="toolbar">
<a class="btn%s" href="/ops/inventory?view=grouped">Grouped</a>
<a class="btn%s" href="/ops/inventory?view=detailed">Detailed</a>
<a class="btn" href="/ops/inventory/export.csv">Export CSV</a>
<form method="post" action="/ops/inventory/ai-report" class="inline-form"><button type="submit" class="btn">AI Report</button></form>
</div>`, activeClass(viewMode == "grouped"), activeClass(viewMode == "detailed")); err != nil {
			return err
		}

		var err error
		if viewMode == "detailed" {
			err = renderDetailed(w, ov, now)
		} else {
			err = renderGrouped(w, ov, now)
		}
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, `<section class="panel"><h2>New lot</h2>
<form method="post" action="/ops/inventory/lots" class="form-grid">
<label>Lot ID <input type="text" name="lot_id" placeholder="generated if empty"></label>
<label>Quantity <input type="number" name="cantidad" min="1" value="10" required></label>
<label>Days to expiry <input type="number" name="dias_caducidad" min="0" value="7" required></label>
<label>Product <input type="text" name="product_name" required></label>
<button type="submit" class="btn btn-primary">Create lot</button>
</form></section>`)
		return err
	})
	return html.Page("Inventory", html.Opts{Active: "inventory", Flash: flash}, body)
}

func activeClass(active bool) string {
	if active {
		return " active"
	}
	return ""
}

func renderGrouped(w io.Writer, ov Overview, now time.Time) error {
	if _, err := io.WriteString(w, `<section class="panel"><h2>By product</h2>`); err != nil {
		return err
	}
	if len(ov.Groups) == 0 {
		if _, err := io.WriteString(w, `<p class="empty">Inventory is empty.</p>`); err != nil {
			return err
		}
	}
	for _, group := range ov.Groups {
		if _, err := fmt.Fprintf(w, `<details class="product-group"><summary>%s <span class="badge">%d units</span></summary>`,
			html.Esc(group.ProductName), group.TotalQuantity); err != nil {
			return err
		}
		for _, lot := range group.Lots {
			if _, err := fmt.Fprintf(w, `<details class="lot"><summary>Lot %s <span class="badge badge-%s">%d units, earliest expiry %s</span></summary>
<form method="post" action="/ops/inventory/lots/%s/delete" class="inline-form"><button type="submit" class="btn btn-danger">Delete lot</button></form><ul class="units">`,
				html.Esc(lot.LotID), expiryClassOf(lot.EarliestExpiry, now), lot.Cantidad, html.Esc(lot.EarliestExpiry), html.Esc(lot.LotID)); err != nil {
				return err
			}
			for _, unitID := range lot.IndividualIDs {
				if _, err := fmt.Fprintf(w, `<li><code>%s</code><form method="post" action="/ops/inventory/lots/%s/delete" class="inline-form"><button type="submit" class="btn btn-ghost">remove</button></form></li>`,
					html.Esc(unitID), html.Esc(unitID)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</ul></details>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</details>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</section>`)
	return err
}

func renderDetailed(w io.Writer, ov Overview, now time.Time) error {
	if _, err := io.WriteString(w, `<section class="panel"><h2>All units</h2>
<table class="table"><thead><tr><th>Lot</th><th>Unit</th><th>Product</th><th>Expiry</th><th></th></tr></thead><tbody>`); err != nil {
		return err
	}
	for _, item := range ov.Items {
		if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td><code>%s</code></td><td>%s</td><td><span class="badge badge-%s">%s</span></td>
<td><form method="post" action="/ops/inventory/lots/%s/delete" class="inline-form"><button type="submit" class="btn btn-danger">Delete</button></form></td></tr>`,
			html.Esc(item.LotID), html.Esc(item.IndividualID), html.Esc(item.ProductName),
			expiryClassOf(item.Expiry, now), html.Esc(item.Expiry), html.Esc(item.IndividualID)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody></table></section>`)
	return err
}

func expiryClassOf(raw string, now time.Time) string {
	exp, ok := ParseExpiry(raw)
	if !ok {
		return ExpiryGood
	}
	return ExpiryClass(exp, now)
}

// ErrorPage is the recoverable error panel with a manual way back.
func ErrorPage(message string) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="panel panel-error"><h1>Inventory unavailable</h1><p>%s</p><a class="btn" href="/ops">Back to dashboard</a></section>`, html.Esc(message))
		return err
	})
	return html.Page("Inventory", html.Opts{Active: "inventory"}, body)
}
