package settings

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"stockpilot/frontend/shared/html"
	"stockpilot/models"
)

func SettingsPage(current models.SimulationSettings, flash html.Flash) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		checked := ""
		if current.AutoPlaceOrders {
			checked = " checked"
		}
		_, err := fmt.Fprintf(w,
			`<h1>Simulation settings</h1><form method="post" action="/ops/settings" class="settings-form"><label>Delivery time multiplier <input type="number" name="delivery_time_multiplier" step="0.1" min="0.1" max="10" value="%g" required></label><label class="toggle"><input type="checkbox" name="auto_place_orders"%s> Auto-place received orders</label><button type="submit">Save</button></form>`,
			current.DeliveryTimeMultiplier, checked)
		return err
	})
	return html.Page("Simulation settings", html.Opts{Active: "settings", Flash: flash}, body)
}
