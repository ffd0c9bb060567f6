package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"stockpilot/frontend/flights"
	"stockpilot/frontend/shared/html"
)

func DashboardPage(ov Overview, flash html.Flash) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Operations</h1>`); err != nil {
			return err
		}
		if err := statCards(w, ov); err != nil {
			return err
		}
		if err := flightTable(w, ov); err != nil {
			return err
		}
		return runStats(w, ov)
	})
	return html.Page("Operations dashboard", html.Opts{Active: "dashboard", Flash: flash}, body)
}

func statCards(w io.Writer, ov Overview) error {
	if ov.InventoryErr != "" {
		_, err := fmt.Fprintf(w, `<div class="flash flash-error">%s</div>`, html.Esc(ov.InventoryErr))
		return err
	}
	_, err := fmt.Fprintf(w,
		`<div class="cards"><div class="card"><span class="card-value">%d</span><span class="card-label">Units in stock</span></div><div class="card"><span class="card-value">%d</span><span class="card-label">Lots</span></div><div class="card"><span class="card-value">%d</span><span class="card-label">Products</span></div><div class="card card-risk"><span class="card-value">%d</span><span class="card-label">Units at risk (&le;3 days)</span></div></div>`,
		ov.Summary.TotalProducts, ov.Summary.TotalLots, ov.UniqueCount, ov.RiskUnits)
	return err
}

func flightTable(w io.Writer, ov Overview) error {
	if ov.FlightsErr != "" {
		_, err := fmt.Fprintf(w, `<div class="flash flash-error">%s</div>`, html.Esc(ov.FlightsErr))
		return err
	}
	if _, err := io.WriteString(w, `<h2>Pending flights</h2><table class="table"><thead><tr><th>Flight</th><th>Destination</th><th>Departure</th><th></th><th></th></tr></thead><tbody>`); err != nil {
		return err
	}
	priority, _ := ov.PriorityFlight()
	for _, f := range ov.Flights {
		badge := ""
		if f.FlightNumber == priority.FlightNumber {
			badge = ` <span class="badge badge-priority">priority</span>`
		}
		if _, err := fmt.Fprintf(w,
			`<tr><td>%s%s</td><td>%s</td><td>%s</td><td><a href="/ops/flights/%s/preparation">Prepare</a></td><td><a href="/ops/flights/%s/manifest.pdf">Manifest PDF</a></td></tr>`,
			html.Esc(f.FlightNumber), badge, html.Esc(f.Destination), html.Esc(departureLabel(f)),
			html.Esc(url.PathEscape(f.FlightNumber)), html.Esc(url.PathEscape(f.FlightNumber))); err != nil {
			return err
		}
	}
	if len(ov.Flights) == 0 {
		if _, err := io.WriteString(w, `<tr><td colspan="5" class="muted">No pending flights</td></tr>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody></table>`)
	return err
}

func runStats(w io.Writer, ov Overview) error {
	if !ov.HaveStats {
		return nil
	}
	_, err := fmt.Fprintf(w,
		`<h2>Pick runs</h2><div class="cards"><div class="card"><span class="card-value">%d</span><span class="card-label">Completed today</span></div><div class="card"><span class="card-value">%.0f%%</span><span class="card-label">Efficiency</span></div><div class="card"><span class="card-value">%d</span><span class="card-label">Runs this week</span></div><div class="card"><span class="card-value">%.1f min</span><span class="card-label">Avg time per run</span></div></div>`,
		ov.Stats.CompletedToday, ov.Stats.Efficiency, ov.Stats.TotalRunsThisWeek, ov.Stats.AverageTimePerRun)
	return err
}

func departureLabel(f flights.Flight) string {
	if f.DepartureTime.IsZero() {
		return f.DepartureRaw
	}
	return f.DepartureTime.Format("Mon 15:04")
}
