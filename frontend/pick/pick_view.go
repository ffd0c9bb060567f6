package pick

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"stockpilot/frontend/shared/html"
)

// RunPage is the live shelf view. The page refreshes itself on the
// tracker's poll cadence so the sensor colors stay current without
// any client scripting.
func RunPage(snap Snapshot, flash html.Flash) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<header class="run-header"><h1>Pick run %s</h1><p class="muted">%s</p></header>`,
			html.Esc(snap.Flight.FlightNumber), html.Esc(snap.Flight.Destination)); err != nil {
			return err
		}
		if snap.Err != "" {
			if _, err := fmt.Fprintf(w, `<div class="flash flash-error">Live data unavailable: %s (showing last known state)</div>`, html.Esc(snap.Err)); err != nil {
				return err
			}
		}
		if !snap.Loaded {
			if _, err := io.WriteString(w, `<p class="muted">Loading shelf sensors…</p>`); err != nil {
				return err
			}
			return stopForm(w)
		}

		if err := progressBar(w, snap); err != nil {
			return err
		}

		active, haveActive := ActiveProduct(snap)
		required := requiredByProduct(snap)

		if _, err := io.WriteString(w, `<div class="shelf-aisle">`); err != nil {
			return err
		}
		for i, ps := range snap.Products {
			side := "shelf-left"
			if i%2 == 1 {
				side = "shelf-right"
			}
			classes := "shelf " + side + " shelf-" + html.Esc(ps.Color)
			if haveActive && ps.ProductName == active.ProductName {
				classes += " shelf-active"
			}
			if _, err := fmt.Fprintf(w, `<section class="%s"><h2>%s</h2>`, classes, html.Esc(ps.ProductName)); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, `<p>In basket: <strong>%d</strong> / %d &middot; on shelf: %d</p>`,
				ps.UnitsInBasket, required[ps.ProductName], ps.UnitsRemaining); err != nil {
				return err
			}
			if ps.NeedsMore > 0 {
				if _, err := fmt.Fprintf(w, `<p class="muted">%d more available</p>`, ps.NeedsMore); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w,
				`<div class="shelf-actions"><form method="post" action="/ops/run/take/%s"><button type="submit">Take one</button></form><form method="post" action="/ops/run/put/%s"><button type="submit" class="secondary">Put back</button></form></div></section>`,
				html.Esc(url.PathEscape(ps.ProductName)), html.Esc(url.PathEscape(ps.ProductName))); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		if !haveActive {
			if _, err := io.WriteString(w, `<div class="flash flash-success">All products picked. Stop the run to finish.</div>`); err != nil {
				return err
			}
		}
		return stopForm(w)
	})

	return html.Page("Pick run", html.Opts{Active: "run", Flash: flash, RefreshSeconds: 2}, body)
}

func progressBar(w io.Writer, snap Snapshot) error {
	total := snap.Flight.TotalUnits()
	picked := 0
	for _, ps := range snap.Products {
		picked += ps.UnitsInBasket
	}
	pct := 0
	if total > 0 {
		pct = picked * 100 / total
	}
	_, err := fmt.Fprintf(w,
		`<div class="progress"><div class="progress-fill" style="width:%d%%"></div><span>%d / %d units</span></div>`,
		pct, picked, total)
	return err
}

func stopForm(w io.Writer) error {
	_, err := io.WriteString(w, `<form method="post" action="/ops/run/stop" class="run-stop"><button type="submit" class="danger">Stop run</button></form>`)
	return err
}

func requiredByProduct(snap Snapshot) map[string]int {
	m := make(map[string]int, len(snap.Flight.Products))
	for _, p := range snap.Flight.Products {
		m[p.ProductName] = p.CategoryQuantity
	}
	return m
}
