package html

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"stockpilot/frontend/shared/nav"
)

// Opts controls the shared page chrome.
type Opts struct {
	Active string // top-nav highlight
	Flash  Flash
	// RefreshSeconds > 0 adds a meta refresh; the pick view uses it to
	// follow the server-side poll cycle.
	RefreshSeconds int
}

// Esc escapes text for HTML interpolation inside view components.
func Esc(s string) string {
	return templ.EscapeString(s)
}

// Page wraps a body component in the shared chrome: head, top nav and
// the flash region that carries transient notifications.
func Page(title string, opts Opts, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><link rel="stylesheet" href="/assets/app.css">`, Esc(title)); err != nil {
			return err
		}
		if opts.RefreshSeconds > 0 {
			if _, err := fmt.Fprintf(w, `<meta http-equiv="refresh" content="%d">`, opts.RefreshSeconds); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</head><body>`); err != nil {
			return err
		}
		if err := nav.TopNav(opts.Active).Render(ctx, w); err != nil {
			return err
		}
		if err := opts.Flash.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="page">`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>`+CSRFFormScript()+`</body></html>`)
		return err
	})
}

// BarePage renders without nav, for the login screen.
func BarePage(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><link rel="stylesheet" href="/assets/app.css"></head><body>`, Esc(title)); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, CSRFFormScript()+`</body></html>`)
		return err
	})
}
