package login

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"stockpilot/frontend/shared/html"
)

// GetLoginScreen is the operator access-code form.
func GetLoginScreen(errorMessage string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="login-box"><h1>StockPilot</h1><p class="muted">Catering operations</p>`); err != nil {
			return err
		}
		if errorMessage != "" {
			if _, err := fmt.Fprintf(w, `<div class="flash flash-error">%s</div>`, html.Esc(errorMessage)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<form method="post" action="/login"><label>Access code <input type="password" name="access_code" autofocus required></label><button type="submit">Sign in</button></form></div>`)
		return err
	})
	return html.BarePage("Sign in", body)
}
