package html

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Flash carries transient notifications between a redirect and the next
// render. Handlers put messages in the ?ok= / ?error= query params; the
// layout renders them once. This is the only notification channel — no
// ambient global state.
type Flash struct {
	Success string
	Error   string
}

// FlashFromRequest extracts flash messages from the query string.
func FlashFromRequest(r *http.Request) Flash {
	q := r.URL.Query()
	return Flash{Success: q.Get("ok"), Error: q.Get("error")}
}

func (f Flash) Render(_ context.Context, w io.Writer) error {
	if f.Success == "" && f.Error == "" {
		return nil
	}
	if f.Error != "" {
		if _, err := fmt.Fprintf(w, `<div class="flash flash-error" role="alert">%s</div>`, Esc(f.Error)); err != nil {
			return err
		}
	}
	if f.Success != "" {
		if _, err := fmt.Fprintf(w, `<div class="flash flash-ok" role="status">%s</div>`, Esc(f.Success)); err != nil {
			return err
		}
	}
	return nil
}
