package nav

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type navLink struct {
	Key   string
	Label string
	Href  string
}

var links = []navLink{
	{Key: "dashboard", Label: "Dashboard", Href: "/ops"},
	{Key: "inventory", Label: "Inventory", Href: "/ops/inventory"},
	{Key: "orders", Label: "Orders", Href: "/ops/orders"},
	{Key: "settings", Label: "Settings", Href: "/ops/settings"},
}

// TopNav renders the operator navigation bar with the active tab marked.
func TopNav(active string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header class="topnav"><span class="brand">PickRun Navigator</span><nav>`); err != nil {
			return err
		}
		for _, l := range links {
			class := "nav-link"
			if l.Key == active {
				class = "nav-link active"
			}
			if _, err := fmt.Fprintf(w, `<a class="%s" href="%s">%s</a>`, class, l.Href, templ.EscapeString(l.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav><form method="post" action="/logout" class="logout-form"><button type="submit" class="btn btn-ghost">Log out</button></form></header>`)
		return err
	})
}
