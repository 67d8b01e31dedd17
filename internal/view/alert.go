package view

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// AlertDialog renders a blocking message. Dismissing it follows dismissURL.
func AlertDialog(message, dismissURL string) cmp.Node {
	return g.Div(
		g.Class("alert-backdrop"),
		g.Div(
			g.Class("alert"),
			g.Role("alertdialog"),
			g.Aria("modal", "true"),
			g.Aria("labelledby", "alert-message"),
			g.P(g.ID("alert-message"), cmp.Text(message)),
			g.A(g.Href(dismissURL), g.Role("button"), cmp.Text("OK")),
		),
	)
}
