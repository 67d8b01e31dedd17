package view

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

func NotFoundPage() cmp.Node {
	return Page("Not found", nil, nil,
		g.Section(
			g.Class("card"),
			g.H1(cmp.Text("Page not found")),
			g.P(g.A(g.Href("/dashboard"), cmp.Text("Back to the dashboard"))),
		),
	)
}
