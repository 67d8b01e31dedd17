package view

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

type LoginForm struct {
	Email   string
	Error   string
	Flashes []string
}

func LoginPage(form LoginForm) cmp.Node {
	return Page("Sign in", nil, form.Flashes,
		g.Section(
			g.Class("card"),
			g.Style("max-width:380px;margin:48px auto"),
			g.H1(cmp.Text("Sign in to Studio")),
			cmp.If(form.Error != "", g.P(g.Class("change-down"), g.Role("alert"), cmp.Text(form.Error))),
			g.Form(
				g.Method("post"),
				g.Action("/login"),
				g.Div(
					g.Label(g.For("email"), cmp.Text("Email")),
					g.Input(g.ID("email"), g.Type("email"), g.Name("email"), g.Value(form.Email), g.Required(), g.AutoComplete("username")),
				),
				g.Div(
					g.Label(g.For("password"), cmp.Text("Password")),
					g.Input(g.ID("password"), g.Type("password"), g.Name("password"), g.Required(), g.AutoComplete("current-password")),
				),
				g.Button(g.Type("submit"), cmp.Text("Sign in")),
			),
		),
	)
}
