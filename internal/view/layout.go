package view

import (
	"github.com/vfg2006/studio-console/internal/domain"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;background:#f5f6fa;color:#1f2430}
.topbar{display:flex;justify-content:space-between;align-items:center;padding:12px 24px;background:#fff;border-bottom:1px solid #e3e5ec}
.container{max-width:1200px;margin:0 auto;padding:24px}
.grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(220px,1fr));gap:16px}
.card{background:#fff;border-radius:8px;padding:16px;box-shadow:0 1px 2px rgba(0,0,0,.06)}
.change-up{color:#1a7f37}.change-down{color:#cf222e}
.flash{background:#fff8c5;border:1px solid #d4a72c;padding:8px 12px;border-radius:6px;margin-bottom:16px}
.alert-backdrop{position:fixed;inset:0;background:rgba(0,0,0,.45);display:flex;align-items:center;justify-content:center}
.alert{background:#fff;border-radius:8px;padding:24px;min-width:320px}
.series img{width:100%;height:140px;object-fit:cover;border-radius:6px}
`

// Page wraps body in the console document. sess may be nil on public pages.
func Page(title string, sess *domain.Session, flashes []string, body ...cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(title+" | Studio")),
				g.StyleEl(cmp.Raw(stylesheet)),
			),
			g.Body(
				topbar(sess),
				g.Main(
					g.Class("container"),
					cmp.Map(flashes, func(message string) cmp.Node {
						return g.Div(g.Class("flash"), g.Role("status"), cmp.Text(message))
					}),
					cmp.Group(body),
				),
			),
		),
	)
}

func topbar(sess *domain.Session) cmp.Node {
	return g.Header(
		g.Class("topbar"),
		g.A(g.Href("/dashboard"), g.Strong(cmp.Text("Studio"))),
		cmp.If(sess != nil, g.Div(
			g.Span(g.Class("user"), cmp.Text(sessionName(sess))),
			g.Form(
				g.Method("post"),
				g.Action("/logout"),
				g.Style("display:inline;margin-left:12px"),
				g.Button(g.Type("submit"), cmp.Text("Sign out")),
			),
		)),
	)
}

func sessionName(sess *domain.Session) string {
	if sess == nil {
		return ""
	}
	if sess.Name != "" {
		return sess.Name
	}
	return sess.Email
}
