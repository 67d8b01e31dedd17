package view

import (
	"fmt"
	"strconv"

	"github.com/vfg2006/studio-console/internal/domain"
	"github.com/vfg2006/studio-console/internal/usecases/dashboarding"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const (
	TimeframeFormPath = "/dashboard/timeframe"
	AlertDismissPath  = "/dashboard/dismiss"
)

// DashboardPage renders the studio dashboard for v.
func DashboardPage(sess *domain.Session, v dashboarding.DashboardView, flashes []string) cmp.Node {
	return Page("Dashboard", sess, flashes,
		g.Div(
			g.Class("dashboard"),
			g.Data("loaded", strconv.FormatBool(v.Loaded)),
			g.Div(
				g.Style("display:flex;justify-content:space-between;align-items:center"),
				g.H1(cmp.Text("Dashboard")),
				TimeframeSelect(v.TimeframeOptions),
			),
			g.Section(
				g.Class("grid"),
				g.Aria("label", "Key figures"),
				cmp.Map(v.Cards, KPICardNode),
			),
			g.Section(
				g.Class("card"),
				g.Style("margin-top:16px"),
				g.H2(cmp.Text("Earnings")),
				EarningsSummaryNode(v.Earnings),
				LineChart(v.Chart),
			),
			TopTestSeriesNode(v.TopTestSeries),
			cmp.If(len(v.RecentComments) > 0, recentComments(v.RecentComments)),
		),
		cmp.If(v.Alert != "", AlertDialog(v.Alert, AlertDismissPath)),
	)
}

// TimeframeSelect posts the chosen timeframe back to the dashboard.
func TimeframeSelect(options []dashboarding.TimeframeOption) cmp.Node {
	return g.Form(
		g.Method("post"),
		g.Action(TimeframeFormPath),
		g.Label(g.For("timeframe"), g.Class("visually-hidden"), cmp.Text("Timeframe")),
		g.Select(
			g.ID("timeframe"),
			g.Name("timeframe"),
			cmp.Attr("onchange", "this.form.submit()"),
			cmp.Map(options, func(o dashboarding.TimeframeOption) cmp.Node {
				return g.Option(g.Value(string(o.Value)), cmp.If(o.Selected, g.Selected()), cmp.Text(o.Label))
			}),
		),
		g.NoScript(g.Button(g.Type("submit"), cmp.Text("Apply"))),
	)
}

func KPICardNode(card dashboarding.KPICard) cmp.Node {
	metric := card.Metric()

	changeClass := "change-up"
	if metric.Change < 0 {
		changeClass = "change-down"
	}

	return g.Div(
		g.Class("card kpi"),
		g.Data("key", card.Key),
		g.Data("icon", card.Icon),
		g.Data("timeframe", string(card.Timeframe)),
		g.Div(g.Class("kpi-name"), cmp.Text(card.Name)),
		g.Div(g.Class("kpi-total"), g.Strong(cmp.Text(formatNumber(metric.Total)))),
		g.Div(g.Class("kpi-change "+changeClass), cmp.Text(fmt.Sprintf("%+.2f%%", metric.Change))),
	)
}

func EarningsSummaryNode(e dashboarding.EarningsSummary) cmp.Node {
	return g.Div(
		g.Class("grid"),
		figure("earnings-total", "Marketplace", e.Total),
		figure("earnings-last-month", "Last month", e.LastMonth),
		figure("earnings-last-week", "Last week", e.LastWeek),
	)
}

func figure(id, label, value string) cmp.Node {
	return g.Div(
		g.ID(id),
		g.Small(cmp.Text(label)),
		g.Div(g.Strong(cmp.Text(value))),
	)
}

// TopTestSeriesNode lists the recent test series, keyed by hash.
func TopTestSeriesNode(top dashboarding.TopTestSeries) cmp.Node {
	return g.Section(
		g.Class("card"),
		g.Style("margin-top:16px"),
		g.Div(
			g.Style("display:flex;justify-content:space-between;align-items:center"),
			g.H2(cmp.Text("Top Test Series")),
			g.A(g.Class("view-all"), g.Href(top.ViewAllURL), cmp.Text("View All")),
		),
		g.Div(
			g.Class("grid"),
			cmp.Map(top.Items, TestSeriesCardNode),
		),
	)
}

func TestSeriesCardNode(item dashboarding.TestSeriesCard) cmp.Node {
	return g.Article(
		g.Class("series"),
		g.Data("key", item.Key),
		cmp.If(item.Image != "", g.Img(g.Src(item.Image), g.Alt(item.Title), g.Loading("lazy"))),
		g.H3(cmp.Text(item.Title)),
		g.P(cmp.Text(item.Description)),
	)
}

func recentComments(comments []string) cmp.Node {
	return g.Section(
		g.Class("card"),
		g.Style("margin-top:16px"),
		g.H2(cmp.Text("Recent Comments")),
		g.Ul(cmp.Map(comments, func(c string) cmp.Node { return g.Li(cmp.Text(c)) })),
	)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
