package dashboarding

import (
	"fmt"

	"github.com/vfg2006/studio-console/internal/domain"
)

type TimeframeOption struct {
	Value    domain.Timeframe `json:"value"`
	Label    string           `json:"label"`
	Selected bool             `json:"selected"`
}

// KPICard binds one widget group to the selected timeframe.
type KPICard struct {
	Key       string              `json:"key"`
	Name      string              `json:"name"`
	Icon      string              `json:"icon"`
	Timeframe domain.Timeframe    `json:"timeframe"`
	Group     *domain.WidgetGroup `json:"card_data,omitempty"`
}

// Metric is the value the card displays for its timeframe.
func (c KPICard) Metric() domain.WidgetMetric {
	return c.Group.Pick(c.Timeframe)
}

// EarningsSummary holds the three scalar earnings figures, already formatted
// with two decimals.
type EarningsSummary struct {
	Total     string `json:"total"`
	LastWeek  string `json:"last_week"`
	LastMonth string `json:"last_month"`
}

type Chart struct {
	XKey   string                      `json:"x_key"`
	Line   string                      `json:"line"`
	Points []domain.EarningsGraphPoint `json:"points"`
}

type TestSeriesCard struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"desc"`
	Image       string `json:"img"`
	Hash        string `json:"hash"`
}

type TopTestSeries struct {
	ViewAllURL string           `json:"view_all_url"`
	Items      []TestSeriesCard `json:"items"`
}

// DashboardView is everything the dashboard page renders.
type DashboardView struct {
	Loaded           bool              `json:"loaded"`
	Alert            string            `json:"alert,omitempty"`
	Timeframe        domain.Timeframe  `json:"timeframe"`
	TimeframeOptions []TimeframeOption `json:"timeframe_options"`
	Cards            []KPICard         `json:"cards"`
	Earnings         EarningsSummary   `json:"earnings"`
	Chart            Chart             `json:"chart"`
	TopTestSeries    TopTestSeries     `json:"top_test_series"`
	RecentComments   []string          `json:"recent_comments"`
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func buildView(snapshot *domain.DashboardSnapshot, timeframe domain.Timeframe, alert string) DashboardView {
	options := make([]TimeframeOption, 0, len(domain.Timeframes))
	for _, tf := range domain.Timeframes {
		options = append(options, TimeframeOption{Value: tf, Label: tf.Label(), Selected: tf == timeframe})
	}

	widgets := snapshot.GetWidgets()
	cards := []KPICard{
		{Key: "students", Name: "Students", Icon: "student", Timeframe: timeframe, Group: widgets.GetStudents()},
		{Key: "earnings", Name: "Earnings", Icon: "coin", Timeframe: timeframe, Group: widgets.GetEarnings()},
		{Key: "test_series_sell", Name: "Series Sold", Icon: "cart", Timeframe: timeframe, Group: widgets.GetTestSeriesSell()},
		{Key: "tests_taken", Name: "Tests Taken", Icon: "paper", Timeframe: timeframe, Group: widgets.GetTestsTaken()},
	}

	earnings := snapshot.GetEarnings()
	overview := earnings.GetOverview()

	graph := earnings.GetGraph()
	if graph == nil {
		graph = []domain.EarningsGraphPoint{}
	}

	series := snapshot.GetRecentTestSeries()
	items := make([]TestSeriesCard, 0, len(series))
	for _, ts := range series {
		items = append(items, TestSeriesCard{
			Key:         ts.Hash,
			Title:       ts.Title,
			Description: ts.Description,
			Image:       ts.CoverPhoto,
			Hash:        ts.Hash,
		})
	}

	comments := snapshot.GetRecentComments()
	if comments == nil {
		comments = []string{}
	}

	return DashboardView{
		Loaded:           snapshot != nil,
		Alert:            alert,
		Timeframe:        timeframe,
		TimeframeOptions: options,
		Cards:            cards,
		Earnings: EarningsSummary{
			Total:     formatAmount(overview.Total),
			LastWeek:  formatAmount(overview.LastWeek),
			LastMonth: formatAmount(overview.LastMonth),
		},
		Chart: Chart{
			XKey:   "month",
			Line:   "income",
			Points: graph,
		},
		TopTestSeries: TopTestSeries{
			ViewAllURL: TestSeriesPath,
			Items:      items,
		},
		RecentComments: comments,
	}
}
