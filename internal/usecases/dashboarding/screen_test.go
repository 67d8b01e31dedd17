package dashboarding

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/studio-console/infrastructure/integrator/studio/mocks"
	"github.com/vfg2006/studio-console/infrastructure/integrator/studio/studioclient"
	"github.com/vfg2006/studio-console/internal/domain"
	"github.com/vfg2006/studio-console/pkg/log"
	"go.uber.org/mock/gomock"
)

func testSession(token string) *domain.Session {
	return &domain.Session{
		ID:          "sess-1",
		UserID:      42,
		Name:        "Asha",
		AccessToken: token,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func testSnapshot() *domain.DashboardSnapshot {
	totalTests := 25
	return &domain.DashboardSnapshot{
		Widgets: &domain.Widgets{
			Students: &domain.WidgetGroup{
				Weekly:  &domain.WidgetMetric{Total: 4, Change: 1},
				Monthly: &domain.WidgetMetric{Total: 18, Change: 12.5},
				Yearly:  &domain.WidgetMetric{Total: 210, Change: 40},
			},
			Earnings: &domain.WidgetGroup{
				Weekly:  &domain.WidgetMetric{Total: 999.5, Change: -3},
				Monthly: &domain.WidgetMetric{Total: 4100, Change: 8},
			},
			TestSeriesSell: &domain.WidgetGroup{
				Weekly:  &domain.WidgetMetric{Total: 2},
				Monthly: &domain.WidgetMetric{Total: 9},
			},
			TestsTaken: &domain.WidgetGroup{
				Weekly:  &domain.WidgetMetric{Total: 77},
				Monthly: &domain.WidgetMetric{Total: 301},
			},
		},
		Earnings: &domain.Earnings{
			Overview: &domain.EarningsOverview{Total: 12345.678, LastMonth: 4100, LastWeek: 999.5},
			Graph: []domain.EarningsGraphPoint{
				{Month: "Jan", Income: 1000},
				{Month: "Feb", Income: 4100},
			},
		},
		RecentTestSeries: []domain.RecentTestSeries{
			{Title: "JEE Main Mock", Hash: "abc", Description: "Ten full tests", CoverPhoto: "https://cdn/1.png", TotalTests: &totalTests},
			{Title: "NEET Drill", Hash: "dup", Description: "Daily drills"},
			{Title: "NEET Drill Copy", Hash: "dup", Description: "Same hash"},
		},
		RecentComments: []string{"Nice!"},
	}
}

func TestScreen_MountWithoutSessionRedirectsWithoutFetching(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockClient(ctrl)
	fetcher.EXPECT().GetDashboard(gomock.Any(), gomock.Any()).Times(0)

	screen := NewScreen(fetcher)
	outcome := screen.Mount(context.Background(), nil, nil)

	assert.Equal(t, LoginPath, outcome.Redirect)
	assert.False(t, outcome.Fetched)
	assert.Nil(t, screen.Snapshot())
}

func TestScreen_MountFetchesOnceAndStoresSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockClient(ctrl)

	snapshot := testSnapshot()
	fetcher.EXPECT().
		GetDashboard(gomock.Any(), "token-1").
		Return(&studioclient.DashboardResponse{Success: true, Data: snapshot}, nil).
		Times(1)

	screen := NewScreen(fetcher)
	outcome := screen.Mount(context.Background(), testSession("token-1"), func() {
		t.Fatal("logout must not be called")
	})

	assert.Empty(t, outcome.Redirect)
	assert.True(t, outcome.Fetched)
	assert.Empty(t, outcome.Alert)
	assert.Same(t, snapshot, screen.Snapshot())
	assert.Equal(t, testSnapshot(), screen.Snapshot())
}

func TestScreen_ApplicationFailureAlertsAndLeavesSnapshotUnset(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockClient(ctrl)
	fetcher.EXPECT().
		GetDashboard(gomock.Any(), gomock.Any()).
		Return(&studioclient.DashboardResponse{Success: false, Error: "Academy is suspended"}, nil)

	screen := NewScreen(fetcher)
	outcome := screen.Mount(context.Background(), testSession("t"), nil)

	assert.Equal(t, "Academy is suspended", outcome.Alert)
	assert.Nil(t, screen.Snapshot())

	view := screen.View()
	assert.Equal(t, "Academy is suspended", view.Alert)
	assert.False(t, view.Loaded)

	// the alert is shown once
	assert.Empty(t, screen.View().Alert)
}

func TestScreen_ApplicationFailureWithoutMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockClient(ctrl)
	fetcher.EXPECT().
		GetDashboard(gomock.Any(), gomock.Any()).
		Return(&studioclient.DashboardResponse{Success: false}, nil)

	outcome := NewScreen(fetcher).Mount(context.Background(), testSession("t"), nil)

	assert.Equal(t, fallbackAlert, outcome.Alert)
}

func TestScreen_UnauthorizedLogsOutOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockClient(ctrl)
	fetcher.EXPECT().
		GetDashboard(gomock.Any(), gomock.Any()).
		Return(nil, &studioclient.HTTPError{StatusCode: 401, Status: "401 Unauthorized"})

	logouts := 0
	screen := NewScreen(fetcher)
	outcome := screen.Mount(context.Background(), testSession("expired"), func() { logouts++ })

	assert.Equal(t, 1, logouts)
	assert.True(t, outcome.LoggedOut)
	assert.Equal(t, LoginPath, outcome.Redirect)
	assert.Empty(t, outcome.Alert)
	assert.Empty(t, screen.View().Alert)
	assert.Nil(t, screen.Snapshot())
}

func TestScreen_OtherFailuresAreOnlyLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetupTestLogger(&buf)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server error",
			err:  &studioclient.HTTPError{StatusCode: 500, Status: "500 Internal Server Error", Body: "boom"},
			want: "status_code=500",
		},
		{
			name: "wrapped server error",
			err:  errors.Wrap(&studioclient.HTTPError{StatusCode: 502, Status: "502 Bad Gateway"}, "proxy"),
			want: "status_code=502",
		},
		{
			name: "transport error",
			err:  errors.New("connection refused"),
			want: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			ctrl := gomock.NewController(t)
			fetcher := mocks.NewMockClient(ctrl)
			fetcher.EXPECT().GetDashboard(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			screen := NewScreen(fetcher)
			outcome := screen.Mount(context.Background(), testSession("t"), func() {
				t.Fatal("logout must not be called")
			})

			assert.True(t, outcome.Fetched)
			assert.False(t, outcome.LoggedOut)
			assert.Empty(t, outcome.Redirect)
			assert.Empty(t, outcome.Alert)
			assert.Empty(t, screen.View().Alert)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestScreen_ViewBeforeSnapshotUsesDefaults(t *testing.T) {
	screen := NewScreen(nil)

	var view DashboardView
	require.NotPanics(t, func() { view = screen.View() })

	assert.False(t, view.Loaded)
	assert.Equal(t, domain.TimeframeMonth, view.Timeframe)
	assert.Equal(t, "0.00", view.Earnings.Total)
	assert.Equal(t, "0.00", view.Earnings.LastWeek)
	assert.Equal(t, "0.00", view.Earnings.LastMonth)
	assert.Empty(t, view.Chart.Points)
	assert.Empty(t, view.TopTestSeries.Items)
	assert.Equal(t, "/test-series", view.TopTestSeries.ViewAllURL)

	require.Len(t, view.Cards, 4)
	for _, card := range view.Cards {
		assert.Equal(t, domain.WidgetMetric{}, card.Metric())
	}
}

func TestScreen_PartialSnapshotDegradesToDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockClient(ctrl)
	fetcher.EXPECT().
		GetDashboard(gomock.Any(), gomock.Any()).
		Return(&studioclient.DashboardResponse{Success: true, Data: &domain.DashboardSnapshot{
			Earnings: &domain.Earnings{},
		}}, nil)

	screen := NewScreen(fetcher)
	screen.Mount(context.Background(), testSession("t"), nil)

	view := screen.View()
	assert.True(t, view.Loaded)
	assert.Equal(t, "0.00", view.Earnings.Total)
	assert.Empty(t, view.TopTestSeries.Items)
	assert.Equal(t, domain.WidgetMetric{}, view.Cards[0].Metric())
}

func TestScreen_SelectTimeframeDoesNotFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockClient(ctrl)
	fetcher.EXPECT().
		GetDashboard(gomock.Any(), gomock.Any()).
		Return(&studioclient.DashboardResponse{Success: true, Data: testSnapshot()}, nil).
		Times(1)

	sess := testSession("t")
	screen := NewScreen(fetcher)
	screen.Mount(context.Background(), sess, nil)

	monthly := screen.View()
	assert.Equal(t, 18.0, monthly.Cards[0].Metric().Total)
	assert.Equal(t, 4100.0, monthly.Cards[1].Metric().Total)

	screen.SelectTimeframe(domain.TimeframeWeek)
	outcome := screen.Sync(context.Background(), sess, nil)
	assert.False(t, outcome.Fetched)

	weekly := screen.View()
	assert.Equal(t, domain.TimeframeWeek, weekly.Timeframe)
	wantWeekly := []float64{4, 999.5, 2, 77}
	for i, card := range weekly.Cards {
		assert.Equal(t, domain.TimeframeWeek, card.Timeframe)
		assert.Equal(t, wantWeekly[i], card.Metric().Total, card.Name)
	}

	screen.SelectTimeframe(domain.TimeframeYear)
	yearly := screen.View()
	assert.Equal(t, 210.0, yearly.Cards[0].Metric().Total)
	// no yearly value for tests taken
	assert.Equal(t, 0.0, yearly.Cards[3].Metric().Total)
}

func TestScreen_SyncRerunsOnlyOnIdentityChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockClient(ctrl)

	first := testSnapshot()
	second := &domain.DashboardSnapshot{RecentComments: []string{"refreshed"}}
	gomock.InOrder(
		fetcher.EXPECT().GetDashboard(gomock.Any(), "token-a").
			Return(&studioclient.DashboardResponse{Success: true, Data: first}, nil),
		fetcher.EXPECT().GetDashboard(gomock.Any(), "token-b").
			Return(&studioclient.DashboardResponse{Success: true, Data: second}, nil),
	)

	screen := NewScreen(fetcher)
	sess := testSession("token-a")
	screen.Mount(context.Background(), sess, nil)

	assert.False(t, screen.Sync(context.Background(), sess, nil).Fetched)
	assert.Same(t, first, screen.Snapshot())

	screen.SelectTimeframe(domain.TimeframeYear)
	renewed := testSession("token-b")
	assert.True(t, screen.Sync(context.Background(), renewed, nil).Fetched)
	assert.Same(t, second, screen.Snapshot())
	// a rerun keeps the client-side selection
	assert.Equal(t, domain.TimeframeYear, screen.Timeframe())

	assert.Equal(t, LoginPath, screen.Sync(context.Background(), nil, nil).Redirect)
}

func TestScreen_SyncMountsUnmountedScreen(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockClient(ctrl)
	fetcher.EXPECT().
		GetDashboard(gomock.Any(), gomock.Any()).
		Return(&studioclient.DashboardResponse{Success: true, Data: testSnapshot()}, nil)

	screen := NewScreen(fetcher)
	outcome := screen.Sync(context.Background(), testSession("t"), nil)

	assert.True(t, outcome.Fetched)
	assert.NotNil(t, screen.Snapshot())
}

func TestScreen_MountResetsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockClient(ctrl)
	gomock.InOrder(
		fetcher.EXPECT().GetDashboard(gomock.Any(), gomock.Any()).
			Return(&studioclient.DashboardResponse{Success: true, Data: testSnapshot()}, nil),
		fetcher.EXPECT().GetDashboard(gomock.Any(), gomock.Any()).
			Return(&studioclient.DashboardResponse{Success: false, Error: "try later"}, nil),
	)

	screen := NewScreen(fetcher)
	sess := testSession("t")
	screen.Mount(context.Background(), sess, nil)
	screen.SelectTimeframe(domain.TimeframeWeek)

	screen.Mount(context.Background(), sess, nil)

	assert.Equal(t, domain.TimeframeMonth, screen.Timeframe())
	assert.Nil(t, screen.Snapshot())
}

func TestScreen_ViewRendersSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockClient(ctrl)
	fetcher.EXPECT().
		GetDashboard(gomock.Any(), gomock.Any()).
		Return(&studioclient.DashboardResponse{Success: true, Data: testSnapshot()}, nil)

	screen := NewScreen(fetcher)
	screen.Mount(context.Background(), testSession("t"), nil)
	view := screen.View()

	assert.True(t, view.Loaded)
	assert.Equal(t, "12345.68", view.Earnings.Total)
	assert.Equal(t, "999.50", view.Earnings.LastWeek)
	assert.Equal(t, "4100.00", view.Earnings.LastMonth)

	assert.Equal(t, "month", view.Chart.XKey)
	assert.Equal(t, "income", view.Chart.Line)
	assert.Equal(t, testSnapshot().Earnings.Graph, view.Chart.Points)

	names := make([]string, 0, len(view.Cards))
	for _, card := range view.Cards {
		names = append(names, card.Name)
	}
	assert.Equal(t, []string{"Students", "Earnings", "Series Sold", "Tests Taken"}, names)

	require.Len(t, view.TopTestSeries.Items, 3)
	keys := []string{}
	for _, item := range view.TopTestSeries.Items {
		assert.Equal(t, item.Hash, item.Key)
		keys = append(keys, item.Key)
	}
	assert.Equal(t, []string{"abc", "dup", "dup"}, keys)
	assert.Equal(t, "JEE Main Mock", view.TopTestSeries.Items[0].Title)
	assert.Equal(t, "Ten full tests", view.TopTestSeries.Items[0].Description)
	assert.Equal(t, "https://cdn/1.png", view.TopTestSeries.Items[0].Image)

	selected := []domain.Timeframe{}
	for _, opt := range view.TimeframeOptions {
		if opt.Selected {
			selected = append(selected, opt.Value)
		}
	}
	assert.Equal(t, []domain.Timeframe{domain.TimeframeMonth}, selected)
}
