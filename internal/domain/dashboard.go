package domain

// WidgetMetric is one KPI value for a single timeframe.
type WidgetMetric struct {
	Total  float64 `json:"total"`
	Change float64 `json:"change"`
}

// WidgetGroup holds the weekly, monthly and yearly values of a tracked quantity.
type WidgetGroup struct {
	Weekly  *WidgetMetric `json:"weekly,omitempty"`
	Monthly *WidgetMetric `json:"monthly,omitempty"`
	Yearly  *WidgetMetric `json:"yearly,omitempty"`
}

// Pick returns the metric matching the timeframe. Missing values read as zero.
func (g *WidgetGroup) Pick(tf Timeframe) WidgetMetric {
	if g == nil {
		return WidgetMetric{}
	}

	var m *WidgetMetric
	switch tf {
	case TimeframeWeek:
		m = g.Weekly
	case TimeframeYear:
		m = g.Yearly
	default:
		m = g.Monthly
	}

	if m == nil {
		return WidgetMetric{}
	}
	return *m
}

type Widgets struct {
	Students       *WidgetGroup `json:"students,omitempty"`
	Earnings       *WidgetGroup `json:"earnings,omitempty"`
	TestSeriesSell *WidgetGroup `json:"test_series_sell,omitempty"`
	TestsTaken     *WidgetGroup `json:"tests_taken,omitempty"`
}

type EarningsOverview struct {
	Total     float64 `json:"total"`
	LastMonth float64 `json:"last_month"`
	LastWeek  float64 `json:"last_week"`
}

// EarningsGraphPoint is one chronological point of the earnings chart.
type EarningsGraphPoint struct {
	Month  string  `json:"month"`
	Income float64 `json:"income"`
}

type Earnings struct {
	Overview *EarningsOverview    `json:"overview,omitempty"`
	Graph    []EarningsGraphPoint `json:"graph"`
}

// RecentTestSeries is one row of the "top test series" list. Flags are integers
// (0/1) exactly as the backend sends them.
type RecentTestSeries struct {
	TestSeriesID        int     `json:"test_series_id"`
	ExamID              int     `json:"exam_id"`
	AcademyID           int     `json:"academy_id"`
	Title               string  `json:"title"`
	Language            string  `json:"language"`
	Hash                string  `json:"hash"`
	Description         string  `json:"description"`
	CoverPhoto          string  `json:"cover_photo"`
	TotalTests          *int    `json:"total_tests"`
	FreeTests           int     `json:"free_tests"`
	Price               float64 `json:"price"`
	PriceBeforeDiscount float64 `json:"price_before_discount"`
	Discount            float64 `json:"discount"`
	DiscountType        *string `json:"discountType"`
	IsPaid              int     `json:"is_paid"`
	Status              int     `json:"status"`
	DifficultyLevel     string  `json:"difficulty_level"`
	IsPurchased         int     `json:"is_purchased"`
	IsDeleted           int     `json:"is_deleted"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// DashboardSnapshot is the whole payload of one successful dashboard response.
// It is only ever replaced as a unit, never merged.
type DashboardSnapshot struct {
	Widgets          *Widgets           `json:"widgets,omitempty"`
	Earnings         *Earnings          `json:"earnings,omitempty"`
	RecentTestSeries []RecentTestSeries `json:"recent_test_series"`
	RecentComments   []string           `json:"recent_comments"`
}

// The getters below are safe on nil receivers and substitute a zero value at
// the first missing link.

func (s *DashboardSnapshot) GetWidgets() *Widgets {
	if s == nil {
		return nil
	}
	return s.Widgets
}

func (s *DashboardSnapshot) GetEarnings() *Earnings {
	if s == nil {
		return nil
	}
	return s.Earnings
}

func (s *DashboardSnapshot) GetRecentTestSeries() []RecentTestSeries {
	if s == nil {
		return nil
	}
	return s.RecentTestSeries
}

func (s *DashboardSnapshot) GetRecentComments() []string {
	if s == nil {
		return nil
	}
	return s.RecentComments
}

func (w *Widgets) GetStudents() *WidgetGroup {
	if w == nil {
		return nil
	}
	return w.Students
}

func (w *Widgets) GetEarnings() *WidgetGroup {
	if w == nil {
		return nil
	}
	return w.Earnings
}

func (w *Widgets) GetTestSeriesSell() *WidgetGroup {
	if w == nil {
		return nil
	}
	return w.TestSeriesSell
}

func (w *Widgets) GetTestsTaken() *WidgetGroup {
	if w == nil {
		return nil
	}
	return w.TestsTaken
}

// GetOverview returns the earnings overview, zero-valued when absent.
func (e *Earnings) GetOverview() EarningsOverview {
	if e == nil || e.Overview == nil {
		return EarningsOverview{}
	}
	return *e.Overview
}

func (e *Earnings) GetGraph() []EarningsGraphPoint {
	if e == nil {
		return nil
	}
	return e.Graph
}
