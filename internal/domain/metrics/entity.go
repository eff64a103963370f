// internal/domain/metrics/entity.go
package metrics

import "time"

// Metrics are aggregate figures derived transiently from one booking
// collection; they are never persisted.
type Metrics struct {
	TotalBookings int     `json:"total_bookings"`
	Revenue       float64 `json:"revenue"`
	AveragePrice  float64 `json:"average_price"`
	Trend         Series  `json:"trend"`
	Distribution  Series  `json:"distribution"`
}

// Series is a labeled value set ready for charting. Labels and Values
// are index-aligned and the label set is dense: every bucket appears
// even when its value is zero.
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Range filters bookings to [Start, End + one day) at day granularity.
type Range struct {
	Start time.Time
	End   time.Time
}

// Overview bundles the aggregated metrics with the customer headcount
// for the dashboard landing page.
type Overview struct {
	Metrics         Metrics `json:"metrics"`
	ActiveCustomers int     `json:"active_customers"`
}
