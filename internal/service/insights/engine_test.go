package insights

import (
	"reflect"
	"testing"
	"time"

	"almatiq-service/internal/domain/booking"
	"almatiq-service/internal/domain/catalog"
	"almatiq-service/internal/domain/metrics"
)

func seg(variationID string) []booking.AppointmentSegment {
	return []booking.AppointmentSegment{{ServiceVariationID: variationID}}
}

func TestAggregateTotalsAndAverage(t *testing.T) {
	now := time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC)
	index := map[string]catalog.Variation{
		"v1": {ID: "v1", Name: "Focused Recovery", Price: 60},
		"v2": {ID: "v2", Name: "Combined Recovery", Price: 95},
	}
	bookings := []booking.Booking{
		{StartAt: "2024-08-01T10:00:00Z", AppointmentSegments: seg("v1")},
		{StartAt: "2024-08-02T10:00:00Z", AppointmentSegments: seg("v2")},
		{StartAt: "2024-08-03T10:00:00Z", AppointmentSegments: seg("v1")},
	}

	got := Aggregate(now, bookings, index, nil)
	if got.TotalBookings != 3 {
		t.Errorf("total = %d, want 3", got.TotalBookings)
	}
	if got.Revenue != 215 {
		t.Errorf("revenue = %v, want 215", got.Revenue)
	}
	// 215 / 3 = 71.67, rounded.
	if got.AveragePrice != 72 {
		t.Errorf("average = %v, want 72", got.AveragePrice)
	}
}

func TestAggregateEmpty(t *testing.T) {
	now := time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)
	got := Aggregate(now, nil, nil, nil)
	if got.TotalBookings != 0 || got.Revenue != 0 || got.AveragePrice != 0 {
		t.Errorf("expected zeroed metrics, got %+v", got)
	}
	if len(got.Trend.Labels) != trendMonths {
		t.Errorf("trend labels = %d, want %d", len(got.Trend.Labels), trendMonths)
	}
	for _, v := range got.Trend.Values {
		if v != 0 {
			t.Errorf("expected all-zero trend, got %v", got.Trend.Values)
		}
	}
}

func TestAggregateMonthlyTrend(t *testing.T) {
	now := time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)
	bookings := []booking.Booking{
		{StartAt: "2024-08-01T10:00:00Z"},
		{StartAt: "2024-08-20T10:00:00Z"},
		{StartAt: "2024-06-05T10:00:00Z"},
		// A prior year folds into the same month label.
		{StartAt: "2023-01-05T10:00:00Z"},
	}

	got := Aggregate(now, bookings, nil, nil)
	wantLabels := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug"}
	if !reflect.DeepEqual(got.Trend.Labels, wantLabels) {
		t.Fatalf("labels = %v, want %v", got.Trend.Labels, wantLabels)
	}
	wantValues := []int{1, 0, 0, 0, 0, 1, 0, 2}
	if !reflect.DeepEqual(got.Trend.Values, wantValues) {
		t.Errorf("values = %v, want %v", got.Trend.Values, wantValues)
	}
	if got.TotalBookings != 4 {
		t.Errorf("total = %d, want 4", got.TotalBookings)
	}
}

func TestAggregateRangedTrend(t *testing.T) {
	now := time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)
	rng := &metrics.Range{
		Start: time.Date(2024, time.July, 30, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC),
	}
	bookings := []booking.Booking{
		{StartAt: "2024-07-30T09:00:00Z"},
		{StartAt: "2024-08-01T23:00:00Z"}, // end day is inclusive
		{StartAt: "2024-08-02T00:00:00Z"}, // day after the end: out
		{StartAt: "2024-07-29T23:59:59Z"}, // before the start: out
	}

	got := Aggregate(now, bookings, nil, rng)
	if got.TotalBookings != 2 {
		t.Errorf("total = %d, want 2", got.TotalBookings)
	}
	wantLabels := []string{"Jul 30", "Jul 31", "Aug 1"}
	if !reflect.DeepEqual(got.Trend.Labels, wantLabels) {
		t.Fatalf("labels = %v, want %v", got.Trend.Labels, wantLabels)
	}
	wantValues := []int{1, 0, 1}
	if !reflect.DeepEqual(got.Trend.Values, wantValues) {
		t.Errorf("values = %v, want %v", got.Trend.Values, wantValues)
	}
}

func TestAggregateDistribution(t *testing.T) {
	now := time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)
	index := map[string]catalog.Variation{
		"v1": {Name: "Focused Recovery", Price: 60},
	}
	bookings := []booking.Booking{
		{StartAt: "2024-08-01T10:00:00Z", AppointmentSegments: seg("v1")},
		{StartAt: "2024-08-02T10:00:00Z", AppointmentSegments: seg("v1")},
		{StartAt: "2024-08-03T10:00:00Z", AppointmentSegments: seg("unknown")},
	}

	got := Aggregate(now, bookings, index, nil)
	wantLabels := []string{"Focused Recovery", "Other"}
	if !reflect.DeepEqual(got.Distribution.Labels, wantLabels) {
		t.Fatalf("labels = %v, want %v", got.Distribution.Labels, wantLabels)
	}
	wantValues := []int{2, 1}
	if !reflect.DeepEqual(got.Distribution.Values, wantValues) {
		t.Errorf("values = %v, want %v", got.Distribution.Values, wantValues)
	}
}

func TestAggregateDistributionCap(t *testing.T) {
	now := time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)
	index := make(map[string]catalog.Variation)
	var bookings []booking.Booking
	for i := 0; i < maxDistributionEntries+3; i++ {
		id := string(rune('a' + i))
		index[id] = catalog.Variation{Name: "Service " + id, Price: 10}
		bookings = append(bookings, booking.Booking{
			StartAt:             "2024-08-01T10:00:00Z",
			AppointmentSegments: seg(id),
		})
	}

	got := Aggregate(now, bookings, index, nil)
	if len(got.Distribution.Labels) != maxDistributionEntries {
		t.Errorf("distribution size = %d, want %d", len(got.Distribution.Labels), maxDistributionEntries)
	}
	// First-seen order survives the cap.
	if got.Distribution.Labels[0] != "Service a" {
		t.Errorf("first label = %q, want %q", got.Distribution.Labels[0], "Service a")
	}
}

func TestAggregateUnparsableStart(t *testing.T) {
	now := time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)
	index := map[string]catalog.Variation{"v1": {Name: "Focused Recovery", Price: 60}}
	bookings := []booking.Booking{
		{StartAt: "not-a-date", AppointmentSegments: seg("v1")},
	}

	// Without a range the booking counts toward totals and revenue but
	// lands in no trend bucket.
	got := Aggregate(now, bookings, index, nil)
	if got.TotalBookings != 1 {
		t.Errorf("total = %d, want 1", got.TotalBookings)
	}
	if got.Revenue != 60 {
		t.Errorf("revenue = %v, want 60", got.Revenue)
	}
	for _, v := range got.Trend.Values {
		if v != 0 {
			t.Errorf("expected empty trend, got %v", got.Trend.Values)
		}
	}

	// With a range it is excluded entirely.
	rng := &metrics.Range{
		Start: time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC),
	}
	got = Aggregate(now, bookings, index, rng)
	if got.TotalBookings != 0 {
		t.Errorf("ranged total = %d, want 0", got.TotalBookings)
	}
}
