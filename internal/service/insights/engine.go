// Package insights derives dashboard metrics from a booking collection.
// Pure computation: bookings in, aggregate figures out.
package insights

import (
	"math"
	"time"

	"almatiq-service/internal/domain/booking"
	"almatiq-service/internal/domain/catalog"
	"almatiq-service/internal/domain/metrics"
)

const (
	// Without a date range the trend covers the last this-many calendar
	// months ending at the current one.
	trendMonths = 8

	// The distribution chart shows at most this many services.
	maxDistributionEntries = 6

	monthLabel = "Jan"
	dayLabel   = "Jan 2"
)

// otherVariation absorbs bookings whose variation id is not in the
// catalog index.
var otherVariation = catalog.Variation{Name: "Other", Price: 0}

// Aggregate computes metrics over the bookings that fall inside rng, or
// over all bookings when rng is nil. The range is end-inclusive at day
// granularity. now anchors the month labels of the unranged trend.
func Aggregate(now time.Time, bookings []booking.Booking, index map[string]catalog.Variation, rng *metrics.Range) metrics.Metrics {
	trend := make(map[string]int)
	distroCounts := make(map[string]int)
	var distroOrder []string
	var revenue float64
	total := 0

	for _, b := range bookings {
		start, parsed := parseStart(b.StartAt)
		if rng != nil && !inRange(start, parsed, *rng) {
			continue
		}
		total++

		if parsed {
			trend[bucketLabel(start, rng)]++
		}

		v, ok := index[b.PrimaryVariationID()]
		if !ok {
			v = otherVariation
		}
		name := v.Name
		if name == "" {
			name = otherVariation.Name
		}
		if _, seen := distroCounts[name]; !seen {
			distroOrder = append(distroOrder, name)
		}
		distroCounts[name]++
		revenue += v.Price
	}

	labels := trendLabels(now, rng)
	values := make([]int, len(labels))
	for i, label := range labels {
		values[i] = trend[label]
	}

	if len(distroOrder) > maxDistributionEntries {
		distroOrder = distroOrder[:maxDistributionEntries]
	}
	distroValues := make([]int, len(distroOrder))
	for i, name := range distroOrder {
		distroValues[i] = distroCounts[name]
	}

	avg := 0.0
	if total > 0 {
		avg = math.Round(revenue / float64(total))
	}

	return metrics.Metrics{
		TotalBookings: total,
		Revenue:       math.Round(revenue),
		AveragePrice:  avg,
		Trend:         metrics.Series{Labels: labels, Values: values},
		Distribution:  metrics.Series{Labels: distroOrder, Values: distroValues},
	}
}

func parseStart(startAt string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, startAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// inRange reports whether a booking start falls in [start, end + 1 day).
// Bookings without a parsable start never match an active range.
func inRange(t time.Time, parsed bool, rng metrics.Range) bool {
	if !parsed {
		return false
	}
	return !t.Before(rng.Start) && t.Before(rng.End.AddDate(0, 0, 1))
}

func bucketLabel(t time.Time, rng *metrics.Range) string {
	if rng != nil {
		return t.Format(dayLabel)
	}
	return t.Format(monthLabel)
}

// trendLabels builds the dense label set independently of the data:
// every calendar day of the range, or the trailing months ending at the
// current one. Buckets with no bookings chart as zero.
func trendLabels(now time.Time, rng *metrics.Range) []string {
	if rng == nil {
		labels := make([]string, 0, trendMonths)
		for i := trendMonths - 1; i >= 0; i-- {
			m := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
			labels = append(labels, m.Format(monthLabel))
		}
		return labels
	}

	var labels []string
	for d := rng.Start; !d.After(rng.End); d = d.AddDate(0, 0, 1) {
		labels = append(labels, d.Format(dayLabel))
	}
	return labels
}
