// internal/domain/booking/entity.go
package booking

// Booking statuses as the platform reports them.
const (
	StatusAccepted  = "ACCEPTED"
	StatusCancelled = "CANCELLED_BY_SELLER"
	StatusPending   = "PENDING"
)

// Booking is an appointment as returned by the booking platform. Start
// times stay as the RFC3339 strings the platform sends; parsing happens
// at aggregation time so a malformed date cannot fail a whole fetch.
type Booking struct {
	ID                  string               `json:"id"`
	StartAt             string               `json:"start_at"`
	LocationID          string               `json:"location_id,omitempty"`
	CustomerID          string               `json:"customer_id,omitempty"`
	Status              string               `json:"status,omitempty"`
	AppointmentSegments []AppointmentSegment `json:"appointment_segments,omitempty"`
}

// AppointmentSegment ties a booking to one service variation.
type AppointmentSegment struct {
	ServiceVariationID string `json:"service_variation_id"`
	DurationMinutes    int    `json:"duration_minutes,omitempty"`
}

// PrimaryVariationID returns the variation of the first segment, or ""
// when the booking has none.
func (b Booking) PrimaryVariationID() string {
	if len(b.AppointmentSegments) == 0 {
		return ""
	}
	return b.AppointmentSegments[0].ServiceVariationID
}
