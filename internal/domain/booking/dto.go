// internal/domain/booking/dto.go
package booking

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	ServiceID  string `json:"service_id" binding:"required"`
	StartAt    string `json:"start_at" binding:"required"`
}

// Row is a booking joined with its customer name and resolved service
// display name, shaped for the bookings table.
type Row struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	StartAt      string `json:"start_at"`
	Service      string `json:"service"`
	Status       string `json:"status"`
}
