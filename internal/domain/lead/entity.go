// internal/domain/lead/entity.go
package lead

// Status of a lead after reconciliation against the customer base.
type Status string

const (
	// StatusNew means no customer matched the lead.
	StatusNew Status = "NEW"
	// StatusMatched means a customer matched but has no bookings.
	StatusMatched Status = "MATCHED"
	// StatusBooked means the matched customer has at least one booking.
	StatusBooked Status = "BOOKED"
)

// Lead is a raw spreadsheet row: up to five positional string cells plus
// the tab it came from. Missing cells are empty strings; values are kept
// exactly as entered, normalization happens during reconciliation.
type Lead struct {
	Source string `json:"source"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Type   string `json:"type"`
	Addons string `json:"addons"`
	Time   string `json:"time"`
}

// Enriched is a lead with its derived status and, when a customer
// matched, that customer's id.
type Enriched struct {
	Lead
	Status     Status `json:"status"`
	CustomerID string `json:"customer_id,omitempty"`
}
