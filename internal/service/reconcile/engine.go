// Package reconcile matches spreadsheet leads against the customer base
// and derives a booking status for each. Pure functions over in-memory
// collections; no I/O, no state.
package reconcile

import (
	"strings"

	"almatiq-service/internal/domain/booking"
	"almatiq-service/internal/domain/customer"
	"almatiq-service/internal/domain/lead"
)

// Phone numbers at or below this many digits are too ambiguous to use
// as a match key.
const minPhoneDigits = 6

// placeholder is the sentinel spreadsheet cells carry for "no value".
const placeholder = "N/A"

// NormalizeEmail lower-cases and trims an email for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips everything but digits.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Reconcile enriches each lead with a status and, where one exists, the
// id of the matching customer. Leads whose email and phone are both
// empty or the "N/A" placeholder are dropped as spreadsheet filler.
//
// Matching is first-match: the first customer in iteration order whose
// normalized email equals the lead's, or whose normalized phone equals
// the lead's when it is long enough to be meaningful, wins.
func Reconcile(leads []lead.Lead, customers []customer.Customer, bookings []booking.Booking) []lead.Enriched {
	booked := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if b.CustomerID != "" {
			booked[b.CustomerID] = true
		}
	}

	out := make([]lead.Enriched, 0, len(leads))
	for _, l := range leads {
		if isPlaceholder(l.Email) && isPlaceholder(l.Phone) {
			continue
		}

		enriched := lead.Enriched{Lead: l, Status: lead.StatusNew}
		if match, ok := findCustomer(l, customers); ok {
			enriched.CustomerID = match.ID
			if booked[match.ID] {
				enriched.Status = lead.StatusBooked
			} else {
				enriched.Status = lead.StatusMatched
			}
		}
		out = append(out, enriched)
	}
	return out
}

func findCustomer(l lead.Lead, customers []customer.Customer) (customer.Customer, bool) {
	email := NormalizeEmail(l.Email)
	phone := NormalizePhone(l.Phone)
	phoneUsable := len(phone) >= minPhoneDigits

	for _, c := range customers {
		if email != "" && NormalizeEmail(c.EmailAddress) == email {
			return c, true
		}
		if phoneUsable && NormalizePhone(c.PhoneNumber) == phone {
			return c, true
		}
	}
	return customer.Customer{}, false
}

func isPlaceholder(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	return trimmed == "" || trimmed == placeholder
}
