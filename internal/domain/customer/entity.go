// internal/domain/customer/entity.go
package customer

// Customer is a platform customer record. Treated as an immutable lookup
// table keyed by ID for the duration of one request.
type Customer struct {
	ID           string `json:"id"`
	GivenName    string `json:"given_name"`
	FamilyName   string `json:"family_name"`
	EmailAddress string `json:"email_address,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// DisplayName joins the given and family names, falling back to "Guest"
// when both are empty.
func (c Customer) DisplayName() string {
	switch {
	case c.GivenName == "" && c.FamilyName == "":
		return "Guest"
	case c.FamilyName == "":
		return c.GivenName
	case c.GivenName == "":
		return c.FamilyName
	}
	return c.GivenName + " " + c.FamilyName
}
