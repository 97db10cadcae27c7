package booking

// GuestSnapshot captures the identity of the booking guest at creation time.
// The snapshot is stored with the booking so an edit to the guest registry
// never rewrites the history of past stays.
type GuestSnapshot struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	IDNumber        string `json:"id_number"`
	Nationality     string `json:"nationality,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// FullName returns the guest's display name.
func (g GuestSnapshot) FullName() string {
	if g.FirstName == "" {
		return g.LastName
	}
	if g.LastName == "" {
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}
