package dto

import "github.com/iho/payflow/internal/domain"

// ClientResponse is the JSON shape of one client account. Decimal fields
// are strings rendered to exactly four places.
type ClientResponse struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// ErrorResponse is the JSON shape of an error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ClientFromDomain converts a domain client to its response shape.
func ClientFromDomain(c *domain.Client) ClientResponse {
	return ClientResponse{
		Client:    c.ID,
		Available: c.Available().StringFixed(domain.Scale),
		Held:      c.Held.StringFixed(domain.Scale),
		Total:     c.Total.StringFixed(domain.Scale),
		Locked:    c.Locked,
	}
}

// ClientsFromDomain converts a list of domain clients.
func ClientsFromDomain(clients []*domain.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, ClientFromDomain(c))
	}
	return out
}
