package domain

import "github.com/shopspring/decimal"

// Client is one account derived from the transaction stream. Available
// funds are never stored; they are always Total minus Held.
type Client struct {
	ID     uint16
	Total  decimal.Decimal
	Held   decimal.Decimal
	Locked bool
}

// NewClient creates an account with an opening total and nothing held.
func NewClient(id uint16, total decimal.Decimal) *Client {
	return &Client{
		ID:    id,
		Total: total,
		Held:  decimal.Zero,
	}
}

// Available returns the funds the client may withdraw now.
func (c *Client) Available() decimal.Decimal {
	return c.Total.Sub(c.Held)
}
