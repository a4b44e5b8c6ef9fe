// Package payment implements the value-transfer collaborator the ledger
// settles through. The gateway is an external HTTP service; the ledger only
// sees success or failure.
package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"resty.dev/v3"
)

// Client moves currency units to a principal through the payment gateway.
type Client struct {
	http *resty.Client
}

// NewClient creates a Client for the gateway at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second),
	}
}

type transferRequest struct {
	Reference string `json:"reference"`
	To        string `json:"to"`
	Amount    uint64 `json:"amount"`
}

// Transfer sends amount to the principal identified by to. Each call
// carries a fresh reference id so the gateway can deduplicate retries on
// its side.
func (c *Client) Transfer(to string, amount uint64) error {
	req := transferRequest{
		Reference: uuid.NewString(),
		To:        to,
		Amount:    amount,
	}

	res, err := c.http.R().SetBody(req).Post("/transfers")
	if err != nil {
		return fmt.Errorf("payment gateway request: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("payment gateway returned %s", res.Status())
	}
	return nil
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.http.Close()
}
