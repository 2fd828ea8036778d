// Package paymentgw implements the payment gateway port against the
// provider's HTTP API.
package paymentgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client talks to the payment provider's HTTP API.
//
// Charge outcomes map onto the port's contract: HTTP 402 is the provider
// refusing the charge and surfaces as ports.ErrPaymentDeclined; any other
// non-2xx status or transport failure is a plain error, meaning the outcome
// is unknown and the charge may be retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a payment gateway client for the provider at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type chargeRequest struct {
	PaymentID string `json:"payment_id"`
	Method    string `json:"method"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

type chargeResponse struct {
	TransactionID string `json:"transaction_id"`
}

// Charge submits the payment to the provider.
// Returns the provider's transaction reference on success and
// ports.ErrPaymentDeclined when the provider refuses the charge.
func (c *Client) Charge(ctx context.Context, pay *payment.Payment) (string, error) {
	if err := pay.Validate(); err != nil {
		return "", err
	}

	body, err := json.Marshal(chargeRequest{
		PaymentID: pay.ID().String(),
		Method:    pay.Method().String(),
		Amount:    pay.Amount().Amount(),
		Currency:  pay.Amount().Currency(),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/charges", bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", ports.ErrPaymentDeclined
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var charge chargeResponse
	if err = json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return "", err
	}

	if charge.TransactionID == "" {
		return "", fmt.Errorf("payment provider returned an empty transaction id")
	}

	return charge.TransactionID, nil
}

// Refund asks the provider to return a completed payment.
func (c *Client) Refund(ctx context.Context, transactionID string) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/charges/"+transactionID+"/refund", http.NoBody,
	)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("payment provider refund returned status %d: %s", resp.StatusCode, body)
	}

	return nil
}
