package payment

import (
	"encoding/json"
)

const (
	StatusCompleted = "COMPLETED"

	DefaultCurrency = "USD"
)

type OrderResult struct {
	ID          string           `json:"id"`
	Status      string           `json:"status"`
	Links       []Link           `json:"links,omitempty"`
	RawResponse *json.RawMessage `json:"-"`
}

type CaptureResult struct {
	ID          string           `json:"id"`
	Status      string           `json:"status"`
	Payer       *Payer           `json:"payer,omitempty"`
	RawResponse *json.RawMessage `json:"-"`
}

func (c *CaptureResult) Completed() bool {
	return c != nil && c.Status == StatusCompleted
}

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

type Payer struct {
	PayerID      string `json:"payer_id,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type purchaseUnit struct {
	Amount amount `json:"amount"`
}

type createOrderRequest struct {
	Intent        string                    `json:"intent"`
	PurchaseUnits []purchaseUnit            `json:"purchase_units"`
	PaymentSource map[string]map[string]any `json:"payment_source"`
}
