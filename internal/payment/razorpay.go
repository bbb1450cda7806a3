package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayProvider mints and polls Razorpay payment links.
type RazorpayProvider struct {
	client *razorpay.Client
}

func NewRazorpayProvider(keyID, keySecret string) *RazorpayProvider {
	return &RazorpayProvider{client: razorpay.NewClient(keyID, keySecret)}
}

func (p *RazorpayProvider) CreateLink(_ context.Context, amountMinor int64, currency, description, payerContact string) (Link, error) {
	data := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"accept_partial":  false,
		"description":     description,
		"reminder_enable": true,
		"customer": map[string]interface{}{
			"email": payerContact,
		},
	}
	body, err := p.client.PaymentLink.Create(data, nil)
	if err != nil {
		return Link{}, fmt.Errorf("create payment link: %w", err)
	}

	id, _ := body["id"].(string)
	shortURL, _ := body["short_url"].(string)
	if id == "" || shortURL == "" {
		return Link{}, fmt.Errorf("create payment link: malformed provider response")
	}
	return Link{ID: id, ShortURL: shortURL}, nil
}

func (p *RazorpayProvider) FetchLinkStatus(_ context.Context, linkID string) (string, error) {
	body, err := p.client.PaymentLink.Fetch(linkID, nil, nil)
	if err != nil {
		return "", fmt.Errorf("fetch payment link %s: %w", linkID, err)
	}
	status, _ := body["status"].(string)
	return status, nil
}
