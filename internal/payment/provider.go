package payment

import "context"

// Link is a provider-minted payment link.
type Link struct {
	ID       string
	ShortURL string
}

// Provider statuses the reconciler understands.
const (
	LinkStatusPaid = "paid"
)

// LinkProvider is the contract the coordinator relies on from the
// payment-link provider. Amounts are in minor units.
type LinkProvider interface {
	CreateLink(ctx context.Context, amountMinor int64, currency, description, payerContact string) (Link, error)
	FetchLinkStatus(ctx context.Context, linkID string) (string, error)
}
