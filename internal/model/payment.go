package model

import "time"

// Payment transaction statuses. A transaction starts as initiated when a
// checkout session is created and moves forward via status polls or the
// provider webhook.
const (
	PaymentInitiated = "initiated"
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentFailed    = "failed"
	PaymentExpired   = "expired"
)

// PaymentTransaction mirrors the payment_transactions table. Amounts are
// fixed server-side per package and recorded in cents.
type PaymentTransaction struct {
	ID                string    `json:"id"`
	CheckoutSessionID string    `json:"checkout_session_id"`
	PackageID         string    `json:"package_id"`
	AmountCents       int64     `json:"amount_cents"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	PayerEmail        string    `json:"payer_email,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
