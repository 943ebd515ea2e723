package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/debateclub/debate-club-api/internal/model"
)

// CheckoutSession is the provider's view of a hosted checkout.
type CheckoutSession struct {
	ID            string
	URL           string
	Status        string // open | complete | expired
	PaymentStatus string // unpaid | paid | no_payment_required
	PayerEmail    string
}

// CheckoutProvider abstracts the hosted checkout service so handlers can
// be tested against a fake.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, pkg Package, successURL, cancelURL string) (*CheckoutSession, error)
	GetSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// StripeClient talks to the Stripe checkout REST API with form-encoded
// requests. Only the two calls this site needs are implemented.
type StripeClient struct {
	key     string
	baseURL string
	client  *http.Client
}

// NewStripeClient builds a client for the given secret key.
func NewStripeClient(key string) *StripeClient {
	return &StripeClient{
		key:     key,
		baseURL: "https://api.stripe.com",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type stripeSession struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"payment_status"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
}

// CreateSession opens a hosted checkout session for one unit of the
// package.
func (s *StripeClient) CreateSession(ctx context.Context, pkg Package, successURL, cancelURL string) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", pkg.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(pkg.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", pkg.Name)
	form.Set("metadata[package_id]", pkg.ID)

	var out stripeSession
	if err := s.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &out); err != nil {
		return nil, err
	}
	return fromStripe(&out), nil
}

// GetSession fetches the current state of a checkout session.
func (s *StripeClient) GetSession(ctx context.Context, id string) (*CheckoutSession, error) {
	var out stripeSession
	if err := s.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return fromStripe(&out), nil
}

func (s *StripeClient) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.key)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("checkout provider: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("checkout provider returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func fromStripe(ss *stripeSession) *CheckoutSession {
	return &CheckoutSession{
		ID:            ss.ID,
		URL:           ss.URL,
		Status:        ss.Status,
		PaymentStatus: ss.PaymentStatus,
		PayerEmail:    ss.CustomerDetails.Email,
	}
}

// TransactionStatus maps provider session state onto the local
// transaction status.
func TransactionStatus(cs *CheckoutSession) string {
	switch {
	case cs.PaymentStatus == "paid":
		return model.PaymentPaid
	case cs.Status == "expired":
		return model.PaymentExpired
	default:
		return model.PaymentPending
	}
}
