package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newPaymentHandler() *PaymentHandler {
	return NewPaymentHandler(nil, nil, "hook-secret")
}

func TestWebhookRejectsWrongSecret(t *testing.T) {
	h := newPaymentHandler()
	e := echo.New()

	for _, secret := range []string{"", "wrong-secret"} {
		c, rec := postJSON(e, "/api/webhook/stripe", `{"type":"checkout.session.completed"}`)
		if secret != "" {
			c.Request().Header.Set("X-Webhook-Secret", secret)
		}
		if err := h.Webhook(c); err != nil {
			t.Fatalf("Webhook: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("secret %q: status = %d, want 401", secret, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "invalid webhook credentials") {
			t.Errorf("secret %q: unexpected body %s", secret, rec.Body.String())
		}
	}
}

func TestWebhookRejectsAllWhenUnconfigured(t *testing.T) {
	// An empty configured secret must never let an empty header through.
	h := NewPaymentHandler(nil, nil, "")
	e := echo.New()
	c, rec := postJSON(e, "/api/webhook/stripe", `{"type":"checkout.session.completed"}`)

	if err := h.Webhook(c); err != nil {
		t.Fatalf("Webhook: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestWebhookIgnoresUnknownEventType(t *testing.T) {
	h := newPaymentHandler()
	e := echo.New()
	c, rec := postJSON(e, "/api/webhook/stripe", `{"type":"payment_intent.created"}`)
	c.Request().Header.Set("X-Webhook-Secret", "hook-secret")

	if err := h.Webhook(c); err != nil {
		t.Fatalf("Webhook: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ignored") {
		t.Fatalf("status = %d body = %s, want 200 ignored", rec.Code, rec.Body.String())
	}
}

func TestWebhookRejectsMalformedPayload(t *testing.T) {
	h := newPaymentHandler()
	e := echo.New()
	c, rec := postJSON(e, "/api/webhook/stripe", `{broken`)
	c.Request().Header.Set("X-Webhook-Secret", "hook-secret")

	if err := h.Webhook(c); err != nil {
		t.Fatalf("Webhook: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateCheckoutSessionUnknownPackage(t *testing.T) {
	h := newPaymentHandler()
	e := echo.New()
	c, rec := postJSON(e, "/api/payments/checkout/session",
		`{"package_id":"free_lunch","origin_url":"https://club.example"}`)

	if err := h.CreateCheckoutSession(c); err != nil {
		t.Fatalf("CreateCheckoutSession: %v", err)
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "unknown package") {
		t.Fatalf("status = %d body = %s, want 400 unknown package", rec.Code, rec.Body.String())
	}
}

func TestCreateCheckoutSessionMissingOrigin(t *testing.T) {
	h := newPaymentHandler()
	e := echo.New()
	c, rec := postJSON(e, "/api/payments/checkout/session", `{"package_id":"membership_annual"}`)

	if err := h.CreateCheckoutSession(c); err != nil {
		t.Fatalf("CreateCheckoutSession: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
