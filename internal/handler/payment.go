package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/debateclub/debate-club-api/internal/model"
	"github.com/debateclub/debate-club-api/internal/payment"
	"github.com/debateclub/debate-club-api/internal/repository"
)

// PaymentHandler serves the checkout surface. The amount for a session
// always comes from the server-side package catalog; the client only
// names a package and an origin to return to.
type PaymentHandler struct {
	Payments   *repository.PaymentRepo
	Provider   payment.CheckoutProvider
	WebhookKey string
}

func NewPaymentHandler(p *repository.PaymentRepo, provider payment.CheckoutProvider, webhookKey string) *PaymentHandler {
	return &PaymentHandler{Payments: p, Provider: provider, WebhookKey: webhookKey}
}

type checkoutReq struct {
	PackageID string `json:"package_id"`
	OriginURL string `json:"origin_url"`
}

// Packages handles GET /api/payments/packages.
func (h *PaymentHandler) Packages(c echo.Context) error {
	return c.JSON(http.StatusOK, payment.Catalog)
}

// CreateCheckoutSession handles POST /api/payments/checkout/session. It
// opens a hosted checkout with the provider and records an initiated
// transaction keyed by the provider's session id.
func (h *PaymentHandler) CreateCheckoutSession(c echo.Context) error {
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	pkg, ok := payment.Find(req.PackageID)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown package"})
	}
	origin := strings.TrimRight(strings.TrimSpace(req.OriginURL), "/")
	if origin == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin_url is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cs, err := h.Provider.CreateSession(ctx, pkg,
		origin+"/payment/success?session_id={CHECKOUT_SESSION_ID}",
		origin+"/payment/cancel")
	if err != nil {
		c.Logger().Errorf("create checkout session failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "checkout provider unavailable"})
	}

	now := time.Now().UTC()
	t := &model.PaymentTransaction{
		ID:                uuid.New().String(),
		CheckoutSessionID: cs.ID,
		PackageID:         pkg.ID,
		AmountCents:       pkg.AmountCents,
		Currency:          pkg.Currency,
		Status:            model.PaymentInitiated,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := h.Payments.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record transaction failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"session_id": cs.ID, "url": cs.URL})
}

// CheckoutStatus handles GET /api/payments/checkout/status/:id. It polls
// the provider and folds the answer into the stored transaction.
func (h *PaymentHandler) CheckoutStatus(c echo.Context) error {
	sessionID := c.Param("id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Payments.GetBySessionID(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "transaction not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	cs, err := h.Provider.GetSession(ctx, sessionID)
	if err != nil {
		c.Logger().Errorf("checkout status poll failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "checkout provider unavailable"})
	}
	status := payment.TransactionStatus(cs)
	if err := h.Payments.UpdateStatus(ctx, sessionID, status, cs.PayerEmail); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update transaction failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"session_id":     sessionID,
		"status":         cs.Status,
		"payment_status": cs.PaymentStatus,
	})
}

// stripeEvent is the slice of the webhook payload this site reads.
type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID              string `json:"id"`
			PaymentStatus   string `json:"payment_status"`
			Status          string `json:"status"`
			CustomerDetails struct {
				Email string `json:"email"`
			} `json:"customer_details"`
		} `json:"object"`
	} `json:"data"`
}

// Webhook handles POST /api/webhook/stripe. Callers must present the
// shared webhook secret; events for unknown sessions are acknowledged
// and dropped so the provider does not retry forever.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	got := c.Request().Header.Get("X-Webhook-Secret")
	if h.WebhookKey == "" ||
		subtle.ConstantTimeCompare([]byte(got), []byte(h.WebhookKey)) != 1 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid webhook credentials"})
	}

	var ev stripeEvent
	if err := json.NewDecoder(c.Request().Body).Decode(&ev); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	var status string
	switch ev.Type {
	case "checkout.session.completed":
		status = model.PaymentPaid
	case "checkout.session.expired":
		status = model.PaymentExpired
	case "checkout.session.async_payment_failed":
		status = model.PaymentFailed
	default:
		return c.JSON(http.StatusOK, echo.Map{"message": "ignored"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	err := h.Payments.UpdateStatus(ctx, ev.Data.Object.ID, status, ev.Data.Object.CustomerDetails.Email)
	if err != nil && !errors.Is(err, repository.ErrTransactionNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update transaction failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "received"})
}

// Transactions handles GET /api/payments/transactions (admin).
func (h *PaymentHandler) Transactions(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Payments.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}
