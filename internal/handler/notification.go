package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/debateclub/debate-club-api/internal/middleware"
	"github.com/debateclub/debate-club-api/internal/model"
	"github.com/debateclub/debate-club-api/internal/notify"
	"github.com/debateclub/debate-club-api/internal/repository"
	"github.com/debateclub/debate-club-api/internal/sanitize"
)

// NotificationHandler serves push subscription management and the admin
// broadcast endpoint. Sending only publishes to the broker; delivery is
// the consumer's job.
type NotificationHandler struct {
	Subs      *repository.SubscriptionRepo
	Sanitizer *sanitize.Sanitizer
	AMQPURL   string
}

func NewNotificationHandler(s *repository.SubscriptionRepo, sn *sanitize.Sanitizer, amqpURL string) *NotificationHandler {
	return &NotificationHandler{Subs: s, Sanitizer: sn, AMQPURL: amqpURL}
}

type subscribeReq struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type sendReq struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Subscribe handles POST /api/notifications/subscribe. Re-registering an
// endpoint refreshes its keys instead of failing.
func (h *NotificationHandler) Subscribe(c echo.Context) error {
	var req subscribeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Endpoint = strings.TrimSpace(req.Endpoint)
	u, err := url.Parse(req.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endpoint must be an http(s) URL"})
	}

	sub := &model.PushSubscription{
		ID:        uuid.New().String(),
		Endpoint:  req.Endpoint,
		P256dh:    req.Keys.P256dh,
		AuthKey:   req.Keys.Auth,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Subs.Upsert(ctx, sub); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save subscription failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "subscribed"})
}

// Unsubscribe handles POST /api/notifications/unsubscribe. Unknown
// endpoints succeed quietly.
func (h *NotificationHandler) Unsubscribe(c echo.Context) error {
	var req subscribeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Endpoint) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endpoint is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Subs.DeleteByEndpoint(ctx, req.Endpoint); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete subscription failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "unsubscribed"})
}

// Send handles POST /api/notifications/send (admin). The stored
// endpoints ride along in the event so the consumer never needs the
// database.
func (h *NotificationHandler) Send(c echo.Context) error {
	var req sendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	title := h.Sanitizer.Clean(req.Title)
	body := h.Sanitizer.Clean(req.Body)
	if title == "" || body == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and body are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	subs, err := h.Subs.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(subs) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"message": "no subscribers", "recipients": 0})
	}

	endpoints := make([]notify.Endpoint, 0, len(subs))
	for _, s := range subs {
		endpoints = append(endpoints, notify.Endpoint{URL: s.Endpoint, P256dh: s.P256dh, Auth: s.AuthKey})
	}
	admin, _ := c.Get(middleware.ContextAdmin).(string)
	ev := notify.NotificationEvent{
		ID:        uuid.New().String(),
		Title:     title,
		Body:      body,
		SentBy:    admin,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Endpoints: endpoints,
	}
	if err := notify.Publish(ctx, h.AMQPURL, ev); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "notification broker unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "notification queued", "recipients": len(subs)})
}
