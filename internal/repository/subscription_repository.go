package repository

import (
	"context"
	"database/sql"

	"github.com/debateclub/debate-club-api/internal/model"
)

// SubscriptionRepo persists push subscriptions keyed by endpoint URL.
type SubscriptionRepo struct{ DB *sql.DB }

func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{DB: db} }

// Upsert registers an endpoint, refreshing keys when it already exists.
func (r *SubscriptionRepo) Upsert(ctx context.Context, s *model.PushSubscription) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO push_subscriptions (id, endpoint, p256dh, auth_key, created_at)
		 VALUES (?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE p256dh=VALUES(p256dh), auth_key=VALUES(auth_key)`,
		s.ID, s.Endpoint, s.P256dh, s.AuthKey, s.CreatedAt)
	return err
}

// DeleteByEndpoint removes a subscription; unknown endpoints are a no-op.
func (r *SubscriptionRepo) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM push_subscriptions WHERE endpoint=?", endpoint)
	return err
}

// List returns every registered subscription.
func (r *SubscriptionRepo) List(ctx context.Context) ([]model.PushSubscription, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,endpoint,p256dh,auth_key,created_at FROM push_subscriptions ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PushSubscription{}
	for rows.Next() {
		var s model.PushSubscription
		if err := rows.Scan(&s.ID, &s.Endpoint, &s.P256dh, &s.AuthKey, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
