package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/debateclub/debate-club-api/internal/model"
)

// PaymentRepo persists checkout transactions keyed by the provider's
// checkout session id.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// Create inserts a transaction row in its initial status.
func (r *PaymentRepo) Create(ctx context.Context, t *model.PaymentTransaction) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO payment_transactions
		 (id, checkout_session_id, package_id, amount_cents, currency, status, payer_email, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		t.ID, t.CheckoutSessionID, t.PackageID, t.AmountCents, t.Currency, t.Status,
		nullable(t.PayerEmail), t.CreatedAt, t.UpdatedAt)
	return err
}

// GetBySessionID fetches a transaction by checkout session id; missing
// rows fail with ErrTransactionNotFound.
func (r *PaymentRepo) GetBySessionID(ctx context.Context, sessionID string) (*model.PaymentTransaction, error) {
	var t model.PaymentTransaction
	err := r.DB.QueryRowContext(ctx,
		`SELECT id,checkout_session_id,package_id,amount_cents,currency,status,COALESCE(payer_email,''),created_at,updated_at
		 FROM payment_transactions WHERE checkout_session_id=? LIMIT 1`,
		sessionID).Scan(&t.ID, &t.CheckoutSessionID, &t.PackageID, &t.AmountCents, &t.Currency,
		&t.Status, &t.PayerEmail, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateStatus moves a transaction to a new status, optionally attaching
// the payer email reported by the provider.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, sessionID, status, payerEmail string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE payment_transactions SET status=?, payer_email=COALESCE(?, payer_email), updated_at=UTC_TIMESTAMP() WHERE checkout_session_id=?",
		status, nullable(payerEmail), sessionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetBySessionID(ctx, sessionID); err != nil {
			return err
		}
	}
	return nil
}

// List returns all transactions, newest first.
func (r *PaymentRepo) List(ctx context.Context) ([]model.PaymentTransaction, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,checkout_session_id,package_id,amount_cents,currency,status,COALESCE(payer_email,''),created_at,updated_at
		 FROM payment_transactions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PaymentTransaction{}
	for rows.Next() {
		var t model.PaymentTransaction
		if err := rows.Scan(&t.ID, &t.CheckoutSessionID, &t.PackageID, &t.AmountCents, &t.Currency,
			&t.Status, &t.PayerEmail, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
