package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

func (r *attemptRepository) Create(ctx context.Context, attempt *model.CheckoutAttempt) (*model.CheckoutAttempt, error) {
	const query = `INSERT INTO checkout_attempts (idempotency_key, buyer_tax_id, payload, status)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at, updated_at`
	payload, err := json.Marshal(attempt.Submission)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	created := *attempt
	err = r.storage.pool.QueryRow(ctx, query, attempt.IdempotencyKey, attempt.BuyerTaxID, payload, attempt.Status).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *attemptRepository) UpdateStatus(ctx context.Context, attemptID int64, status model.AttemptStatus, externalOrderID *string) error {
	const query = `UPDATE checkout_attempts
                   SET status=$1, external_order_id=COALESCE($2, external_order_id), updated_at=NOW()
                   WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, externalOrderID, attemptID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *attemptRepository) SelectBatchForReconciliation(ctx context.Context, leaseBefore, staleBefore time.Time, limit int) ([]model.CheckoutAttempt, error) {
	const selectQuery = `SELECT id, idempotency_key, buyer_tax_id, payload, status, external_order_id, created_at, updated_at
                         FROM checkout_attempts
                         WHERE (status = 'SUBMITTED' AND updated_at < $1)
                            OR (status = 'PENDING' AND updated_at < $2)
                         ORDER BY updated_at
                         LIMIT $3
                         FOR UPDATE SKIP LOCKED`
	const claimQuery = `UPDATE checkout_attempts SET updated_at=NOW() WHERE id = ANY($1)`

	var attempts []model.CheckoutAttempt
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, leaseBefore, staleBefore, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				a       model.CheckoutAttempt
				payload []byte
			)
			if err := rows.Scan(&a.ID, &a.IdempotencyKey, &a.BuyerTaxID, &payload, &a.Status, &a.ExternalOrderID, &a.CreatedAt, &a.UpdatedAt); err != nil {
				return err
			}
			if err := json.Unmarshal(payload, &a.Submission); err != nil {
				return fmt.Errorf("decode submission of attempt %d: %w", a.ID, err)
			}
			attempts = append(attempts, a)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		if len(attempts) == 0 {
			return nil
		}
		ids := make([]int64, len(attempts))
		for i, a := range attempts {
			ids[i] = a.ID
		}
		_, err = tx.Exec(ctx, claimQuery, ids)
		return err
	})
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
