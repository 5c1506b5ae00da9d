package postgres

import (
	"context"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

func (r *outboxRepository) FetchPending(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	const query = `SELECT id, event_id, topic, key, payload, created_at
                   FROM outbox WHERE sent_at IS NULL ORDER BY id LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OutboxEvent
	for rows.Next() {
		var e model.OutboxEvent
		var payload []byte
		if err := rows.Scan(&e.ID, &e.EventID, &e.Topic, &e.Key, &payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Payload = payload
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	const query = `UPDATE outbox SET sent_at=NOW() WHERE id = ANY($1) AND sent_at IS NULL`
	_, err := r.storage.pool.Exec(ctx, query, ids)
	return err
}
