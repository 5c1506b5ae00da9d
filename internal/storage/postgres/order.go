package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

var newEventID = uuid.NewString

type orderCreatedItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type orderCreatedEvent struct {
	EventID         string             `json:"event_id"`
	Type            string             `json:"type"`
	OrderID         int64              `json:"order_id"`
	ExternalOrderID string             `json:"external_order_id"`
	Items           []orderCreatedItem `json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
}

func (r *orderRepository) CreateWithItems(ctx context.Context, order *model.Order, attemptID int64) (*model.Order, error) {
	const insertOrder = `INSERT INTO orders (customer_first_name, customer_last_name, customer_phone, customer_email, external_order_id)
                         VALUES ($1, $2, $3, $4, $5)
                         ON CONFLICT (external_order_id) DO NOTHING
                         RETURNING id, created_at, updated_at`
	const insertItem = `INSERT INTO order_items (order_id, product_id, quantity)
                        SELECT $1, id, $3 FROM products WHERE sku=$2
                        RETURNING id, product_id`

	var result *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		created := *order
		created.Items = make([]model.OrderItem, 0, len(order.Items))

		err := tx.QueryRow(ctx, insertOrder,
			order.Contact.FirstName, order.Contact.LastName, order.Contact.Phone, order.Contact.Email, order.ExternalOrderID,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			existing, err := getOrderByExternalID(ctx, tx, order.ExternalOrderID)
			if err != nil {
				return err
			}
			result = existing
			return completeAttempt(ctx, tx, attemptID, order.ExternalOrderID)
		}

		for _, item := range order.Items {
			stored := model.OrderItem{OrderID: created.ID, SKU: item.SKU, Quantity: item.Quantity}
			if err := tx.QueryRow(ctx, insertItem, created.ID, item.SKU, item.Quantity).Scan(&stored.ID, &stored.ProductID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("%w: %s", domainErrors.ErrProductNotFound, item.SKU)
				}
				return err
			}
			created.Items = append(created.Items, stored)
		}

		if err := r.storage.enqueueOrderCreated(ctx, tx, &created); err != nil {
			return err
		}
		if err := completeAttempt(ctx, tx, attemptID, order.ExternalOrderID); err != nil {
			return err
		}
		result = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) GetByExternalID(ctx context.Context, externalOrderID string) (*model.Order, error) {
	return getOrderByExternalID(ctx, r.storage.pool, externalOrderID)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getOrderByExternalID(ctx context.Context, q querier, externalOrderID string) (*model.Order, error) {
	const selectOrder = `SELECT id, customer_first_name, customer_last_name, customer_phone, customer_email, external_order_id, created_at, updated_at
                         FROM orders WHERE external_order_id=$1`
	const selectItems = `SELECT oi.id, oi.order_id, oi.product_id, p.sku, oi.quantity
                         FROM order_items oi JOIN products p ON p.id = oi.product_id
                         WHERE oi.order_id=$1 ORDER BY oi.id`

	var o model.Order
	err := q.QueryRow(ctx, selectOrder, externalOrderID).Scan(
		&o.ID, &o.Contact.FirstName, &o.Contact.LastName, &o.Contact.Phone, &o.Contact.Email, &o.ExternalOrderID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	rows, err := q.Query(ctx, selectItems, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.SKU, &item.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Storage) enqueueOrderCreated(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	const insertEvent = `INSERT INTO outbox (event_id, topic, key, payload) VALUES ($1, $2, $3, $4)`

	event := orderCreatedEvent{
		EventID:         newEventID(),
		Type:            model.EventOrderCreated,
		OrderID:         order.ID,
		ExternalOrderID: order.ExternalOrderID,
		Items:           make([]orderCreatedItem, 0, len(order.Items)),
		CreatedAt:       order.CreatedAt.UTC(),
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, orderCreatedItem{SKU: item.SKU, Quantity: item.Quantity})
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	_, err = tx.Exec(ctx, insertEvent, event.EventID, s.orderEventsTopic, order.ExternalOrderID, payload)
	return err
}

func completeAttempt(ctx context.Context, tx pgx.Tx, attemptID int64, externalOrderID string) error {
	if attemptID == 0 {
		return nil
	}
	const query = `UPDATE checkout_attempts SET status=$1, external_order_id=$2, updated_at=NOW() WHERE id=$3`
	_, err := tx.Exec(ctx, query, model.AttemptStatusCompleted, externalOrderID, attemptID)
	return err
}
