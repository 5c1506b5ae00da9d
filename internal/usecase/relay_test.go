package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
	testhelpers "github.com/polkiloo/credit-checkout/internal/test"
)

func TestRelayPublishesAndMarksSent(t *testing.T) {
	outbox := &testhelpers.OutboxRepositoryStub{Pending: []model.OutboxEvent{{ID: 1, Key: "ord_1"}, {ID: 2, Key: "ord_2"}, {ID: 3, Key: "ord_3"}}}
	publisher := &testhelpers.PublisherStub{}

	n, err := NewRelayUseCase(outbox, publisher).Relay(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []int64{1, 2}, outbox.Sent)
	require.Len(t, publisher.Published, 2)
	require.Len(t, outbox.Pending, 1)
}

func TestRelayNothingPending(t *testing.T) {
	publisher := &testhelpers.PublisherStub{}
	n, err := NewRelayUseCase(&testhelpers.OutboxRepositoryStub{}, publisher).Relay(context.Background(), 10)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Empty(t, publisher.Published)
}

func TestRelayPublishFailureKeepsEventsPending(t *testing.T) {
	outbox := &testhelpers.OutboxRepositoryStub{Pending: []model.OutboxEvent{{ID: 1}}}
	publisher := &testhelpers.PublisherStub{Err: errors.New("broker down")}

	_, err := NewRelayUseCase(outbox, publisher).Relay(context.Background(), 10)
	require.Error(t, err)
	require.Empty(t, outbox.Sent)
	require.Len(t, outbox.Pending, 1)
}

func TestRelayFetchFailure(t *testing.T) {
	outbox := &testhelpers.OutboxRepositoryStub{FetchErr: errors.New("db down")}
	_, err := NewRelayUseCase(outbox, &testhelpers.PublisherStub{}).Relay(context.Background(), 10)
	require.Error(t, err)
}
