package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	sellerLocation, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	customerLocation, err := kernel.NewGeoPoint(12.9352, 77.6245)
	require.NoError(t, err)
	pricing, err := order.NewPricing(
		kernel.NewMoneyFromFloat(500),
		kernel.NewMoneyFromFloat(0),
		kernel.NewMoneyFromFloat(40),
		kernel.NewMoneyFromFloat(20),
	)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		sellerLocation, customerLocation, pricing)
	require.NoError(t, err)
	return aggregate
}

func TestConfirmPaymentCommandHandler_Handle_MovesPendingToPreparing(t *testing.T) {
	store := newInMemoryStore()
	aggregate := newPendingOrder(t)
	store.orders[aggregate.ID().String()] = aggregate

	handler := commands.NewConfirmPaymentCommandHandler(inMemoryOrderUoWFactory{store: store})
	cmd, err := commands.NewConfirmPaymentCommand(aggregate.ID(), string(order.PaymentCash))
	require.NoError(t, err)

	require.NoError(t, handler.Handle(context.Background(), cmd))

	stored := store.orders[aggregate.ID().String()]
	assert.Equal(t, order.Preparing, stored.Status())
	assert.Equal(t, order.PaymentCash, stored.PaymentMethod())
}

func TestConfirmPaymentCommandHandler_Handle_ReplayKeepsOriginalMethod(t *testing.T) {
	store := newInMemoryStore()
	aggregate := newPendingOrder(t)
	store.orders[aggregate.ID().String()] = aggregate

	handler := commands.NewConfirmPaymentCommandHandler(inMemoryOrderUoWFactory{store: store})

	first, err := commands.NewConfirmPaymentCommand(aggregate.ID(), string(order.PaymentOnline))
	require.NoError(t, err)
	require.NoError(t, handler.Handle(context.Background(), first))

	replay, err := commands.NewConfirmPaymentCommand(aggregate.ID(), string(order.PaymentCash))
	require.NoError(t, err)
	require.NoError(t, handler.Handle(context.Background(), replay))

	stored := store.orders[aggregate.ID().String()]
	assert.Equal(t, order.Preparing, stored.Status())
	assert.Equal(t, order.PaymentOnline, stored.PaymentMethod())
}

func TestNewConfirmPaymentCommand_RejectsUnknownMethod(t *testing.T) {
	_, err := commands.NewConfirmPaymentCommand(kernel.NewUUID(), "barter")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMarkReadyCommandHandler_Handle_PreparingBecomesReady(t *testing.T) {
	store := newInMemoryStore()
	aggregate := newPendingOrder(t)
	_, err := aggregate.ConfirmPayment(order.PaymentOnline)
	require.NoError(t, err)
	store.orders[aggregate.ID().String()] = aggregate

	handler := commands.NewMarkReadyCommandHandler(inMemoryOrderUoWFactory{store: store})
	cmd, err := commands.NewMarkReadyCommand(aggregate.ID())
	require.NoError(t, err)

	require.NoError(t, handler.Handle(context.Background(), cmd))
	assert.Equal(t, order.Ready, store.orders[aggregate.ID().String()].Status())

	// replay is a silent no-op
	require.NoError(t, handler.Handle(context.Background(), cmd))
	assert.Equal(t, order.Ready, store.orders[aggregate.ID().String()].Status())
}

func TestMarkReadyCommandHandler_Handle_OrderNotFound(t *testing.T) {
	handler := commands.NewMarkReadyCommandHandler(inMemoryOrderUoWFactory{store: newInMemoryStore()})
	cmd, err := commands.NewMarkReadyCommand(kernel.NewUUID())
	require.NoError(t, err)

	err = handler.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNotifyCourierCommandHandler_Handle_RecordsOfferAndPublishes(t *testing.T) {
	store := newInMemoryStore()
	aggregate := newReadyOrder(t)
	store.orders[aggregate.ID().String()] = aggregate
	publisher := &recordingPublisher{}

	handler := commands.NewNotifyCourierCommandHandler(
		inMemoryOrderUoWFactory{store: store}, publisher, nil)
	courierID := kernel.NewUUID()
	cmd, err := commands.NewNotifyCourierCommand(aggregate.ID(), courierID)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(context.Background(), cmd))

	stored := store.orders[aggregate.ID().String()]
	assert.True(t, stored.WasNotified(courierID))

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ports.EventOrderAssigned, events[0].Kind)
	assert.Equal(t, ports.AudienceCourier, events[0].Audience)
	assert.True(t, events[0].Recipient.IsEqual(courierID))
}

func TestNotifyCourierCommandHandler_Handle_DuplicateOfferIsIdempotent(t *testing.T) {
	store := newInMemoryStore()
	aggregate := newReadyOrder(t)
	store.orders[aggregate.ID().String()] = aggregate

	handler := commands.NewNotifyCourierCommandHandler(
		inMemoryOrderUoWFactory{store: store}, nil, nil)
	courierID := kernel.NewUUID()
	cmd, err := commands.NewNotifyCourierCommand(aggregate.ID(), courierID)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(context.Background(), cmd))
	require.NoError(t, handler.Handle(context.Background(), cmd))

	assert.Len(t, store.orders[aggregate.ID().String()].NotifiedCouriers(), 1)
}

func TestConfirmReachedDropCommandHandler_Handle_RecordsArrival(t *testing.T) {
	store := newInMemoryStore()
	aggregate, courierID := atPickupOrder(t, store)

	confirmHandler := newConfirmOrderIDHandler(store)
	confirmCmd, err := commands.NewConfirmOrderIDCommand(
		aggregate.ID(), courierID, aggregate.ID().String(), "")
	require.NoError(t, err)
	_, err = confirmHandler.Handle(context.Background(), confirmCmd)
	require.NoError(t, err)

	handler := commands.NewConfirmReachedDropCommandHandler(inMemoryOrderUoWFactory{store: store})
	cmd, err := commands.NewConfirmReachedDropCommand(aggregate.ID(), courierID)
	require.NoError(t, err)

	updated, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, order.AtDelivery, updated.Phase())

	stored := store.orders[aggregate.ID().String()]
	assert.Equal(t, order.AtDelivery, stored.Phase())
	assert.NotNil(t, stored.ReachedDropAt())

	// replay is a silent no-op
	replayed, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, order.AtDelivery, replayed.Phase())
	assert.Equal(t, order.AtDelivery, stored.Phase())
}

func TestConfirmReachedDropCommandHandler_Handle_WrongCourierConflicts(t *testing.T) {
	store := newInMemoryStore()
	aggregate, courierID := atPickupOrder(t, store)

	confirmHandler := newConfirmOrderIDHandler(store)
	confirmCmd, err := commands.NewConfirmOrderIDCommand(
		aggregate.ID(), courierID, aggregate.ID().String(), "")
	require.NoError(t, err)
	_, err = confirmHandler.Handle(context.Background(), confirmCmd)
	require.NoError(t, err)

	handler := commands.NewConfirmReachedDropCommandHandler(inMemoryOrderUoWFactory{store: store})
	cmd, err := commands.NewConfirmReachedDropCommand(aggregate.ID(), kernel.NewUUID())
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, errs.ErrConflict)
}
