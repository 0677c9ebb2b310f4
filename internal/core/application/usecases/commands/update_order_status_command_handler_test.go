package commands_test

import (
	"context"
	"testing"

	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusCommandHandler_Handle_KnownStatus(t *testing.T) {
	ctx := context.Background()
	confirmedOrder := newTestOrder(t, order.PaymentMethodCashOnDelivery)
	notifier := &recordingNotifier{}

	cmd, err := commands.NewUpdateOrderStatusCommand(confirmedOrder.ID(), order.StatusPreparing)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, confirmedOrder.ID()).Return(confirmedOrder, nil).Once(),
		repo.On("Update", mock.Anything, confirmedOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusPreparing, confirmedOrder.Status())

	published := notifier.all()
	require.Len(t, published, 1)
	assert.Equal(t, "Order being prepared", published[0].Title)
}

func TestUpdateOrderStatusCommandHandler_Handle_CustomStatusFallbackNotification(t *testing.T) {
	ctx := context.Background()
	confirmedOrder := newTestOrder(t, order.PaymentMethodCashOnDelivery)
	notifier := &recordingNotifier{}

	cmd, err := commands.NewUpdateOrderStatusCommand(confirmedOrder.ID(), order.Status("quality_check"))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, confirmedOrder.ID()).Return(confirmedOrder, nil).Once()
	repo.On("Update", mock.Anything, confirmedOrder).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Status("quality_check"), confirmedOrder.Status())

	published := notifier.all()
	require.Len(t, published, 1)
	assert.Contains(t, published[0].Message, "quality_check")
	assert.Contains(t, published[0].Message, confirmedOrder.Code())
}

func TestUpdateOrderStatusCommandHandler_Handle_TerminalOrderRejected(t *testing.T) {
	ctx := context.Background()
	cancelledOrder := newTestOrder(t, order.PaymentMethodCashOnDelivery)
	require.NoError(t, cancelledOrder.OverrideStatus(order.StatusCancelled, cancelledOrder.CreatedAt()))
	notifier := &recordingNotifier{}

	cmd, err := commands.NewUpdateOrderStatusCommand(cancelledOrder.ID(), order.StatusPreparing)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, cancelledOrder.ID()).Return(cancelledOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.StatusCancelled, cancelledOrder.Status())
	assert.Empty(t, notifier.all())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_CancelReleasesCourier(t *testing.T) {
	ctx := context.Background()
	courier := newOnlineAgent(t)
	dispatchedOrder := newDispatchedOrder(t, courier)
	require.NoError(t, courier.AcceptOrder(dispatchedOrder.ID()))
	notifier := &recordingNotifier{}

	cmd, err := commands.NewUpdateOrderStatusCommand(dispatchedOrder.ID(), order.StatusCancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AgentRepository").Return(agentRepo).Once()
	orderRepo.On("Get", mock.Anything, dispatchedOrder.ID()).Return(dispatchedOrder, nil).Once()
	orderRepo.On("Update", mock.Anything, dispatchedOrder).Return(nil).Once()
	agentRepo.On("Get", mock.Anything, courier.ID()).Return(courier, nil).Once()
	agentRepo.On("Update", mock.Anything, courier).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusCancelled, dispatchedOrder.Status())
	// The courier is idle again and can take the next order.
	assert.Nil(t, courier.CurrentOrderID())
	assert.True(t, courier.IsAvailable())

	published := notifier.all()
	require.Len(t, published, 1)
	assert.Equal(t, "Order cancelled", published[0].Title)

	agentRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_CancelSkipsCourierOnNewerOrder(t *testing.T) {
	ctx := context.Background()
	courier := newOnlineAgent(t)
	dispatchedOrder := newDispatchedOrder(t, courier)
	// The courier has already been reassigned elsewhere; the cancellation
	// must not clear that newer active order.
	nextOrder := kernel.NewUUID()
	require.NoError(t, courier.AcceptOrder(nextOrder))
	notifier := &recordingNotifier{}

	cmd, err := commands.NewUpdateOrderStatusCommand(dispatchedOrder.ID(), order.StatusCancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AgentRepository").Return(agentRepo).Once()
	orderRepo.On("Get", mock.Anything, dispatchedOrder.ID()).Return(dispatchedOrder, nil).Once()
	orderRepo.On("Update", mock.Anything, dispatchedOrder).Return(nil).Once()
	agentRepo.On("Get", mock.Anything, courier.ID()).Return(courier, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, courier.CurrentOrderID())
	assert.True(t, courier.CurrentOrderID().IsEqual(nextOrder))
	agentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewUpdateOrderStatusCommand_Validation(t *testing.T) {
	_, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), order.Status(""))
	require.Error(t, err)

	cmd := commands.UpdateOrderStatusCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateOrderStatusCommandIsNotConstructed)
}
