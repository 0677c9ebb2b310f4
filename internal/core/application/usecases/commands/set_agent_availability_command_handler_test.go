package commands_test

import (
	"context"
	"testing"

	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/domain/model/agent"
	"quickbite/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetAgentAvailabilityCommandHandler_Handle_CreatesUnknownAgent(t *testing.T) {
	ctx := context.Background()

	cmd, err := commands.NewSetAgentAvailabilityCommand("+919876543210", "Ravi Kumar", "bike", true)
	require.NoError(t, err)

	var created *agent.DeliveryAgent
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AgentRepository").Return(agentRepo).Once()
	agentRepo.On("GetByPhone", mock.Anything, "+919876543210").
		Return(nil, errs.NewObjectNotFoundError("phone", "+919876543210")).Once()
	agentRepo.On("Add", mock.Anything, mock.AnythingOfType("*agent.DeliveryAgent")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*agent.DeliveryAgent) }).
		Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetAgentAvailabilityCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, created)
	assert.Equal(t, "Ravi Kumar", created.Name())
	assert.Equal(t, "bike", created.Vehicle())
	assert.True(t, created.IsOnline())
	assert.True(t, created.IsAvailable())

	agentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetAgentAvailabilityCommandHandler_Handle_TogglesExistingAgent(t *testing.T) {
	ctx := context.Background()
	courier := newOnlineAgent(t)

	cmd, err := commands.NewSetAgentAvailabilityCommand(courier.Phone(), "", "", false)
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AgentRepository").Return(agentRepo).Once()
	agentRepo.On("GetByPhone", mock.Anything, courier.Phone()).Return(courier, nil).Once()
	agentRepo.On("Update", mock.Anything, courier).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetAgentAvailabilityCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.False(t, courier.IsOnline())
	agentRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestSetAgentAvailabilityCommandHandler_Handle_UnknownAgentGoingOffline(t *testing.T) {
	ctx := context.Background()

	cmd, err := commands.NewSetAgentAvailabilityCommand("+911111111111", "", "", false)
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AgentRepository").Return(agentRepo).Once()
	agentRepo.On("GetByPhone", mock.Anything, "+911111111111").
		Return(nil, errs.NewObjectNotFoundError("phone", "+911111111111")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetAgentAvailabilityCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewSetAgentAvailabilityCommand_Validation(t *testing.T) {
	_, err := commands.NewSetAgentAvailabilityCommand("", "Ravi", "bike", true)
	require.Error(t, err)

	cmd := commands.SetAgentAvailabilityCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrSetAgentAvailabilityCommandIsNotConstructed)
}
