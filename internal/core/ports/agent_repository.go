package ports

import (
	"context"

	"quickbite/internal/core/domain/model/agent"
	"quickbite/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for delivery-agent
// aggregates and their append-only earnings history.
type AgentRepository interface {
	// Add persists a new agent aggregate.
	Add(ctx context.Context, aggregate *agent.DeliveryAgent) error

	// Update persists changes to an existing agent.
	Update(ctx context.Context, aggregate *agent.DeliveryAgent) error

	// Get retrieves an agent by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error)

	// GetByPhone retrieves an agent by its unique phone number.
	GetByPhone(ctx context.Context, phone string) (*agent.DeliveryAgent, error)

	// AddEarning appends an entry to the earnings history. Entries are
	// immutable once written.
	AddEarning(ctx context.Context, earning agent.Earning) error
}
