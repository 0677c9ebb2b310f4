// Package agentrepo provides data transfer objects and mapping functions for
// delivery-agent persistence, including the append-only earnings history.
package agentrepo

import (
	"time"

	"quickbite/internal/core/domain/model/agent"
	"quickbite/internal/core/domain/model/kernel"
)

// AgentDTO represents the database structure for persisting delivery agents.
// The phone number is the external key agents identify themselves with.
type AgentDTO struct {
	ID      string `gorm:"type:uuid;primaryKey"`
	Name    string
	Phone   string `gorm:"uniqueIndex"`
	Vehicle string
	Online  bool `gorm:"index"`

	Lat       *float64
	Lng       *float64
	LocatedAt *time.Time

	CurrentOrderID *string `gorm:"type:uuid"`

	TotalDeliveries int
	TotalEarnings   int64

	BankAccountHolder string
	BankAccountNumber string
	BankIfsc          string

	Version int
}

// TableName specifies the database table name for agent entities.
func (AgentDTO) TableName() string {
	return "agents"
}

// EarningDTO represents one immutable earning entry. Rows are only ever
// inserted; the earnings history is the audit trail behind the summary
// queries.
type EarningDTO struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	AgentID    string `gorm:"type:uuid;index"`
	OrderID    string `gorm:"type:uuid"`
	Amount     int64
	OrderTotal int64
	EarnedAt   time.Time `gorm:"index"`
}

// TableName specifies the database table name for earning entries.
func (EarningDTO) TableName() string {
	return "earnings"
}

// fromDomain converts an agent domain aggregate to its database representation.
func fromDomain(aggregate *agent.DeliveryAgent) AgentDTO {
	dto := AgentDTO{
		ID:                aggregate.ID().String(),
		Name:              aggregate.Name(),
		Phone:             aggregate.Phone(),
		Vehicle:           aggregate.Vehicle(),
		Online:            aggregate.IsOnline(),
		LocatedAt:         aggregate.LocatedAt(),
		TotalDeliveries:   aggregate.TotalDeliveries(),
		TotalEarnings:     aggregate.TotalEarnings().Paise(),
		BankAccountHolder: aggregate.Bank().AccountHolder,
		BankAccountNumber: aggregate.Bank().AccountNumber,
		BankIfsc:          aggregate.Bank().IFSC,
	}

	if point := aggregate.Location(); point != nil {
		lat, lng := point.Latitude(), point.Longitude()
		dto.Lat = &lat
		dto.Lng = &lng
	}

	if orderID := aggregate.CurrentOrderID(); orderID != nil {
		raw := orderID.String()
		dto.CurrentOrderID = &raw
	}

	return dto
}

// toDomain converts a database DTO to an agent domain aggregate using RestoreAgent.
func toDomain(dto AgentDTO) (*agent.DeliveryAgent, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		orderID, orderErr := kernel.UUIDFromString(*dto.CurrentOrderID)
		if orderErr != nil {
			return nil, orderErr
		}
		currentOrderID = &orderID
	}

	return agent.RestoreAgent(agent.RestoreAgentProps{
		ID:              id,
		Name:            dto.Name,
		Phone:           dto.Phone,
		Vehicle:         dto.Vehicle,
		Online:          dto.Online,
		Location:        location,
		LocatedAt:       dto.LocatedAt,
		CurrentOrderID:  currentOrderID,
		TotalDeliveries: dto.TotalDeliveries,
		TotalEarnings:   kernel.MoneyFromPaise(dto.TotalEarnings),
		Version:         dto.Version,
		Bank: agent.BankDetails{
			AccountHolder: dto.BankAccountHolder,
			AccountNumber: dto.BankAccountNumber,
			IFSC:          dto.BankIfsc,
		},
	})
}

// earningFromDomain converts an earning entry to its database representation.
func earningFromDomain(entry agent.Earning) EarningDTO {
	return EarningDTO{
		ID:         entry.ID().String(),
		AgentID:    entry.AgentID().String(),
		OrderID:    entry.OrderID().String(),
		Amount:     entry.Amount().Paise(),
		OrderTotal: entry.OrderTotal().Paise(),
		EarnedAt:   entry.EarnedAt(),
	}
}
