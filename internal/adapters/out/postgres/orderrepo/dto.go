// Package orderrepo persists order aggregates in Postgres through GORM. It maps
// between the domain aggregate and the orders table created by the migrations package.
package orderrepo

import (
	"time"

	"kds/internal/core/domain/model/order"
)

// OrderDTO mirrors one row of the orders table. Status is stored as its board label
// so the table stays readable from psql.
type OrderDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Source      string    `gorm:"type:text;not null"`
	ClientName  string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	Status      string    `gorm:"type:text;not null;index"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:          int64(aggregate.ID()),
		Source:      aggregate.Source().String(),
		ClientName:  aggregate.ClientName(),
		Description: aggregate.Description(),
		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

// toDomain rebuilds the aggregate with RestoreOrder, so a row that violates a domain
// invariant surfaces as a validation error instead of a half-built order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		order.ID(dto.ID),
		order.Source(dto.Source),
		dto.ClientName,
		dto.Description,
		status,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func statusLabels(statuses []order.Status) []string {
	labels := make([]string, 0, len(statuses))
	for _, s := range statuses {
		labels = append(labels, s.String())
	}
	return labels
}
