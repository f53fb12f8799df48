// Package servers holds the HTTP contract of the board: the OpenAPI document,
// its wire types and the echo bindings that decode parameters before calling a
// ServerInterface implementation.
package servers

import "time"

type Status string

const (
	StatusNovo       Status = "novo"
	StatusPreparando Status = "preparando"
	StatusPronto     Status = "pronto"
	StatusSaiu       Status = "saiu"
	StatusCancelado  Status = "cancelado"
)

type Source string

const (
	SourceIfood    Source = "ifood"
	Source99food   Source = "99food"
	SourceWhatsapp Source = "whatsapp"
)

type Urgency string

const (
	UrgencyNormal  Urgency = "normal"
	UrgencyWarning Urgency = "warning"
	UrgencyUrgent  Urgency = "urgent"
)

// OrderID defines model for OrderID parameter.
type OrderID = int64

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewOrder struct {
	ClientName  string `json:"client_name"`
	Description string `json:"description"`
	Source      Source `json:"source"`
}

type OrderCreated struct {
	Id int64 `json:"id"`
}

type StatusChange struct {
	Status Status `json:"status"`
}

type OrderStatus struct {
	Id        int64     `json:"id"`
	Status    Status    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Order struct {
	ClientName     string    `json:"client_name"`
	CreatedAt      time.Time `json:"created_at"`
	Description    string    `json:"description"`
	ElapsedLabel   string    `json:"elapsed_label"`
	ElapsedSeconds int64     `json:"elapsed_seconds"`
	Id             int64     `json:"id"`
	Source         string    `json:"source"`
	Status         Status    `json:"status"`
	UpdatedAt      time.Time `json:"updated_at"`
	Urgency        Urgency   `json:"urgency"`
}

type StatusCount struct {
	Count  int    `json:"count"`
	Status Status `json:"status"`
}

type StatusCounts struct {
	Counts []StatusCount `json:"counts"`
	Total  int           `json:"total"`
}

type SweepResult struct {
	Removed int64 `json:"removed"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	// IncludeFinished also returns dispatched and cancelled orders.
	IncludeFinished *bool `form:"include_finished,omitempty" json:"include_finished,omitempty"`
}

// SweepOrdersParams defines parameters for SweepOrders.
type SweepOrdersParams struct {
	RetentionHours int `form:"retention_hours" json:"retention_hours"`
}

type CreateOrderJSONRequestBody = NewOrder

type TransitionOrderJSONRequestBody = StatusChange
