package http

import (
	"context"
	"net/http"

	"kds/internal/core/application/usecases/commands"
	"kds/internal/core/application/usecases/queries"
	"kds/internal/core/domain/model/order"
	"kds/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Use cases as seen by the HTTP layer.
type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (order.ID, error)
	}
	OrderTransitioner interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error)
	}
	OrderDeleter interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}
	OrderSweeper interface {
		Handle(ctx context.Context, cmd commands.SweepOrdersCommand) (int64, error)
	}
	OrderLister interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
	}
	OrderGetter interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	StatusCounter interface {
		Handle(ctx context.Context, query queries.CountOrdersByStatusQuery) (queries.CountOrdersByStatusResponse, error)
	}
)

// Handlers groups the use cases behind the API.
type Handlers struct {
	CreateOrder     OrderCreator
	TransitionOrder OrderTransitioner
	DeleteOrder     OrderDeleter
	SweepOrders     OrderSweeper
	ListOrders      OrderLister
	GetOrder        OrderGetter
	CountByStatus   StatusCounter
}

// Server implements servers.ServerInterface on top of the board use cases.
// Errors are returned to echo and rendered by ErrorHandler.
type Server struct {
	h Handlers
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	includeFinished := params.IncludeFinished != nil && *params.IncludeFinished

	views, err := s.h.ListOrders.Handle(ctx.Request().Context(), queries.NewListOrdersQuery(includeFinished))
	if err != nil {
		return err
	}

	response := make([]servers.Order, len(views))
	for i, v := range views {
		response[i] = toOrder(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(string(body.Source), body.ClientName, body.Description)
	if err != nil {
		return err
	}

	id, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, servers.OrderCreated{Id: int64(id)})
}

// CountOrdersByStatus handles GET /api/v1/orders/counts.
func (s *Server) CountOrdersByStatus(ctx echo.Context) error {
	counts, err := s.h.CountByStatus.Handle(ctx.Request().Context(), queries.NewCountOrdersByStatusQuery())
	if err != nil {
		return err
	}

	response := servers.StatusCounts{
		Counts: make([]servers.StatusCount, len(counts.Counts)),
		Total:  counts.Total(),
	}
	for i, c := range counts.Counts {
		response.Counts[i] = servers.StatusCount{Status: servers.Status(c.Status.String()), Count: c.Count}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id servers.OrderID) error {
	query, err := queries.NewGetOrderQuery(order.ID(id))
	if err != nil {
		return err
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(view))
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context, id servers.OrderID) error {
	cmd, err := commands.NewDeleteOrderCommand(order.ID(id))
	if err != nil {
		return err
	}

	if err = s.h.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/{id}/status.
func (s *Server) TransitionOrder(ctx echo.Context, id servers.OrderID) error {
	var body servers.TransitionOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewTransitionOrderCommand(order.ID(id), string(body.Status))
	if err != nil {
		return err
	}

	o, err := s.h.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, servers.OrderStatus{
		Id:        int64(o.ID()),
		Status:    servers.Status(o.Status().String()),
		UpdatedAt: o.UpdatedAt(),
	})
}

// SweepOrders handles POST /api/v1/maintenance/sweep.
func (s *Server) SweepOrders(ctx echo.Context, params servers.SweepOrdersParams) error {
	cmd, err := commands.NewSweepOrdersCommand(params.RetentionHours)
	if err != nil {
		return err
	}

	removed, err := s.h.SweepOrders.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, servers.SweepResult{Removed: removed})
}

func toOrder(v queries.OrderView) servers.Order {
	return servers.Order{
		Id:             int64(v.ID),
		Source:         v.Source.String(),
		ClientName:     v.ClientName,
		Description:    v.Description,
		Status:         servers.Status(v.Status.String()),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		ElapsedSeconds: int64(v.Elapsed.Seconds()),
		ElapsedLabel:   v.ElapsedLabel,
		Urgency:        servers.Urgency(v.Urgency.String()),
	}
}
