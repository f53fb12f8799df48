package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Delete finished orders older than the retention period
	// (POST /api/v1/maintenance/sweep)
	SweepOrders(ctx echo.Context, params SweepOrdersParams) error
	// Orders for the board, in display order
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Put a new order on the board
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Number of orders in each active status
	// (GET /api/v1/orders/counts)
	CountOrdersByStatus(ctx echo.Context) error
	// Remove an order from the board
	// (DELETE /api/v1/orders/{id})
	DeleteOrder(ctx echo.Context, id OrderID) error
	// A single order
	// (GET /api/v1/orders/{id})
	GetOrder(ctx echo.Context, id OrderID) error
	// Move an order to another status
	// (POST /api/v1/orders/{id}/status)
	TransitionOrder(ctx echo.Context, id OrderID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// SweepOrders converts echo context to params.
func (w *ServerInterfaceWrapper) SweepOrders(ctx echo.Context) error {
	var params SweepOrdersParams

	err := runtime.BindQueryParameter("form", true, true, "retention_hours", ctx.QueryParams(), &params.RetentionHours)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter retention_hours: %s", err))
	}

	return w.Handler.SweepOrders(ctx, params)
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "include_finished", ctx.QueryParams(), &params.IncludeFinished)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter include_finished: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// CountOrdersByStatus converts echo context to params.
func (w *ServerInterfaceWrapper) CountOrdersByStatus(ctx echo.Context) error {
	return w.Handler.CountOrdersByStatus(ctx)
}

// DeleteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, id)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

// TransitionOrder converts echo context to params.
func (w *ServerInterfaceWrapper) TransitionOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.TransitionOrder(ctx, id)
}

func bindOrderID(ctx echo.Context) (OrderID, error) {
	var id OrderID

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/maintenance/sweep", wrapper.SweepOrders)
	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/counts", wrapper.CountOrdersByStatus)
	router.DELETE(baseURL+"/api/v1/orders/:id", wrapper.DeleteOrder)
	router.GET(baseURL+"/api/v1/orders/:id", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:id/status", wrapper.TransitionOrder)
}
