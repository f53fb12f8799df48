package commands

import (
	"errors"
	"strings"

	"kds/internal/core/domain/model/order"
	"kds/internal/pkg/errs"
	"kds/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a new order arriving from an intake channel.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("ifood", "Maria", "1x Açaí 500ml")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	id, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	source      order.Source
	clientName  string
	description string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand trims and validates the raw channel input.
// All problems are reported together.
func NewCreateOrderCommand(source, clientName, description string) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSource(source),
		command.setClientName(clientName),
		command.setDescription(description),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Source() order.Source {
	return c.source
}

func (c CreateOrderCommand) ClientName() string {
	return c.clientName
}

func (c CreateOrderCommand) Description() string {
	return c.description
}

func (c *CreateOrderCommand) setSource(source string) error {
	parsed, err := order.ParseSource(source)
	if err != nil {
		return err
	}
	c.source = parsed
	return nil
}

func (c *CreateOrderCommand) setClientName(clientName string) error {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return errs.NewValueIsRequiredError("client_name")
	}
	c.clientName = clientName
	return nil
}

func (c *CreateOrderCommand) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	c.description = description
	return nil
}
