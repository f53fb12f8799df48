// Package order provides the domain model of the kitchen order board.
//
// The package includes:
//   - Order: the aggregate root holding identity, channel, customer, items summary,
//     status and timestamps
//   - Status: the state machine every status change goes through
//   - Source: the closed set of intake channels accepted at creation
//   - Urgency: the read-time tier derived from how long an order has been waiting
//
// Key business rules:
//   - New orders always start in New ("novo") with CreatedAt == UpdatedAt
//   - Status follows New -> Preparing -> Ready -> Dispatched; Cancelled is reachable
//     from every non-terminal status
//   - Dispatched ("saiu") and Cancelled ("cancelado") are terminal
//   - Every status change bumps UpdatedAt strictly forward
//   - Display order is status rank first, then CreatedAt
package order
