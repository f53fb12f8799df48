// Package services provides domain services that hold kitchen board rules which do not
// belong to the Order aggregate itself.
//
// The package includes:
//   - UrgencyPolicy: classifies how long an order has been waiting into display tiers
//   - FormatElapsed: renders a waiting time the way the board shows it ("12min", "1h 5min")
//
// Results of this package are computed at read time and never persisted.
package services
