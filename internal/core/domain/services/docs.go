// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the marketplace delivery system. It
// implements logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - RouteEstimator: produces delivery routes with deterministic fallbacks
//     when the external routing provider degrades
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
