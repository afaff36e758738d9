// Package order provides the aggregate root for the delivery lifecycle of a
// marketplace order.
//
// The package models two layers of state:
//   - Status: the coarse storefront lifecycle (pending, preparing, ready,
//     out_for_delivery, delivered, cancelled)
//   - Phase: the fine-grained delivery progression driven by the courier
//     (unassigned, en_route_to_pickup, at_pickup, en_route_to_delivery,
//     at_delivery, completed)
//
// Phase is the single source of truth for delivery progress; the externally
// visible coarse delivery status is derived from it through a fixed mapping
// table, never stored separately.
//
// Every phase transition treats a replay that targets an already-reached phase
// as a silent success: couriers on unreliable mobile networks retry requests
// aggressively, and a confusing error on a successful retry is worse than a
// silent success. Transitions that would re-trigger financial side effects
// (CompleteDelivery) report changed=false on replay so callers can skip
// settlement.
//
// The package also carries the supporting value objects: Route snapshots per
// delivery leg, the Pricing breakdown, and the PaymentMethod.
package order
