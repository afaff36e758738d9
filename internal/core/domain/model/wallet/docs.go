// Package wallet contains the financial ledger aggregates.
//
// Wallet is the aggregate root: one per actor, holding a running balance, a
// cash-in-hand counter for couriers, and an append-only transaction log.
// Settlement idempotency hangs off the log: a payment transaction referencing
// an order is the proof that the order was already credited, so replays look
// it up instead of crediting again.
//
// WithdrawalRequest is a separate aggregate for the admin review flow. The
// funds themselves are held by a pending withdrawal transaction inside the
// wallet; the request only carries the review state and links back to that
// hold by transaction ID.
package wallet
