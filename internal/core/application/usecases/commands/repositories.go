// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest composition that covers the aggregates
// it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// WalletRepoFactory provides access to the wallet repository within a transaction.
	WalletRepoFactory interface {
		WalletRepository() ports.WalletRepository
	}

	// WithdrawalRepoFactory provides access to the withdrawal repository within a transaction.
	WithdrawalRepoFactory interface {
		WithdrawalRepository() ports.WithdrawalRepository
	}

	// CommissionRepoFactory provides access to the commission repository within a transaction.
	CommissionRepoFactory interface {
		CommissionRepository() ports.CommissionRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used by lifecycle transitions that never touch money.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SettlementUoW manages transactions spanning the order, both wallets, and
	// the platform commission record.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		WalletRepoFactory
		CommissionRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// WithdrawalUoW manages transactions for the withdrawal review flow.
	WithdrawalUoW interface {
		TxManager
		WalletRepoFactory
		WithdrawalRepoFactory
	}

	// WithdrawalUoWFactory creates new withdrawal unit of work instances.
	WithdrawalUoWFactory interface {
		Create() WithdrawalUoW
	}
)
