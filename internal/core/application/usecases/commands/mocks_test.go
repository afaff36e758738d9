package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"
)

// Shared testify mocks for the repository ports and unit of work compositions.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ClaimForCourier(
	ctx context.Context, orderID, courierID kernel.UUID, at time.Time,
) error {
	args := m.Called(ctx, orderID, courierID, at)
	return args.Error(0)
}

func (m *MockOrderRepository) GetSettlementPending(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByCourier(
	ctx context.Context, courierID kernel.UUID,
) ([]*order.Order, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockWalletRepository struct{ mock.Mock }

func (m *MockWalletRepository) Add(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) Get(ctx context.Context, id kernel.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByOwner(
	ctx context.Context, ownerID kernel.UUID, ownerType wallet.OwnerType,
) (*wallet.Wallet, error) {
	args := m.Called(ctx, ownerID, ownerType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

type MockWithdrawalRepository struct{ mock.Mock }

func (m *MockWithdrawalRepository) Add(ctx context.Context, r *wallet.WithdrawalRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) Update(ctx context.Context, r *wallet.WithdrawalRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) Get(ctx context.Context, id kernel.UUID) (*wallet.WithdrawalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) GetOutstandingByWallet(
	ctx context.Context, walletID kernel.UUID,
) ([]*wallet.WithdrawalRequest, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wallet.WithdrawalRequest), args.Error(1)
}

type MockCommissionRepository struct{ mock.Mock }

func (m *MockCommissionRepository) GetSellerRules(
	ctx context.Context, sellerID kernel.UUID,
) ([]commission.Rule, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commission.Rule), args.Error(1)
}

func (m *MockCommissionRepository) AddPlatformFee(
	ctx context.Context, record *commission.PlatformFeeRecord,
) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCommissionRepository) GetPlatformFee(
	ctx context.Context, orderID kernel.UUID,
) (*commission.PlatformFeeRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.PlatformFeeRecord), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWithdrawalUoW struct{ mock.Mock }

func (m *MockWithdrawalUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWithdrawalUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWithdrawalUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWithdrawalUoW) WalletRepository() ports.WalletRepository {
	args := m.Called()
	return args.Get(0).(ports.WalletRepository)
}

func (m *MockWithdrawalUoW) WithdrawalRepository() ports.WithdrawalRepository {
	args := m.Called()
	return args.Get(0).(ports.WithdrawalRepository)
}

type MockWithdrawalUoWFactory struct{ mock.Mock }

func (m *MockWithdrawalUoWFactory) Create() commands.WithdrawalUoW {
	args := m.Called()
	return args.Get(0).(commands.WithdrawalUoW)
}
