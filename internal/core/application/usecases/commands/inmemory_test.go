package commands_test

import (
	"context"
	"sync"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// inMemoryStore backs the full unit-of-work surface with maps and one mutex.
// It lets flow tests (concurrent assignment, settlement idempotency) run the
// real handlers end to end without a database.
type inMemoryStore struct {
	mu          sync.Mutex
	orders      map[string]*order.Order
	wallets     map[string]*wallet.Wallet
	withdrawals map[string]*wallet.WithdrawalRequest
	sellerRules map[string][]commission.Rule
	platformFee map[string]*commission.PlatformFeeRecord
}

func newInMemoryStore() *inMemoryStore {
	return &inMemoryStore{
		orders:      make(map[string]*order.Order),
		wallets:     make(map[string]*wallet.Wallet),
		withdrawals: make(map[string]*wallet.WithdrawalRequest),
		sellerRules: make(map[string][]commission.Rule),
		platformFee: make(map[string]*commission.PlatformFeeRecord),
	}
}

// cloneOrder rebuilds an independent aggregate so concurrent handlers never
// share mutable state, mirroring how a repository rehydrates rows.
func cloneOrder(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(order.RestoreParams{
		ID:               o.ID(),
		SellerID:         o.SellerID(),
		CustomerID:       o.CustomerID(),
		SellerLocation:   o.SellerLocation(),
		CustomerLocation: o.CustomerLocation(),
		Status:           o.Status(),
		Phase:            o.Phase(),
		Pricing:          o.Pricing(),
		Payment:          o.PaymentMethod(),
		CourierID:        o.Courier(),
		NotifiedCouriers: o.NotifiedCouriers(),
		AssignedAt:       o.AssignedAt(),
		PickupRoute:      o.PickupRoute(),
		DropRoute:        o.DropRoute(),
		ProofImageURL:    o.ProofImageURL(),
		ReachedPickupAt:  o.ReachedPickupAt(),
		PickedUpAt:       o.PickedUpAt(),
		ReachedDropAt:    o.ReachedDropAt(),
		DeliveredAt:      o.DeliveredAt(),
		Rating:           o.Rating(),
		Review:           o.Review(),
		CashRecorded:     o.CashRecorded(),
		SettlementDone:   o.SettlementCompleted(),
	})
}

type inMemoryOrderRepo struct{ store *inMemoryStore }

func (r inMemoryOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[o.ID().String()] = o
	return nil
}

func (r inMemoryOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[o.ID().String()] = o
	return nil
}

func (r inMemoryOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return cloneOrder(stored)
}

func (r inMemoryOrderRepo) ClaimForCourier(
	_ context.Context, orderID, courierID kernel.UUID, at time.Time,
) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.orders[orderID.String()]
	if !ok {
		return errs.NewObjectNotFoundError("orderId", orderID.String())
	}
	if stored.Courier() != nil {
		return errs.NewConflictError("order is already assigned to another courier")
	}
	claimed, err := cloneOrder(stored)
	if err != nil {
		return err
	}
	route, err := twoPointRoute(stored.SellerLocation(), stored.CustomerLocation())
	if err != nil {
		return err
	}
	if err := claimed.Assign(courierID, route, at); err != nil {
		return err
	}
	r.store.orders[orderID.String()] = claimed
	return nil
}

func (r inMemoryOrderRepo) GetSettlementPending(_ context.Context) ([]*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var pending []*order.Order
	for _, stored := range r.store.orders {
		if stored.SettlementPending() {
			cloned, err := cloneOrder(stored)
			if err != nil {
				return nil, err
			}
			pending = append(pending, cloned)
		}
	}
	return pending, nil
}

func (r inMemoryOrderRepo) GetActiveByCourier(
	_ context.Context, courierID kernel.UUID,
) ([]*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var active []*order.Order
	for _, stored := range r.store.orders {
		holder := stored.Courier()
		if holder != nil && holder.IsEqual(courierID) && !stored.Status().IsTerminal() {
			cloned, err := cloneOrder(stored)
			if err != nil {
				return nil, err
			}
			active = append(active, cloned)
		}
	}
	return active, nil
}

type inMemoryWalletRepo struct{ store *inMemoryStore }

func (r inMemoryWalletRepo) Add(_ context.Context, w *wallet.Wallet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.wallets[w.ID().String()] = w
	return nil
}

func (r inMemoryWalletRepo) Update(_ context.Context, w *wallet.Wallet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.wallets[w.ID().String()] = w
	return nil
}

func (r inMemoryWalletRepo) Get(_ context.Context, id kernel.UUID) (*wallet.Wallet, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.wallets[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("walletId", id.String())
	}
	return stored, nil
}

func (r inMemoryWalletRepo) GetByOwner(
	_ context.Context, ownerID kernel.UUID, ownerType wallet.OwnerType,
) (*wallet.Wallet, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, stored := range r.store.wallets {
		if stored.OwnerID().IsEqual(ownerID) && stored.OwnerType() == ownerType {
			return stored, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("ownerId", ownerID.String())
}

type inMemoryWithdrawalRepo struct{ store *inMemoryStore }

func (r inMemoryWithdrawalRepo) Add(_ context.Context, req *wallet.WithdrawalRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.withdrawals[req.ID().String()] = req
	return nil
}

func (r inMemoryWithdrawalRepo) Update(_ context.Context, req *wallet.WithdrawalRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.withdrawals[req.ID().String()] = req
	return nil
}

func (r inMemoryWithdrawalRepo) Get(_ context.Context, id kernel.UUID) (*wallet.WithdrawalRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.withdrawals[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("requestId", id.String())
	}
	return stored, nil
}

func (r inMemoryWithdrawalRepo) GetOutstandingByWallet(
	_ context.Context, walletID kernel.UUID,
) ([]*wallet.WithdrawalRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var outstanding []*wallet.WithdrawalRequest
	for _, stored := range r.store.withdrawals {
		if stored.WalletID().IsEqual(walletID) && stored.IsOutstanding() {
			outstanding = append(outstanding, stored)
		}
	}
	return outstanding, nil
}

type inMemoryCommissionRepo struct{ store *inMemoryStore }

func (r inMemoryCommissionRepo) GetSellerRules(
	_ context.Context, sellerID kernel.UUID,
) ([]commission.Rule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.sellerRules[sellerID.String()], nil
}

func (r inMemoryCommissionRepo) AddPlatformFee(
	_ context.Context, record *commission.PlatformFeeRecord,
) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := record.OrderID().String()
	if _, exists := r.store.platformFee[key]; exists {
		return errs.NewConflictError("platform fee already recorded")
	}
	r.store.platformFee[key] = record
	return nil
}

func (r inMemoryCommissionRepo) GetPlatformFee(
	_ context.Context, orderID kernel.UUID,
) (*commission.PlatformFeeRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.platformFee[orderID.String()], nil
}

// inMemoryUoW satisfies every unit-of-work composition the handlers need.
// Transactions are no-ops; the store's mutex provides the atomicity the
// claim path relies on.
type inMemoryUoW struct{ store *inMemoryStore }

func (u inMemoryUoW) Begin(context.Context) error    { return nil }
func (u inMemoryUoW) Commit(context.Context) error   { return nil }
func (u inMemoryUoW) Rollback(context.Context) error { return nil }

func (u inMemoryUoW) OrderRepository() ports.OrderRepository {
	return inMemoryOrderRepo{store: u.store}
}

func (u inMemoryUoW) WalletRepository() ports.WalletRepository {
	return inMemoryWalletRepo{store: u.store}
}

func (u inMemoryUoW) WithdrawalRepository() ports.WithdrawalRepository {
	return inMemoryWithdrawalRepo{store: u.store}
}

func (u inMemoryUoW) CommissionRepository() ports.CommissionRepository {
	return inMemoryCommissionRepo{store: u.store}
}

type inMemoryOrderUoWFactory struct{ store *inMemoryStore }

func (f inMemoryOrderUoWFactory) Create() commands.OrderUoW { return inMemoryUoW{store: f.store} }

type inMemorySettlementUoWFactory struct{ store *inMemoryStore }

func (f inMemorySettlementUoWFactory) Create() commands.SettlementUoW {
	return inMemoryUoW{store: f.store}
}

type inMemoryWithdrawalUoWFactory struct{ store *inMemoryStore }

func (f inMemoryWithdrawalUoWFactory) Create() commands.WithdrawalUoW {
	return inMemoryUoW{store: f.store}
}

// twoPointRoute builds a minimal valid route between two points.
func twoPointRoute(from, to kernel.GeoPoint) (order.Route, error) {
	distance, err := from.DistanceKm(to)
	if err != nil {
		return order.Route{}, err
	}
	return order.NewRoute([]kernel.GeoPoint{from, to}, distance, distance/25*60, order.RouteMethodGreatCircle)
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []ports.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.OrderEvent(nil), p.events...)
}
