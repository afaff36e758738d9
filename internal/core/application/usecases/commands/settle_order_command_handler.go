package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// SettlementResult carries the financial outcome of settling one order.
// On an idempotent replay the figures are the originally recorded amounts.
type SettlementResult struct {
	CourierEarning kernel.Money
	SellerPayout   kernel.Money
	PlatformFee    kernel.Money
}

// SettleOrderCommandHandler splits a delivered order's value among courier,
// seller, and platform.
//
// Every step re-checks its own completion marker before acting, so the whole
// orchestration can be re-invoked after a partial failure without
// double-crediting anything:
//   - courier and seller credits are guarded by the per-order payment
//     transaction already present in each wallet's ledger
//   - the COD cash-in-hand increase is guarded by the order's cash marker
//   - the platform fee record is guarded by its per-order uniqueness check
//
// Delivered notifications go out after commit, concurrently, and only log on
// failure.
type SettleOrderCommandHandler struct {
	uowFactory  SettlementUoWFactory
	publisher   ports.EventPublisher
	courierRate commission.CourierRate
	defaultRule commission.Rule
	logger      *slog.Logger
}

// NewSettleOrderCommandHandler creates the settlement orchestrator.
// The courier rate and the default seller rule come from configuration.
func NewSettleOrderCommandHandler(
	uowFactory SettlementUoWFactory,
	publisher ports.EventPublisher,
	courierRate commission.CourierRate,
	defaultRule commission.Rule,
	logger *slog.Logger,
) SettleOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return SettleOrderCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		courierRate: courierRate,
		defaultRule: defaultRule,
		logger:      logger.With("component", "settlement"),
	}
}

// Handle runs the settlement steps for one delivered order and returns the
// resulting figures. Re-invocations return the recorded figures unchanged.
func (h SettleOrderCommandHandler) Handle(ctx context.Context, cmd SettleOrderCommand) (SettlementResult, error) {
	if err := cmd.Validate(); err != nil {
		return SettlementResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SettlementResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return SettlementResult{}, err
	}
	if aggregate.Status() != order.Delivered {
		return SettlementResult{}, errs.NewPreconditionFailedErrorWithCause(
			"order is not delivered", fmt.Errorf("status is %s", aggregate.Status()))
	}
	courierID := aggregate.Courier()
	if courierID == nil {
		return SettlementResult{}, errs.NewPreconditionFailedError("delivered order has no courier")
	}

	now := time.Now().UTC()
	walletRepo := uow.WalletRepository()
	var result SettlementResult

	courierWallet, courierCreated, err := getOrCreateWallet(ctx, walletRepo, *courierID, wallet.OwnerCourier)
	if err != nil {
		return SettlementResult{}, err
	}
	result.CourierEarning, err = h.creditCourier(aggregate, courierWallet, now)
	if err != nil {
		return SettlementResult{}, err
	}

	if aggregate.PaymentMethod() == order.PaymentCash && !aggregate.CashRecorded() {
		if err = courierWallet.RecordCashCollected(aggregate.Pricing().Total()); err != nil {
			return SettlementResult{}, err
		}
		aggregate.MarkCashRecorded()
	}

	if err = saveWallet(ctx, walletRepo, courierWallet, courierCreated); err != nil {
		return SettlementResult{}, err
	}

	sellerWallet, sellerCreated, err := getOrCreateWallet(ctx, walletRepo, aggregate.SellerID(), wallet.OwnerSeller)
	if err != nil {
		return SettlementResult{}, err
	}
	commissionRepo := uow.CommissionRepository()
	result.SellerPayout, result.PlatformFee, err = h.creditSeller(ctx, commissionRepo, aggregate, sellerWallet, now)
	if err != nil {
		return SettlementResult{}, err
	}
	if err = saveWallet(ctx, walletRepo, sellerWallet, sellerCreated); err != nil {
		return SettlementResult{}, err
	}

	aggregate.MarkSettlementCompleted()
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return SettlementResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SettlementResult{}, err
	}

	h.notifyDelivered(ctx, aggregate)
	return result, nil
}

// creditCourier resolves the distance-keyed courier earning and credits it,
// unless the ledger already holds a payment for this order.
func (h SettleOrderCommandHandler) creditCourier(
	aggregate *order.Order,
	courierWallet *wallet.Wallet,
	now time.Time,
) (kernel.Money, error) {
	if existing := courierWallet.PaymentFor(aggregate.ID()); existing != nil {
		return existing.Amount(), nil
	}

	distanceKm, err := aggregate.DeliveryDistanceKm()
	if err != nil {
		return kernel.Money{}, err
	}
	earning := h.courierRate.EarningForDistance(distanceKm)

	orderID := aggregate.ID()
	if _, err = courierWallet.Credit(
		kernel.NewUUID(), earning, wallet.TxPayment, &orderID, true, now); err != nil {
		return kernel.Money{}, err
	}
	return earning, nil
}

// creditSeller resolves the seller commission on the food price, credits the
// remainder, and writes the platform fee record if it does not exist yet. On a
// replay both figures come from the recorded state, not from re-resolution, so
// a rule change between invocations cannot skew the reported amounts.
func (h SettleOrderCommandHandler) creditSeller(
	ctx context.Context,
	commissionRepo ports.CommissionRepository,
	aggregate *order.Order,
	sellerWallet *wallet.Wallet,
	now time.Time,
) (payout, fee kernel.Money, err error) {
	rules, err := commissionRepo.GetSellerRules(ctx, aggregate.SellerID())
	if err != nil {
		return kernel.Money{}, kernel.Money{}, err
	}

	foodPrice := aggregate.Pricing().FoodPrice()
	resolution := commission.Resolve(rules, h.defaultRule, foodPrice)
	fee = resolution.Commission
	payout = foodPrice.Sub(fee)

	if existing := sellerWallet.PaymentFor(aggregate.ID()); existing != nil {
		payout = existing.Amount()
	} else {
		orderID := aggregate.ID()
		if _, err = sellerWallet.Credit(
			kernel.NewUUID(), payout, wallet.TxPayment, &orderID, true, now); err != nil {
			return kernel.Money{}, kernel.Money{}, err
		}
	}

	recorded, err := commissionRepo.GetPlatformFee(ctx, aggregate.ID())
	if err != nil {
		return kernel.Money{}, kernel.Money{}, err
	}
	if recorded != nil {
		return payout, recorded.Amount(), nil
	}

	var ruleID *kernel.UUID
	if resolution.RuleUsed != nil {
		id := resolution.RuleUsed.ID()
		ruleID = &id
	}
	record, err := commission.NewPlatformFeeRecord(
		kernel.NewUUID(), aggregate.ID(), aggregate.SellerID(), fee, ruleID, now)
	if err != nil {
		return kernel.Money{}, kernel.Money{}, err
	}
	if err = commissionRepo.AddPlatformFee(ctx, record); err != nil {
		return kernel.Money{}, kernel.Money{}, err
	}

	return payout, fee, nil
}

// notifyDelivered fans out delivered notifications to the seller and customer
// channels. Failures are logged and never affect the settlement outcome.
func (h SettleOrderCommandHandler) notifyDelivered(ctx context.Context, aggregate *order.Order) {
	if h.publisher == nil {
		return
	}

	now := time.Now().UTC()
	recipients := []struct {
		id       kernel.UUID
		audience string
	}{
		{aggregate.SellerID(), ports.AudienceSeller},
		{aggregate.CustomerID(), ports.AudienceCustomer},
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, recipient := range recipients {
		event := ports.OrderEvent{
			OrderID:    aggregate.ID(),
			Kind:       ports.EventOrderDelivered,
			Recipient:  recipient.id,
			Audience:   recipient.audience,
			OccurredAt: now,
		}
		group.Go(func() error {
			if err := h.publisher.Publish(groupCtx, event); err != nil {
				h.logger.Warn("delivered notification failed",
					"orderId", event.OrderID, "audience", event.Audience, "error", err)
			}
			return nil
		})
	}
	_ = group.Wait()
}
