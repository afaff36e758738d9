package wallet

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrWalletIsNotConstructed is returned when a Wallet instance was not created
	// through the NewWallet or RestoreWallet factory functions.
	ErrWalletIsNotConstructed = errors.New("Wallet must be created via NewWallet or RestoreWallet")
)

// OwnerType identifies the kind of actor a wallet belongs to.
type OwnerType string

const (
	// OwnerCourier marks a courier wallet. Only courier wallets track cash in hand.
	OwnerCourier OwnerType = "courier"
	// OwnerSeller marks a seller wallet.
	OwnerSeller OwnerType = "seller"
)

// Validate checks that the owner type is one of the known actor kinds.
func (o OwnerType) Validate() error {
	if o != OwnerCourier && o != OwnerSeller {
		return errs.NewValueIsInvalidError("wallet owner type")
	}
	return nil
}

// Wallet is the aggregate root for one actor's ledger: a running balance backed
// by an append-only transaction log.
//
// Invariants:
//   - The balance is derivable by replaying completed transactions from zero;
//     it is maintained as a running field only for O(1) reads. All mutation
//     goes through the ledger operations, never through direct field writes.
//   - cashInHand only increases (on cash-collected deliveries) and tracks
//     physical cash custody, not earnings; it never feeds the balance.
//   - At most one payment transaction per referenced order: settlement checks
//     PaymentFor before crediting, making credits idempotent per order.
type Wallet struct {
	id             kernel.UUID
	ownerID        kernel.UUID
	ownerType      OwnerType
	balance        kernel.Money
	totalEarned    kernel.Money
	totalWithdrawn kernel.Money
	cashInHand     kernel.Money
	transactions   []*Transaction

	isConstructed bool
}

// NewWallet creates an empty wallet for an actor. Wallets are created lazily on
// first reference and never deleted.
func NewWallet(id, ownerID kernel.UUID, ownerType OwnerType) (*Wallet, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate(), ownerType.Validate()); err != nil {
		return nil, err
	}

	return &Wallet{
		id:            id,
		ownerID:       ownerID,
		ownerType:     ownerType,
		isConstructed: true,
	}, nil
}

// RestoreWallet reconstructs a wallet and its ledger from persistence.
func RestoreWallet(
	id, ownerID kernel.UUID,
	ownerType OwnerType,
	balance, totalEarned, totalWithdrawn, cashInHand kernel.Money,
	transactions []*Transaction,
) (*Wallet, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate(), ownerType.Validate()); err != nil {
		return nil, err
	}

	return &Wallet{
		id:             id,
		ownerID:        ownerID,
		ownerType:      ownerType,
		balance:        balance,
		totalEarned:    totalEarned,
		totalWithdrawn: totalWithdrawn,
		cashInHand:     cashInHand,
		transactions:   transactions,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Wallet instance was created through a factory function.
func (w *Wallet) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWalletIsNotConstructed
	}
	return nil
}

// ID returns the wallet's unique identifier.
func (w *Wallet) ID() kernel.UUID { return w.id }

// OwnerID returns the actor the wallet belongs to.
func (w *Wallet) OwnerID() kernel.UUID { return w.ownerID }

// OwnerType returns the kind of actor the wallet belongs to.
func (w *Wallet) OwnerType() OwnerType { return w.ownerType }

// Balance returns the current ledger balance.
func (w *Wallet) Balance() kernel.Money { return w.balance }

// TotalEarned returns the cumulative credited earnings.
func (w *Wallet) TotalEarned() kernel.Money { return w.totalEarned }

// TotalWithdrawn returns the cumulative withdrawn amount, including outstanding holds.
func (w *Wallet) TotalWithdrawn() kernel.Money { return w.totalWithdrawn }

// CashInHand returns the physical cash the courier is holding from COD orders.
func (w *Wallet) CashInHand() kernel.Money { return w.cashInHand }

// Transactions returns a copy of the ledger entries.
func (w *Wallet) Transactions() []*Transaction {
	return append([]*Transaction(nil), w.transactions...)
}

// Transaction looks up a ledger entry by ID, or returns nil.
func (w *Wallet) Transaction(txID kernel.UUID) *Transaction {
	for _, tx := range w.transactions {
		if tx.id.IsEqual(txID) {
			return tx
		}
	}
	return nil
}

// PaymentFor returns the payment transaction referencing the given order, or
// nil when none exists. This is the idempotency guard used by settlement:
// found means already credited, skip and reuse the recorded amount.
func (w *Wallet) PaymentFor(orderID kernel.UUID) *Transaction {
	for _, tx := range w.transactions {
		if tx.txType == TxPayment && tx.orderID != nil && tx.orderID.IsEqual(orderID) {
			return tx
		}
	}
	return nil
}

// Credit appends a credit or deduction entry. When asCompleted is true the
// balance delta is applied immediately: payment, bonus and refund increase the
// balance and cumulative earnings, deduction decreases the balance.
func (w *Wallet) Credit(
	txID kernel.UUID,
	amount kernel.Money,
	txType TransactionType,
	orderID *kernel.UUID,
	asCompleted bool,
	at time.Time,
) (*Transaction, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if err := txType.Validate(); err != nil {
		return nil, err
	}
	if txType == TxWithdrawal {
		return nil, errs.NewValueIsInvalidError("withdrawals go through RequestWithdrawalHold")
	}
	if amount.IsNegative() {
		return nil, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "unbounded")
	}

	tx := &Transaction{
		id:        txID,
		amount:    amount,
		txType:    txType,
		status:    TxPending,
		orderID:   orderID,
		createdAt: at,
	}
	w.transactions = append(w.transactions, tx)

	if asCompleted {
		if err := w.CompleteTransaction(txID, at); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

// CompleteTransaction finalizes a pending entry and applies its balance delta
// exactly once. Completing an already completed entry is a silent no-op.
func (w *Wallet) CompleteTransaction(txID kernel.UUID, at time.Time) error {
	tx := w.Transaction(txID)
	if tx == nil {
		return errs.NewObjectNotFoundError("transactionId", txID.String())
	}
	if tx.status == TxCompleted {
		return nil
	}
	if tx.status != TxPending {
		return errs.NewPreconditionFailedError("transaction is not pending")
	}

	tx.status = TxCompleted
	tx.processedAt = &at
	if !tx.applied {
		w.applyDelta(tx, false)
		tx.applied = true
	}
	return nil
}

// RevokeTransaction moves a completed or pending entry to failed or cancelled,
// reversing an applied balance delta exactly once.
func (w *Wallet) RevokeTransaction(txID kernel.UUID, to TransactionStatus, at time.Time) error {
	if to != TxFailed && to != TxCancelled {
		return errs.NewValueIsInvalidError("revocation status")
	}
	tx := w.Transaction(txID)
	if tx == nil {
		return errs.NewObjectNotFoundError("transactionId", txID.String())
	}
	if tx.status == TxFailed || tx.status == TxCancelled {
		return nil
	}

	tx.status = to
	tx.processedAt = &at
	if tx.applied {
		w.applyDelta(tx, true)
		tx.applied = false
	}
	return nil
}

// RecordCashCollected increases the courier's cash-in-hand by the collected
// order total. This tracks physical cash custody and never touches the balance.
func (w *Wallet) RecordCashCollected(amount kernel.Money) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.ownerType != OwnerCourier {
		return errs.NewPreconditionFailedError("only courier wallets hold cash")
	}
	if amount.IsNegative() {
		return errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "unbounded")
	}

	w.cashInHand = w.cashInHand.Add(amount)
	return nil
}

// RequestWithdrawalHold appends a pending withdrawal entry and applies an
// optimistic debit immediately, so a second request cannot double-spend the
// same funds while the first awaits admin action.
func (w *Wallet) RequestWithdrawalHold(txID kernel.UUID, amount kernel.Money, at time.Time) (*Transaction, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "unbounded")
	}
	if amount.GreaterThan(w.balance) {
		return nil, errs.NewInsufficientFundsError(w.id.String(), amount.String(), w.balance.String())
	}

	tx := &Transaction{
		id:        txID,
		amount:    amount,
		txType:    TxWithdrawal,
		status:    TxPending,
		createdAt: at,
		applied:   true,
	}
	w.transactions = append(w.transactions, tx)
	w.balance = w.balance.Sub(amount)
	w.totalWithdrawn = w.totalWithdrawn.Add(amount)
	return tx, nil
}

// SettleWithdrawalHold finalizes an approved withdrawal's entry. The debit was
// already applied at request time, so no balance change happens here.
func (w *Wallet) SettleWithdrawalHold(txID kernel.UUID, at time.Time) error {
	return w.CompleteTransaction(txID, at)
}

// ReleaseWithdrawalHold cancels a rejected withdrawal's entry and reverses the
// optimistic debit.
func (w *Wallet) ReleaseWithdrawalHold(txID kernel.UUID, at time.Time) error {
	return w.RevokeTransaction(txID, TxCancelled, at)
}

// applyDelta applies (or reverses) the balance effect of a transaction.
func (w *Wallet) applyDelta(tx *Transaction, reverse bool) {
	amount := tx.amount
	switch {
	case tx.txType.IsCredit():
		if reverse {
			w.balance = w.balance.Sub(amount)
			w.totalEarned = w.totalEarned.Sub(amount)
		} else {
			w.balance = w.balance.Add(amount)
			w.totalEarned = w.totalEarned.Add(amount)
		}
	case tx.txType == TxDeduction:
		if reverse {
			w.balance = w.balance.Add(amount)
		} else {
			w.balance = w.balance.Sub(amount)
		}
	case tx.txType == TxWithdrawal:
		if reverse {
			w.balance = w.balance.Add(amount)
			w.totalWithdrawn = w.totalWithdrawn.Sub(amount)
		} else {
			w.balance = w.balance.Sub(amount)
			w.totalWithdrawn = w.totalWithdrawn.Add(amount)
		}
	}
}

// AvailableBalance computes what an actor may withdraw right now: the period's
// earnings minus every outstanding (pending or approved) withdrawal amount,
// floored at zero. This is distinct from the raw ledger balance.
func AvailableBalance(periodEarnings, outstandingWithdrawals kernel.Money) kernel.Money {
	return periodEarnings.Sub(outstandingWithdrawals).FloorZero()
}
