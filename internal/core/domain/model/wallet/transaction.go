package wallet

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// TransactionType classifies ledger entries.
type TransactionType string

const (
	// TxPayment is an earning credited for a completed delivery or sale.
	TxPayment TransactionType = "payment"
	// TxWithdrawal is a payout of earned funds to the actor.
	TxWithdrawal TransactionType = "withdrawal"
	// TxRefund is a reversal credited back to the actor.
	TxRefund TransactionType = "refund"
	// TxBonus is a promotional or incentive credit.
	TxBonus TransactionType = "bonus"
	// TxDeduction is a penalty or adjustment debit.
	TxDeduction TransactionType = "deduction"
)

// Validate checks that the type is one of the known transaction types.
func (t TransactionType) Validate() error {
	switch t {
	case TxPayment, TxWithdrawal, TxRefund, TxBonus, TxDeduction:
		return nil
	default:
		return errs.NewValueIsInvalidError("transaction type")
	}
}

// IsCredit reports whether a completed transaction of this type increases the balance.
func (t TransactionType) IsCredit() bool {
	return t == TxPayment || t == TxRefund || t == TxBonus
}

// TransactionStatus is the processing state of a ledger entry.
type TransactionStatus string

const (
	// TxPending means the entry is recorded but not yet final.
	TxPending TransactionStatus = "pending"
	// TxCompleted means the entry's balance effect is final.
	TxCompleted TransactionStatus = "completed"
	// TxFailed means processing failed; any applied effect was reversed.
	TxFailed TransactionStatus = "failed"
	// TxCancelled means the entry was withdrawn; any applied effect was reversed.
	TxCancelled TransactionStatus = "cancelled"
)

// Transaction is a single append-only ledger entry of a wallet. Amounts are
// unsigned; the type decides the direction of the balance effect.
//
// Invariant: the balance mutation for an entry happens exactly once, at the
// moment its status becomes completed, and a completed entry moving to failed
// or cancelled reverses the same delta exactly once. Withdrawal holds are the
// deliberate exception: their debit is applied while still pending so the
// actor cannot double-spend the held funds (see Wallet.RequestWithdrawalHold).
type Transaction struct {
	id          kernel.UUID
	amount      kernel.Money
	txType      TransactionType
	status      TransactionStatus
	orderID     *kernel.UUID
	createdAt   time.Time
	processedAt *time.Time

	// applied tracks whether the balance delta is currently in effect,
	// so completion and reversal each happen at most once.
	applied bool
}

// RestoreTransaction reconstructs a ledger entry from persistence.
func RestoreTransaction(
	id kernel.UUID,
	amount kernel.Money,
	txType TransactionType,
	status TransactionStatus,
	orderID *kernel.UUID,
	createdAt time.Time,
	processedAt *time.Time,
) (*Transaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := txType.Validate(); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "unbounded")
	}

	return &Transaction{
		id:          id,
		amount:      amount,
		txType:      txType,
		status:      status,
		orderID:     orderID,
		createdAt:   createdAt,
		processedAt: processedAt,
		applied:     status == TxCompleted || (status == TxPending && txType == TxWithdrawal),
	}, nil
}

// ID returns the transaction's unique identifier.
func (t *Transaction) ID() kernel.UUID { return t.id }

// Amount returns the unsigned transaction amount.
func (t *Transaction) Amount() kernel.Money { return t.amount }

// Type returns the transaction type.
func (t *Transaction) Type() TransactionType { return t.txType }

// Status returns the processing status.
func (t *Transaction) Status() TransactionStatus { return t.status }

// OrderID returns the referenced order, or nil for order-less entries.
func (t *Transaction) OrderID() *kernel.UUID { return t.orderID }

// CreatedAt returns when the entry was appended.
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }

// ProcessedAt returns when the entry reached a final status, or nil.
func (t *Transaction) ProcessedAt() *time.Time { return t.processedAt }
