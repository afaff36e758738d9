package wallet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func courierWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.NewWallet(kernel.NewUUID(), kernel.NewUUID(), wallet.OwnerCourier)
	require.NoError(t, err)
	return w
}

func creditedWallet(t *testing.T, amount float64) *wallet.Wallet {
	t.Helper()
	w := courierWallet(t)
	_, err := w.Credit(kernel.NewUUID(), kernel.NewMoneyFromFloat(amount), wallet.TxPayment, nil, true, testNow)
	require.NoError(t, err)
	return w
}

func Test_NewWallet_StartsEmpty(t *testing.T) {
	w := courierWallet(t)

	assert.True(t, w.Balance().IsZero())
	assert.True(t, w.TotalEarned().IsZero())
	assert.True(t, w.TotalWithdrawn().IsZero())
	assert.True(t, w.CashInHand().IsZero())
	assert.Empty(t, w.Transactions())
}

func Test_NewWallet_InvalidOwnerType(t *testing.T) {
	_, err := wallet.NewWallet(kernel.NewUUID(), kernel.NewUUID(), wallet.OwnerType("customer"))
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_Credit_CompletedPaymentMovesBalanceAndEarned(t *testing.T) {
	w := courierWallet(t)
	orderID := kernel.NewUUID()

	tx, err := w.Credit(kernel.NewUUID(), kernel.NewMoneyFromFloat(20), wallet.TxPayment, &orderID, true, testNow)
	require.NoError(t, err)

	assert.Equal(t, wallet.TxCompleted, tx.Status())
	assert.Equal(t, "20.00", w.Balance().String())
	assert.Equal(t, "20.00", w.TotalEarned().String())
	require.NotNil(t, tx.ProcessedAt())
	assert.Equal(t, testNow, *tx.ProcessedAt())
}

func Test_Credit_PendingAppliesNothingUntilCompleted(t *testing.T) {
	w := courierWallet(t)
	txID := kernel.NewUUID()

	_, err := w.Credit(txID, kernel.NewMoneyFromFloat(15), wallet.TxBonus, nil, false, testNow)
	require.NoError(t, err)
	assert.True(t, w.Balance().IsZero())

	require.NoError(t, w.CompleteTransaction(txID, testNow))
	assert.Equal(t, "15.00", w.Balance().String())

	// completing again must not double-apply
	require.NoError(t, w.CompleteTransaction(txID, testNow))
	assert.Equal(t, "15.00", w.Balance().String())
}

func Test_Credit_DeductionLowersBalance(t *testing.T) {
	w := creditedWallet(t, 100)

	_, err := w.Credit(kernel.NewUUID(), kernel.NewMoneyFromFloat(30), wallet.TxDeduction, nil, true, testNow)
	require.NoError(t, err)

	assert.Equal(t, "70.00", w.Balance().String())
	assert.Equal(t, "100.00", w.TotalEarned().String())
}

func Test_Credit_RejectsWithdrawalType(t *testing.T) {
	w := creditedWallet(t, 100)

	_, err := w.Credit(kernel.NewUUID(), kernel.NewMoneyFromFloat(10), wallet.TxWithdrawal, nil, true, testNow)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_PaymentFor_FindsCreditForOrder(t *testing.T) {
	w := courierWallet(t)
	orderID := kernel.NewUUID()
	otherOrder := kernel.NewUUID()

	_, err := w.Credit(kernel.NewUUID(), kernel.NewMoneyFromFloat(20), wallet.TxPayment, &orderID, true, testNow)
	require.NoError(t, err)

	require.NotNil(t, w.PaymentFor(orderID))
	assert.Equal(t, "20.00", w.PaymentFor(orderID).Amount().String())
	assert.Nil(t, w.PaymentFor(otherOrder))
}

func Test_RecordCashCollected_TracksCustodyOnly(t *testing.T) {
	w := creditedWallet(t, 50)

	require.NoError(t, w.RecordCashCollected(kernel.NewMoneyFromFloat(560)))

	assert.Equal(t, "560.00", w.CashInHand().String())
	assert.Equal(t, "50.00", w.Balance().String())
}

func Test_RecordCashCollected_SellerWalletRejected(t *testing.T) {
	w, err := wallet.NewWallet(kernel.NewUUID(), kernel.NewUUID(), wallet.OwnerSeller)
	require.NoError(t, err)

	err = w.RecordCashCollected(kernel.NewMoneyFromFloat(100))
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
}

func Test_RequestWithdrawalHold_DebitsImmediately(t *testing.T) {
	w := creditedWallet(t, 300)

	tx, err := w.RequestWithdrawalHold(kernel.NewUUID(), kernel.NewMoneyFromFloat(100), testNow)
	require.NoError(t, err)

	assert.Equal(t, wallet.TxPending, tx.Status())
	assert.Equal(t, "200.00", w.Balance().String())
	assert.Equal(t, "100.00", w.TotalWithdrawn().String())
}

func Test_RequestWithdrawalHold_InsufficientFunds(t *testing.T) {
	w := creditedWallet(t, 300)

	_, err := w.RequestWithdrawalHold(kernel.NewUUID(), kernel.NewMoneyFromFloat(500), testNow)
	require.ErrorIs(t, err, errs.ErrInsufficientFunds)
	assert.Contains(t, err.Error(), "has 300.00, requested 500.00")
	assert.Equal(t, "300.00", w.Balance().String())
}

func Test_RequestWithdrawalHold_SecondHoldSeesReducedBalance(t *testing.T) {
	w := creditedWallet(t, 300)

	_, err := w.RequestWithdrawalHold(kernel.NewUUID(), kernel.NewMoneyFromFloat(250), testNow)
	require.NoError(t, err)

	_, err = w.RequestWithdrawalHold(kernel.NewUUID(), kernel.NewMoneyFromFloat(100), testNow)
	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
}

func Test_ReleaseWithdrawalHold_RestoresBalance(t *testing.T) {
	w := creditedWallet(t, 300)
	txID := kernel.NewUUID()

	_, err := w.RequestWithdrawalHold(txID, kernel.NewMoneyFromFloat(100), testNow)
	require.NoError(t, err)
	require.NoError(t, w.ReleaseWithdrawalHold(txID, testNow))

	assert.Equal(t, "300.00", w.Balance().String())
	assert.True(t, w.TotalWithdrawn().IsZero())
	assert.Equal(t, wallet.TxCancelled, w.Transaction(txID).Status())

	// releasing twice must not restore twice
	require.NoError(t, w.ReleaseWithdrawalHold(txID, testNow))
	assert.Equal(t, "300.00", w.Balance().String())
}

func Test_SettleWithdrawalHold_KeepsDebitApplied(t *testing.T) {
	w := creditedWallet(t, 300)
	txID := kernel.NewUUID()

	_, err := w.RequestWithdrawalHold(txID, kernel.NewMoneyFromFloat(100), testNow)
	require.NoError(t, err)
	require.NoError(t, w.SettleWithdrawalHold(txID, testNow))

	assert.Equal(t, "200.00", w.Balance().String())
	assert.Equal(t, "100.00", w.TotalWithdrawn().String())
	assert.Equal(t, wallet.TxCompleted, w.Transaction(txID).Status())
}

func Test_RestoreWallet_RehydratesLedgerState(t *testing.T) {
	orderID := kernel.NewUUID()
	paid, err := wallet.RestoreTransaction(
		kernel.NewUUID(), kernel.NewMoneyFromFloat(20), wallet.TxPayment, wallet.TxCompleted,
		&orderID, testNow, &testNow)
	require.NoError(t, err)

	holdID := kernel.NewUUID()
	hold, err := wallet.RestoreTransaction(
		holdID, kernel.NewMoneyFromFloat(5), wallet.TxWithdrawal, wallet.TxPending,
		nil, testNow, nil)
	require.NoError(t, err)

	w, err := wallet.RestoreWallet(
		kernel.NewUUID(), kernel.NewUUID(), wallet.OwnerCourier,
		kernel.NewMoneyFromFloat(15), kernel.NewMoneyFromFloat(20),
		kernel.NewMoneyFromFloat(5), kernel.NewMoneyFromFloat(560),
		[]*wallet.Transaction{paid, hold})
	require.NoError(t, err)

	assert.NotNil(t, w.PaymentFor(orderID))

	// a restored pending hold releases like a fresh one
	require.NoError(t, w.ReleaseWithdrawalHold(holdID, testNow))
	assert.Equal(t, "20.00", w.Balance().String())
	assert.True(t, w.TotalWithdrawn().IsZero())
}

func Test_AvailableBalance_EarningsMinusOutstandingHolds(t *testing.T) {
	got := wallet.AvailableBalance(kernel.NewMoneyFromFloat(300), kernel.NewMoneyFromFloat(100))
	assert.Equal(t, "200.00", got.String())
}

func Test_AvailableBalance_FloorsAtZero(t *testing.T) {
	got := wallet.AvailableBalance(kernel.NewMoneyFromFloat(50), kernel.NewMoneyFromFloat(80))
	assert.True(t, got.IsZero())
}
