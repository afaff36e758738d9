package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// withdrawalScenario is a funded wallet with one pending hold and its request.
type withdrawalScenario struct {
	wallet  *wallet.Wallet
	request *wallet.WithdrawalRequest
}

func newWithdrawalScenario(t *testing.T) withdrawalScenario {
	t.Helper()
	actorWallet := fundedWallet(t, kernel.NewUUID(), 300)
	hold, err := actorWallet.RequestWithdrawalHold(
		kernel.NewUUID(), kernel.NewMoneyFromFloat(100), time.Now().UTC())
	require.NoError(t, err)
	request, err := wallet.NewWithdrawalRequest(
		kernel.NewUUID(), actorWallet.ID(), hold.ID(),
		kernel.NewMoneyFromFloat(100), time.Now().UTC())
	require.NoError(t, err)
	return withdrawalScenario{wallet: actorWallet, request: request}
}

func TestApproveWithdrawalCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	scenario := newWithdrawalScenario(t)

	cmd, err := commands.NewApproveWithdrawalCommand(scenario.request.ID())
	require.NoError(t, err)

	walletRepo := new(MockWalletRepository)
	withdrawalRepo := new(MockWithdrawalRepository)
	uow := new(MockWithdrawalUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WithdrawalRepository").Return(withdrawalRepo).Once(),
		withdrawalRepo.On("Get", ctx, scenario.request.ID()).Return(scenario.request, nil).Once(),
		uow.On("WalletRepository").Return(walletRepo).Once(),
		walletRepo.On("Get", ctx, scenario.wallet.ID()).Return(scenario.wallet, nil).Once(),
		withdrawalRepo.On("Update", ctx, scenario.request).Return(nil).Once(),
		walletRepo.On("Update", ctx, scenario.wallet).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockWithdrawalUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := commands.NewApproveWithdrawalCommandHandler(factory, publisher, nil)
	result, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, wallet.WithdrawalApproved, result.Request.Status())
	assert.Equal(t, "200.00", result.Wallet.Balance().String())

	assert.Equal(t, wallet.WithdrawalApproved, scenario.request.Status())
	// the debit stays applied: balance remains reduced
	assert.Equal(t, "200.00", scenario.wallet.Balance().String())
	assert.Equal(t, wallet.TxCompleted,
		scenario.wallet.Transaction(scenario.request.TransactionID()).Status())

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ports.EventWithdrawalReview, events[0].Kind)
	assert.True(t, events[0].Recipient.IsEqual(scenario.wallet.OwnerID()))
}

func TestApproveWithdrawalCommandHandler_Handle_RequestNotFound(t *testing.T) {
	ctx := t.Context()
	requestID := kernel.NewUUID()

	cmd, err := commands.NewApproveWithdrawalCommand(requestID)
	require.NoError(t, err)

	withdrawalRepo := new(MockWithdrawalRepository)
	uow := new(MockWithdrawalUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WithdrawalRepository").Return(withdrawalRepo).Once(),
		withdrawalRepo.On("Get", ctx, requestID).
			Return(nil, errs.NewObjectNotFoundError("requestId", requestID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockWithdrawalUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApproveWithdrawalCommandHandler(factory, nil, nil)
	_, err = handler.Handle(ctx, cmd)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRejectWithdrawalCommandHandler_Handle_RestoresBalance(t *testing.T) {
	ctx := t.Context()
	scenario := newWithdrawalScenario(t)

	cmd, err := commands.NewRejectWithdrawalCommand(scenario.request.ID(), "account unverified")
	require.NoError(t, err)

	walletRepo := new(MockWalletRepository)
	withdrawalRepo := new(MockWithdrawalRepository)
	uow := new(MockWithdrawalUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WithdrawalRepository").Return(withdrawalRepo).Once(),
		withdrawalRepo.On("Get", ctx, scenario.request.ID()).Return(scenario.request, nil).Once(),
		uow.On("WalletRepository").Return(walletRepo).Once(),
		walletRepo.On("Get", ctx, scenario.wallet.ID()).Return(scenario.wallet, nil).Once(),
		withdrawalRepo.On("Update", ctx, scenario.request).Return(nil).Once(),
		walletRepo.On("Update", ctx, scenario.wallet).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockWithdrawalUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRejectWithdrawalCommandHandler(factory, nil, nil)
	result, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, wallet.WithdrawalRejected, result.Request.Status())
	assert.Equal(t, "300.00", result.Wallet.Balance().String())

	assert.Equal(t, wallet.WithdrawalRejected, scenario.request.Status())
	assert.Equal(t, "account unverified", scenario.request.Reason())
	// the optimistic debit is reversed
	assert.Equal(t, "300.00", scenario.wallet.Balance().String())
	assert.True(t, scenario.wallet.TotalWithdrawn().IsZero())
}

func TestRejectWithdrawalCommandHandler_Handle_ApprovedRequestFails(t *testing.T) {
	ctx := t.Context()
	scenario := newWithdrawalScenario(t)
	require.NoError(t, scenario.request.Approve(time.Now().UTC()))

	cmd, err := commands.NewRejectWithdrawalCommand(scenario.request.ID(), "too late")
	require.NoError(t, err)

	withdrawalRepo := new(MockWithdrawalRepository)
	uow := new(MockWithdrawalUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WithdrawalRepository").Return(withdrawalRepo).Once(),
		withdrawalRepo.On("Get", ctx, scenario.request.ID()).Return(scenario.request, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockWithdrawalUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRejectWithdrawalCommandHandler(factory, nil, nil)
	_, err = handler.Handle(ctx, cmd)
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
}

func TestNewRejectWithdrawalCommand_RequiresReason(t *testing.T) {
	_, err := commands.NewRejectWithdrawalCommand(kernel.NewUUID(), "")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
