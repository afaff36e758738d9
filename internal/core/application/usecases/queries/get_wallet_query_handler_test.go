package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketplace/internal/adapters/out/postgres/walletrepo"
	"marketplace/internal/adapters/out/postgres/withdrawalrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

// noopTracker satisfies the repositories' tracker dependency in query tests.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetWalletQueryHandlerTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetWalletQueryHandler
}

func (suite *GetWalletQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&walletrepo.WalletDTO{},
		&walletrepo.TransactionDTO{},
		&withdrawalrepo.WithdrawalRequestDTO{},
	))

	suite.handler = queries.NewGetWalletQueryHandler(db)
}

func (suite *GetWalletQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetWalletQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE wallets, wallet_transactions, withdrawal_requests").Error)
}

func (suite *GetWalletQueryHandlerTestSuite) TestHandle_SnapshotWithLedger() {
	ctx := context.Background()
	ownerID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	now := time.Now().UTC()

	courierWallet, err := wallet.NewWallet(kernel.NewUUID(), ownerID, wallet.OwnerCourier)
	suite.Require().NoError(err)
	_, err = courierWallet.Credit(
		kernel.NewUUID(), kernel.NewMoneyFromFloat(300), wallet.TxPayment, &orderID, true, now)
	suite.Require().NoError(err)
	suite.Require().NoError(courierWallet.RecordCashCollected(kernel.NewMoneyFromFloat(560)))

	repo := walletrepo.NewGormWalletRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(ctx, courierWallet))

	query, err := queries.NewGetWalletQuery(ownerID, wallet.OwnerCourier)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(response.WalletID.IsEqual(courierWallet.ID()))
	suite.Equal("300.00", response.Balance.String())
	suite.Equal("300.00", response.TotalEarned.String())
	suite.Equal("300.00", response.AvailableBalance.String())
	suite.Equal("560.00", response.CashInHand.String())
	suite.Require().Len(response.Transactions, 1)
	suite.Equal(wallet.TxPayment, response.Transactions[0].Type)
	suite.Equal(wallet.TxCompleted, response.Transactions[0].Status)
	suite.Require().NotNil(response.Transactions[0].OrderID)
	suite.True(response.Transactions[0].OrderID.IsEqual(orderID))
}

func (suite *GetWalletQueryHandlerTestSuite) TestHandle_OutstandingHoldsReduceAvailableBalance() {
	ctx := context.Background()
	ownerID := kernel.NewUUID()
	now := time.Now().UTC()

	sellerWallet, err := wallet.NewWallet(kernel.NewUUID(), ownerID, wallet.OwnerSeller)
	suite.Require().NoError(err)
	_, err = sellerWallet.Credit(
		kernel.NewUUID(), kernel.NewMoneyFromFloat(450), wallet.TxPayment, nil, true, now)
	suite.Require().NoError(err)

	hold, err := sellerWallet.RequestWithdrawalHold(
		kernel.NewUUID(), kernel.NewMoneyFromFloat(100), now)
	suite.Require().NoError(err)
	request, err := wallet.NewWithdrawalRequest(
		kernel.NewUUID(), sellerWallet.ID(), hold.ID(), kernel.NewMoneyFromFloat(100), now)
	suite.Require().NoError(err)

	suite.Require().NoError(
		walletrepo.NewGormWalletRepository(suite.db, noopTracker{}).Add(ctx, sellerWallet))
	suite.Require().NoError(
		withdrawalrepo.NewGormWithdrawalRepository(suite.db, noopTracker{}).Add(ctx, request))

	query, err := queries.NewGetWalletQuery(ownerID, wallet.OwnerSeller)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("350.00", response.Balance.String())
	suite.Equal("100.00", response.TotalWithdrawn.String())
	// 450 earned minus the 100 outstanding hold
	suite.Equal("350.00", response.AvailableBalance.String())
}

func (suite *GetWalletQueryHandlerTestSuite) TestHandle_UnknownOwnerNotFound() {
	query, err := queries.NewGetWalletQuery(kernel.NewUUID(), wallet.OwnerCourier)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetWalletQueryHandlerTestSuite) TestHandle_InvalidQuery() {
	_, err := suite.handler.Handle(context.Background(), queries.GetWalletQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetWalletQueryIsNotConstructed)
}

func TestGetWalletQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GetWalletQueryHandlerTestSuite))
}
