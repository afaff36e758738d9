package postgres_test

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

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/commissionrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/walletrepo"
	"marketplace/internal/adapters/out/postgres/withdrawalrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"
)

// UnitOfWorkIntegrationTestSuite verifies that repositories created by one
// unit of work share a transaction and commit or roll back together.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&walletrepo.WalletDTO{},
		&walletrepo.TransactionDTO{},
		&withdrawalrepo.WithdrawalRequestDTO{},
		&commissionrepo.CommissionRuleDTO{},
		&commissionrepo.PlatformFeeDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, wallets, wallet_transactions, withdrawal_requests, commission_rules, platform_fees").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.newOrder()
	courierWallet := suite.newWallet(wallet.OwnerCourier)

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.WalletRepository().Add(ctx, courierWallet))
	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	stored, err := verify.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsEqual(testOrder))

	storedWallet, err := verify.WalletRepository().Get(ctx, courierWallet.ID())
	suite.Require().NoError(err)
	suite.Equal(courierWallet.ID(), storedWallet.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Rollback(ctx))

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBeginFails() {
	uow := suite.factory.Create()
	suite.Require().Error(uow.Commit(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLedgerUpdate_RoundTripsTransactions() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	courierWallet := suite.newWallet(wallet.OwnerCourier)
	suite.Require().NoError(uow.WalletRepository().Add(ctx, courierWallet))
	suite.Require().NoError(uow.Commit(ctx))

	orderID := kernel.NewUUID()
	now := time.Now().UTC()
	_, err := courierWallet.Credit(
		kernel.NewUUID(), kernel.NewMoneyFromFloat(20), wallet.TxPayment, &orderID, true, now)
	suite.Require().NoError(err)

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.WalletRepository().Update(ctx, courierWallet))
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := suite.factory.Create().WalletRepository().Get(ctx, courierWallet.ID())
	suite.Require().NoError(err)
	suite.Equal("20.00", stored.Balance().String())
	suite.Require().NotNil(stored.PaymentFor(orderID))
	suite.Equal(wallet.TxCompleted, stored.PaymentFor(orderID).Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	sellerLocation, err := kernel.NewGeoPoint(12.9716, 77.5946)
	suite.Require().NoError(err)
	customerLocation, err := kernel.NewGeoPoint(12.9352, 77.6245)
	suite.Require().NoError(err)

	pricing, err := order.NewPricing(
		kernel.NewMoneyFromFloat(500),
		kernel.NewMoneyFromFloat(0),
		kernel.NewMoneyFromFloat(40),
		kernel.NewMoneyFromFloat(20),
	)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		sellerLocation, customerLocation, pricing)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) newWallet(ownerType wallet.OwnerType) *wallet.Wallet {
	w, err := wallet.NewWallet(kernel.NewUUID(), kernel.NewUUID(), ownerType)
	suite.Require().NoError(err)
	return w
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
