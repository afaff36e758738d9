package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres/commissionrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/walletrepo"
	"marketplace/internal/adapters/out/postgres/withdrawalrepo"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, nil)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}
	defer func() {
		_ = app.Close()
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                 goDotEnvVariable("HTTP_PORT"),
		DBHost:                   goDotEnvVariable("DB_HOST"),
		DBPort:                   goDotEnvVariable("DB_PORT"),
		DBUser:                   goDotEnvVariable("DB_USER"),
		DBPassword:               goDotEnvVariable("DB_PASSWORD"),
		DBName:                   goDotEnvVariable("DB_NAME"),
		DBSslMode:                goDotEnvVariable("DB_SSLMODE"),
		RoutingBaseURL:           goDotEnvVariable("ROUTING_BASE_URL"),
		RabbitMQURL:              goDotEnvVariable("RABBITMQ_URL"),
		ReminderDelaySeconds:     goDotEnvVariable("CONFIRMATION_REMINDER_SECONDS"),
		CourierRateBase:          goDotEnvVariable("COURIER_RATE_BASE"),
		CourierRatePerKm:         goDotEnvVariable("COURIER_RATE_PER_KM"),
		CourierRateMinKm:         goDotEnvVariable("COURIER_RATE_MIN_KM"),
		AverageSpeedKmh:          goDotEnvVariable("AVERAGE_SPEED_KMH"),
		DefaultCommissionPercent: goDotEnvVariable("DEFAULT_COMMISSION_PERCENT"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the repositories map to conflicts.
	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&walletrepo.WalletDTO{},
		&walletrepo.TransactionDTO{},
		&withdrawalrepo.WithdrawalRequestDTO{},
		&commissionrepo.CommissionRuleDTO{},
		&commissionrepo.PlatformFeeDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(httpin.ServerHandlers{
		CreateOrder:         app.CreateCreateOrderCommandHandler(),
		ConfirmPayment:      app.CreateConfirmPaymentCommandHandler(),
		MarkReady:           app.CreateMarkReadyCommandHandler(),
		NotifyCourier:       app.CreateNotifyCourierCommandHandler(),
		AssignCourier:       app.CreateAssignCourierCommandHandler(),
		ReachedPickup:       app.CreateConfirmReachedPickupCommandHandler(),
		ConfirmOrderID:      app.CreateConfirmOrderIDCommandHandler(),
		ReachedDrop:         app.CreateConfirmReachedDropCommandHandler(),
		CompleteDelivery:    app.CreateCompleteDeliveryCommandHandler(),
		RequestWithdrawal:   app.CreateRequestWithdrawalCommandHandler(),
		ApproveWithdrawal:   app.CreateApproveWithdrawalCommandHandler(),
		RejectWithdrawal:    app.CreateRejectWithdrawalCommandHandler(),
		GetWallet:           app.CreateGetWalletQueryHandler(),
		GetActiveDeliveries: app.CreateGetActiveDeliveriesQueryHandler(),
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
