package cmd

// Config carries the environment-driven settings of the application.
// Numeric values stay as raw strings here; the composition root parses them
// and falls back to defaults when they are absent or malformed.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RoutingBaseURL string
	RabbitMQURL    string

	ReminderDelaySeconds     string
	CourierRateBase          string
	CourierRatePerKm         string
	CourierRateMinKm         string
	AverageSpeedKmh          string
	DefaultCommissionPercent string
}
