package cmd

// Config carries everything the composition root needs to wire the service.
// Values come from the environment; see cmd/app/main.go.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TwilioAccountSid      string
	TwilioAuthToken       string
	TwilioProxyServiceSid string
	TwilioFromPhone       string

	SendGridAPIKey string
	FromName       string
	FromEmail      string
	OpsEmail       string

	SideEffectWorkers   int
	SideEffectQueueSize int
}
