package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"strconv"

	"fieldwork/cmd"
	"fieldwork/internal/adapters/in/http"
	"fieldwork/internal/adapters/out/postgres/assignmentrepo"
	"fieldwork/internal/adapters/out/postgres/bookingrepo"
	"fieldwork/internal/adapters/out/postgres/chatroomrepo"
	"fieldwork/internal/adapters/out/postgres/outboxrepo"
	"fieldwork/internal/adapters/out/postgres/servicerepo"
	"fieldwork/internal/adapters/out/postgres/userrepo"
	"fieldwork/internal/adapters/out/postgres/workerrepo"
	twilioadapter "fieldwork/internal/adapters/out/twilio"

	goredis "github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := connectDB(configs)
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}
	defer app.Shutdown()

	jobManager := app.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		RedisAddr:     goDotEnvVariable("REDIS_ADDR"),
		RedisPassword: goDotEnvVariable("REDIS_PASSWORD"),
		RedisDB:       goDotEnvIntVariable("REDIS_DB"),

		TwilioAccountSid:      goDotEnvVariable("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:       goDotEnvVariable("TWILIO_AUTH_TOKEN"),
		TwilioProxyServiceSid: goDotEnvVariable("TWILIO_PROXY_SERVICE_SID"),
		TwilioFromPhone:       goDotEnvVariable("TWILIO_FROM_PHONE"),

		SendGridAPIKey: goDotEnvVariable("SENDGRID_API_KEY"),
		FromName:       goDotEnvVariable("NOTIFY_FROM_NAME"),
		FromEmail:      goDotEnvVariable("NOTIFY_FROM_EMAIL"),
		OpsEmail:       goDotEnvVariable("NOTIFY_OPS_EMAIL"),

		SideEffectWorkers:   goDotEnvIntVariable("SIDE_EFFECT_WORKERS"),
		SideEffectQueueSize: goDotEnvIntVariable("SIDE_EFFECT_QUEUE_SIZE"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvIntVariable(key string) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return 0
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer, got %q", key, raw)
	}
	return value
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&assignmentrepo.AssignmentDTO{},
		&assignmentrepo.CompletionReportDTO{},
		&bookingrepo.BookingDTO{},
		&workerrepo.WorkerDTO{},
		&userrepo.UserDTO{},
		&servicerepo.ServiceDTO{},
		&outboxrepo.EarningsCreditDTO{},
		&chatroomrepo.ChatRoomDTO{},
		&twilioadapter.CallMaskingSessionDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := http.NewServer(
		app.CreateAcceptAssignmentCommandHandler(),
		app.CreateRejectAssignmentCommandHandler(),
		app.CreateStartAssignmentCommandHandler(),
		app.CreateCompleteAssignmentCommandHandler(),
		app.CreateListWorkerAssignmentsQueryHandler(),
		app.CreateGetWorkerAssignmentQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
