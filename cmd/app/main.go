package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"rotafila/cmd"
	"rotafila/internal/adapters/out/announce"
	"rotafila/internal/adapters/out/postgres/courierrepo"
	"rotafila/internal/adapters/out/postgres/eventrepo"
	"rotafila/internal/adapters/out/rediscache"
	"rotafila/internal/adapters/out/schedule"
	"rotafila/internal/adapters/out/whatsapp"
	"rotafila/internal/core/application/usecases/commands"
	"rotafila/internal/core/domain/model/courier"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	settings := getSettings(configs)

	gormDB := connectDB(configs)
	redisClient := connectRedis(configs)

	pollInterval := mustParseDuration("POLL_INTERVAL", configs.PollInterval)
	cacheTTL := mustParseDuration("CACHE_TTL", configs.CacheTTL)

	cache := rediscache.NewQueueCache(redisClient, cacheTTL)
	scheduler := schedule.NewTimerScheduler()
	hub := announce.NewHub()

	notifier, err := whatsapp.NewSender(configs.WhatsAppBaseURL, configs.WhatsAppInstance, configs.WhatsAppAPIKey)
	if err != nil {
		log.Fatalf("Failed to configure WhatsApp sender: %v", err)
	}

	app := cmd.NewCompositionRoot(gormDB, notifier, hub, cache, scheduler, settings)

	jobManager := app.CreateJobManager(pollInterval, slog.Default())
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()
	defer scheduler.CancelAll()
	defer hub.Close()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// A missing .env is fine in containers where the environment is set
	// directly.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:          envOrDefault("HTTP_PORT", "8080"),
		DBHost:            envOrDefault("DB_HOST", "localhost"),
		DBPort:            envOrDefault("DB_PORT", "5432"),
		DBUser:            envOrDefault("DB_USER", "postgres"),
		DBPassword:        envOrDefault("DB_PASSWORD", "postgres"),
		DBName:            envOrDefault("DB_NAME", "rotafila"),
		DBSslMode:         envOrDefault("DB_SSLMODE", "disable"),
		RedisAddr:         envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		WhatsAppBaseURL:   envOrDefault("WHATSAPP_BASE_URL", "http://localhost:8081"),
		WhatsAppInstance:  envOrDefault("WHATSAPP_INSTANCE", "rotafila"),
		WhatsAppAPIKey:    envOrDefault("WHATSAPP_API_KEY", "dev"),
		DefaultShift:      envOrDefault("DEFAULT_SHIFT", "16:00-02:00"),
		AutoAdvanceDelay:  envOrDefault("AUTO_ADVANCE_DELAY", "15s"),
		HeadsUpDelay:      envOrDefault("HEADS_UP_DELAY", "5s"),
		OvertimeThreshold: envOrDefault("OVERTIME_THRESHOLD", "1h"),
		PollInterval:      envOrDefault("POLL_INTERVAL", "5s"),
		CacheTTL:          envOrDefault("CACHE_TTL", "10s"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getSettings(configs cmd.Config) commands.RotationSettings {
	defaultShift, err := courier.ParseShiftWindow(configs.DefaultShift)
	if err != nil {
		log.Fatalf("Invalid DEFAULT_SHIFT: %v", err)
	}

	return commands.RotationSettings{
		DefaultShift:      defaultShift,
		AutoAdvanceDelay:  mustParseDuration("AUTO_ADVANCE_DELAY", configs.AutoAdvanceDelay),
		HeadsUpDelay:      mustParseDuration("HEADS_UP_DELAY", configs.HeadsUpDelay),
		OvertimeThreshold: mustParseDuration("OVERTIME_THRESHOLD", configs.OvertimeThreshold),
	}
}

func mustParseDuration(name, value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid %s: %v", name, err)
	}
	return duration
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&courierrepo.CourierDTO{}, &eventrepo.EventDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func connectRedis(configs cmd.Config) redis.UniversalClient {
	client := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	return client
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())

	app.CreateServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
