package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"devicerelay.xyz/device-relay-service/pkg/common"
	"devicerelay.xyz/device-relay-service/pkg/db"
	relayHttp "devicerelay.xyz/device-relay-service/pkg/http"
	"devicerelay.xyz/device-relay-service/pkg/hub"
	"devicerelay.xyz/device-relay-service/pkg/relay"
	"devicerelay.xyz/device-relay-service/pkg/store"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var records store.Store
	recordsBackend := strings.TrimSpace(os.Getenv(common.EnvKeyRelayRecordsBackend))
	switch recordsBackend {
	case "", "sqlite":
		dbType := os.Getenv(common.EnvKeyRelayDBType)
		switch dbType {
		case "file":
			records = store.NewGormStore(db.GetInstance(db.UseSqliteDialector()))
		case "memory":
			records = store.NewGormStore(db.GetInstance(db.UseMemorySqliteDialector()))
		default:
			log.Fatal("Unknown RELAY_DB_TYPE: " + dbType)
		}
	case "redis":
		redisAddr := strings.TrimSpace(os.Getenv(common.EnvKeyRelayRedisAddr))
		if redisAddr == "" {
			log.Fatal("RELAY_REDIS_ADDR must be set when RELAY_RECORDS_BACKEND is redis")
		}
		records = store.NewRedisStore(redis.NewClient(&redis.Options{Addr: redisAddr}))
	default:
		log.Fatal("Unknown RELAY_RECORDS_BACKEND: " + recordsBackend)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyRelayHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyRelayDefaultRate), 64); err != nil {
		log.Fatal("Invalid RELAY_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyRelayDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid RELAY_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	hubConfig := hub.DefaultConfig()
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyRelayLivenessWindowSeconds)); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			log.Fatal("Invalid RELAY_LIVENESS_WINDOW_SECONDS, should be a positive int value")
		}
		hubConfig.LivenessWindow = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyRelayAppendCap)); raw != "" {
		if hubConfig.AppendCap, err = strconv.Atoi(raw); err != nil {
			log.Fatal("Invalid RELAY_APPEND_CAP, should be an int value")
		}
	}
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyRelayChatLogCap)); raw != "" {
		if hubConfig.ChatLogCap, err = strconv.Atoi(raw); err != nil {
			log.Fatal("Invalid RELAY_CHAT_LOG_CAP, should be an int value")
		}
	}

	logger := common.GetLogger()

	hubCore := hub.New(records, hubConfig)
	hubCore.WithServices(hub.ServiceOpts{
		Registry: hubCore.GetIRegistry(),
		Ingest:   hubCore.GetIIngest(),
	})

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &relayHttp.RestfulServer{
		Server:           gin.Default(),
		Hub:              hubCore,
		Relay:            relay.New(),
		RateLimiterStore: hub.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)),
		zap.Duration("liveness_window", hubConfig.LivenessWindow))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
