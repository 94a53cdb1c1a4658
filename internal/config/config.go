package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	ServerPort string

	JWTSecret string

	AccessTokenMaxAge int

	// RedisURL is optional. When empty the engine runs without the
	// distributed run lock.
	RedisURL string

	// VAPID identity for Web Push. The public key is also served to
	// clients so they can subscribe against the same key pair.
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubject    string

	// CronSecret, when set, is required as a bearer token on the cron
	// trigger endpoint.
	CronSecret string

	// CronInterval enables the in-process scheduler when > 0. External
	// schedulers hitting the trigger endpoint are the default.
	CronInterval time.Duration

	// Alert thresholds. Defaults follow the product's latest values; every
	// one is overridable so the debounce behavior is configuration, not code.
	CriticalStockDays int
	LowStockDays      int
	ExpiryWindowDays  int
	StockSilenceDays  int
	CheckupLeadDays   int
	CheckupSilenceDays int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	accessTokenMaxAge := envInt("ACCESS_TOKEN_MAX_AGE", 900)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	vapidSubject := os.Getenv("VAPID_SUBJECT")
	if vapidSubject == "" {
		vapidSubject = "mailto:admin@medilog.app"
	}

	var cronInterval time.Duration
	if v := os.Getenv("CRON_INTERVAL"); v != "" {
		cronInterval, err = time.ParseDuration(v)
		if err != nil {
			log.Printf("Invalid CRON_INTERVAL %q, scheduler disabled: %v", v, err)
			cronInterval = 0
		}
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		ServerPort: serverPort,

		JWTSecret: os.Getenv("JWT_SECRET"),

		AccessTokenMaxAge: accessTokenMaxAge,

		RedisURL: os.Getenv("REDIS_URL"),

		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubject:    vapidSubject,

		CronSecret:   os.Getenv("CRON_SECRET"),
		CronInterval: cronInterval,

		CriticalStockDays:  envInt("ALERT_CRITICAL_STOCK_DAYS", 5),
		LowStockDays:       envInt("ALERT_LOW_STOCK_DAYS", 10),
		ExpiryWindowDays:   envInt("ALERT_EXPIRY_WINDOW_DAYS", 30),
		StockSilenceDays:   envInt("ALERT_STOCK_SILENCE_DAYS", 1),
		CheckupLeadDays:    envInt("ALERT_CHECKUP_LEAD_DAYS", 30),
		CheckupSilenceDays: envInt("ALERT_CHECKUP_SILENCE_DAYS", 25),
	}, nil
}

// envInt reads an integer env var, falling back to def when unset or invalid.
func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
