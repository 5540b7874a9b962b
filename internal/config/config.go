package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	// APIKey gates /api/v1 when set; TrustedProxies may set X-Forwarded-For
	APIKey         string
	TrustedProxies []string

	StorageBackend string
	RunMigrations  bool

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdle     time.Duration
	DBMaxConnLifetime time.Duration

	GardenSize          int
	TimerGrace          time.Duration
	TimerMinDurationSec int
	TimerMaxDurationSec int
	CoinsPerMinute      float64
	MinCreditMinutes    int
	HarvestRewardSource string

	CatalogPath      string
	CatalogCacheSize int
	CatalogCacheTTL  time.Duration

	EventRetentionDays  int
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvAsInt("PORT", DefaultPort),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "study-garden"),
		Version:     getEnv("VERSION", "dev"),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendPostgres)),
		RunMigrations:  getEnvAsBool("RUN_MIGRATIONS", true),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "studygarden"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdle:     getEnvAsDuration("DB_MAX_CONN_IDLE", DefaultDBMaxConnIdle),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		GardenSize:          getEnvAsInt("GARDEN_SIZE", DefaultGardenSize),
		TimerGrace:          time.Duration(getEnvAsInt("TIMER_GRACE_SEC", DefaultTimerGraceSec)) * time.Second,
		TimerMinDurationSec: getEnvAsInt("TIMER_MIN_DURATION_SEC", DefaultTimerMinDurationSec),
		TimerMaxDurationSec: getEnvAsInt("TIMER_MAX_DURATION_SEC", DefaultTimerMaxDurationSec),
		CoinsPerMinute:      getEnvAsFloat("COINS_PER_MINUTE", DefaultCoinsPerMinute),
		MinCreditMinutes:    getEnvAsInt("MIN_CREDIT_MINUTES", DefaultMinCreditMinutes),
		HarvestRewardSource: strings.ToLower(getEnv("HARVEST_REWARD_SOURCE", HarvestRewardCoinYield)),

		CatalogPath:      getEnv("CATALOG_PATH", ConfigPathItems),
		CatalogCacheSize: getEnvAsInt("CATALOG_CACHE_SIZE", DefaultCatalogCacheSize),
		CatalogCacheTTL:  getEnvAsDuration("CATALOG_CACHE_TTL", DefaultCatalogCacheTTL),

		EventRetentionDays:  getEnvAsInt("EVENT_RETENTION_DAYS", DefaultEventRetentionDays),
		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	switch c.StorageBackend {
	case StorageBackendPostgres, StorageBackendMemory:
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND %q: must be %s or %s", c.StorageBackend, StorageBackendPostgres, StorageBackendMemory)
	}
	if c.GardenSize < 1 || c.GardenSize > MaxGardenSize {
		return fmt.Errorf("invalid GARDEN_SIZE %d: must be between 1 and %d", c.GardenSize, MaxGardenSize)
	}
	if c.TimerGrace < 0 {
		return fmt.Errorf("invalid TIMER_GRACE_SEC: must not be negative")
	}
	if c.TimerMinDurationSec < 1 || c.TimerMaxDurationSec < c.TimerMinDurationSec {
		return fmt.Errorf("invalid timer duration bounds: min=%d max=%d", c.TimerMinDurationSec, c.TimerMaxDurationSec)
	}
	if c.CoinsPerMinute < 0 {
		return fmt.Errorf("invalid COINS_PER_MINUTE: must not be negative")
	}
	if c.MinCreditMinutes < 1 {
		return fmt.Errorf("invalid MIN_CREDIT_MINUTES: must be at least 1")
	}
	switch c.HarvestRewardSource {
	case HarvestRewardCoinYield, HarvestRewardPrice:
	default:
		return fmt.Errorf("invalid HARVEST_REWARD_SOURCE %q: must be %s or %s", c.HarvestRewardSource, HarvestRewardCoinYield, HarvestRewardPrice)
	}
	if c.EventRetentionDays < 1 {
		return fmt.Errorf("invalid EVENT_RETENTION_DAYS: must be at least 1")
	}
	if c.EventMaxRetries < 0 {
		return fmt.Errorf("invalid EVENT_MAX_RETRIES: must not be negative")
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsDevelopment reports whether the app runs in a dev environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}
