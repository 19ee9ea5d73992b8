package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage and chain backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"

	ChainMock   = "mock"
	ChainSolana = "solana"
)

// Config holds all configuration for the GUIverse game service
type Config struct {
	// HTTP configuration
	HTTPPort    string
	MetricsPort string

	// Wallet storage configuration
	StorageBackend string
	RedisURL       string

	// Pet collection database. Postgres is used only when DBName is set.
	DBName     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBPort     string
	DBSSLMode  string

	// Chain collaborator configuration
	ChainBackend    string
	RPCEndpoints    []string
	WalletAddress   string
	StartingBalance int64
	MockLatency     bool
	ChainRateLimit  float64

	// Logging configuration
	LogLevel string

	// BalanceMonitorInterval is how often the chain balance is polled; 0 disables it
	BalanceMonitorInterval time.Duration

	ShutdownTimeout time.Duration
}

// UsePostgres reports whether the pet collection lives in postgres
func (c Config) UsePostgres() bool {
	return c.DBName != ""
}

// Load reads configuration from environment variables and validates it
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		MetricsPort:    getEnv("METRICS_PORT", "9100"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		DBName:         getEnv("DB_NAME", ""),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBUser:         getEnv("DB_USER", ""),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		ChainBackend:   strings.ToLower(getEnv("CHAIN_BACKEND", ChainMock)),
		WalletAddress:  getEnv("WALLET_ADDRESS", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	// Parse RPC endpoints
	if rpcEndpointsStr := getEnv("RPC_ENDPOINTS", ""); rpcEndpointsStr != "" {
		for _, endpoint := range strings.Split(rpcEndpointsStr, ",") {
			if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
				cfg.RPCEndpoints = append(cfg.RPCEndpoints, endpoint)
			}
		}
	}

	var err error
	cfg.StartingBalance, err = parseInt64Env("STARTING_BALANCE", 12847)
	if err != nil {
		return cfg, fmt.Errorf("invalid STARTING_BALANCE: %w", err)
	}

	cfg.MockLatency, err = parseBoolEnv("MOCK_LATENCY", true)
	if err != nil {
		return cfg, fmt.Errorf("invalid MOCK_LATENCY: %w", err)
	}

	cfg.ChainRateLimit, err = parseFloatEnv("CHAIN_RATE_LIMIT", 2.0)
	if err != nil {
		return cfg, fmt.Errorf("invalid CHAIN_RATE_LIMIT: %w", err)
	}

	cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return cfg, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg.BalanceMonitorInterval, err = parseDurationEnv("BALANCE_MONITOR_INTERVAL", 30*time.Second)
	if err != nil {
		return cfg, fmt.Errorf("invalid BALANCE_MONITOR_INTERVAL: %w", err)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks that the configuration is valid
func (c Config) validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT is required")
	}

	switch c.StorageBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORAGE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND: %s (must be one of: memory, redis)", c.StorageBackend)
	}

	switch c.ChainBackend {
	case ChainMock:
	case ChainSolana:
		if len(c.RPCEndpoints) == 0 {
			return fmt.Errorf("at least one RPC endpoint is required when CHAIN_BACKEND=solana")
		}
		if c.WalletAddress == "" {
			return fmt.Errorf("WALLET_ADDRESS is required when CHAIN_BACKEND=solana")
		}
	default:
		return fmt.Errorf("invalid CHAIN_BACKEND: %s (must be one of: mock, solana)", c.ChainBackend)
	}

	if c.UsePostgres() && c.DBUser == "" {
		return fmt.Errorf("DB_USER is required when DB_NAME is set")
	}

	if c.StartingBalance < 0 {
		return fmt.Errorf("STARTING_BALANCE must not be negative")
	}

	if c.ChainRateLimit <= 0 {
		return fmt.Errorf("CHAIN_RATE_LIMIT must be positive")
	}

	if c.BalanceMonitorInterval < 0 {
		return fmt.Errorf("BALANCE_MONITOR_INTERVAL must not be negative")
	}

	validLogLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
		"panic": true,
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid LOG_LEVEL: %s (must be one of: trace, debug, info, warn, error, fatal, panic)", c.LogLevel)
	}

	return nil
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt64Env(key string, defaultValue int64) (int64, error) {
	str := os.Getenv(key)
	if str == "" {
		return defaultValue, nil
	}
	return strconv.ParseInt(str, 10, 64)
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	str := os.Getenv(key)
	if str == "" {
		return defaultValue, nil
	}
	return strconv.ParseFloat(str, 64)
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	str := os.Getenv(key)
	if str == "" {
		return defaultValue, nil
	}
	return strconv.ParseBool(str)
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	str := os.Getenv(key)
	if str == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(str)
}
