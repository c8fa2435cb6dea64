package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	App      AppConfig
	Worker   WorkerConfig
	Hosting  HostingConfig
	Render   RenderConfig
	Firebase FirebaseConfig
}

type ServerConfig struct {
	Port string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	Version     string
	// Origin is the public origin the app is served from. The hosted
	// environment check inspects its host name.
	Origin string
	// HostedSuffix is the hosting platform's domain suffix, e.g. ".roomify.site".
	HostedSuffix string
}

type WorkerConfig struct {
	// BaseURL of the deployed worker API. Empty means project operations
	// degrade to no-ops outside the direct path.
	BaseURL string
	// ProxyBase and ProxyPrefix describe the local dev proxy that fronts
	// the worker when not running on the hosting platform.
	ProxyBase   string
	ProxyPrefix string
	// RatePerSecond limits requests per client on the worker API.
	RatePerSecond float64
	RateBurst     int
}

type HostingConfig struct {
	// BaseURL of the file-hosting service API.
	BaseURL string
	// SiteName is the get-or-create hosting target for uploaded images.
	SiteName string
	// Domain is the permanent hosting domain suffix used to recognize
	// already-hosted URLs.
	Domain string
}

type RenderConfig struct {
	Model    string
	Timeout  time.Duration
	MaxDim   int
	Disabled bool
}

type FirebaseConfig struct {
	CredentialsPath string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment:  getEnv("APP_ENV", "development"),
			Version:      getEnv("APP_VERSION", "1.0.0"),
			Origin:       getEnv("APP_ORIGIN", "http://localhost:5173"),
			HostedSuffix: getEnv("HOSTED_DOMAIN_SUFFIX", ".roomify.site"),
		},
		Worker: WorkerConfig{
			BaseURL:       getEnv("WORKER_BASE_URL", ""),
			ProxyBase:     getEnv("WORKER_PROXY_BASE", "http://localhost:5173"),
			ProxyPrefix:   getEnv("WORKER_PROXY_PREFIX", "/worker-api"),
			RatePerSecond: getEnvAsFloat("WORKER_RATE_PER_SECOND", 10),
			RateBurst:     getEnvAsInt("WORKER_RATE_BURST", 20),
		},
		Hosting: HostingConfig{
			BaseURL:  getEnv("HOSTING_BASE_URL", ""),
			SiteName: getEnv("HOSTING_SITE_NAME", "roomify"),
			Domain:   getEnv("HOSTING_DOMAIN", "roomify-cdn.site"),
		},
		Render: RenderConfig{
			Model:    getEnv("RENDER_MODEL", "models/gemini-2.5-flash-image-preview"),
			Timeout:  getEnvAsDuration("RENDER_TIMEOUT", 120*time.Second),
			MaxDim:   getEnvAsInt("RENDER_MAX_INPUT_DIMENSION", 768),
			Disabled: getEnv("RENDER_DISABLED", "") == "true",
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.Render.Timeout <= 0 {
		return fmt.Errorf("RENDER_TIMEOUT must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
