package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ServerPort string

	DBDriver   string // postgres or sqlite
	DBDSN      string // overrides the DB_* parts when set
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string
	JWTTTL    time.Duration

	GeminiAPIKey      string
	GeminiModel       string
	AIBreakerFailures uint32
	AIBreakerTimeout  time.Duration
	AIRateLimit       int

	CORSOrigins string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Env:               getEnv("APP_ENV", "development"),
		ServerPort:        getEnv("SERVER_PORT", "5001"),
		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBDSN:             getEnv("DB_DSN", ""),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "learnhub"),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		JWTTTL:            getDuration("JWT_TTL", 30*24*time.Hour),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AIBreakerFailures: uint32(getInt("AI_BREAKER_FAILURES", 5)),
		AIBreakerTimeout:  getDuration("AI_BREAKER_TIMEOUT", 30*time.Second),
		AIRateLimit:       getInt("AI_RATE_LIMIT", 20),
		CORSOrigins:       getEnv("CORS_ORIGINS", "*"),
	}, nil
}

// IsProduction reports whether error bodies should omit stack traces.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production") || strings.EqualFold(c.Env, "prod")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		log.Printf("Invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
