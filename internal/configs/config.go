package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DBconfig struct {
	URL      string
	MaxConns int
}

type RESTconfig struct {
	PORT           string
	AllowedOrigins []string
	RequestTimeout time.Duration
	// JWTSigningKey включает проверку bearer-токенов, иначе доверяем X-User-ID
	JWTSigningKey string
}

// RedisConfig - кэш страниц. Пустой адрес отключает кэш.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PageTTL  time.Duration
}

// RabbitMQConfig - публикация событий избранного. Пустой URL отключает события.
type RabbitMQConfig struct {
	URL               string
	ReconnectInterval time.Duration
}

// DiscoveryConfig - параметры экранов поиска
type DiscoveryConfig struct {
	MaxViews      int
	ViewIdleTTL   time.Duration
	EvictInterval time.Duration
	FetchRetries  int
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Database     DBconfig
	Rest         RESTconfig
	Redis        RedisConfig
	RabbitMQ     RabbitMQConfig
	Discovery    DiscoveryConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Файл .env необязателен: без него используются переменные процесса.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		if len(envPath) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Printf("Info: .env file not found, using process environment")
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "discovery-service")

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	cfg.Database.MaxConns = getEnvAsInt("DATABASE_MAX_CONNS", 0)

	cfg.Rest.PORT = getEnvAsString("PORT", "8084")
	cfg.Rest.AllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil)
	cfg.Rest.RequestTimeout = getEnvAsDuration("HTTP_REQUEST_TIMEOUT", 30*time.Second)
	cfg.Rest.JWTSigningKey = os.Getenv("JWT_SIGNING_KEY")

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
	cfg.Redis.PageTTL = getEnvAsDuration("REDIS_PAGE_TTL", 2*time.Minute)

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	cfg.RabbitMQ.ReconnectInterval = getEnvAsDuration("RABBITMQ_RECONNECT_INTERVAL", 10*time.Second)

	cfg.Discovery.MaxViews = getEnvAsInt("DISCOVERY_MAX_VIEWS", 10000)
	cfg.Discovery.ViewIdleTTL = getEnvAsDuration("DISCOVERY_VIEW_IDLE_TTL", 30*time.Minute)
	cfg.Discovery.EvictInterval = getEnvAsDuration("DISCOVERY_EVICT_INTERVAL", time.Minute)
	cfg.Discovery.FetchRetries = getEnvAsInt("DISCOVERY_FETCH_RETRIES", 1)
	if cfg.Discovery.MaxViews <= 0 {
		return nil, fmt.Errorf("DISCOVERY_MAX_VIEWS must be positive, got %d", cfg.Discovery.MaxViews)
	}
	if cfg.Discovery.EvictInterval <= 0 {
		return nil, fmt.Errorf("DISCOVERY_EVICT_INTERVAL must be positive, got %s", cfg.Discovery.EvictInterval)
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valDuration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valDuration
}

// getEnvAsSlice разбирает список через запятую, пустые элементы отбрасываются
func getEnvAsSlice(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
