package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config хранит всю конфигурацию приложения.
type Config struct {
	Port string // порт, на котором слушает сам сервис

	// Базовый URL удаленного API объявлений (единственный
	// авторитетный бэкенд).
	PropertyAPIBaseURL string

	// Origin браузерной админки для CORS.
	UIOrigin string

	AppName      string
	StdoutLogger StdoutLogConfig
	FluentBit    FluentBitConfig
}

type StdoutLogConfig struct {
	Level string // по умолчанию debug
}

type FluentBitConfig struct {
	Enabled bool
	Host    string
	Port    int
	Level   string // по умолчанию info
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Для локальной разработки удобен .env файл; его отсутствие
// не является ошибкой.
func LoadConfig(envPath ...string) (*Config, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:               getEnv("ADMIN_SERVICE_PORT", "8080"),
		PropertyAPIBaseURL: getEnv("PROPERTY_API_URL", "http://127.0.0.1:8000/api"),
		UIOrigin:           getEnv("UI_ORIGIN", "http://localhost:5173"),
		AppName:            getEnv("APP_NAME", "property-admin-service"),
	}

	if cfg.PropertyAPIBaseURL == "" {
		return nil, fmt.Errorf("PROPERTY_API_URL environment variable is required")
	}

	cfg.StdoutLogger.Level = getEnv("STDOUT_LOG_LEVEL", "debug")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnv("FLUENTBIT_LOG_LEVEL", "info")
	}

	return cfg, nil
}

// getEnv - вспомогательная функция для чтения переменных окружения
// со значением по умолчанию.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
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
