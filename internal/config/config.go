package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       int
	AVToken    string
	AVBaseURL  string
	Symbols    []string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

func LoadConfig() *Config {
	// Optional .env for local development; missing file is fine.
	godotenv.Load()

	return &Config{
		Port:       getEnvInt("PORT", 8501),
		AVToken:    getEnv("AV_TOKEN", ""),
		AVBaseURL:  getEnv("AV_BASE_URL", "https://www.alphavantage.co/query"),
		Symbols:    splitSymbols(getEnv("SYMBOLS", "AAPL,META,GOOG")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "postgres"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitSymbols(s string) []string {
	var symbols []string
	for _, sym := range strings.Split(s, ",") {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym != "" {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}
