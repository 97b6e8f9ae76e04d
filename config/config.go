package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerAddr       string
	MysqlDSN         string
	JWTSecret        string
	TranslatorURL    string
	TranslatorAPIKey string
	TranslateTimeout int // seconds
}

var Cfg *Config

func Load() {
	Cfg = &Config{
		ServerAddr:       ":" + getEnv("PORT", "8080"),
		MysqlDSN:         getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/lingochat?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:        getEnv("JWT_SECRET", "lingochat-secret-key-change-in-production"),
		TranslatorURL:    getEnv("TRANSLATOR_BASE_URL", "http://localhost:11434/v1"),
		TranslatorAPIKey: getEnv("TRANSLATOR_API_KEY", ""),
		TranslateTimeout: getEnvInt("TRANSLATE_TIMEOUT_SECONDS", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
