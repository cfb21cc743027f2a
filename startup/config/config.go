package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	StoreDriver   string
	RedisHost     string
	RedisPort     string
	MongoHost     string
	MongoPort     string
	JaegerAddress string
	LogFilePath   string
}

func NewConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading config from environment")
	}

	return &Config{
		Port:          getEnv("MARKETPLACE_SERVICE_PORT", "8000"),
		StoreDriver:   getEnv("STORE_DRIVER", "redis"),
		RedisHost:     os.Getenv("RECORD_STORE_REDIS_HOST"),
		RedisPort:     os.Getenv("RECORD_STORE_REDIS_PORT"),
		MongoHost:     os.Getenv("RECORD_STORE_MONGO_HOST"),
		MongoPort:     os.Getenv("RECORD_STORE_MONGO_PORT"),
		JaegerAddress: os.Getenv("JAEGER_ADDRESS"),
		LogFilePath:   getEnv("LOG_FILE_PATH", "/app/logs/marketplace.log"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
