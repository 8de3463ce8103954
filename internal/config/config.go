package config

import (
	"os"
	"time"
)

type Config struct {
	MongoURI   string
	MongoDB    string
	RedisAddr  string
	HTTPPort   string
	JWTSecret  string
	SessionTTL time.Duration
}

func Load() *Config {
	return &Config{
		MongoURI:   getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    getEnv("MONGO_DB", "surveypulse"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:   getEnv("PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		SessionTTL: getDuration("SESSION_TTL", 7*24*time.Hour),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
