package config

import "os"

// Config holds server-level settings read from the environment.
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	Port          string
	JWTSecret     string
}

// Load reads configuration from environment variables with local defaults.
func Load() *Config {
	redisAddr := getEnv("REDIS_URI", "localhost:6379")
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "triviasnake"),
		RedisAddr:     redisAddr,
		Port:          getEnv("PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
