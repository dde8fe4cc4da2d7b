package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                 string
	OutputDir            string
	MaxSessions          int
	MaxConcurrentRenders int
	SessionTTLSec        int
	MaxSampleRate        int
	AllowedOrigins       string
	ShutdownTimeoutSec   int
}

func Load() *Config {
	return &Config{
		Port:                 getEnv("SOUNDLAB_PORT", "8080"),
		OutputDir:            getEnv("SOUNDLAB_OUTPUT_DIR", os.TempDir()),
		MaxSessions:          getEnvInt("SOUNDLAB_MAX_SESSIONS", 16),
		MaxConcurrentRenders: getEnvInt("SOUNDLAB_MAX_CONCURRENT_RENDERS", 2),
		SessionTTLSec:        getEnvInt("SOUNDLAB_SESSION_TTL_SEC", 1800),
		MaxSampleRate:        getEnvInt("SOUNDLAB_MAX_SAMPLE_RATE", 192000),
		AllowedOrigins:       getEnv("SOUNDLAB_ALLOWED_ORIGINS", "*"),
		ShutdownTimeoutSec:   getEnvInt("SOUNDLAB_SHUTDOWN_TIMEOUT_SEC", 10),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
