package server

import (
	"os"
	"strconv"
)

type Config struct {
	Addr          string
	AllowedOrigin string
	ConnRatePerIP float64 // websocket upgrades per second per IP
}

func LoadConfig() Config {
	return Config{
		Addr:          ":" + envStr("PORT", "5000"),
		AllowedOrigin: envStr("SHADOW_ALLOWED_ORIGIN", "*"),
		ConnRatePerIP: float64(envInt("SHADOW_CONN_RATE_LIMIT", 20)),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
