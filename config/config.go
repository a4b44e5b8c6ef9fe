package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port       string
	SellerID   string
	GatewayURL string
	DBPath     string // empty means in-memory ledger state
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] no .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:       get("PORT", "8081"),
		SellerID:   get("SELLER_ID", "seller"),
		GatewayURL: get("GATEWAY_URL", "http://localhost:8080"),
		DBPath:     get("DB_PATH", ""),
	}
	return cfg
}
