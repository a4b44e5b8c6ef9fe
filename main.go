package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seedmarket/api"
	"seedmarket/config"
	"seedmarket/internal/ledger"
	"seedmarket/internal/payment"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var storage ledger.Storage
	if cfg.DBPath != "" {
		s, err := ledger.NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			panic(fmt.Errorf("error opening ledger database: %v", err))
		}
		storage = s
	} else {
		storage = ledger.NewLocalStorage()
	}

	payer := payment.NewClient(cfg.GatewayURL)
	defer payer.Close()

	service := ledger.NewService(storage, payer, cfg.SellerID, logger)

	r := gin.Default()
	api.InitRoutes(r, service, logger)

	if err := r.Run(":" + cfg.Port); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
