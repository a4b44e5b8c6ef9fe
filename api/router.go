package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seedmarket/internal/ledger"
)

// InitRoutes registers all ledger endpoints on the given Gin engine. It
// builds the handler around the provided service and binds each HTTP
// method and path to the appropriate handler function.
func InitRoutes(e *gin.Engine, service *ledger.Service, logger *zap.Logger) {
	h := NewLedgerHandler(service, logger)

	e.POST("/farmers", h.handleRegisterFarmer)
	e.GET("/farmers/:identity", h.handleGetFarmer)
	e.PUT("/prices/:seed", h.handleSetPrice)
	e.GET("/prices/:seed", h.handleGetPrice)
	e.POST("/purchases", h.handlePurchase)
	e.GET("/purchases/:seq", h.handleGetPurchase)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
