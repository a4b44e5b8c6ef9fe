package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seedmarket/internal/ledger"
)

// callerHeader carries the caller principal on seller-gated and payment
// endpoints. The ledger compares it against the configured seller id.
const callerHeader = "X-Caller"

// ledgerHandler holds the ledger service and implements HTTP handlers for
// the market operations.
type ledgerHandler struct {
	service *ledger.Service
	logger  *zap.Logger
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(service *ledger.Service, logger *zap.Logger) *ledgerHandler {
	return &ledgerHandler{
		service: service,
		logger:  logger,
	}
}

// handleRegisterFarmer handles the POST /farmers endpoint.
func (h *ledgerHandler) handleRegisterFarmer(ctx *gin.Context) {
	var req struct {
		Identity string `json:"identity"`
		FarmSize uint64 `json:"farm_size"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	farmer, err := h.service.Register(req.Identity, req.FarmSize)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrAlreadyRegistered):
			ctx.JSON(http.StatusConflict, gin.H{"error": "farmer already registered"})
		case errors.Is(err, ledger.ErrEmptyIdentity):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "empty identity token"})
		default:
			h.logger.Error("failed to register farmer", zap.Error(err), zap.String("identity", req.Identity))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register farmer"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, farmer)
}

// handleSetPrice handles the PUT /prices/:seed endpoint. Seller only; the
// caller principal arrives in the X-Caller header.
func (h *ledgerHandler) handleSetPrice(ctx *gin.Context) {
	seed, err := ledger.ParseSeedType(ctx.Param("seed"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown seed type"})
		return
	}

	var req struct {
		Price uint64 `json:"price"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	caller := ctx.GetHeader(callerHeader)
	if err := h.service.SetPrice(caller, seed, req.Price); err != nil {
		if errors.Is(err, ledger.ErrUnauthorized) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "caller is not the seller"})
			return
		}
		h.logger.Error("failed to set price", zap.Error(err), zap.String("seed", string(seed)))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set price"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"seed": seed, "price": req.Price})
}

// handlePurchase handles the POST /purchases endpoint.
func (h *ledgerHandler) handlePurchase(ctx *gin.Context) {
	var req struct {
		Identity string `json:"identity"`
		Seed     string `json:"seed"`
		Tendered uint64 `json:"tendered_amount"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	seed, err := ledger.ParseSeedType(req.Seed)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown seed type"})
		return
	}

	caller := ctx.GetHeader(callerHeader)
	receipt, err := h.service.Purchase(caller, req.Identity, seed, req.Tendered)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotRegistered):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "farmer not registered"})
		case errors.Is(err, ledger.ErrPriceNotSet):
			ctx.JSON(http.StatusConflict, gin.H{"error": "seed price not set"})
		case errors.Is(err, ledger.ErrInsufficientPayment):
			ctx.JSON(http.StatusPaymentRequired, gin.H{"error": "tendered amount below total price"})
		case errors.Is(err, ledger.ErrOverflow):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "total price out of range"})
		case errors.Is(err, ledger.ErrTransferFailed):
			ctx.JSON(http.StatusBadGateway, gin.H{"error": "payment transfer failed"})
		default:
			h.logger.Error("failed to settle purchase", zap.Error(err), zap.String("identity", req.Identity))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to settle purchase"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, receipt)
}

// handleGetFarmer handles the GET /farmers/:identity endpoint.
func (h *ledgerHandler) handleGetFarmer(ctx *gin.Context) {
	farmer, err := h.service.Farmer(ctx.Param("identity"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "farmer not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read farmer"})
		return
	}
	ctx.JSON(http.StatusOK, farmer)
}

// handleGetPurchase handles the GET /purchases/:seq endpoint.
func (h *ledgerHandler) handleGetPurchase(ctx *gin.Context) {
	seq, err := strconv.ParseUint(ctx.Param("seq"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid sequence number"})
		return
	}

	purchase, err := h.service.PurchaseRecord(seq)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "purchase not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read purchase"})
		return
	}
	ctx.JSON(http.StatusOK, purchase)
}

// handleGetPrice handles the GET /prices/:seed endpoint.
func (h *ledgerHandler) handleGetPrice(ctx *gin.Context) {
	seed, err := ledger.ParseSeedType(ctx.Param("seed"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown seed type"})
		return
	}

	price, err := h.service.Price(seed)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read price"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"seed": seed, "price": price})
}
