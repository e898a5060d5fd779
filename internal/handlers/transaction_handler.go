package handlers

import (
	"log/slog"
	"net/http"

	"seatwell/internal/services"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
	logger             *slog.Logger
}

func NewTransactionHandler(transactionService *services.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// ListTransactions - GET /api/transactions
func (h *TransactionHandler) ListTransactions(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, h.transactionService.List(e.Request.Context()))
}

// GetTransaction - GET /api/transactions/{id}
func (h *TransactionHandler) GetTransaction(e *core.RequestEvent) error {
	id, ok := pathID(e, "id")
	if !ok {
		return apis.NewNotFoundError("Transaction not found", nil)
	}

	tx, err := h.transactionService.Get(e.Request.Context(), id)
	if err != nil {
		return apiError(h.logger, err, "Transaction", "Failed to fetch transaction")
	}

	return e.JSON(http.StatusOK, tx)
}
