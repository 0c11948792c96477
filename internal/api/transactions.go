package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stocktrack/domain"
	"stocktrack/internal/ledger"
)

type transactionRequest struct {
	Type            string          `json:"type"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	AdjustmentDelta int64           `json:"adjustment_delta"`
	Counterparty    string          `json:"counterparty"`
	Notes           string          `json:"notes"`
}

// createTransaction records one inventory event against a product. The
// log insert and the stock update commit together: a half-applied sale
// would leave the stock count drifting from the log.
func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	txType, ok := domain.ParseTransactionType(req.Type)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid transaction type")
		return
	}

	userID := userIDFrom(r)
	product, err := h.getOwnedProduct(productID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load product")
		return
	}

	record, err := h.recorder.Record(ledger.RecordInput{
		Type:            txType,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		AdjustmentDelta: req.AdjustmentDelta,
		Counterparty:    req.Counterparty,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	record.ProductID = product.ID
	record.UserID = userID

	newStock := product.CurrentStock + record.StockDelta
	if newStock < 0 {
		respondError(w, http.StatusBadRequest, "insufficient stock")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to start transaction")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE products SET current_stock = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, newStock, product.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update stock")
		return
	}
	err = tx.QueryRowx(`INSERT INTO transactions (id, product_id, user_id, type, tx_date, quantity, unit_price, total, stock_delta, counterparty, notes)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING created_at`,
		record.ID, record.ProductID, record.UserID, record.Type, record.Date, record.Quantity,
		record.UnitPrice, record.Total, record.StockDelta, record.Counterparty, record.Notes).Scan(&record.CreatedAt)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to save transaction")
		return
	}

	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to finalize transaction")
		return
	}

	h.log.Info("transaction recorded",
		zap.String("id", record.ID),
		zap.Int64("product_id", record.ProductID),
		zap.String("type", string(record.Type)),
		zap.Int64("stock_delta", record.StockDelta),
		zap.String("total", record.Total.String()),
	)
	respondJSON(w, http.StatusCreated, map[string]any{
		"transaction": record,
		"new_stock":   newStock,
	})
}

func (h *Handler) listProductTransactions(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if _, err := h.getOwnedProduct(productID, userIDFrom(r)); err != nil {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	transactions := []domain.Transaction{}
	err = h.db.Select(&transactions, `SELECT id, product_id, user_id, type, tx_date, quantity, unit_price, total, stock_delta, counterparty, notes, created_at
                FROM transactions WHERE product_id = $1 ORDER BY created_at DESC, id`, productID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list transactions")
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	transactions := []domain.Transaction{}
	err := h.db.Select(&transactions, `SELECT id, product_id, user_id, type, tx_date, quantity, unit_price, total, stock_delta, counterparty, notes, created_at
                FROM transactions WHERE user_id = $1 ORDER BY created_at DESC, id`, userIDFrom(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list transactions")
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}
