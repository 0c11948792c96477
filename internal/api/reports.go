package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stocktrack/domain"
	"stocktrack/internal/ledger"
)

// salesReport summarizes the caller's transaction log. Filters narrow
// which rows are loaded; the aggregation itself happens in the ledger
// package over the fetched snapshot.
func (h *Handler) salesReport(w http.ResponseWriter, r *http.Request) {
	args := []any{userIDFrom(r)}
	clauses := []string{"user_id = $1"}

	productIDStr := strings.TrimSpace(r.URL.Query().Get("product_id"))
	if productIDStr != "" {
		productID, err := strconv.ParseInt(productIDStr, 10, 64)
		if err != nil || productID <= 0 {
			respondError(w, http.StatusBadRequest, "invalid product_id")
			return
		}
		args = append(args, productID)
		clauses = append(clauses, fmt.Sprintf("product_id = $%d", len(args)))
	}

	startDate := strings.TrimSpace(r.URL.Query().Get("start_date"))
	if startDate != "" {
		if _, err := time.Parse("2006-01-02", startDate); err != nil {
			respondError(w, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
			return
		}
		args = append(args, startDate)
		clauses = append(clauses, fmt.Sprintf("tx_date >= $%d", len(args)))
	}

	endDate := strings.TrimSpace(r.URL.Query().Get("end_date"))
	if endDate != "" {
		if _, err := time.Parse("2006-01-02", endDate); err != nil {
			respondError(w, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
			return
		}
		args = append(args, endDate)
		clauses = append(clauses, fmt.Sprintf("tx_date <= $%d", len(args)))
	}

	query := `SELECT id, product_id, user_id, type, tx_date, quantity, unit_price, total, stock_delta, counterparty, notes, created_at
                FROM transactions WHERE ` + strings.Join(clauses, " AND ")

	transactions := []domain.Transaction{}
	if err := h.db.Select(&transactions, query, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch transactions")
		return
	}

	respondJSON(w, http.StatusOK, ledger.Summarize(transactions))
}
