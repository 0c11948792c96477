package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"stocktrack/domain"
)

type productRequest struct {
	Name              *string          `json:"name"`
	Unit              *string          `json:"unit"`
	ImageURL          *string          `json:"image_url"`
	SellingPrice      *decimal.Decimal `json:"selling_price"`
	CurrentStock      *int64           `json:"current_stock"`
	LowStockThreshold *int64           `json:"low_stock_threshold"`
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" || req.SellingPrice == nil {
		respondError(w, http.StatusBadRequest, "name and selling_price are required")
		return
	}
	if req.SellingPrice.IsNegative() {
		respondError(w, http.StatusBadRequest, "selling_price must not be negative")
		return
	}

	unit := "unit"
	if req.Unit != nil && strings.TrimSpace(*req.Unit) != "" {
		unit = strings.TrimSpace(*req.Unit)
	}
	var stock int64
	if req.CurrentStock != nil {
		stock = *req.CurrentStock
	}
	if stock < 0 {
		respondError(w, http.StatusBadRequest, "current_stock must not be negative")
		return
	}
	threshold := int64(5)
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}

	var id int64
	err := h.db.QueryRowx(`INSERT INTO products (user_id, name, unit, image_url, selling_price, current_stock, low_stock_threshold)
                VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		userIDFrom(r), strings.TrimSpace(*req.Name), unit, nullIfEmpty(req.ImageURL), *req.SellingPrice, stock, threshold).Scan(&id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create product")
		return
	}

	product, err := h.getOwnedProduct(id, userIDFrom(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load created product")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products := []domain.Product{}
	err := h.db.Select(&products, `SELECT id, user_id, name, unit, image_url, selling_price, current_stock, low_stock_threshold, archived, created_at, updated_at
                FROM products WHERE user_id = $1 AND archived = 0 ORDER BY created_at DESC`, userIDFrom(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	products := []domain.Product{}
	var err error
	if query == "" {
		err = h.db.Select(&products, `SELECT id, user_id, name, unit, image_url, selling_price, current_stock, low_stock_threshold, archived, created_at, updated_at
                        FROM products WHERE user_id = $1 AND archived = 0 ORDER BY name LIMIT 25`, userIDFrom(r))
	} else {
		like := "%" + query + "%"
		err = h.db.Select(&products, `SELECT id, user_id, name, unit, image_url, selling_price, current_stock, low_stock_threshold, archived, created_at, updated_at
                        FROM products WHERE user_id = $1 AND archived = 0 AND name LIKE $2 ORDER BY name LIMIT 25`, userIDFrom(r), like)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to search products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		args    []any
		clauses []string
	)
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			respondError(w, http.StatusBadRequest, "name must not be empty")
			return
		}
		args = append(args, strings.TrimSpace(*req.Name))
		clauses = append(clauses, fmt.Sprintf("name = $%d", len(args)))
	}
	if req.Unit != nil {
		args = append(args, strings.TrimSpace(*req.Unit))
		clauses = append(clauses, fmt.Sprintf("unit = $%d", len(args)))
	}
	if req.ImageURL != nil {
		args = append(args, nullIfEmpty(req.ImageURL))
		clauses = append(clauses, fmt.Sprintf("image_url = $%d", len(args)))
	}
	if req.SellingPrice != nil {
		if req.SellingPrice.IsNegative() {
			respondError(w, http.StatusBadRequest, "selling_price must not be negative")
			return
		}
		args = append(args, *req.SellingPrice)
		clauses = append(clauses, fmt.Sprintf("selling_price = $%d", len(args)))
	}
	if req.CurrentStock != nil {
		if *req.CurrentStock < 0 {
			respondError(w, http.StatusBadRequest, "current_stock must not be negative")
			return
		}
		args = append(args, *req.CurrentStock)
		clauses = append(clauses, fmt.Sprintf("current_stock = $%d", len(args)))
	}
	if req.LowStockThreshold != nil {
		args = append(args, *req.LowStockThreshold)
		clauses = append(clauses, fmt.Sprintf("low_stock_threshold = $%d", len(args)))
	}
	if len(clauses) == 0 {
		respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	args = append(args, id)
	idPos := len(args)
	args = append(args, userIDFrom(r))
	query := fmt.Sprintf(`UPDATE products SET %s, updated_at = CURRENT_TIMESTAMP WHERE id = $%d AND user_id = $%d`,
		strings.Join(clauses, ", "), idPos, idPos+1)

	res, err := h.db.Exec(query, args...)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update product")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	product, err := h.getOwnedProduct(id, userIDFrom(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load updated product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// archiveProduct soft-deletes a product so transaction history stays
// resolvable. The row never leaves the table.
func (h *Handler) archiveProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	res, err := h.db.Exec(`UPDATE products SET archived = 1, updated_at = CURRENT_TIMESTAMP WHERE id = $1 AND user_id = $2`, id, userIDFrom(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to archive product")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "product archived"})
}

func (h *Handler) lowStockProducts(w http.ResponseWriter, r *http.Request) {
	products := []domain.Product{}
	err := h.db.Select(&products, `SELECT id, user_id, name, unit, image_url, selling_price, current_stock, low_stock_threshold, archived, created_at, updated_at
                FROM products WHERE user_id = $1 AND archived = 0 AND current_stock <= low_stock_threshold
                ORDER BY current_stock ASC`, userIDFrom(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch low stock products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) getOwnedProduct(id, userID int64) (domain.Product, error) {
	var product domain.Product
	err := h.db.Get(&product, `SELECT id, user_id, name, unit, image_url, selling_price, current_stock, low_stock_threshold, archived, created_at, updated_at
                FROM products WHERE id = $1 AND user_id = $2`, id, userID)
	return product, err
}
