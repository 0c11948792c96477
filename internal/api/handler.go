package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"stocktrack/internal/ledger"
)

type ctxKey string

const ctxUserID ctxKey = "userID"

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db       *sqlx.DB
	secret   string
	log      *zap.Logger
	recorder *ledger.Recorder
}

// New constructs a Handler.
func New(db *sqlx.DB, secret string, log *zap.Logger) *Handler {
	return &Handler{db: db, secret: secret, log: log, recorder: ledger.NewRecorder()}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Group(func(protected chi.Router) {
			protected.Use(h.authMiddleware)
			protected.Post("/reset-password", h.resetPassword)
		})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Route("/products", func(r chi.Router) {
			r.Post("/", h.createProduct)
			r.Get("/", h.listProducts)
			r.Get("/search", h.searchProducts)
			r.Get("/low-stock", h.lowStockProducts)
			r.Put("/{id}", h.updateProduct)
			r.Delete("/{id}", h.archiveProduct)
			r.Post("/{id}/transactions", h.createTransaction)
			r.Get("/{id}/transactions", h.listProductTransactions)
		})

		pr.Get("/transactions", h.listTransactions)
		pr.Get("/reports/sales", h.salesReport)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// Helpers

func userIDFrom(r *http.Request) int64 {
	return r.Context().Value(ctxUserID).(int64)
}

func nullIfEmpty(val *string) *string {
	if val == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
