package domain

import "github.com/shopspring/decimal"

// TransactionType classifies a recorded inventory or money event.
type TransactionType string

const (
	CashSale    TransactionType = "cash_sale"
	CreditSale  TransactionType = "credit_sale"
	CreditBuy   TransactionType = "credit_buy"
	StockAdjust TransactionType = "stock_adjust"
	Return      TransactionType = "return"
)

// ParseTransactionType maps a wire value onto a known type.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch t := TransactionType(s); t {
	case CashSale, CreditSale, CreditBuy, StockAdjust, Return:
		return t, true
	}
	return "", false
}

// RequiresPrice reports whether a unit price must accompany this type.
// Stock adjustments move inventory without money changing hands.
func (t TransactionType) RequiresPrice() bool {
	return t != StockAdjust
}

// RequiresCounterparty reports whether a customer or supplier name is
// mandatory for this type.
func (t TransactionType) RequiresCounterparty() bool {
	return t == CreditSale || t == CreditBuy || t == Return
}

// IsSale reports whether this type counts toward sales revenue and units.
func (t TransactionType) IsSale() bool {
	return t == CashSale || t == CreditSale
}

// Transaction is one immutable entry in the append-only inventory log.
// Corrections are made by recording a compensating entry, never by
// mutating an existing row.
type Transaction struct {
	ID           string          `db:"id" json:"id"`
	ProductID    int64           `db:"product_id" json:"product_id"`
	UserID       int64           `db:"user_id" json:"user_id"`
	Type         TransactionType `db:"type" json:"type"`
	Date         string          `db:"tx_date" json:"date"`
	Quantity     int64           `db:"quantity" json:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unit_price"`
	Total        decimal.Decimal `db:"total" json:"total"`
	StockDelta   int64           `db:"stock_delta" json:"stock_delta"`
	Counterparty string          `db:"counterparty" json:"counterparty,omitempty"`
	Notes        string          `db:"notes" json:"notes,omitempty"`
	CreatedAt    string          `db:"created_at" json:"created_at,omitempty"`
}
