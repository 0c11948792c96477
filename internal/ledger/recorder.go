package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stocktrack/domain"
)

var (
	ErrUnknownType         = errors.New("unknown transaction type")
	ErrInvalidQuantity     = errors.New("quantity must be a positive whole number")
	ErrInvalidPrice        = errors.New("unit price must be greater than zero")
	ErrMissingCounterparty = errors.New("customer or supplier name is required")
)

// RecordInput carries the user-entered fields for one transaction.
// For stock_adjust the signed AdjustmentDelta is authoritative and the
// Quantity and UnitPrice fields are ignored.
type RecordInput struct {
	Type            domain.TransactionType
	Quantity        int64
	UnitPrice       decimal.Decimal
	AdjustmentDelta int64
	Counterparty    string
	Notes           string
}

// Recorder builds normalized, immutable transactions from raw form
// input. It performs no I/O: appending the result to the log and
// applying its stock delta to the product are the caller's job.
type Recorder struct {
	now   func() time.Time
	newID func() string
}

func NewRecorder() *Recorder {
	return &Recorder{now: time.Now, newID: uuid.NewString}
}

// Record validates the input and returns the resulting transaction.
// Checks run in a fixed order and the first failure wins: quantity,
// then price, then counterparty.
func (r *Recorder) Record(in RecordInput) (domain.Transaction, error) {
	if _, ok := domain.ParseTransactionType(string(in.Type)); !ok {
		return domain.Transaction{}, ErrUnknownType
	}

	qty := in.Quantity
	if in.Type == domain.StockAdjust {
		qty = in.AdjustmentDelta
		if qty < 0 {
			qty = -qty
		}
	}
	if qty <= 0 {
		return domain.Transaction{}, ErrInvalidQuantity
	}

	price := decimal.Zero
	total := decimal.Zero
	if in.Type.RequiresPrice() {
		if in.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return domain.Transaction{}, ErrInvalidPrice
		}
		price = in.UnitPrice
		total = price.Mul(decimal.NewFromInt(qty)).Round(2)
	}

	counterparty := strings.TrimSpace(in.Counterparty)
	if in.Type.RequiresCounterparty() {
		if counterparty == "" {
			return domain.Transaction{}, ErrMissingCounterparty
		}
	} else {
		counterparty = ""
	}

	var delta int64
	switch in.Type {
	case domain.CashSale, domain.CreditSale:
		delta = -qty
	case domain.CreditBuy, domain.Return:
		delta = qty
	case domain.StockAdjust:
		delta = in.AdjustmentDelta
	}

	return domain.Transaction{
		ID:           r.newID(),
		Type:         in.Type,
		Date:         r.now().Format("2006-01-02"),
		Quantity:     qty,
		UnitPrice:    price,
		Total:        total,
		StockDelta:   delta,
		Counterparty: counterparty,
		Notes:        strings.TrimSpace(in.Notes),
	}, nil
}
