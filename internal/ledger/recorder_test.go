package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stocktrack/domain"
)

func testRecorder() *Recorder {
	n := 0
	return &Recorder{
		now: func() time.Time {
			return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
		},
		newID: func() string {
			n++
			return fmt.Sprintf("tx-%d", n)
		},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecordCashSale(t *testing.T) {
	r := testRecorder()

	tx, err := r.Record(RecordInput{
		Type:      domain.CashSale,
		Quantity:  2,
		UnitPrice: dec("4.99"),
	})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if tx.ID != "tx-1" {
		t.Errorf("expected id tx-1, got %q", tx.ID)
	}
	if tx.Date != "2024-01-15" {
		t.Errorf("expected date 2024-01-15, got %q", tx.Date)
	}
	if !tx.Total.Equal(dec("9.98")) {
		t.Errorf("expected total 9.98, got %s", tx.Total)
	}
	if tx.StockDelta != -2 {
		t.Errorf("expected stock delta -2, got %d", tx.StockDelta)
	}
}

func TestRecordRoundsTotalHalfUp(t *testing.T) {
	r := testRecorder()

	tx, err := r.Record(RecordInput{
		Type:      domain.CashSale,
		Quantity:  3,
		UnitPrice: dec("1.115"),
	})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	// 3 x 1.115 = 3.345, rounded half-up at two places
	if tx.Total.String() != "3.35" {
		t.Errorf("expected total 3.35, got %s", tx.Total)
	}
}

func TestRecordRejectsNonPositiveQuantity(t *testing.T) {
	r := testRecorder()

	types := []domain.TransactionType{domain.CashSale, domain.CreditSale, domain.CreditBuy, domain.Return}
	for _, txType := range types {
		for _, qty := range []int64{0, -3} {
			_, err := r.Record(RecordInput{
				Type:         txType,
				Quantity:     qty,
				UnitPrice:    dec("4.99"),
				Counterparty: "Jane",
			})
			if !errors.Is(err, ErrInvalidQuantity) {
				t.Errorf("%s with quantity %d: expected ErrInvalidQuantity, got %v", txType, qty, err)
			}
		}
	}

	if _, err := r.Record(RecordInput{Type: domain.StockAdjust, AdjustmentDelta: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("stock_adjust with zero delta: expected ErrInvalidQuantity, got %v", err)
	}
}

func TestRecordRejectsMissingPrice(t *testing.T) {
	r := testRecorder()

	types := []domain.TransactionType{domain.CashSale, domain.CreditSale, domain.CreditBuy, domain.Return}
	for _, txType := range types {
		for _, price := range []decimal.Decimal{decimal.Zero, dec("-1.50")} {
			_, err := r.Record(RecordInput{
				Type:         txType,
				Quantity:     1,
				UnitPrice:    price,
				Counterparty: "Jane",
			})
			if !errors.Is(err, ErrInvalidPrice) {
				t.Errorf("%s with price %s: expected ErrInvalidPrice, got %v", txType, price, err)
			}
		}
	}
}

func TestRecordStockAdjustNeedsNoPrice(t *testing.T) {
	r := testRecorder()

	tx, err := r.Record(RecordInput{Type: domain.StockAdjust, AdjustmentDelta: 5})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if !tx.Total.IsZero() {
		t.Errorf("expected zero total, got %s", tx.Total)
	}
	if tx.Quantity != 5 || tx.StockDelta != 5 {
		t.Errorf("expected quantity 5 and delta 5, got %d and %d", tx.Quantity, tx.StockDelta)
	}
}

func TestRecordNegativeAdjustment(t *testing.T) {
	r := testRecorder()

	tx, err := r.Record(RecordInput{Type: domain.StockAdjust, AdjustmentDelta: -3})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if tx.Quantity != 3 {
		t.Errorf("expected quantity 3 (magnitude), got %d", tx.Quantity)
	}
	if tx.StockDelta != -3 {
		t.Errorf("expected delta -3, got %d", tx.StockDelta)
	}
}

func TestRecordCounterpartyRules(t *testing.T) {
	r := testRecorder()

	needsName := []domain.TransactionType{domain.CreditSale, domain.CreditBuy, domain.Return}
	for _, txType := range needsName {
		for _, name := range []string{"", "   "} {
			_, err := r.Record(RecordInput{
				Type:         txType,
				Quantity:     1,
				UnitPrice:    dec("4.99"),
				Counterparty: name,
			})
			if !errors.Is(err, ErrMissingCounterparty) {
				t.Errorf("%s with counterparty %q: expected ErrMissingCounterparty, got %v", txType, name, err)
			}
		}

		tx, err := r.Record(RecordInput{
			Type:         txType,
			Quantity:     1,
			UnitPrice:    dec("4.99"),
			Counterparty: " Jane ",
		})
		if err != nil {
			t.Fatalf("%s with counterparty: expected success, got %v", txType, err)
		}
		if tx.Counterparty != "Jane" {
			t.Errorf("expected trimmed counterparty, got %q", tx.Counterparty)
		}
	}

	// Cash sales have no counterparty; any supplied name is dropped.
	tx, err := r.Record(RecordInput{
		Type:         domain.CashSale,
		Quantity:     1,
		UnitPrice:    dec("4.99"),
		Counterparty: "Jane",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if tx.Counterparty != "" {
		t.Errorf("expected empty counterparty for cash sale, got %q", tx.Counterparty)
	}
}

func TestRecordStockDeltaSigns(t *testing.T) {
	r := testRecorder()

	cases := []struct {
		txType domain.TransactionType
		want   int64
	}{
		{domain.CashSale, -5},
		{domain.CreditSale, -5},
		{domain.CreditBuy, 5},
		{domain.Return, 5},
	}
	for _, c := range cases {
		tx, err := r.Record(RecordInput{
			Type:         c.txType,
			Quantity:     5,
			UnitPrice:    dec("2.00"),
			Counterparty: "Jane",
		})
		if err != nil {
			t.Fatalf("%s: expected success, got %v", c.txType, err)
		}
		if tx.StockDelta != c.want {
			t.Errorf("%s: expected stock delta %d, got %d", c.txType, c.want, tx.StockDelta)
		}
	}
}

func TestRecordValidationOrder(t *testing.T) {
	r := testRecorder()

	// Everything is wrong: quantity fails first.
	_, err := r.Record(RecordInput{Type: domain.CreditSale, Quantity: 0})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity first, got %v", err)
	}

	// Quantity valid, price and counterparty missing: price fails next.
	_, err = r.Record(RecordInput{Type: domain.CreditSale, Quantity: 1})
	if !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice before counterparty check, got %v", err)
	}
}

func TestRecordUnknownType(t *testing.T) {
	r := testRecorder()

	_, err := r.Record(RecordInput{Type: "refund", Quantity: 1, UnitPrice: dec("1.00")})
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}
