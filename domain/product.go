package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID                int64           `db:"id" json:"id"`
	UserID            int64           `db:"user_id" json:"user_id"`
	Name              string          `db:"name" json:"name"`
	Unit              string          `db:"unit" json:"unit"`
	ImageURL          *string         `db:"image_url" json:"image_url,omitempty"`
	SellingPrice      decimal.Decimal `db:"selling_price" json:"selling_price"`
	CurrentStock      int64           `db:"current_stock" json:"current_stock"`
	LowStockThreshold int64           `db:"low_stock_threshold" json:"low_stock_threshold"`
	Archived          bool            `db:"archived" json:"archived"`
	CreatedAt         string          `db:"created_at" json:"created_at"`
	UpdatedAt         string          `db:"updated_at" json:"updated_at"`
}
