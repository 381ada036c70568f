package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartDTO struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	Version   uint          `json:"version"`
	UpdatedAt time.Time     `json:"updated_at"`
	Items     []CartItemDTO `json:"items"`
}

type CartItemDTO struct {
	ID        uint            `json:"id"`
	CartID    uint            `json:"cart_id"`
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// AddProductDTO 加入商品的請求內容，price由server端以catalog快照決定
type AddProductDTO struct {
	CartID    uint   `json:"cart_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityDTO struct {
	ID       uint `json:"id"`
	Quantity int  `json:"quantity"`
}

type RowsAffectedDTO struct {
	RowsAffected int64 `json:"rows_affected"`
}

type CartTotalDTO struct {
	CartID uint            `json:"cart_id"`
	UserID uint            `json:"user_id"`
	Total  decimal.Decimal `json:"total"`
}

type PublishAbandonedDTO struct {
	Threshold time.Time `json:"threshold"`
}

type PublishAbandonedResultDTO struct {
	Published int `json:"published"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
