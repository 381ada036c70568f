package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"null" json:"updated_at"`
}

// Cart 一個user只會有一個購物車
// Version 用於樂觀鎖，避免並發寫入互相覆蓋
type Cart struct {
	CartID  uint       `gorm:"primaryKey" json:"cart_id"`
	UserID  uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Version uint       `gorm:"not null;default:1" json:"version"`
	Items   []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	BaseModel
}

// CartItem 只用CartID參考購物車，不持有Cart實體
// Price 為加入購物車當下的單價
type CartItem struct {
	ItemID    uint            `gorm:"primaryKey" json:"item_id"`
	CartID    uint            `gorm:"not null;index" json:"cart_id"`
	ProductID string          `gorm:"not null;type:varchar(100)" json:"product_id"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	BaseModel
}
