package client

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type ClientError error

var (
	ErrProductNotFound ClientError = errors.New("product not found")
	ErrUserNotFound    ClientError = errors.New("user not found")
	// 遠端服務回傳非預期狀態碼或連線失敗
	ErrExternalService ClientError = errors.New("external service failure")
)

// Product 商品快照，唯讀
// Weight 單位由catalog服務定義
type Product struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
	Weight float64         `json:"weight"`
}

// Country Tax為稅率小數，例如0.07代表7%
type Country struct {
	Name string  `json:"name"`
	Code string  `json:"code"`
	Tax  float64 `json:"tax"`
}

type User struct {
	ID      uint    `json:"id"`
	Country Country `json:"country"`
}

func defaultHttpClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}
