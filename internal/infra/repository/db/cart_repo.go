package db

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db/model"
)

type CartRepoError error

// 樂觀鎖版本檢查失敗，代表有並發寫入
var ErrVersionConflict CartRepoError = errors.New("cart version conflict")

type ICartRepository interface {
	CreateCart(ctx context.Context, cart *model.Cart) error
	GetCartByID(ctx context.Context, id uint) (*model.Cart, error)
	GetCartByUserID(ctx context.Context, userID uint) (*model.Cart, error)
	GetAllCarts(ctx context.Context) ([]model.Cart, error)
	SaveCart(ctx context.Context, cart *model.Cart) error
	ClearCartItems(ctx context.Context, cartID uint) error
	GetCartsOlderThan(ctx context.Context, threshold time.Time) ([]model.Cart, error)
}

type CartRepo struct {
	dbDao *DbDao
}

func NewCartRepo(dbDao *DbDao) *CartRepo {
	return &CartRepo{dbDao: dbDao}
}

// Create - 創建購物車
func (s *CartRepo) CreateCart(ctx context.Context, cart *model.Cart) error {
	return s.dbDao.WithContext(ctx).Create(cart).Error
}

// Read - 根據ID查詢購物車，包含購物車商品
func (s *CartRepo) GetCartByID(ctx context.Context, id uint) (*model.Cart, error) {
	var cart model.Cart
	err := s.dbDao.WithContext(ctx).Preload("Items").First(&cart, "cart_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Read - 根據用戶ID查詢購物車
func (s *CartRepo) GetCartByUserID(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := s.dbDao.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Read - 查詢所有購物車
func (s *CartRepo) GetAllCarts(ctx context.Context) ([]model.Cart, error) {
	var carts []model.Cart
	err := s.dbDao.WithContext(ctx).Preload("Items").Find(&carts).Error
	return carts, err
}

// Update - 更新購物車，帶版本檢查
// 版本不符回傳ErrVersionConflict，代表被其他寫入者搶先更新
func (s *CartRepo) SaveCart(ctx context.Context, cart *model.Cart) error {
	result := s.dbDao.WithContext(ctx).Model(&model.Cart{}).
		Where("cart_id = ? AND version = ?", cart.CartID, cart.Version).
		Updates(map[string]interface{}{
			"version":    cart.Version + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	cart.Version++
	return nil
}

// Delete - 清空購物車商品，保留購物車本身
func (s *CartRepo) ClearCartItems(ctx context.Context, cartID uint) error {
	return s.dbDao.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error
}

// Read - 查詢updated_at早於threshold的購物車
func (s *CartRepo) GetCartsOlderThan(ctx context.Context, threshold time.Time) ([]model.Cart, error) {
	var carts []model.Cart
	err := s.dbDao.WithContext(ctx).Preload("Items").Where("updated_at < ?", threshold).Find(&carts).Error
	return carts, err
}

var _ ICartRepository = (*CartRepo)(nil)
