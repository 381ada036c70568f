package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/cartcenter/internal/infra/client"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound       = errors.New("cart not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrUserAlreadyHasCart = errors.New("user already has a cart")
	ErrInvalidQuantity    = errors.New("the quantity must be higher than 0")
	ErrInsufficientStock  = errors.New("not enough stock to add product to cart")
)

type ICartService interface {
	CreateCart(ctx context.Context, userID uint) (*model.Cart, error)
	GetCart(ctx context.Context, cartID uint) (*model.Cart, error)
	GetAllCarts(ctx context.Context) ([]model.Cart, error)
	ClearCart(ctx context.Context, cartID uint) error
	AddProductToCart(ctx context.Context, item *model.CartItem) error
	GetCartTotal(ctx context.Context, cartID, userID uint) (decimal.Decimal, error)
	IdentifyAbandonedCarts(ctx context.Context, threshold time.Time) ([]model.Cart, error)
}

type CartService struct {
	cartRepo db.ICartRepository
	itemRepo db.ICartItemRepository
	catalog  client.IProductClient
	account  client.IUserClient
}

func NewCartService(cartRepo db.ICartRepository, itemRepo db.ICartItemRepository, catalog client.IProductClient, account client.IUserClient) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
		catalog:  catalog,
		account:  account,
	}
}

// 一個user只能有一個購物車
func (s *CartService) CreateCart(ctx context.Context, userID uint) (*model.Cart, error) {
	_, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err == nil {
		return nil, fmt.Errorf("%w: user %d", ErrUserAlreadyHasCart, userID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart := &model.Cart{
		UserID: userID,
		Items:  []model.CartItem{},
	}
	if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) GetCart(ctx context.Context, cartID uint) (*model.Cart, error) {
	cart, err := s.cartRepo.GetCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrCartNotFound, cartID)
		}
		return nil, err
	}
	return cart, nil
}

func (s *CartService) GetAllCarts(ctx context.Context) ([]model.Cart, error) {
	return s.cartRepo.GetAllCarts(ctx)
}

// ClearCart 清空購物車商品，購物車本身保留
func (s *CartService) ClearCart(ctx context.Context, cartID uint) error {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return err
	}

	if err := s.cartRepo.ClearCartItems(ctx, cartID); err != nil {
		return err
	}
	// 刷新updated_at，清空也算一次異動
	return s.cartRepo.SaveCart(ctx, cart)
}

// AddProductToCart 加入商品到購物車
// 先檢查庫存，再檢查購物車存在，兩者都通過才寫入
// 不合併同商品的既有項目，每次加入都是新的一筆
func (s *CartService) AddProductToCart(ctx context.Context, item *model.CartItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, err := s.catalog.GetProductByID(ctx, item.ProductID)
	if err != nil {
		return err
	}

	if item.Quantity > product.Stock {
		return fmt.Errorf("%w. Desired amount: %d. Actual stock: %d", ErrInsufficientStock, item.Quantity, product.Stock)
	}

	cart, err := s.GetCart(ctx, item.CartID)
	if err != nil {
		return err
	}

	// 單價以加入當下的catalog快照為準
	item.Price = product.Price

	if err := s.itemRepo.CreateCartItem(ctx, item); err != nil {
		return err
	}
	return s.cartRepo.SaveCart(ctx, cart)
}

/*
GetCartTotal 計算購物車總金額

	subtotal = Σ(單價 × 數量)
	tax      = subtotal × 用戶所在國稅率
	total    = subtotal + tax + 重量運費，四捨五入到小數兩位

單價取自購物車項目（加入當下的快照），重量每個項目都要再查一次catalog
*/
func (s *CartService) GetCartTotal(ctx context.Context, cartID, userID uint) (decimal.Decimal, error) {
	user, err := s.account.GetUserByID(ctx, userID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	subtotal := decimal.NewFromInt(0)
	totalWeight := 0.0
	for _, item := range cart.Items {
		product, err := s.catalog.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return decimal.Decimal{}, err
		}
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		totalWeight += float64(item.Quantity) * product.Weight
	}

	weightCost := CalculateWeightCost(totalWeight)
	tax := subtotal.Mul(decimal.NewFromFloat(user.Country.Tax))

	return subtotal.Add(tax).Add(weightCost).Round(2), nil
}

// CalculateWeightCost 重量運費級距
//
//	w <= 5        -> 5
//	5 < w <= 10   -> 10
//	10 < w <= 20  -> 20
//	w > 20        -> 2 × w
func CalculateWeightCost(totalWeight float64) decimal.Decimal {
	switch {
	case totalWeight <= 5:
		return decimal.NewFromInt(5)
	case totalWeight <= 10:
		return decimal.NewFromInt(10)
	case totalWeight <= 20:
		return decimal.NewFromInt(20)
	default:
		return decimal.NewFromFloat(totalWeight).Mul(decimal.NewFromInt(2))
	}
}

// IdentifyAbandonedCarts 回傳updated_at早於threshold的購物車
func (s *CartService) IdentifyAbandonedCarts(ctx context.Context, threshold time.Time) ([]model.Cart, error) {
	return s.cartRepo.GetCartsOlderThan(ctx, threshold)
}

var _ ICartService = (*CartService)(nil)
