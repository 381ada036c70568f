package db

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CartRepoTestSuite struct {
	suite.Suite
	db           *gorm.DB
	cartRepo     *CartRepo
	cartItemRepo *CartItemRepo
}

// SetupSuite 在測試套件開始前執行
func (suite *CartRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("lab_cartcenter", "localhost", "5432", "royce", "password")
	require.NoError(suite.T(), err)
	dbDao := NewDbDao(db)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = db
	suite.cartRepo = NewCartRepo(dbDao)
	suite.cartItemRepo = NewCartItemRepo(dbDao)
}

// SetupTest 在每個測試前執行
func (suite *CartRepoTestSuite) SetupTest() {
	// 清空資料表
	suite.db.Exec("DELETE FROM cart_items")
	suite.db.Exec("DELETE FROM carts")
}

// TearDownSuite 在測試套件結束後執行
func (suite *CartRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func TestCartRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepoTestSuite))
}

func (suite *CartRepoTestSuite) createTestCart(userID uint) *model.Cart {
	cart := &model.Cart{UserID: userID}
	require.NoError(suite.T(), suite.cartRepo.CreateCart(context.Background(), cart))
	return cart
}

func (suite *CartRepoTestSuite) TestCreateAndGetCart() {
	ctx := context.Background()
	cart := suite.createTestCart(1)

	got, err := suite.cartRepo.GetCartByID(ctx, cart.CartID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), uint(1), got.UserID)
	assert.Equal(suite.T(), uint(1), got.Version)
	assert.Len(suite.T(), got.Items, 0)

	got, err = suite.cartRepo.GetCartByUserID(ctx, 1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cart.CartID, got.CartID)
}

func (suite *CartRepoTestSuite) TestGetCartByID_NotFound() {
	_, err := suite.cartRepo.GetCartByID(context.Background(), 9999)
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

func (suite *CartRepoTestSuite) TestUserUniqueIndex() {
	suite.createTestCart(7)

	// 同一個user的第二台購物車要被unique index擋下
	err := suite.cartRepo.CreateCart(context.Background(), &model.Cart{UserID: 7})
	assert.Error(suite.T(), err)
}

func (suite *CartRepoTestSuite) TestSaveCart_VersionConflict() {
	ctx := context.Background()
	cart := suite.createTestCart(1)

	err := suite.cartRepo.SaveCart(ctx, cart)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), uint(2), cart.Version)

	// 模擬另一個寫入者拿著舊版本
	stale := &model.Cart{CartID: cart.CartID, Version: 1}
	err = suite.cartRepo.SaveCart(ctx, stale)
	assert.ErrorIs(suite.T(), err, ErrVersionConflict)
}

func (suite *CartRepoTestSuite) TestClearCartItems() {
	ctx := context.Background()
	cart := suite.createTestCart(1)

	item := &model.CartItem{
		CartID:    cart.CartID,
		ProductID: "p1",
		Price:     decimal.NewFromInt(100),
		Quantity:  2,
	}
	require.NoError(suite.T(), suite.cartItemRepo.CreateCartItem(ctx, item))

	err := suite.cartRepo.ClearCartItems(ctx, cart.CartID)
	assert.NoError(suite.T(), err)

	// 清空後購物車還在，商品沒了
	got, err := suite.cartRepo.GetCartByID(ctx, cart.CartID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got.Items, 0)
}

func (suite *CartRepoTestSuite) TestGetCartsOlderThan() {
	ctx := context.Background()
	oldCart := suite.createTestCart(1)
	suite.createTestCart(2)

	// 把第一台購物車的updated_at改成三天前
	suite.db.Model(&model.Cart{}).
		Where("cart_id = ?", oldCart.CartID).
		Update("updated_at", time.Now().AddDate(0, 0, -3))

	carts, err := suite.cartRepo.GetCartsOlderThan(ctx, time.Now().AddDate(0, 0, -2))
	assert.NoError(suite.T(), err)
	require.Len(suite.T(), carts, 1)
	assert.Equal(suite.T(), oldCart.CartID, carts[0].CartID)
}

func (suite *CartRepoTestSuite) TestUpdateCartItemQuantity() {
	ctx := context.Background()
	cart := suite.createTestCart(1)

	item := &model.CartItem{
		CartID:    cart.CartID,
		ProductID: "p1",
		Price:     decimal.NewFromInt(100),
		Quantity:  2,
	}
	require.NoError(suite.T(), suite.cartItemRepo.CreateCartItem(ctx, item))

	rows, err := suite.cartItemRepo.UpdateCartItemQuantity(ctx, item.ItemID, 5)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), rows)

	got, err := suite.cartItemRepo.GetCartItemByID(ctx, item.ItemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 5, got.Quantity)

	// id不存在影響0筆，不報錯
	rows, err = suite.cartItemRepo.UpdateCartItemQuantity(ctx, 9999, 5)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), rows)
}

func (suite *CartRepoTestSuite) TestDeleteCartItem() {
	ctx := context.Background()
	cart := suite.createTestCart(1)

	item := &model.CartItem{
		CartID:    cart.CartID,
		ProductID: "p1",
		Price:     decimal.NewFromInt(100),
		Quantity:  2,
	}
	require.NoError(suite.T(), suite.cartItemRepo.CreateCartItem(ctx, item))

	require.NoError(suite.T(), suite.cartItemRepo.DeleteCartItem(ctx, item.ItemID))

	_, err := suite.cartItemRepo.GetCartItemByID(ctx, item.ItemID)
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}
