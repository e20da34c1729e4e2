package repository

import (
	"errors"

	"github.com/atolye-store/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetActiveByUser(userID uint, forUpdate bool) (*models.Cart, error)
	Create(cart *models.Cart) error
	ListItems(cartID uint) ([]models.CartItem, error)
	GetItem(cartID, productID, sizeID uint, colorID *uint) (*models.CartItem, error)
	GetItemByIDAndCart(itemID, cartID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	DeleteItem(itemID uint) error
	SetCoupon(cartID uint, couponID *uint) error
	MarkCompleted(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetActiveByUser 获取用户的活跃购物车
// forUpdate 为真时加行锁，写路径必须在事务内持锁串行化并发修改
// 并发竞态产生多条活跃车时固定返回最早一行，所有请求收敛到同一购物车
func (r *GormCartRepository) GetActiveByUser(userID uint, forUpdate bool) (*models.Cart, error) {
	query := r.db.Where("user_id = ? AND is_completed = ?", userID, false)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var cart models.Cart
	if err := query.Order("id asc").First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// ListItems 获取购物车项，按加入顺序返回
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.
		Preload("Product").
		Preload("Size").
		Preload("Size.Campaign").
		Preload("Color").
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 按行唯一键（购物车、商品、尺码、颜色）获取购物车项
func (r *GormCartRepository) GetItem(cartID, productID, sizeID uint, colorID *uint) (*models.CartItem, error) {
	query := r.db.Where("cart_id = ? AND product_id = ? AND size_id = ?", cartID, productID, sizeID)
	if colorID != nil {
		query = query.Where("color_id = ?", *colorID)
	} else {
		query = query.Where("color_id IS NULL")
	}
	var item models.CartItem
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemByIDAndCart 获取指定购物车下的购物车项
func (r *GormCartRepository) GetItemByIDAndCart(itemID, cartID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItemQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("id = ?", itemID).
		UpdateColumn("quantity", quantity).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

// SetCoupon 设置或清除购物车优惠券
func (r *GormCartRepository) SetCoupon(cartID uint, couponID *uint) error {
	return r.db.Model(&models.Cart{}).
		Where("id = ?", cartID).
		UpdateColumn("coupon_id", couponID).Error
}

// MarkCompleted 标记购物车已结算（终态，不可回退）
func (r *GormCartRepository) MarkCompleted(cartID uint) error {
	return r.db.Model(&models.Cart{}).
		Where("id = ?", cartID).
		UpdateColumn("is_completed", true).Error
}
