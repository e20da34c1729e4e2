package repository

import (
	"errors"
	"strings"

	"github.com/atolye-store/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetBySlug(slug string, onlyVisible bool) (*models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetSizeByID(sizeID uint, forUpdate bool) (*models.ProductSize, error)
	GetColorByIDAndProduct(colorID, productID uint) (*models.ProductColor, error)
	IncrementViewCount(productID uint) error
	AdjustFavoriteCount(productID uint, delta int) error
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{}).Preload("Category")
	if filter.WithDetails {
		query = query.
			Preload("Sizes", func(db *gorm.DB) *gorm.DB {
				return db.Order("size_value ASC")
			}).
			Preload("Sizes.Campaign").
			Preload("Colors", func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			}).
			Preload("Images", func(db *gorm.DB) *gorm.DB {
				return db.Order("sort_order ASC, id ASC")
			})
	}
	if filter.OnlyVisible {
		query = query.Where("is_visible = ?", true)
	}
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildLocalizedLikeCondition(r.db, []string{"slug"}, []string{"name_json", "description_json"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order DESC, created_at DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetBySlug 根据 slug 获取商品（含尺码、颜色、图片）
func (r *GormProductRepository) GetBySlug(slug string, onlyVisible bool) (*models.Product, error) {
	query := r.preloadDetails(r.db.Preload("Category")).Where("slug = ?", slug)
	if onlyVisible {
		query = query.Where("is_visible = ?", true)
	}

	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByID 根据 ID 获取商品（含尺码、颜色、图片）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.preloadDetails(r.db.Preload("Category")).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) preloadDetails(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("size_value ASC")
		}).
		Preload("Sizes.Campaign").
		Preload("Colors", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		})
}

// GetSizeByID 获取尺码（含商品与活动）
// forUpdate 为真时对尺码行加锁，结算扣减库存前必须持锁读取
func (r *GormProductRepository) GetSizeByID(sizeID uint, forUpdate bool) (*models.ProductSize, error) {
	query := r.db.Preload("Product").Preload("Campaign")
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var size models.ProductSize
	if err := query.First(&size, sizeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &size, nil
}

// GetColorByIDAndProduct 获取指定商品下的颜色
func (r *GormProductRepository) GetColorByIDAndProduct(colorID, productID uint) (*models.ProductColor, error) {
	var color models.ProductColor
	if err := r.db.Where("id = ? AND product_id = ?", colorID, productID).First(&color).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &color, nil
}

// IncrementViewCount 增加浏览次数
func (r *GormProductRepository) IncrementViewCount(productID uint) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// AdjustFavoriteCount 调整收藏次数，结果不小于 0
func (r *GormProductRepository) AdjustFavoriteCount(productID uint, delta int) error {
	if delta >= 0 {
		return r.db.Model(&models.Product{}).
			Where("id = ?", productID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count + ?", delta)).Error
	}
	return r.db.Model(&models.Product{}).
		Where("id = ? AND favorite_count >= ?", productID, -delta).
		UpdateColumn("favorite_count", gorm.Expr("favorite_count - ?", -delta)).Error
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormProductRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
