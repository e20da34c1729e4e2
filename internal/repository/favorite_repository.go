package repository

import (
	"errors"

	"github.com/atolye-store/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository 收藏数据访问接口
type FavoriteRepository interface {
	Get(userID, productID uint) (*models.Favorite, error)
	Create(favorite *models.Favorite) error
	Delete(userID, productID uint) (int64, error)
	ListByUser(filter FavoriteListFilter) ([]models.Favorite, int64, error)
	WithTx(tx *gorm.DB) *GormFavoriteRepository
}

// GormFavoriteRepository GORM 实现
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓库
func NewFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// WithTx 绑定事务
func (r *GormFavoriteRepository) WithTx(tx *gorm.DB) *GormFavoriteRepository {
	if tx == nil {
		return r
	}
	return &GormFavoriteRepository{db: tx}
}

// Get 获取收藏记录
func (r *GormFavoriteRepository) Get(userID, productID uint) (*models.Favorite, error) {
	var favorite models.Favorite
	if err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &favorite, nil
}

// Create 创建收藏记录
func (r *GormFavoriteRepository) Create(favorite *models.Favorite) error {
	return r.db.Create(favorite).Error
}

// Delete 删除收藏记录，返回删除行数
func (r *GormFavoriteRepository) Delete(userID, productID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Favorite{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListByUser 获取用户收藏列表
func (r *GormFavoriteRepository) ListByUser(filter FavoriteListFilter) ([]models.Favorite, int64, error) {
	query := r.db.Model(&models.Favorite{}).Where("user_id = ?", filter.UserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var favorites []models.Favorite
	if err := query.Order("id desc").Find(&favorites).Error; err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}
