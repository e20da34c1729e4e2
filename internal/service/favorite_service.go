package service

import (
	"github.com/atolye-store/internal/models"
	"github.com/atolye-store/internal/repository"

	"gorm.io/gorm"
)

// FavoriteService 收藏服务
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
}

// NewFavoriteService 创建收藏服务
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, productRepo repository.ProductRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

// Add 收藏商品，重复收藏不报错也不重复计数
func (s *FavoriteService) Add(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidInput
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		favoriteRepo := s.favoriteRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		product, err := productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsVisible {
			return ErrProductNotFound
		}

		existing, err := favoriteRepo.Get(userID, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		if err := favoriteRepo.Create(&models.Favorite{UserID: userID, ProductID: productID}); err != nil {
			return err
		}
		return productRepo.AdjustFavoriteCount(productID, 1)
	})
}

// Remove 取消收藏，本就未收藏时为幂等空操作
func (s *FavoriteService) Remove(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidInput
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		favoriteRepo := s.favoriteRepo.WithTx(tx)

		deleted, err := favoriteRepo.Delete(userID, productID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return nil
		}
		return s.productRepo.WithTx(tx).AdjustFavoriteCount(productID, -1)
	})
}

// ListByUser 获取用户收藏的商品 ID 列表
func (s *FavoriteService) ListByUser(userID uint, page, pageSize int) ([]models.Favorite, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.favoriteRepo.ListByUser(repository.FavoriteListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}
