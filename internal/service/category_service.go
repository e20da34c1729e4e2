package service

import (
	"context"
	"time"

	"github.com/atolye-store/internal/cache"
	"github.com/atolye-store/internal/config"
	"github.com/atolye-store/internal/logger"
	"github.com/atolye-store/internal/models"
	"github.com/atolye-store/internal/repository"
)

const categoryCacheKey = "catalog:categories"

// CategoryView 分类视图
type CategoryView struct {
	ID        uint   `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	cacheTTL     time.Duration
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, catalogCfg config.CatalogConfig) *CategoryService {
	ttl := time.Duration(catalogCfg.CategoryCacheTTLSec) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CategoryService{
		categoryRepo: categoryRepo,
		cacheTTL:     ttl,
	}
}

// List 分类列表，分类变化低频，结果走 Redis 缓存
func (s *CategoryService) List(locale string) ([]CategoryView, error) {
	ctx := context.Background()

	var categories []models.Category
	hit, err := cache.GetJSON(ctx, categoryCacheKey, &categories)
	if err != nil {
		logger.Warnw("category_cache_read_failed", "error", err)
	}
	if !hit {
		categories, err = s.categoryRepo.List()
		if err != nil {
			return nil, err
		}
		if cacheErr := cache.SetJSON(ctx, categoryCacheKey, categories, s.cacheTTL); cacheErr != nil {
			logger.Warnw("category_cache_write_failed", "error", cacheErr)
		}
	}

	views := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, CategoryView{
			ID:        category.ID,
			Slug:      category.Slug,
			Name:      category.NameJSON.Text(locale),
			SortOrder: category.SortOrder,
		})
	}
	return views, nil
}

// GetBySlug 根据 slug 获取分类
func (s *CategoryService) GetBySlug(slug, locale string) (*CategoryView, error) {
	if slug == "" {
		return nil, ErrInvalidInput
	}
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return &CategoryView{
		ID:        category.ID,
		Slug:      category.Slug,
		Name:      category.NameJSON.Text(locale),
		SortOrder: category.SortOrder,
	}, nil
}

// InvalidateCache 清除分类缓存
func (s *CategoryService) InvalidateCache() {
	if err := cache.Del(context.Background(), categoryCacheKey); err != nil {
		logger.Warnw("category_cache_del_failed", "error", err)
	}
}
