package service

import (
	"strings"
	"time"

	"github.com/atolye-store/internal/config"
	"github.com/atolye-store/internal/logger"
	"github.com/atolye-store/internal/models"
	"github.com/atolye-store/internal/pricing"
	"github.com/atolye-store/internal/repository"
)

// SizeView 尺码视图，价格为当前时刻实际单价
type SizeView struct {
	ID         uint             `json:"id"`
	SizeValue  float64          `json:"size_value"`
	Stock      int              `json:"stock"`
	Price      models.Money     `json:"price"`
	BasePrice  models.Money     `json:"base_price"`
	OnCampaign bool             `json:"on_campaign"`
	Campaign   *models.Campaign `json:"campaign,omitempty"`
}

// ProductView 商品视图，文案按请求语言解析
type ProductView struct {
	ID            uint                  `json:"id"`
	Slug          string                `json:"slug"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	CategoryID    uint                  `json:"category_id"`
	CategoryName  string                `json:"category_name"`
	Price         models.Money          `json:"price"`
	Currency      string                `json:"currency"`
	IsAvailable   bool                  `json:"is_available"`
	LowStock      bool                  `json:"low_stock"`
	ViewCount     uint                  `json:"view_count"`
	FavoriteCount uint                  `json:"favorite_count"`
	Sizes         []SizeView            `json:"sizes"`
	Colors        []models.ProductColor `json:"colors"`
	Images        []models.ProductImage `json:"images"`
}

// ProductListInput 商品列表查询输入
type ProductListInput struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
	Locale     string
}

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	catalogCfg   config.CatalogConfig
	now          func() time.Time
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, catalogCfg config.CatalogConfig) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		catalogCfg:   catalogCfg,
		now:          time.Now,
	}
}

// WithClock 替换时钟，测试用
func (s *ProductService) WithClock(now func() time.Time) *ProductService {
	if now != nil {
		s.now = now
	}
	return s
}

// List 商品列表，只返回可见商品
func (s *ProductService) List(input ProductListInput) ([]ProductView, int64, error) {
	page, pageSize := s.clampPage(input.Page, input.PageSize)
	products, total, err := s.productRepo.List(repository.ProductListFilter{
		Page:        page,
		PageSize:    pageSize,
		CategoryID:  input.CategoryID,
		Search:      strings.TrimSpace(input.Search),
		OnlyVisible: true,
		WithDetails: true,
	})
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, s.buildView(&products[i], input.Locale, now))
	}
	return views, total, nil
}

// GetBySlug 商品详情，访问计数失败不影响响应
func (s *ProductService) GetBySlug(slug, locale string) (*ProductView, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}
	product, err := s.productRepo.GetBySlug(trimmed, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if err := s.productRepo.IncrementViewCount(product.ID); err != nil {
		logger.Warnw("product_view_count_failed", "product_id", product.ID, "error", err)
	}

	view := s.buildView(product, locale, s.now())
	view.ViewCount++
	return &view, nil
}

// GetByID 根据 ID 获取商品详情
func (s *ProductService) GetByID(id uint, locale string) (*ProductView, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsVisible {
		return nil, ErrProductNotFound
	}
	view := s.buildView(product, locale, s.now())
	return &view, nil
}

func (s *ProductService) buildView(product *models.Product, locale string, now time.Time) ProductView {
	view := ProductView{
		ID:            product.ID,
		Slug:          product.Slug,
		Name:          product.NameJSON.Text(locale),
		Description:   product.DescriptionJSON.Text(locale),
		CategoryID:    product.CategoryID,
		Price:         product.PriceAmount,
		Currency:      product.PriceCurrency,
		IsAvailable:   product.IsAvailable,
		ViewCount:     product.ViewCount,
		FavoriteCount: product.FavoriteCount,
		Sizes:         make([]SizeView, 0, len(product.Sizes)),
		Colors:        product.Colors,
		Images:        product.Images,
	}
	if product.Category != nil {
		view.CategoryName = product.Category.NameJSON.Text(locale)
	}

	totalStock := 0
	for i := range product.Sizes {
		size := &product.Sizes[i]
		basePrice := product.PriceAmount
		if size.PriceOverride != nil {
			basePrice = *size.PriceOverride
		}
		sizeView := SizeView{
			ID:        size.ID,
			SizeValue: size.SizeValue,
			Stock:     size.Stock,
			Price:     pricing.ResolveUnitPrice(product, size, now),
			BasePrice: basePrice,
		}
		if pricing.CampaignValidAt(size.Campaign, now) {
			sizeView.OnCampaign = true
			sizeView.Campaign = size.Campaign
		}
		totalStock += size.Stock
		view.Sizes = append(view.Sizes, sizeView)
	}
	view.LowStock = totalStock <= product.LowStockThreshold

	return view
}

func (s *ProductService) clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	defaultSize := s.catalogCfg.DefaultPageSize
	if defaultSize <= 0 {
		defaultSize = 20
	}
	maxSize := s.catalogCfg.MaxPageSize
	if maxSize <= 0 {
		maxSize = 100
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}
