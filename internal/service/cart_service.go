package service

import (
	"time"

	"github.com/atolye-store/internal/constants"
	"github.com/atolye-store/internal/models"
	"github.com/atolye-store/internal/pricing"
	"github.com/atolye-store/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartLineView 购物车行视图，单价按当前时刻实时解析
type CartLineView struct {
	ItemID    uint                 `json:"item_id"`
	ProductID uint                 `json:"product_id"`
	SizeID    uint                 `json:"size_id"`
	SizeValue float64              `json:"size_value"`
	ColorID   *uint                `json:"color_id,omitempty"`
	Quantity  int                  `json:"quantity"`
	UnitPrice models.Money         `json:"unit_price"`
	LineTotal models.Money         `json:"line_total"`
	Stock     int                  `json:"stock"`
	Product   *models.Product      `json:"product,omitempty"`
	Color     *models.ProductColor `json:"color,omitempty"`
}

// CartView 购物车视图，金额每次请求重算，过期活动与券自动失去效果
type CartView struct {
	CartID   uint           `json:"cart_id"`
	Items    []CartLineView `json:"items"`
	Subtotal models.Money   `json:"subtotal"`
	Discount models.Money   `json:"discount"`
	Total    models.Money   `json:"total"`
	Currency string         `json:"currency"`
	Coupon   *models.Coupon `json:"coupon,omitempty"`
}

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	UserID    uint
	ProductID uint
	SizeID    uint
	ColorID   *uint
	Quantity  int
}

// MergeCartEntry 合并购物车条目（游客本地购物车）
type MergeCartEntry struct {
	ProductID uint  `json:"product_id"`
	SizeID    uint  `json:"size_id"`
	ColorID   *uint `json:"color_id,omitempty"`
	Quantity  int   `json:"quantity"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	couponRepo  repository.CouponRepository
	now         func() time.Time
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, couponRepo repository.CouponRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		now:         time.Now,
	}
}

// WithClock 替换时钟，测试用
func (s *CartService) WithClock(now func() time.Time) *CartService {
	if now != nil {
		s.now = now
	}
	return s
}

// GetCart 获取用户购物车视图，没有活跃购物车时创建一个空的
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	var cart *models.Cart
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		cart, txErr = s.getOrCreateActiveCart(s.cartRepo.WithTx(tx), userID, false)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return s.buildCartView(cart)
}

// AddItem 加购，同一（商品、尺码、颜色）行已存在时累加数量
func (s *CartService) AddItem(input AddCartItemInput) (*CartView, error) {
	if input.UserID == 0 || input.ProductID == 0 || input.SizeID == 0 || input.Quantity <= 0 {
		return nil, ErrInvalidInput
	}

	var cart *models.Cart
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		var txErr error
		cart, txErr = s.getOrCreateActiveCart(cartRepo, input.UserID, true)
		if txErr != nil {
			return txErr
		}

		size, txErr := productRepo.GetSizeByID(input.SizeID, false)
		if txErr != nil {
			return txErr
		}
		if size == nil || size.ProductID != input.ProductID {
			return ErrVariantNotFound
		}
		product := size.Product
		if product == nil {
			product, txErr = productRepo.GetByID(input.ProductID)
			if txErr != nil {
				return txErr
			}
		}
		if product == nil || !product.IsVisible {
			return ErrProductNotFound
		}
		if !product.IsAvailable {
			return ErrProductUnavailable
		}
		if input.ColorID != nil {
			color, txErr := productRepo.GetColorByIDAndProduct(*input.ColorID, input.ProductID)
			if txErr != nil {
				return txErr
			}
			if color == nil {
				return ErrColorNotFound
			}
		}
		// 库存校验只看本次请求数量，不与已有行累计，也不预占
		if size.Stock < input.Quantity {
			return &StockError{SizeID: size.ID, Requested: input.Quantity, Available: size.Stock}
		}

		existing, txErr := cartRepo.GetItem(cart.ID, input.ProductID, input.SizeID, input.ColorID)
		if txErr != nil {
			return txErr
		}
		if existing != nil {
			return cartRepo.UpdateItemQuantity(existing.ID, existing.Quantity+input.Quantity)
		}
		return cartRepo.CreateItem(&models.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			SizeID:    input.SizeID,
			ColorID:   input.ColorID,
			Quantity:  input.Quantity,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.buildCartView(cart)
}

// UpdateQuantity 修改购物车行数量，数量归零时删除该行
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) (*CartView, error) {
	if userID == 0 || itemID == 0 || quantity < 0 {
		return nil, ErrInvalidInput
	}

	var cart *models.Cart
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)

		var txErr error
		cart, txErr = cartRepo.GetActiveByUser(userID, true)
		if txErr != nil {
			return txErr
		}
		if cart == nil {
			return ErrCartItemNotFound
		}

		item, txErr := cartRepo.GetItemByIDAndCart(itemID, cart.ID)
		if txErr != nil {
			return txErr
		}
		if item == nil {
			return ErrCartItemNotFound
		}
		if quantity == 0 {
			return cartRepo.DeleteItem(item.ID)
		}

		size, txErr := s.productRepo.WithTx(tx).GetSizeByID(item.SizeID, false)
		if txErr != nil {
			return txErr
		}
		if size != nil && size.Stock < quantity {
			return &StockError{SizeID: size.ID, Requested: quantity, Available: size.Stock}
		}
		return cartRepo.UpdateItemQuantity(item.ID, quantity)
	})
	if err != nil {
		return nil, err
	}
	return s.buildCartView(cart)
}

// RemoveItem 删除购物车行
func (s *CartService) RemoveItem(userID, itemID uint) (*CartView, error) {
	if userID == 0 || itemID == 0 {
		return nil, ErrInvalidInput
	}

	var cart *models.Cart
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)

		var txErr error
		cart, txErr = cartRepo.GetActiveByUser(userID, true)
		if txErr != nil {
			return txErr
		}
		if cart == nil {
			return ErrCartItemNotFound
		}

		item, txErr := cartRepo.GetItemByIDAndCart(itemID, cart.ID)
		if txErr != nil {
			return txErr
		}
		if item == nil {
			return ErrCartItemNotFound
		}
		return cartRepo.DeleteItem(item.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.buildCartView(cart)
}

// ApplyCoupon 绑定优惠券到购物车
// 绑定时校验可用性，但不消耗次数，消耗发生在结算提交
func (s *CartService) ApplyCoupon(userID uint, code string) (*CartView, error) {
	if userID == 0 || code == "" {
		return nil, ErrInvalidInput
	}

	var cart *models.Cart
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)

		coupon, txErr := s.couponRepo.WithTx(tx).GetByCode(code)
		if txErr != nil {
			return txErr
		}
		if coupon == nil {
			return ErrCouponNotFound
		}
		if !pricing.CouponValidAt(coupon, s.now()) {
			return ErrCouponInvalid
		}

		cart, txErr = s.getOrCreateActiveCart(cartRepo, userID, true)
		if txErr != nil {
			return txErr
		}
		if txErr = cartRepo.SetCoupon(cart.ID, &coupon.ID); txErr != nil {
			return txErr
		}
		cart.CouponID = &coupon.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.buildCartView(cart)
}

// ClearCoupon 解绑购物车优惠券
func (s *CartService) ClearCoupon(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	var cart *models.Cart
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)

		var txErr error
		cart, txErr = s.getOrCreateActiveCart(cartRepo, userID, true)
		if txErr != nil {
			return txErr
		}
		if txErr = cartRepo.SetCoupon(cart.ID, nil); txErr != nil {
			return txErr
		}
		cart.CouponID = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.buildCartView(cart)
}

// Merge 合并本地购物车条目，逐条尽力合并，单条失败不影响其余条目
func (s *CartService) Merge(userID uint, entries []MergeCartEntry) (*CartView, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	for _, entry := range entries {
		if entry.ProductID == 0 || entry.SizeID == 0 || entry.Quantity <= 0 {
			continue
		}
		if _, err := s.AddItem(AddCartItemInput{
			UserID:    userID,
			ProductID: entry.ProductID,
			SizeID:    entry.SizeID,
			ColorID:   entry.ColorID,
			Quantity:  entry.Quantity,
		}); err != nil {
			continue
		}
	}
	return s.GetCart(userID)
}

func (s *CartService) getOrCreateActiveCart(cartRepo *repository.GormCartRepository, userID uint, forUpdate bool) (*models.Cart, error) {
	cart, err := cartRepo.GetActiveByUser(userID, forUpdate)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{UserID: userID}
	if err := cartRepo.Create(cart); err != nil {
		return nil, err
	}
	// 行锁锁不住不存在的行，首次并发创建可能各插一条
	// 创建后按最早一行重读，竞争双方收敛到同一购物车
	winner, err := cartRepo.GetActiveByUser(userID, forUpdate)
	if err != nil {
		return nil, err
	}
	if winner != nil {
		return winner, nil
	}
	return cart, nil
}

// buildCartView 构建购物车视图，金额全部按当前时刻重算
func (s *CartService) buildCartView(cart *models.Cart) (*CartView, error) {
	if cart == nil {
		return nil, ErrCartItemNotFound
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	view := &CartView{
		CartID:   cart.ID,
		Items:    make([]CartLineView, 0, len(items)),
		Currency: resolveCartCurrency(items),
	}

	subtotal := decimal.Zero
	for _, item := range items {
		unitPrice := pricing.ResolveUnitPrice(item.Product, item.Size, now)
		lineTotal := unitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		line := CartLineView{
			ItemID:    item.ID,
			ProductID: item.ProductID,
			SizeID:    item.SizeID,
			ColorID:   item.ColorID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
			Product:   item.Product,
			Color:     item.Color,
		}
		if item.Size != nil {
			line.SizeValue = item.Size.SizeValue
			line.Stock = item.Size.Stock
		}
		view.Items = append(view.Items, line)
	}

	discount := decimal.Zero
	if cart.CouponID != nil {
		coupon, err := s.couponRepo.GetByID(*cart.CouponID)
		if err != nil {
			return nil, err
		}
		if coupon != nil {
			view.Coupon = coupon
			// 失效的券显示零折扣，不在读路径报错
			discount = pricing.CouponDiscount(coupon, subtotal, now)
		}
	}

	view.Subtotal = models.NewMoneyFromDecimal(subtotal)
	view.Discount = models.NewMoneyFromDecimal(discount)
	view.Total = models.NewMoneyFromDecimal(normalizeOrderAmount(subtotal.Sub(discount)))
	return view, nil
}

func resolveCartCurrency(items []models.CartItem) string {
	for _, item := range items {
		if item.Product != nil && item.Product.PriceCurrency != "" {
			return item.Product.PriceCurrency
		}
	}
	return constants.DefaultCurrency
}
