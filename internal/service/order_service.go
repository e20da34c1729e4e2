package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/atolye-store/internal/constants"
	"github.com/atolye-store/internal/i18n"
	"github.com/atolye-store/internal/logger"
	"github.com/atolye-store/internal/models"
	"github.com/atolye-store/internal/pricing"
	"github.com/atolye-store/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderNotifier 订单异步通知接口，队列关闭时传 nil
type OrderNotifier interface {
	EnqueueOrderConfirmation(orderID uint, orderNo, email string) error
}

// 订单状态机，键为当前状态，值为允许迁入的状态集合
var allowedTransitions = map[string][]string{
	constants.OrderStatusPending:   {constants.OrderStatusPaid, constants.OrderStatusCancelled},
	constants.OrderStatusPaid:      {constants.OrderStatusShipped, constants.OrderStatusCancelled},
	constants.OrderStatusShipped:   {constants.OrderStatusDelivered},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCancelled: {},
}

// canTransition 判断订单状态迁移是否合法
func canTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[strings.ToLower(strings.TrimSpace(from))] {
		if allowed == strings.ToLower(strings.TrimSpace(to)) {
			return true
		}
	}
	return false
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	couponRepo  repository.CouponRepository
	usageRepo   repository.CouponUsageRepository
	userRepo    repository.UserRepository
	notifier    OrderNotifier
	now         func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	usageRepo repository.CouponUsageRepository,
	userRepo repository.UserRepository,
	notifier OrderNotifier,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		usageRepo:   usageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

// WithClock 替换时钟，测试用
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	if now != nil {
		s.now = now
	}
	return s
}

// Checkout 结算活跃购物车为订单
// 单事务完成：锁购物车与尺码行、校验库存、定价快照、
// 优惠券消耗、写订单与订单项、标记购物车已结算。
// 任一环节失败整体回滚，订单与券计数不留残留
func (s *OrderService) Checkout(userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	now := s.now()
	var order *models.Order

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		cart, txErr := cartRepo.GetActiveByUser(userID, true)
		if txErr != nil {
			return txErr
		}
		if cart == nil {
			return ErrCartEmpty
		}
		items, txErr := cartRepo.ListItems(cart.ID)
		if txErr != nil {
			return txErr
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		subtotal := decimal.Zero
		currency := constants.DefaultCurrency
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			// 持行锁重读尺码，取结算时点的库存与价格
			size, sizeErr := productRepo.GetSizeByID(item.SizeID, true)
			if sizeErr != nil {
				return sizeErr
			}
			if size == nil {
				return ErrVariantNotFound
			}
			product := size.Product
			if product == nil || !product.IsAvailable {
				return ErrProductUnavailable
			}
			// 库存为结算时点校验，不扣减不预占
			if size.Stock < item.Quantity {
				return &StockError{SizeID: size.ID, Requested: item.Quantity, Available: size.Stock}
			}

			unitPrice := pricing.ResolveUnitPrice(product, size, now)
			lineTotal := unitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
			subtotal = subtotal.Add(lineTotal)
			if product.PriceCurrency != "" {
				currency = product.PriceCurrency
			}

			productID := product.ID
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   &productID,
				ProductName: product.NameJSON.Text(i18n.DefaultLocale),
				SizeValue:   size.SizeValue,
				UnitPrice:   unitPrice,
				Quantity:    item.Quantity,
				TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
			})
		}

		discount := decimal.Zero
		var appliedCoupon *models.Coupon
		if cart.CouponID != nil {
			couponRepo := s.couponRepo.WithTx(tx)
			coupon, couponErr := couponRepo.GetByID(*cart.CouponID)
			if couponErr != nil {
				return couponErr
			}
			// 结算时刻重新校验；失效的券静默失去效果而不是阻断结算
			if coupon != nil && pricing.CouponValidAt(coupon, now) {
				discount = pricing.CouponDiscount(coupon, subtotal, now)
				appliedCoupon = coupon
			}
		}

		order = &models.Order{
			OrderNo:     generateOrderNo(),
			UserID:      userID,
			Status:      constants.OrderStatusPending,
			Currency:    currency,
			TotalAmount: models.NewMoneyFromDecimal(normalizeOrderAmount(subtotal.Sub(discount))),
		}
		// 券引用无条件留痕，失效的券只失去折扣与消耗，不抹掉引用
		if cart.CouponID != nil {
			couponID := *cart.CouponID
			order.CouponID = &couponID
		}
		if txErr = orderRepo.Create(order, orderItems); txErr != nil {
			return txErr
		}

		if appliedCoupon != nil {
			if txErr = s.usageRepo.WithTx(tx).Create(&models.CouponUsage{
				CouponID:       appliedCoupon.ID,
				UserID:         userID,
				OrderID:        order.ID,
				DiscountAmount: models.NewMoneyFromDecimal(discount),
			}); txErr != nil {
				return txErr
			}
			if txErr = s.couponRepo.WithTx(tx).IncrementUsedCount(appliedCoupon.ID, 1); txErr != nil {
				return txErr
			}
		}

		return cartRepo.MarkCompleted(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyOrderCreated(order)

	return s.orderRepo.GetByID(order.ID)
}

// notifyOrderCreated 提交后尽力投递确认任务，失败只记日志不影响订单
func (s *OrderService) notifyOrderCreated(order *models.Order) {
	if s.notifier == nil || order == nil {
		return
	}
	email := ""
	if user, err := s.userRepo.GetByID(order.UserID); err == nil && user != nil {
		email = user.Email
	}
	if err := s.notifier.EnqueueOrderConfirmation(order.ID, order.OrderNo, email); err != nil {
		logger.Warnw("order_confirmation_enqueue_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
}

// UpdateStatus 迁移订单状态，非法迁移返回 ErrOrderStatusInvalid
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	if orderID == 0 || status == "" {
		return nil, ErrInvalidInput
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		order, txErr := orderRepo.GetByID(orderID)
		if txErr != nil {
			return txErr
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if !canTransition(order.Status, status) {
			return ErrOrderStatusInvalid
		}
		return orderRepo.UpdateStatus(order.ID, status)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// Cancel 用户取消订单，仅待支付订单可取消
func (s *OrderService) Cancel(userID, orderID uint) (*models.Order, error) {
	if userID == 0 || orderID == 0 {
		return nil, ErrInvalidInput
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		order, txErr := orderRepo.GetByIDAndUser(orderID, userID)
		if txErr != nil {
			return txErr
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status != constants.OrderStatusPending {
			return ErrOrderStatusInvalid
		}
		return orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByIDAndUser(orderID, userID)
}

// ListByUser 获取用户订单列表
func (s *OrderService) ListByUser(userID uint, status string, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Status:   strings.ToLower(strings.TrimSpace(status)),
		Page:     page,
		PageSize: pageSize,
	})
}

// GetByIDAndUser 获取用户订单详情
func (s *OrderService) GetByIDAndUser(orderID, userID uint) (*models.Order, error) {
	if orderID == 0 || userID == 0 {
		return nil, ErrInvalidInput
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByOrderNoAndUser 根据订单号获取用户订单详情
func (s *OrderService) GetByOrderNoAndUser(orderNo string, userID uint) (*models.Order, error) {
	if strings.TrimSpace(orderNo) == "" || userID == 0 {
		return nil, ErrInvalidInput
	}
	order, err := s.orderRepo.GetByOrderNoAndUser(strings.TrimSpace(orderNo), userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// generateOrderNo 生成订单号：AT + 时间戳 + 6 位随机数字
func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("AT%s%s", now, randPart)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}

// normalizeOrderAmount 金额保留两位并下限为 0
func normalizeOrderAmount(amount decimal.Decimal) decimal.Decimal {
	normalized := amount.Round(2)
	if normalized.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return normalized
}
