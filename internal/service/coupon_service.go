package service

import (
	"strings"
	"time"

	"github.com/atolye-store/internal/models"
	"github.com/atolye-store/internal/pricing"
	"github.com/atolye-store/internal/repository"
)

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
	usageRepo  repository.CouponUsageRepository
	now        func() time.Time
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository, usageRepo repository.CouponUsageRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		usageRepo:  usageRepo,
		now:        time.Now,
	}
}

// WithClock 替换时钟，测试用
func (s *CouponService) WithClock(now func() time.Time) *CouponService {
	if now != nil {
		s.now = now
	}
	return s
}

// Validate 校验优惠码并返回优惠券
func (s *CouponService) Validate(code string) (*models.Coupon, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}
	coupon, err := s.couponRepo.GetByCode(trimmed)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if !pricing.CouponValidAt(coupon, s.now()) {
		return coupon, ErrCouponInvalid
	}
	return coupon, nil
}

// PreviewDiscount 预览优惠码对小计的减免，不消耗使用次数
func (s *CouponService) PreviewDiscount(code string, subtotal models.Money) (models.Money, *models.Coupon, error) {
	coupon, err := s.Validate(code)
	if err != nil {
		return models.Money{}, coupon, err
	}
	discount := pricing.CouponDiscount(coupon, subtotal.Decimal, s.now())
	return models.NewMoneyFromDecimal(discount), coupon, nil
}

// ListUsages 获取用户优惠券使用记录
func (s *CouponService) ListUsages(userID uint, page, pageSize int) ([]models.CouponUsage, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.usageRepo.ListByUser(repository.CouponUsageListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}
