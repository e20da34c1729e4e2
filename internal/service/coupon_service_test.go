package service

import (
	"errors"
	"testing"
	"time"

	"github.com/atolye-store/internal/constants"
	"github.com/atolye-store/internal/models"
	"github.com/atolye-store/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t, "coupon_service_test")
	return NewCouponService(
		repository.NewCouponRepository(db),
		repository.NewCouponUsageRepository(db),
	), db
}

func TestCouponValidate(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	createTestCoupon(t, db, "AKTIF10", constants.DiscountTypePercent, "10", 0, now.Add(-time.Hour), now.Add(time.Hour))
	createTestCoupon(t, db, "GELECEK", constants.DiscountTypeFixed, "20.00", 0, now.Add(time.Hour), now.Add(2*time.Hour))
	exhausted := createTestCoupon(t, db, "BITTI", constants.DiscountTypeFixed, "20.00", 2, now.Add(-time.Hour), now.Add(time.Hour))
	if err := db.Model(&models.Coupon{}).Where("id = ?", exhausted.ID).Update("used_count", 2).Error; err != nil {
		t.Fatalf("exhaust coupon failed: %v", err)
	}

	coupon, err := svc.Validate("AKTIF10")
	if err != nil {
		t.Fatalf("active coupon validate failed: %v", err)
	}
	if coupon.Code != "AKTIF10" {
		t.Fatalf("code want AKTIF10 got %s", coupon.Code)
	}

	if _, err := svc.Validate("GELECEK"); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("future coupon want ErrCouponInvalid got %v", err)
	}
	if _, err := svc.Validate("BITTI"); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("exhausted coupon want ErrCouponInvalid got %v", err)
	}
	if _, err := svc.Validate("YOK"); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("unknown code want ErrCouponNotFound got %v", err)
	}
	if _, err := svc.Validate("  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank code want ErrInvalidInput got %v", err)
	}
}

func TestCouponPreviewDiscount(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	createTestCoupon(t, db, "YUZDE25", constants.DiscountTypePercent, "25", 0, now.Add(-time.Hour), now.Add(time.Hour))
	createTestCoupon(t, db, "SABIT500", constants.DiscountTypeFixed, "500.00", 0, now.Add(-time.Hour), now.Add(time.Hour))

	subtotal := models.NewMoneyFromDecimal(decimal.RequireFromString("200.00"))

	discount, _, err := svc.PreviewDiscount("YUZDE25", subtotal)
	if err != nil {
		t.Fatalf("percent preview failed: %v", err)
	}
	if discount.Decimal.StringFixed(2) != "50.00" {
		t.Fatalf("percent discount want 50.00 got %s", discount.Decimal.StringFixed(2))
	}

	// 固定减免超过小计时封顶到小计，总额不会为负
	discount, _, err = svc.PreviewDiscount("SABIT500", subtotal)
	if err != nil {
		t.Fatalf("fixed preview failed: %v", err)
	}
	if discount.Decimal.StringFixed(2) != "200.00" {
		t.Fatalf("capped discount want 200.00 got %s", discount.Decimal.StringFixed(2))
	}
}

func TestCouponListUsages(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	now := time.Now()
	coupon := createTestCoupon(t, db, "KULLANIM", constants.DiscountTypeFixed, "10.00", 0, now.Add(-time.Hour), now.Add(time.Hour))

	for i := 0; i < 3; i++ {
		usage := &models.CouponUsage{
			CouponID:       coupon.ID,
			UserID:         1,
			OrderID:        uint(i + 1),
			DiscountAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("10.00")),
		}
		if err := db.Create(usage).Error; err != nil {
			t.Fatalf("create usage failed: %v", err)
		}
	}

	usages, total, err := svc.ListUsages(1, 1, 2)
	if err != nil {
		t.Fatalf("list usages failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total want 3 got %d", total)
	}
	if len(usages) != 2 {
		t.Fatalf("page size want 2 got %d", len(usages))
	}

	if _, _, err := svc.ListUsages(0, 1, 10); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero user want ErrInvalidInput got %v", err)
	}
}
