package pricing

import (
	"testing"
	"time"

	"github.com/atolye-store/internal/constants"
	"github.com/atolye-store/internal/models"

	"github.com/shopspring/decimal"
)

func money(v string) models.Money {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return models.NewMoneyFromDecimal(d)
}

func moneyPtr(v string) *models.Money {
	m := money(v)
	return &m
}

func TestResolveUnitPriceBaseAndOverride(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	product := &models.Product{PriceAmount: money("100.00")}

	got := ResolveUnitPrice(product, &models.ProductSize{}, now)
	if got.String() != "100.00" {
		t.Fatalf("base price = %s, want 100.00", got.String())
	}

	size := &models.ProductSize{PriceOverride: moneyPtr("80.00")}
	got = ResolveUnitPrice(product, size, now)
	if got.String() != "80.00" {
		t.Fatalf("override price = %s, want 80.00", got.String())
	}
}

func TestResolveUnitPriceCampaignWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	product := &models.Product{PriceAmount: money("200.00")}
	size := &models.ProductSize{
		Campaign: &models.Campaign{
			DiscountPercent: money("25"),
			StartsAt:        start,
			EndsAt:          end,
			IsActive:        true,
		},
	}

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"before window", start.Add(-time.Second), "200.00"},
		{"at start", start, "150.00"},
		{"inside window", start.Add(48 * time.Hour), "150.00"},
		{"at end", end, "200.00"},
		{"after window", end.Add(time.Second), "200.00"},
	}
	for _, tc := range cases {
		got := ResolveUnitPrice(product, size, tc.now)
		if got.String() != tc.want {
			t.Fatalf("%s: price = %s, want %s", tc.name, got.String(), tc.want)
		}
	}
}

func TestResolveUnitPriceInactiveCampaign(t *testing.T) {
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	product := &models.Product{PriceAmount: money("200.00")}
	size := &models.ProductSize{
		Campaign: &models.Campaign{
			DiscountPercent: money("25"),
			StartsAt:        now.Add(-time.Hour),
			EndsAt:          now.Add(time.Hour),
			IsActive:        false,
		},
	}
	if got := ResolveUnitPrice(product, size, now); got.String() != "200.00" {
		t.Fatalf("inactive campaign price = %s, want 200.00", got.String())
	}
}

func TestResolveUnitPriceClampZero(t *testing.T) {
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	product := &models.Product{PriceAmount: money("50.00")}
	size := &models.ProductSize{
		Campaign: &models.Campaign{
			DiscountPercent: money("150"),
			StartsAt:        now.Add(-time.Hour),
			EndsAt:          now.Add(time.Hour),
			IsActive:        true,
		},
	}
	if got := ResolveUnitPrice(product, size, now); !got.IsZero() {
		t.Fatalf("over-discounted price = %s, want 0", got.String())
	}
}

func TestResolveUnitPriceCampaignOnOverride(t *testing.T) {
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	product := &models.Product{PriceAmount: money("100.00")}
	size := &models.ProductSize{
		PriceOverride: moneyPtr("80.00"),
		Campaign: &models.Campaign{
			DiscountPercent: money("10"),
			StartsAt:        now.Add(-time.Hour),
			EndsAt:          now.Add(time.Hour),
			IsActive:        true,
		},
	}
	if got := ResolveUnitPrice(product, size, now); got.String() != "72.00" {
		t.Fatalf("campaign on override = %s, want 72.00", got.String())
	}
}

func TestCouponValidAt(t *testing.T) {
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	base := models.Coupon{
		Type:     constants.DiscountTypeFixed,
		Value:    money("10"),
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
		IsActive: true,
	}

	valid := base
	if !CouponValidAt(&valid, now) {
		t.Fatalf("expected coupon valid")
	}

	expired := base
	expired.EndsAt = now
	if CouponValidAt(&expired, now) {
		t.Fatalf("coupon at end time should be invalid")
	}

	disabled := base
	disabled.IsActive = false
	if CouponValidAt(&disabled, now) {
		t.Fatalf("disabled coupon should be invalid")
	}

	exhausted := base
	exhausted.UsageLimit = 3
	exhausted.UsedCount = 3
	if CouponValidAt(&exhausted, now) {
		t.Fatalf("exhausted coupon should be invalid")
	}

	unlimited := base
	unlimited.UsageLimit = 0
	unlimited.UsedCount = 9999
	if !CouponValidAt(&unlimited, now) {
		t.Fatalf("usage_limit 0 should never exhaust")
	}
}

func TestCouponDiscount(t *testing.T) {
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	subtotal := decimal.NewFromInt(100)

	fixed := &models.Coupon{
		Type:     constants.DiscountTypeFixed,
		Value:    money("30"),
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
		IsActive: true,
	}
	if got := CouponDiscount(fixed, subtotal, now); got.String() != "30" {
		t.Fatalf("fixed discount = %s, want 30", got.String())
	}

	percent := &models.Coupon{
		Type:     constants.DiscountTypePercent,
		Value:    money("15"),
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
		IsActive: true,
	}
	if got := CouponDiscount(percent, subtotal, now); got.String() != "15" {
		t.Fatalf("percent discount = %s, want 15", got.String())
	}

	huge := &models.Coupon{
		Type:     constants.DiscountTypeFixed,
		Value:    money("500"),
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
		IsActive: true,
	}
	if got := CouponDiscount(huge, subtotal, now); got.String() != "100.00" {
		t.Fatalf("discount above subtotal = %s, want 100 (clamped)", got.String())
	}
	if got := ApplyCoupon(huge, subtotal, now); !got.IsZero() {
		t.Fatalf("total after oversized coupon = %s, want 0", got.String())
	}

	expired := &models.Coupon{
		Type:     constants.DiscountTypeFixed,
		Value:    money("30"),
		StartsAt: now.Add(-2 * time.Hour),
		EndsAt:   now.Add(-time.Hour),
		IsActive: true,
	}
	if got := CouponDiscount(expired, subtotal, now); !got.IsZero() {
		t.Fatalf("expired coupon discount = %s, want 0", got.String())
	}
}
