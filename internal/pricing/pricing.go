package pricing

import (
	"time"

	"github.com/atolye-store/internal/constants"
	"github.com/atolye-store/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount 折扣的标签变体（percent/fixed），活动与优惠券共用同一套应用逻辑
type Discount struct {
	Type  string
	Value decimal.Decimal
}

// PercentOff 构造百分比折扣
func PercentOff(value decimal.Decimal) Discount {
	return Discount{Type: constants.DiscountTypePercent, Value: value}
}

// FixedOff 构造固定金额折扣
func FixedOff(value decimal.Decimal) Discount {
	return Discount{Type: constants.DiscountTypeFixed, Value: value}
}

// Apply 在金额上应用折扣，结果下限为 0（折扣率 ≥100% 或减免超过金额时不出现负数）
func (d Discount) Apply(amount decimal.Decimal) decimal.Decimal {
	var result decimal.Decimal
	switch d.Type {
	case constants.DiscountTypePercent:
		result = amount.Sub(amount.Mul(d.Value).Div(hundred))
	case constants.DiscountTypeFixed:
		result = amount.Sub(d.Value)
	default:
		result = amount
	}
	if result.IsNegative() {
		return decimal.Zero
	}
	return result.Round(2)
}

// CampaignValidAt 判断活动在指定时刻是否生效
// 时间窗口为半开区间 [starts_at, ends_at)：起点时刻有效，终点时刻无效
func CampaignValidAt(campaign *models.Campaign, now time.Time) bool {
	if campaign == nil || !campaign.IsActive {
		return false
	}
	return !now.Before(campaign.StartsAt) && now.Before(campaign.EndsAt)
}

// CouponValidAt 判断优惠券在指定时刻是否可用
// 除时间窗口与启用标记外，已用次数达到上限（usage_limit>0 时）视为失效
func CouponValidAt(coupon *models.Coupon, now time.Time) bool {
	if coupon == nil || !coupon.IsActive {
		return false
	}
	if now.Before(coupon.StartsAt) || !now.Before(coupon.EndsAt) {
		return false
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return false
	}
	return true
}

// ResolveUnitPrice 计算尺码在指定时刻的实际单价
// 基准价 = 尺码覆盖价（如设置）否则商品基础价；活动生效时按百分比降价。
// 纯函数：不落库、不缓存，时间由调用方显式传入以便测试注入
func ResolveUnitPrice(product *models.Product, size *models.ProductSize, now time.Time) models.Money {
	base := decimal.Zero
	if product != nil {
		base = product.PriceAmount.Decimal
	}
	if size != nil && size.PriceOverride != nil {
		base = size.PriceOverride.Decimal
	}
	if size != nil && CampaignValidAt(size.Campaign, now) {
		base = PercentOff(size.Campaign.DiscountPercent.Decimal).Apply(base)
	}
	if base.IsNegative() {
		base = decimal.Zero
	}
	return models.NewMoneyFromDecimal(base)
}

// CouponDiscount 计算优惠券对小计的减免金额
// 失效（过期/停用/用尽）的券按零减免处理而不是报错；减免不超过小计本身
func CouponDiscount(coupon *models.Coupon, subtotal decimal.Decimal, now time.Time) decimal.Decimal {
	if !CouponValidAt(coupon, now) {
		return decimal.Zero
	}
	discounted := coupon2Discount(coupon).Apply(subtotal)
	discount := subtotal.Sub(discounted)
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount.Round(2)
}

// ApplyCoupon 计算券后总额（下限为 0）
func ApplyCoupon(coupon *models.Coupon, subtotal decimal.Decimal, now time.Time) decimal.Decimal {
	return subtotal.Sub(CouponDiscount(coupon, subtotal, now)).Round(2)
}

func coupon2Discount(coupon *models.Coupon) Discount {
	switch coupon.Type {
	case constants.DiscountTypePercent:
		return PercentOff(coupon.Value.Decimal)
	default:
		return FixedOff(coupon.Value.Decimal)
	}
}
