package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
// 结算时一次性写入，除 status 外不可变；total 创建时算定，之后不再重算
type Order struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo     string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	UserID      uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	Status      string         `gorm:"index;not null" json:"status"`                              // 订单状态
	Currency    string         `gorm:"not null" json:"currency"`                                  // 币种
	TotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额（结算时一次算定）
	CouponID    *uint          `gorm:"index" json:"coupon_id,omitempty"`                          // 优惠券ID（仅审计留痕，不再校验）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`   // 订单项（按购物车顺序）
	Coupon *Coupon     `gorm:"foreignKey:CouponID" json:"coupon,omitempty"` // 关联优惠券
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
