package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车表
// 每个用户同一时刻至多一个活跃（is_completed=false）购物车，
// 该约束由购物车服务在行锁事务内 get-or-create 保证，不做模式级唯一约束，
// 以便历史已结算购物车可以共存
type Cart struct {
	ID          uint           `gorm:"primarykey" json:"id"`                       // 主键
	UserID      uint           `gorm:"not null;index" json:"user_id"`              // 用户ID
	CouponID    *uint          `gorm:"index" json:"coupon_id,omitempty"`           // 优惠券ID（共享引用，可为空）
	IsCompleted bool           `gorm:"not null;default:false;index" json:"is_completed"` // 是否已结算（终态）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                 // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间

	Items  []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`  // 购物车项（按加入顺序）
	Coupon *Coupon    `gorm:"foreignKey:CouponID" json:"coupon,omitempty"` // 关联优惠券
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
