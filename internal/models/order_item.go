package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
// 商品名、尺码、单价为下单瞬间的快照字段，刻意冗余存储：
// 之后商品/尺码/活动的任何变更都不影响历史订单数据。
// product_id 为弱引用，商品删除后置空，快照字段仍然权威
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID     uint           `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ProductID   *uint          `gorm:"index" json:"product_id,omitempty"`                        // 商品ID（弱引用，可为空）
	ProductName string         `gorm:"type:varchar(200);not null" json:"product_name"`           // 商品名快照
	SizeValue   float64        `gorm:"not null" json:"size_value"`                               // 尺码数值快照
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价快照（券前价格）
	Quantity    int            `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
