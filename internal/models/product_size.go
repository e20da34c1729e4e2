package models

import "time"

// ProductSize 商品尺码表（规格变体：独立库存 + 可选价格覆盖）
// 随商品级联物理删除，软删会和 (product, size_value) 唯一索引冲突
type ProductSize struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                                // 主键
	ProductID     uint      `gorm:"not null;index;uniqueIndex:idx_product_size_value" json:"product_id"` // 商品ID
	SizeValue     float64   `gorm:"not null;uniqueIndex:idx_product_size_value" json:"size_value"`       // 尺码数值（同商品内唯一，支持小数码制）
	Stock         int       `gorm:"not null;default:0" json:"stock"`                                     // 库存数量
	PriceOverride *Money    `gorm:"type:decimal(20,2)" json:"price_override,omitempty"`                  // 覆盖价格（为空则用商品基础价）
	CampaignID    *uint     `gorm:"index" json:"campaign_id,omitempty"`                                  // 活动ID（共享引用，可为空）
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                             // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                                          // 更新时间

	Product  *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`   // 关联商品
	Campaign *Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"` // 关联活动
}

// TableName 指定表名
func (ProductSize) TableName() string {
	return "product_sizes"
}
