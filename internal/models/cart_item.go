package models

import "time"

// CartItem 购物车项
// 行唯一键为 (cart, product, size, color)：重复加购累加数量而不是新增行
// 物理删除，软删恢复会和行唯一索引冲突导致重加购失败
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                 // 主键
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_line" json:"cart_id"`    // 购物车ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_line" json:"product_id"` // 商品ID
	SizeID    uint      `gorm:"not null;uniqueIndex:idx_cart_line" json:"size_id"`    // 尺码ID
	ColorID   *uint     `gorm:"uniqueIndex:idx_cart_line" json:"color_id,omitempty"`  // 颜色ID（可为空）
	Quantity  int       `gorm:"not null" json:"quantity"`                             // 数量（≥1）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                              // 更新时间

	Product *Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
	Size    *ProductSize  `gorm:"foreignKey:SizeID" json:"size,omitempty"`       // 关联尺码
	Color   *ProductColor `gorm:"foreignKey:ColorID" json:"color,omitempty"`     // 关联颜色
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
