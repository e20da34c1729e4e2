package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                      // 主键
	CategoryID        uint           `gorm:"not null;index" json:"category_id"`                         // 分类ID
	Slug              string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识
	NameJSON          JSON           `gorm:"type:json;not null" json:"name"`                            // 多语言名称
	DescriptionJSON   JSON           `gorm:"type:json" json:"description"`                              // 多语言描述
	PriceAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 基础价格
	PriceCurrency     string         `gorm:"type:varchar(5);not null;default:'EUR'" json:"price_currency"`
	IsVisible         bool           `gorm:"default:true;index" json:"is_visible"`      // 是否展示
	IsAvailable       bool           `gorm:"default:true;index" json:"is_available"`    // 是否可售
	LowStockThreshold int            `gorm:"not null;default:5" json:"low_stock_threshold"` // 低库存预警阈值
	ViewCount         uint           `gorm:"not null;default:0" json:"view_count"`      // 浏览次数
	FavoriteCount     uint           `gorm:"not null;default:0" json:"favorite_count"`  // 收藏次数
	SortOrder         int            `gorm:"default:0;index" json:"sort_order"`         // 排序权重
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                   // 创建时间
	UpdatedAt         time.Time      `json:"updated_at"`                                // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                            // 软删除时间

	// 关联
	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Sizes    []ProductSize  `gorm:"foreignKey:ProductID" json:"sizes,omitempty"`     // 尺码列表
	Colors   []ProductColor `gorm:"foreignKey:ProductID" json:"colors,omitempty"`    // 颜色列表
	Images   []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`    // 图片列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductColor 商品颜色表
type ProductColor struct {
	ID        uint           `gorm:"primarykey" json:"id"`                   // 主键
	ProductID uint           `gorm:"not null;index" json:"product_id"`       // 商品ID
	Name      string         `gorm:"type:varchar(50);not null" json:"name"`  // 颜色名称
	HexCode   string         `gorm:"type:varchar(7);not null" json:"hex_code"` // 色值（#RRGGBB）
	CreatedAt time.Time      `json:"created_at"`                             // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (ProductColor) TableName() string {
	return "product_colors"
}

// ProductImage 商品图片表（按 sort_order 升序展示）
type ProductImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`               // 主键
	ProductID uint           `gorm:"not null;index" json:"product_id"`   // 商品ID
	Path      string         `gorm:"type:varchar(500);not null" json:"path"` // 图片路径
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`  // 排序权重（小的在前）
	CreatedAt time.Time      `json:"created_at"`                         // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                     // 软删除时间
}

// TableName 指定表名
func (ProductImage) TableName() string {
	return "product_images"
}
