package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign 限时活动（按百分比降价，可被多个尺码共享）
// 有效性依赖当前时间，必须在每次取价时重算，禁止缓存
type Campaign struct {
	ID              uint           `gorm:"primarykey" json:"id"`                            // 主键
	Name            string         `gorm:"not null" json:"name"`                            // 活动名称
	DiscountPercent Money          `gorm:"type:decimal(20,2);not null" json:"discount_percent"` // 折扣百分比（0-100）
	StartsAt        time.Time      `gorm:"index;not null" json:"starts_at"`                 // 生效时间（含）
	EndsAt          time.Time      `gorm:"index;not null" json:"ends_at"`                   // 失效时间（不含）
	IsActive        bool           `gorm:"not null;default:true" json:"is_active"`          // 是否启用
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                      // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间
}

// TableName 指定表名
func (Campaign) TableName() string {
	return "campaigns"
}
