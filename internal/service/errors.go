package service

import (
	"errors"
	"fmt"
)

// 服务层业务语义错误，处理器按 errors.Is 映射到响应码
var (
	ErrInvalidInput       = errors.New("输入参数非法")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserDisabled       = errors.New("用户已禁用")
	ErrEmailTaken         = errors.New("邮箱已注册")
	ErrPasswordIncorrect  = errors.New("密码错误")
	ErrPasswordTooWeak    = errors.New("密码强度不足")
	ErrCategoryNotFound   = errors.New("分类不存在")
	ErrProductNotFound    = errors.New("商品不存在")
	ErrProductUnavailable = errors.New("商品不可售")
	ErrVariantNotFound    = errors.New("尺码不存在")
	ErrColorNotFound      = errors.New("颜色不存在")
	ErrInsufficientStock  = errors.New("库存不足")
	ErrCouponNotFound     = errors.New("优惠券不存在")
	ErrCouponInvalid      = errors.New("优惠券不可用")
	ErrCartItemNotFound   = errors.New("购物车项不存在")
	ErrCartEmpty          = errors.New("购物车为空")
	ErrOrderNotFound      = errors.New("订单不存在")
	ErrOrderStatusInvalid = errors.New("订单状态流转非法")
)

// StockError 库存不足错误，携带当前可售数量
type StockError struct {
	SizeID    uint
	Requested int
	Available int
}

// Error 实现 error 接口
func (e *StockError) Error() string {
	return fmt.Sprintf("库存不足: size=%d requested=%d available=%d", e.SizeID, e.Requested, e.Available)
}

// Is 使 errors.Is(err, ErrInsufficientStock) 成立
func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
