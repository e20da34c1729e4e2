package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page          int
	PageSize      int
	CategoryID    uint
	Search        string
	OnlyVisible   bool
	OnlyAvailable bool
	WithDetails   bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
}

// CouponUsageListFilter 查询优惠券使用记录列表的过滤条件
type CouponUsageListFilter struct {
	Page     int
	PageSize int
	UserID   uint
}

// FavoriteListFilter 查询收藏列表的过滤条件
type FavoriteListFilter struct {
	Page     int
	PageSize int
	UserID   uint
}
