package public

import (
	"strconv"
	"strings"

	"github.com/atolye-store/internal/http/response"
	"github.com/atolye-store/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	SizeID    uint  `json:"size_id" binding:"required"`
	ColorID   *uint `json:"color_id"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest 更新数量请求，数量为 0 表示删除该行
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ApplyCouponRequest 应用优惠券请求
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// MergeCartRequest 合并游客本地购物车请求
type MergeCartRequest struct {
	Items []service.MergeCartEntry `json:"items" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.GetCart(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}

	response.Success(c, cart)
}

// AddCartItem 加购，同一（商品、尺码、颜色）行已存在时累加数量
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:    uid,
		ProductID: req.ProductID,
		SizeID:    req.SizeID,
		ColorID:   req.ColorID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, cart)
}

// UpdateCartItem 更新购物车行数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.UpdateQuantity(uid, uint(itemID), *req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, cart)
}

// RemoveCartItem 删除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	cart, err := h.CartService.RemoveItem(uid, uint(itemID))
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, cart)
}

// ApplyCartCoupon 在购物车上应用优惠券
func (h *Handler) ApplyCartCoupon(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.ApplyCoupon(uid, strings.TrimSpace(req.Code))
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, cart)
}

// ClearCartCoupon 移除购物车上的优惠券
func (h *Handler) ClearCartCoupon(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.ClearCoupon(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, cart)
}

// MergeCart 登录后合并游客本地购物车，无效条目跳过
func (h *Handler) MergeCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req MergeCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.Merge(uid, req.Items)
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, cart)
}
