package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/atolye-store/internal/http/response"
	"github.com/atolye-store/internal/service"

	"github.com/gin-gonic/gin"
)

// ValidateCoupon 校验优惠券码是否当前可用
func (h *Handler) ValidateCoupon(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	coupon, err := h.CouponService.Validate(code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			respondError(c, response.CodeNotFound, "error.coupon_not_found", nil)
		case errors.Is(err, service.ErrCouponInvalid):
			respondError(c, response.CodeBadRequest, "error.coupon_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.coupon_fetch_failed", err)
		}
		return
	}

	response.Success(c, coupon)
}

// ListCouponUsages 获取当前用户的优惠券使用记录
func (h *Handler) ListCouponUsages(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	usages, total, err := h.CouponService.ListUsages(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.coupon_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, usages, pagination)
}
