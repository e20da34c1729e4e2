package public

import (
	"errors"
	"strconv"

	"github.com/atolye-store/internal/http/response"
	"github.com/atolye-store/internal/service"

	"github.com/gin-gonic/gin"
)

// AddFavorite 收藏商品，重复收藏不报错
func (h *Handler) AddFavorite(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.FavoriteService.Add(uid, uint(productID)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.favorite_failed", err)
		return
	}

	response.Success(c, gin.H{"favorited": true})
}

// RemoveFavorite 取消收藏，未收藏时静默成功
func (h *Handler) RemoveFavorite(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.FavoriteService.Remove(uid, uint(productID)); err != nil {
		respondError(c, response.CodeInternal, "error.favorite_failed", err)
		return
	}

	response.Success(c, gin.H{"favorited": false})
}

// ListFavorites 获取收藏列表
func (h *Handler) ListFavorites(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	favorites, total, err := h.FavoriteService.ListByUser(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.favorite_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, favorites, pagination)
}
