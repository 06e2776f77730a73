package public

import (
	"errors"
	"net/http"

	"github.com/sabai-next/internal/http/handlers/shared"
	"github.com/sabai-next/internal/http/response"
	"github.com/sabai-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CartAddRequest 加入购物车请求
type CartAddRequest struct {
	ID  uint `json:"id" binding:"required"`
	Qty int  `json:"qty"`
}

// GetCart 返回当前购物车
func (h *Handler) GetCart(c *gin.Context) {
	_, data := shared.CurrentSession(c)
	if data == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}
	response.Success(c, h.CartService.Lines(data))
}

// AddToCart 加入商品，已存在时累加数量
func (h *Handler) AddToCart(c *gin.Context) {
	token, data := shared.CurrentSession(c)
	if data == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}

	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	lines, err := h.CartService.Add(c.Request.Context(), token, data, req.ID, req.Qty)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, service.ErrProductNotFound.Error())
			return
		}
		shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		return
	}
	response.Success(c, lines)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	token, data := shared.CurrentSession(c)
	if data == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}

	if err := h.CartService.Clear(c.Request.Context(), token, data); err != nil {
		shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
