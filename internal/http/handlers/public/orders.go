package public

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sabai-next/internal/http/handlers/shared"
	"github.com/sabai-next/internal/http/response"
	"github.com/sabai-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders 当前用户订单列表，按创建时间倒序
func (h *Handler) ListOrders(c *gin.Context) {
	_, data := shared.CurrentSession(c)
	if data == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}

	page, pageSize := shared.QueryPagination(c)
	orders, total, err := h.OrderService.ListByUser(data.UserID, page, pageSize)
	if err != nil {
		shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		return
	}
	response.Success(c, gin.H{
		"orders": orders,
		"pagination": response.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	})
}

// GetOrder 订单详情，仅本人可见
func (h *Handler) GetOrder(c *gin.Context) {
	_, data := shared.CurrentSession(c)
	if data == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	order, err := h.OrderService.GetByIDAndUser(uint(id), data.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		return
	}
	response.Success(c, gin.H{"order": order, "items": order.Items})
}
