package public

import (
	"errors"
	"net/http"

	"github.com/sabai-next/internal/http/handlers/shared"
	"github.com/sabai-next/internal/http/response"
	"github.com/sabai-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutSummary 结账页数据：购物车、总额与收货资料
func (h *Handler) CheckoutSummary(c *gin.Context) {
	_, data := shared.CurrentSession(c)
	if data == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}

	summary, err := h.OrderService.Summary(data)
	if err != nil {
		shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		return
	}
	if len(summary.Cart) == 0 {
		response.BadRequest(c, service.ErrEmptyCart.Error())
		return
	}
	response.Success(c, summary)
}

// Checkout 下单
func (h *Handler) Checkout(c *gin.Context) {
	token, data := shared.CurrentSession(c)
	if data == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}

	order, err := h.OrderService.PlaceOrder(c.Request.Context(), token, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			response.BadRequest(c, service.ErrEmptyCart.Error())
		case errors.Is(err, service.ErrIncompleteProfile):
			response.BadRequest(c, service.ErrIncompleteProfile.Error())
		default:
			shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		}
		return
	}
	response.Success(c, gin.H{"ok": true, "order_id": order.ID})
}
