package public

import (
	"errors"
	"strconv"

	"github.com/sabai-next/internal/http/response"
	"github.com/sabai-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListBrands 返回全部品牌
func (h *Handler) ListBrands(c *gin.Context) {
	response.Success(c, h.CatalogService.ListBrands())
}

// ListProducts 按品牌筛选商品
func (h *Handler) ListProducts(c *gin.Context) {
	brand := c.Query("brand")
	response.Success(c, h.CatalogService.ListProducts(brand))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.CatalogService.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, service.ErrProductNotFound.Error())
			return
		}
		response.ServerError(c, "server error")
		return
	}
	response.Success(c, product)
}
