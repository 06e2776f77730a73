package public

import (
	"net/http"
	"strconv"

	"github.com/sabai-next/internal/http/handlers/shared"
	"github.com/sabai-next/internal/http/response"
	"github.com/sabai-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileRequest 收货资料写入请求
type ProfileRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// GetProfile 查询收货资料，不存在时返回默认结构
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	profile, err := h.ProfileService.Get(userID)
	if err != nil {
		shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		return
	}
	response.Success(c, profile)
}

// UpsertProfile 整体覆盖写入收货资料，仅限本人
func (h *Handler) UpsertProfile(c *gin.Context) {
	_, data := shared.CurrentSession(c)
	if data == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}

	userID, ok := parseUserIDParam(c)
	if !ok {
		return
	}
	if userID != data.UserID {
		response.Forbidden(c, "cannot edit another user's profile")
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	profile, err := h.ProfileService.Upsert(userID, service.ProfileInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	})
	if err != nil {
		shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		return
	}
	response.Success(c, profile)
}

func parseUserIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid user id")
		return 0, false
	}
	return uint(id), true
}
