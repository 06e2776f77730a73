package public

import (
	"errors"
	"net/http"

	"github.com/sabai-next/internal/http/handlers/shared"
	"github.com/sabai-next/internal/http/response"
	"github.com/sabai-next/internal/models"
	"github.com/sabai-next/internal/service"
	"github.com/sabai-next/internal/session"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateEmailRequest 修改邮箱请求
type UpdateEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// identity 会话身份响应
type identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register 注册账号并建立会话
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cred, err := h.AuthService.Register(service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			response.Conflict(c, service.ErrUsernameExists.Error())
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, service.ErrEmailExists.Error())
		default:
			shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		}
		return
	}

	if !h.establishSession(c, cred) {
		return
	}
	response.Success(c, identity{ID: cred.ID, Username: cred.Username, Email: cred.Email})
}

// Login 登录并建立新会话
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cred, err := h.AuthService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, service.ErrInvalidCredentials.Error())
			return
		}
		shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		return
	}

	if !h.establishSession(c, cred) {
		return
	}
	shared.RequestLog(c).Infow("user_logged_in", "user_id", cred.ID)
	response.Success(c, identity{ID: cred.ID, Username: cred.Username, Email: cred.Email})
}

// Logout 注销会话，购物车随会话一同销毁
func (h *Handler) Logout(c *gin.Context) {
	token, _ := shared.CurrentSession(c)
	if token != "" {
		if err := h.SessionStore.Delete(c.Request.Context(), token); err != nil {
			shared.RespondError(c, http.StatusInternalServerError, "server error", err)
			return
		}
	}
	h.expireSessionCookie(c)
	response.Success(c, gin.H{"ok": true})
}

// Me 返回当前会话身份
func (h *Handler) Me(c *gin.Context) {
	_, data := shared.CurrentSession(c)
	if data == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}
	response.Success(c, identity{ID: data.UserID, Username: data.Username, Email: data.Email})
}

// CheckAuth 登录状态探测，始终返回 200
func (h *Handler) CheckAuth(c *gin.Context) {
	_, data := shared.CurrentSession(c)
	if data == nil {
		response.Success(c, gin.H{"authenticated": false})
		return
	}
	response.Success(c, gin.H{
		"authenticated": true,
		"user":          identity{ID: data.UserID, Username: data.Username, Email: data.Email},
	})
}

// UpdateEmail 修改当前账号邮箱，同时更新会话
func (h *Handler) UpdateEmail(c *gin.Context) {
	token, data := shared.CurrentSession(c)
	if data == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}

	var req UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.AuthService.UpdateEmail(data.UserID, req.Email); err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			response.Conflict(c, service.ErrEmailExists.Error())
			return
		}
		shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		return
	}

	data.Email = req.Email
	if err := h.SessionStore.Save(c.Request.Context(), token, data); err != nil {
		shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		return
	}
	response.Success(c, identity{ID: data.UserID, Username: data.Username, Email: data.Email})
}

// establishSession 创建新会话并写入 cookie
func (h *Handler) establishSession(c *gin.Context, cred *models.Credential) bool {
	token, err := h.SessionStore.Create(c.Request.Context(), &session.Data{
		UserID:   cred.ID,
		Username: cred.Username,
		Email:    cred.Email,
	})
	if err != nil {
		shared.RespondError(c, http.StatusInternalServerError, "server error", err)
		return false
	}

	maxAge := h.Config.Session.TTLHours * 3600
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Config.Session.CookieName, token, maxAge, "/", "", h.Config.Session.Secure, true)
	return true
}

func (h *Handler) expireSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Config.Session.CookieName, "", -1, "/", "", h.Config.Session.Secure, true)
}
