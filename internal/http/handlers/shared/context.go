package shared

import (
	"github.com/sabai-next/internal/constants"
	"github.com/sabai-next/internal/session"

	"github.com/gin-gonic/gin"
)

// CurrentSession 从上下文读取当前会话及其令牌，未登录返回 ("", nil)。
func CurrentSession(c *gin.Context) (string, *session.Data) {
	tokenValue, ok := c.Get(constants.CtxSessionToken)
	if !ok {
		return "", nil
	}
	token, ok := tokenValue.(string)
	if !ok || token == "" {
		return "", nil
	}
	dataValue, ok := c.Get(constants.CtxSession)
	if !ok {
		return "", nil
	}
	data, ok := dataValue.(*session.Data)
	if !ok || data == nil {
		return "", nil
	}
	return token, data
}
