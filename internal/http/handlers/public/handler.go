package public

import "github.com/sabai-next/internal/provider"

// Handler 店面 API 处理器入口
type Handler struct {
	*provider.Container
}

// New 创建店面处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
