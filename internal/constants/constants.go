package constants

// 订单状态常量。本系统不实现状态机，pending 即终态。
const (
	OrderStatusPending = "pending"
)

// 资料默认值
const (
	DefaultCountry = "Thailand"
)

// gin 上下文键
const (
	CtxSessionToken = "session_token"
	CtxSession      = "session"
	CtxRequestID    = "request_id"
)
