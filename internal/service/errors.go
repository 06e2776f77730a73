package service

import "errors"

// 业务错误，由 HTTP 层映射为对应状态码
var (
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrIncompleteProfile  = errors.New("shipping profile is incomplete")
)
