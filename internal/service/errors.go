package service

import "errors"

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrInvalidCredentials = errors.New("invalid credentials") // 400
	ErrNotFound           = errors.New("not found")           // 404
)
