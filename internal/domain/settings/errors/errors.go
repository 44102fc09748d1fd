package errors

import "errors"

var (
	ErrSettingNotFound   = errors.New("setting not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)
