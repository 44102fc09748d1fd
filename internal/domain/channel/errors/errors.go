package errors

import "errors"

var (
	ErrChannelNotFound      = errors.New("channel not found")
	ErrChannelAlreadyExists = errors.New("channel already exists")
	ErrInvalidChannelID     = errors.New("invalid channel ID")
	ErrDatabaseOperation    = errors.New("database operation failed")
)
