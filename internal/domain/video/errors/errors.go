package errors

import "errors"

var (
	ErrVideoNotFound     = errors.New("video not found")
	ErrVideoExists       = errors.New("video already registered")
	ErrInvalidVideoID    = errors.New("invalid video ID")
	ErrChannelNotFound   = errors.New("channel not registered")
	ErrListingFailed     = errors.New("channel listing failed")
	ErrDatabaseOperation = errors.New("database operation failed")
)
