package errors

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSubscriptionExists   = errors.New("subscription already exists")
	ErrInvalidURL           = errors.New("invalid subscription URL")
	ErrClassificationFailed = errors.New("could not classify subscription")
	ErrNotSyncable          = errors.New("subscription is not syncable")
	ErrDatabaseOperation    = errors.New("database operation failed")
)
