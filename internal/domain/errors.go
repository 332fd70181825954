package domain

import "errors"

var (
	ErrStoreNotConfigured = errors.New("store not configured")
	ErrDuplicate          = errors.New("duplicate key")
)
