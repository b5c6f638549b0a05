package order

import "errors"

var (
	ErrNotFound = errors.New("order record not found")
)
