package item

import "errors"

var (
	ErrUnknownItem   = errors.New("unknown item")
	ErrDuplicateItem = errors.New("duplicate item definition")
)
