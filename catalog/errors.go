package catalog

import "errors"

var (
	ErrNotFound     = errors.New("catalog: product not found")
	ErrHasOrders    = errors.New("catalog: product has orders")
	ErrUpload       = errors.New("catalog: upload failed")
	ErrInvalidInput = errors.New("catalog: invalid product input")
)
