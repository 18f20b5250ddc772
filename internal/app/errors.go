package service

import "errors"

// Sentinel errors returned by the Service.
var (
	ErrEmptyBatch    = errors.New("batch has no requests")
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")
)
