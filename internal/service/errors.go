package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidValidity     = errors.New("validity must be a positive number of minutes")
	ErrInvalidShortcode    = errors.New("invalid custom shortcode")
	ErrShortcodeConflict   = errors.New("shortcode already exists")
	ErrGenerationExhausted = errors.New("could not generate a unique shortcode")
	ErrNotFound            = errors.New("short url not found")
	// ErrStorage 包装所有未归类的存储层错误
	ErrStorage = errors.New("storage failure")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
