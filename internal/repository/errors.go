package repository

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrMissingParent = errors.New("referenced record does not exist")
)
