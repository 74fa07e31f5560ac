package store

import "errors"

var (
	ErrAlreadyExists     = errors.New("queue id already exists")
	ErrConflictOpenQueue = errors.New("another queue is already open")
	ErrNotFound          = errors.New("queue not found")
	ErrNotOpen           = errors.New("queue is not open")
	ErrRecordNotFound    = errors.New("dismissal record not found")
)
