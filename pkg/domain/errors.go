package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record lookup by ID fails.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ErrInvalidReference marks writes that point at records which do not exist.
var ErrInvalidReference = errors.New("invalid reference")
