package repository

import (
	"errors"
	"fmt"
)

// ErrStore marks a persistence failure; callers map it to an internal error.
var ErrStore = errors.New("store error")

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}
