package dispatch

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidPrice          = errors.New("price out of bounds")
	ErrInvalidAddress        = errors.New("invalid address")
	ErrInvalidProofRef       = errors.New("invalid proof reference")

	ErrOrderNotFound   = errors.New("order not found")
	ErrCourierNotFound = errors.New("courier not found")

	ErrUnauthorized          = errors.New("unauthorized")
	ErrCourierNotApproved    = errors.New("courier is not approved")
	ErrCourierHasActiveOrder = errors.New("courier has an active order")

	ErrStateConflict = errors.New("state conflict")
)

// StateConflictError — переход запрещен из текущего статуса заказа.
// Не системная ошибка: для пользователя это "заказ уже недоступен".
type StateConflictError struct {
	Event   TransitionEventType
	Current string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("transition %q is not allowed from status %q", e.Event, e.Current)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}
