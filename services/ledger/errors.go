package ledger

import (
	"errors"
	"fmt"

	"coladay/models"
)

// Error codes for the four terminal validation failures. A failed request is
// never retried; state is left untouched.
const (
	CodeInvalidRoom        = "invalidRoom"
	CodeOutOfBusinessHours = "outOfBusinessHours"
	CodeAlreadyBooked      = "alreadyBooked"
	CodeNotOwner           = "notOwner"
)

type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newInvalidRoomError(room models.Room) error {
	return &Error{
		Code:    CodeInvalidRoom,
		Message: fmt.Sprintf("The room %d does not exist.", int(room)),
	}
}

func newOutOfBusinessHoursError(timeslot, start, end int) error {
	return &Error{
		Code:    CodeOutOfBusinessHours,
		Message: fmt.Sprintf("The timeslot %d is outside of business hours [%d, %d).", timeslot, start, end),
	}
}

func newAlreadyBookedError() error {
	return &Error{
		Code:    CodeAlreadyBooked,
		Message: "The room is already booked.",
	}
}

func newNotOwnerError() error {
	return &Error{
		Code:    CodeNotOwner,
		Message: "The room was not booked by sender.",
	}
}

// ErrorCode extracts the ledger error code, or "" for other errors.
func ErrorCode(err error) string {
	var ledgerErr *Error
	if errors.As(err, &ledgerErr) {
		return ledgerErr.Code
	}
	return ""
}

func IsInvalidRoom(err error) bool        { return ErrorCode(err) == CodeInvalidRoom }
func IsOutOfBusinessHours(err error) bool { return ErrorCode(err) == CodeOutOfBusinessHours }
func IsAlreadyBooked(err error) bool      { return ErrorCode(err) == CodeAlreadyBooked }
func IsNotOwner(err error) bool           { return ErrorCode(err) == CodeNotOwner }
