package ledger

import (
	"context"

	"coladay/models"
)

// Service is the booking rules authority: the canonical (room, timeslot) →
// owner mapping, validated mutations, and one published confirmation per
// successful mutation.
type Service interface {
	// BusinessHourStart and BusinessHourEnd are fixed configuration reads;
	// bookable timeslots form the half-open interval [start, end).
	BusinessHourStart() int
	BusinessHourEnd() int

	// GetRoom returns the full schedule for a room. Pure read.
	GetRoom(ctx context.Context, room models.Room) (models.Schedule, error)

	// Book assigns a free slot to the requester. Fails with an *Error
	// carrying CodeInvalidRoom, CodeOutOfBusinessHours or CodeAlreadyBooked.
	Book(ctx context.Context, room models.Room, timeslot int, requester models.Address) (models.Confirmation, error)

	// Cancel frees a slot owned by the requester. Fails with CodeInvalidRoom,
	// CodeOutOfBusinessHours or CodeNotOwner (also for free slots).
	Cancel(ctx context.Context, room models.Room, timeslot int, requester models.Address) (models.Confirmation, error)

	// Position returns the current ledger position, used by clients as
	// their observation checkpoint.
	Position(ctx context.Context) (uint64, error)
}
