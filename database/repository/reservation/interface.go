package reservationRepo

import (
	"context"
	"errors"

	"coladay/models"
)

// Store-level failure sentinels. The ledger service maps these onto its
// user-facing error taxonomy.
var (
	// ErrSlotTaken is returned by Reserve when the slot already has an owner.
	ErrSlotTaken = errors.New("slot already reserved")
	// ErrNotOwner is returned by Release when the requester does not own the slot.
	ErrNotOwner = errors.New("slot not owned by requester")
)

// Repository is the ledger's own storage: one owner record per
// (room, timeslot) pair plus a monotonic position counter advanced by every
// successful mutation. Reserve and Release are atomic compare-and-set
// operations; the first writer to be sequenced wins and later conflicting
// writers fail.
type Repository interface {
	// GetRoom returns the owner sequence for a room across business hours,
	// indexed by timeslot - businessHourStart. Free slots carry AddressZero.
	GetRoom(ctx context.Context, room models.Room) (models.Schedule, error)

	// Reserve sets the owner of a free slot and returns the ledger position
	// assigned to the mutation. Fails with ErrSlotTaken if an owner is set.
	Reserve(ctx context.Context, room models.Room, timeslot int, requester models.Address) (uint64, error)

	// Release clears the owner of a slot held by requester and returns the
	// assigned ledger position. Fails with ErrNotOwner otherwise, including
	// when the slot is free.
	Release(ctx context.Context, room models.Room, timeslot int, requester models.Address) (uint64, error)

	// Position returns the current ledger position, the observation
	// checkpoint for new clients.
	Position(ctx context.Context) (uint64, error)
}
