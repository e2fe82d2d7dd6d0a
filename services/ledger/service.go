package ledger

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "coladay/database/repository/reservation"
	"coladay/models"
	"coladay/services/events"

	"go.uber.org/zap"
)

// DefaultService implements Service over a reservation store. Ordering of
// conflicting requests for one slot is resolved first-writer-wins by the
// store's compare-and-set; a failed validation leaves state untouched.
type DefaultService struct {
	Repo      reservationRepo.Repository
	Bus       events.Bus
	Logger    *zap.Logger
	hourStart int
	hourEnd   int
}

func NewDefaultService(repo reservationRepo.Repository, bus events.Bus, logger *zap.Logger, hourStart, hourEnd int) *DefaultService {
	return &DefaultService{
		Repo:      repo,
		Bus:       bus,
		Logger:    logger,
		hourStart: hourStart,
		hourEnd:   hourEnd,
	}
}

func (s *DefaultService) BusinessHourStart() int {
	return s.hourStart
}

func (s *DefaultService) BusinessHourEnd() int {
	return s.hourEnd
}

func (s *DefaultService) GetRoom(ctx context.Context, room models.Room) (models.Schedule, error) {
	if !room.Valid() {
		return nil, newInvalidRoomError(room)
	}
	return s.Repo.GetRoom(ctx, room)
}

func (s *DefaultService) Book(ctx context.Context, room models.Room, timeslot int, requester models.Address) (models.Confirmation, error) {
	if err := s.validate(room, timeslot); err != nil {
		return models.Confirmation{}, err
	}

	position, err := s.Repo.Reserve(ctx, room, timeslot, requester)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrSlotTaken) {
			return models.Confirmation{}, newAlreadyBookedError()
		}
		return models.Confirmation{}, fmt.Errorf("failed to book room %s at %d: %w", room, timeslot, err)
	}

	confirmation := models.Confirmation{
		Sender:   requester,
		Room:     room,
		Timeslot: timeslot,
		Action:   models.ActionBook,
		Position: position,
	}
	s.Logger.Info("Slot booked",
		zap.Stringer("room", room),
		zap.Int("timeslot", timeslot),
		zap.String("requester", string(requester)),
		zap.Uint64("position", position),
	)
	s.Bus.Publish(ctx, confirmation)
	return confirmation, nil
}

func (s *DefaultService) Cancel(ctx context.Context, room models.Room, timeslot int, requester models.Address) (models.Confirmation, error) {
	if err := s.validate(room, timeslot); err != nil {
		return models.Confirmation{}, err
	}

	position, err := s.Repo.Release(ctx, room, timeslot, requester)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotOwner) {
			return models.Confirmation{}, newNotOwnerError()
		}
		return models.Confirmation{}, fmt.Errorf("failed to cancel room %s at %d: %w", room, timeslot, err)
	}

	confirmation := models.Confirmation{
		Sender:   requester,
		Room:     room,
		Timeslot: timeslot,
		Action:   models.ActionCancel,
		Position: position,
	}
	s.Logger.Info("Booking cancelled",
		zap.Stringer("room", room),
		zap.Int("timeslot", timeslot),
		zap.String("requester", string(requester)),
		zap.Uint64("position", position),
	)
	s.Bus.Publish(ctx, confirmation)
	return confirmation, nil
}

func (s *DefaultService) Position(ctx context.Context) (uint64, error) {
	return s.Repo.Position(ctx)
}

func (s *DefaultService) validate(room models.Room, timeslot int) error {
	if !room.Valid() {
		return newInvalidRoomError(room)
	}
	if timeslot < s.hourStart || timeslot >= s.hourEnd {
		return newOutOfBusinessHoursError(timeslot, s.hourStart, s.hourEnd)
	}
	return nil
}
