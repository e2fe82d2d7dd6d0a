package roomview

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"coladay/models"
	"coladay/services/events"
	"coladay/services/ledger"
	"coladay/services/notification"
	"coladay/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSlotPending rejects a re-submission for a slot that already has a
// request awaiting confirmation.
var ErrSlotPending = errors.New("slot already has a request awaiting confirmation")

// SlotState is what the view reports for one timeslot of the displayed room.
type SlotState int

const (
	// SlotFree has no owner and no pending request; booking is available.
	SlotFree SlotState = iota
	// SlotOwnedByOther is booked by someone else; no action is available.
	SlotOwnedByOther
	// SlotOwnedBySelf is booked by the view's user; cancelling is available.
	SlotOwnedBySelf
	// SlotPending has a submitted request awaiting confirmation; no action
	// is available.
	SlotPending
)

type slotKey struct {
	room     models.Room
	timeslot int
}

// View reconciles one user's picture of the schedule: the last fetched
// schedule of the displayed room merged with the slots awaiting
// confirmation. Confirmations at or before the observation checkpoint,
// captured once at construction, are ignored as replayed history.
//
// Pending entries are mutated from exactly two places: request submission
// and confirmation handling. A request that is accepted but never confirmed
// leaves its slot pending indefinitely; the ledger offers no delivery
// guarantee to time out against.
type View struct {
	ledger   ledger.Service
	notifier notification.Notifier
	logger   *zap.Logger

	user       models.Address
	checkpoint uint64
	hourStart  int
	hourEnd    int

	mu       sync.Mutex
	room     models.Room
	schedule models.Schedule
	pending  map[slotKey]struct{}

	sub       events.Subscription
	closeOnce sync.Once
}

// Snapshot is a copy of the view's displayed state.
type Snapshot struct {
	Room       models.Room
	HourStart  int
	HourEnd    int
	Checkpoint uint64
	Schedule   models.Schedule
	// Pending lists the pending timeslots of the displayed room only.
	Pending []int
}

// New builds a view for the user, captures the observation checkpoint,
// subscribes to the confirmation stream and loads the initial room (C01).
func New(ctx context.Context, led ledger.Service, bus events.Bus, notifier notification.Notifier, user models.Address, logger *zap.Logger) (*View, error) {
	checkpoint, err := led.Position(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to capture observation checkpoint: %w", err)
	}

	v := &View{
		ledger:     led,
		notifier:   notifier,
		logger:     logger,
		user:       user,
		checkpoint: checkpoint,
		hourStart:  led.BusinessHourStart(),
		hourEnd:    led.BusinessHourEnd(),
		room:       models.RoomC01,
		pending:    make(map[slotKey]struct{}),
	}

	// Subscribe before the initial fetch so no confirmation past the
	// checkpoint is missed.
	v.sub = bus.Subscribe(func(c models.Confirmation) {
		v.handleConfirmation(context.Background(), c)
	})

	schedule, err := led.GetRoom(ctx, v.room)
	if err != nil {
		v.sub.Close()
		return nil, fmt.Errorf("failed to load initial room: %w", err)
	}
	v.mu.Lock()
	v.schedule = schedule
	v.mu.Unlock()

	return v, nil
}

// User returns the address the view reconciles for.
func (v *View) User() models.Address {
	return v.user
}

// SelectRoom switches the displayed room with exactly one schedule fetch.
// Pending entries of other rooms are left untouched.
func (v *View) SelectRoom(ctx context.Context, room models.Room) error {
	schedule, err := v.ledger.GetRoom(ctx, room)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.room = room
	v.schedule = schedule
	v.mu.Unlock()
	return nil
}

// RequestBooking submits a book request for the slot. On synchronous
// rejection the failure is surfaced as an error notice and nothing is left
// pending; on acceptance the slot is pending until a matching confirmation
// arrives.
func (v *View) RequestBooking(ctx context.Context, room models.Room, timeslot int) error {
	key := slotKey{room: room, timeslot: timeslot}

	// The pending entry goes in before submission: with an in-process bus
	// the confirmation can be dispatched inside the Book call itself, and
	// must find the entry to clear.
	v.mu.Lock()
	if _, exists := v.pending[key]; exists {
		v.mu.Unlock()
		return ErrSlotPending
	}
	v.pending[key] = struct{}{}
	v.mu.Unlock()

	if _, err := v.ledger.Book(ctx, room, timeslot, v.user); err != nil {
		v.mu.Lock()
		delete(v.pending, key)
		v.mu.Unlock()
		v.notify(ctx, notification.SeverityError, fmt.Sprintf("An error occurred: %s", err.Error()))
		return err
	}

	v.notify(ctx, notification.SeverityWarning,
		fmt.Sprintf("Booking room %s at %s", room, utils.FormatTimeslot(timeslot)))
	return nil
}

// RequestCancelling submits a cancel request for the slot, symmetric to
// RequestBooking.
func (v *View) RequestCancelling(ctx context.Context, room models.Room, timeslot int) error {
	key := slotKey{room: room, timeslot: timeslot}

	v.mu.Lock()
	if _, exists := v.pending[key]; exists {
		v.mu.Unlock()
		return ErrSlotPending
	}
	v.pending[key] = struct{}{}
	v.mu.Unlock()

	if _, err := v.ledger.Cancel(ctx, room, timeslot, v.user); err != nil {
		v.mu.Lock()
		delete(v.pending, key)
		v.mu.Unlock()
		v.notify(ctx, notification.SeverityError, fmt.Sprintf("An error occurred: %s", err.Error()))
		return err
	}

	v.notify(ctx, notification.SeverityWarning,
		fmt.Sprintf("Cancelling reservation for room %s at %s", room, utils.FormatTimeslot(timeslot)))
	return nil
}

// SlotState reports the state of a timeslot of the displayed room. The
// timeslot must lie within business hours.
func (v *View) SlotState(timeslot int) SlotState {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.pending[slotKey{room: v.room, timeslot: timeslot}]; exists {
		return SlotPending
	}
	idx := timeslot - v.hourStart
	if idx < 0 || idx >= len(v.schedule) {
		return SlotFree
	}
	owner := v.schedule[idx]
	switch {
	case owner.IsZero():
		return SlotFree
	case owner == v.user:
		return SlotOwnedBySelf
	default:
		return SlotOwnedByOther
	}
}

// Snapshot copies the displayed room, its schedule and its pending slots.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	schedule := make(models.Schedule, len(v.schedule))
	copy(schedule, v.schedule)

	var pending []int
	for key := range v.pending {
		if key.room == v.room {
			pending = append(pending, key.timeslot)
		}
	}
	sort.Ints(pending)

	return Snapshot{
		Room:       v.room,
		HourStart:  v.hourStart,
		HourEnd:    v.hourEnd,
		Checkpoint: v.checkpoint,
		Schedule:   schedule,
		Pending:    pending,
	}
}

// Close tears down the view's confirmation subscription. Idempotent.
func (v *View) Close() {
	v.closeOnce.Do(func() {
		v.sub.Close()
	})
}

func (v *View) handleConfirmation(ctx context.Context, c models.Confirmation) {
	if c.Position <= v.checkpoint {
		return
	}

	v.mu.Lock()
	displayed := c.Room == v.room
	v.mu.Unlock()

	if displayed {
		schedule, err := v.ledger.GetRoom(ctx, c.Room)
		if err != nil {
			v.logger.Warn("Failed to refresh schedule after confirmation",
				zap.Stringer("room", c.Room), zap.Error(err))
		} else {
			v.mu.Lock()
			// The user may have switched rooms while the fetch was in
			// flight; the last fetched schedule of the displayed room wins.
			if v.room == c.Room {
				v.schedule = schedule
			}
			v.mu.Unlock()
		}
	}

	v.mu.Lock()
	delete(v.pending, slotKey{room: c.Room, timeslot: c.Timeslot})
	v.mu.Unlock()

	v.notify(ctx, notification.SeveritySuccess,
		fmt.Sprintf("Confirmed %s for room %s at %s by %s",
			c.Action, c.Room, utils.FormatTimeslot(c.Timeslot), utils.ShortenAddress(c.Sender)))
}

func (v *View) notify(ctx context.Context, severity notification.Severity, message string) {
	notice := notification.Notice{
		ID:       uuid.New().String(),
		User:     string(v.user),
		Severity: severity,
		Message:  message,
	}
	if err := v.notifier.Notify(ctx, notice); err != nil {
		v.logger.Warn("Failed to deliver notice", zap.Error(err))
	}
}
