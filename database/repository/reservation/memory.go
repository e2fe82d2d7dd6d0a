package reservationRepo

import (
	"context"
	"sync"

	"coladay/models"
)

// MemoryRepository keeps the reservation state in process memory. It backs
// single-node deployments and the test suites of the other implementations.
type MemoryRepository struct {
	mu        sync.Mutex
	owners    [][]models.Address
	position  uint64
	hourStart int
	hourEnd   int
}

// NewMemoryRepository creates an empty store for the fixed room set and the
// given business hours.
func NewMemoryRepository(hourStart, hourEnd int) *MemoryRepository {
	owners := make([][]models.Address, models.RoomCount)
	for i := range owners {
		row := make([]models.Address, hourEnd-hourStart)
		for j := range row {
			row[j] = models.AddressZero
		}
		owners[i] = row
	}
	return &MemoryRepository{
		owners:    owners,
		hourStart: hourStart,
		hourEnd:   hourEnd,
	}
}

func (r *MemoryRepository) GetRoom(ctx context.Context, room models.Room) (models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	schedule := make(models.Schedule, len(r.owners[room]))
	copy(schedule, r.owners[room])
	return schedule, nil
}

func (r *MemoryRepository) Reserve(ctx context.Context, room models.Room, timeslot int, requester models.Address) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := timeslot - r.hourStart
	if !r.owners[room][idx].IsZero() {
		return 0, ErrSlotTaken
	}
	r.owners[room][idx] = requester
	r.position++
	return r.position, nil
}

func (r *MemoryRepository) Release(ctx context.Context, room models.Room, timeslot int, requester models.Address) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := timeslot - r.hourStart
	if r.owners[room][idx] != requester {
		return 0, ErrNotOwner
	}
	r.owners[room][idx] = models.AddressZero
	r.position++
	return r.position, nil
}

func (r *MemoryRepository) Position(ctx context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position, nil
}
