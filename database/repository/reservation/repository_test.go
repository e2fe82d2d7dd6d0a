package reservationRepo

import (
	"context"
	"testing"

	"coladay/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testHourStart = 8
	testHourEnd   = 17
)

const (
	addrA = models.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	addrB = models.Address("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

func setupRedisRepo(t *testing.T) *RedisRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisRepository(client, testHourStart, testHourEnd)
}

// Both implementations must behave identically; the memory store is the
// reference the redis one is checked against.
func repositories(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"memory": NewMemoryRepository(testHourStart, testHourEnd),
		"redis":  setupRedisRepo(t),
	}
}

func TestRepository_GetRoomEmpty(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			schedule, err := repo.GetRoom(context.Background(), models.RoomC01)
			require.NoError(t, err)
			require.Len(t, schedule, testHourEnd-testHourStart)
			for _, owner := range schedule {
				assert.Equal(t, models.AddressZero, owner)
			}
		})
	}
}

func TestRepository_ReserveFirstWriterWins(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			pos, err := repo.Reserve(ctx, models.RoomC01, 8, addrA)
			require.NoError(t, err)
			assert.Equal(t, uint64(1), pos)

			_, err = repo.Reserve(ctx, models.RoomC01, 8, addrB)
			require.ErrorIs(t, err, ErrSlotTaken)

			schedule, err := repo.GetRoom(ctx, models.RoomC01)
			require.NoError(t, err)
			assert.Equal(t, addrA, schedule[0])
		})
	}
}

func TestRepository_ReleaseOwnership(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.Reserve(ctx, models.RoomC03, 13, addrA)
			require.NoError(t, err)

			_, err = repo.Release(ctx, models.RoomC03, 13, addrB)
			require.ErrorIs(t, err, ErrNotOwner)

			// Releasing a free slot also fails: no owner equals no requester.
			_, err = repo.Release(ctx, models.RoomC03, 14, addrA)
			require.ErrorIs(t, err, ErrNotOwner)

			pos, err := repo.Release(ctx, models.RoomC03, 13, addrA)
			require.NoError(t, err)
			assert.Equal(t, uint64(2), pos)

			schedule, err := repo.GetRoom(ctx, models.RoomC03)
			require.NoError(t, err)
			assert.Equal(t, models.AddressZero, schedule[13-testHourStart])
		})
	}
}

func TestRepository_PositionMonotonic(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			pos, err := repo.Position(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), pos)

			var last uint64
			for i, room := range []models.Room{models.RoomC01, models.RoomC02, models.RoomP10} {
				pos, err := repo.Reserve(ctx, room, testHourStart+i, addrA)
				require.NoError(t, err)
				assert.Greater(t, pos, last)
				last = pos
			}

			// Failed mutations do not advance the position.
			_, err = repo.Reserve(ctx, models.RoomC01, testHourStart, addrB)
			require.ErrorIs(t, err, ErrSlotTaken)

			pos, err = repo.Position(ctx)
			require.NoError(t, err)
			assert.Equal(t, last, pos)
		})
	}
}

func TestRepository_RoomsAreIndependent(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.Reserve(ctx, models.RoomC01, 8, addrA)
			require.NoError(t, err)

			_, err = repo.Reserve(ctx, models.RoomP01, 8, addrB)
			require.NoError(t, err)

			schedule, err := repo.GetRoom(ctx, models.RoomP01)
			require.NoError(t, err)
			assert.Equal(t, addrB, schedule[0])

			schedule, err = repo.GetRoom(ctx, models.RoomC02)
			require.NoError(t, err)
			assert.Equal(t, models.AddressZero, schedule[0])
		})
	}
}
