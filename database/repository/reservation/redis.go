package reservationRepo

import (
	"context"
	"fmt"
	"strconv"

	"coladay/models"

	"github.com/go-redis/redis/v8"
)

const (
	roomKeyPrefix = "coladay:room:"
	positionKey   = "coladay:ledger:position"
)

// Reserve and release run as Lua scripts so the owner check, the owner write
// and the position increment are sequenced as one unit per slot. Free slots
// are absent hash fields; only real owners are stored.
var (
	reserveScript = redis.NewScript(`
		local owner = redis.call('HGET', KEYS[1], ARGV[1])
		if owner then
			return -1
		end
		redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
		return redis.call('INCR', KEYS[2])
	`)

	releaseScript = redis.NewScript(`
		local owner = redis.call('HGET', KEYS[1], ARGV[1])
		if not owner or owner ~= ARGV[2] then
			return -1
		end
		redis.call('HDEL', KEYS[1], ARGV[1])
		return redis.call('INCR', KEYS[2])
	`)
)

// RedisRepository stores one hash per room (field = timeslot, value = owner)
// plus a shared position counter.
type RedisRepository struct {
	client    *redis.Client
	hourStart int
	hourEnd   int
}

func NewRedisRepository(client *redis.Client, hourStart, hourEnd int) *RedisRepository {
	return &RedisRepository{
		client:    client,
		hourStart: hourStart,
		hourEnd:   hourEnd,
	}
}

func roomKey(room models.Room) string {
	return roomKeyPrefix + strconv.Itoa(int(room))
}

func (r *RedisRepository) GetRoom(ctx context.Context, room models.Room) (models.Schedule, error) {
	fields := make([]string, 0, r.hourEnd-r.hourStart)
	for t := r.hourStart; t < r.hourEnd; t++ {
		fields = append(fields, strconv.Itoa(t))
	}
	values, err := r.client.HMGet(ctx, roomKey(room), fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read room %s: %w", room, err)
	}
	schedule := make(models.Schedule, len(values))
	for i, v := range values {
		if v == nil {
			schedule[i] = models.AddressZero
			continue
		}
		owner, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected owner value %v for room %s", v, room)
		}
		schedule[i] = models.Address(owner)
	}
	return schedule, nil
}

func (r *RedisRepository) Reserve(ctx context.Context, room models.Room, timeslot int, requester models.Address) (uint64, error) {
	res, err := reserveScript.Run(ctx, r.client,
		[]string{roomKey(room), positionKey},
		strconv.Itoa(timeslot), string(requester),
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("reserve script failed: %w", err)
	}
	if res < 0 {
		return 0, ErrSlotTaken
	}
	return uint64(res), nil
}

func (r *RedisRepository) Release(ctx context.Context, room models.Room, timeslot int, requester models.Address) (uint64, error) {
	res, err := releaseScript.Run(ctx, r.client,
		[]string{roomKey(room), positionKey},
		strconv.Itoa(timeslot), string(requester),
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("release script failed: %w", err)
	}
	if res < 0 {
		return 0, ErrNotOwner
	}
	return uint64(res), nil
}

func (r *RedisRepository) Position(ctx context.Context) (uint64, error) {
	val, err := r.client.Get(ctx, positionKey).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read ledger position: %w", err)
	}
	pos, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt ledger position %q: %w", val, err)
	}
	return pos, nil
}
