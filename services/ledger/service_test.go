package ledger

import (
	"context"
	"testing"

	reservationRepo "coladay/database/repository/reservation"
	"coladay/models"
	"coladay/services/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testHourStart = 8
	testHourEnd   = 17
)

const (
	addrA = models.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	addrB = models.Address("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

func setupLedger(t *testing.T) (*DefaultService, *events.Hub) {
	t.Helper()
	repo := reservationRepo.NewMemoryRepository(testHourStart, testHourEnd)
	hub := events.NewHub()
	return NewDefaultService(repo, hub, zap.NewNop(), testHourStart, testHourEnd), hub
}

func TestBook_OutsideBusinessHours(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	for _, timeslot := range []int{-1, 0, 6, 7, testHourEnd, 19, 20} {
		_, err := svc.Book(ctx, models.RoomC01, timeslot, addrA)
		require.Error(t, err, "timeslot %d", timeslot)
		assert.True(t, IsOutOfBusinessHours(err), "timeslot %d", timeslot)
	}

	_, err := svc.Book(ctx, models.RoomC01, testHourStart, addrA)
	require.NoError(t, err)
	_, err = svc.Book(ctx, models.RoomC01, testHourEnd-1, addrA)
	require.NoError(t, err)
}

func TestGetRoom_ScheduleLength(t *testing.T) {
	svc, _ := setupLedger(t)

	schedule, err := svc.GetRoom(context.Background(), models.RoomC01)
	require.NoError(t, err)
	assert.Len(t, schedule, testHourEnd-testHourStart)
}

func TestGetRoom_InvalidRoom(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	_, err := svc.GetRoom(ctx, models.Room(0))
	require.NoError(t, err)
	_, err = svc.GetRoom(ctx, models.Room(19))
	require.NoError(t, err)

	for _, room := range []models.Room{-1, 20, 42} {
		_, err := svc.GetRoom(ctx, room)
		require.Error(t, err, "room %d", room)
		assert.True(t, IsInvalidRoom(err), "room %d", room)
	}
}

func TestBook_SetsOwner(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, models.RoomC01, testHourStart, addrA)
	require.NoError(t, err)

	schedule, err := svc.GetRoom(ctx, models.RoomC01)
	require.NoError(t, err)
	assert.Equal(t, addrA, schedule[0])
}

func TestBook_AlreadyBooked(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, models.RoomC01, testHourStart, addrA)
	require.NoError(t, err)

	_, err = svc.Book(ctx, models.RoomC01, testHourStart, addrB)
	require.Error(t, err)
	assert.True(t, IsAlreadyBooked(err))
	assert.Contains(t, err.Error(), "The room is already booked.")

	// The losing request left state untouched.
	schedule, err := svc.GetRoom(ctx, models.RoomC01)
	require.NoError(t, err)
	assert.Equal(t, addrA, schedule[0])
}

func TestCancel_RoundTrip(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, models.RoomC03, testHourStart+5, addrA)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, models.RoomC03, testHourStart+5, addrA)
	require.NoError(t, err)

	schedule, err := svc.GetRoom(ctx, models.RoomC03)
	require.NoError(t, err)
	assert.Equal(t, models.AddressZero, schedule[5])
}

func TestCancel_NotOwner(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, models.RoomC03, testHourStart+5, addrA)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, models.RoomC03, testHourStart+5, addrB)
	require.Error(t, err)
	assert.True(t, IsNotOwner(err))
	assert.Contains(t, err.Error(), "The room was not booked by sender.")
}

func TestCancel_FreeSlotFailsNotOwner(t *testing.T) {
	svc, _ := setupLedger(t)

	// Owner is the zero sentinel, which never equals a requester.
	_, err := svc.Cancel(context.Background(), models.RoomC01, testHourStart, addrA)
	require.Error(t, err)
	assert.True(t, IsNotOwner(err))
}

func TestLedger_Scenario(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, models.Room(0), 8, addrA)
	require.NoError(t, err)

	schedule, err := svc.GetRoom(ctx, models.Room(0))
	require.NoError(t, err)
	require.Equal(t, addrA, schedule[0])

	_, err = svc.Book(ctx, models.Room(0), 8, addrB)
	assert.True(t, IsAlreadyBooked(err))

	_, err = svc.Cancel(ctx, models.Room(0), 8, addrB)
	assert.True(t, IsNotOwner(err))

	_, err = svc.Cancel(ctx, models.Room(0), 8, addrA)
	require.NoError(t, err)

	schedule, err = svc.GetRoom(ctx, models.Room(0))
	require.NoError(t, err)
	assert.Equal(t, models.AddressZero, schedule[0])
}

func TestConfirmations_PublishedInOrder(t *testing.T) {
	svc, hub := setupLedger(t)
	ctx := context.Background()

	var received []models.Confirmation
	sub := hub.Subscribe(func(c models.Confirmation) {
		received = append(received, c)
	})
	defer sub.Close()

	_, err := svc.Book(ctx, models.RoomP01, 10, addrA)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, models.RoomP01, 10, addrA)
	require.NoError(t, err)

	// A rejected request emits nothing.
	_, err = svc.Cancel(ctx, models.RoomP01, 10, addrA)
	require.Error(t, err)

	require.Len(t, received, 2)
	assert.Equal(t, models.Confirmation{
		Sender: addrA, Room: models.RoomP01, Timeslot: 10,
		Action: models.ActionBook, Position: 1,
	}, received[0])
	assert.Equal(t, models.ActionCancel, received[1].Action)
	assert.Greater(t, received[1].Position, received[0].Position)
}

func TestPosition_AdvancesPerMutation(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	pos, err := svc.Position(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), pos)

	_, err = svc.Book(ctx, models.RoomC02, 9, addrA)
	require.NoError(t, err)

	pos, err = svc.Position(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), pos)
}
