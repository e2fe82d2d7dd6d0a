package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoom_FixedSet(t *testing.T) {
	rooms := AllRooms()
	require.Len(t, rooms, RoomCount)

	assert.Equal(t, "C01", RoomC01.String())
	assert.Equal(t, "C10", RoomC10.String())
	assert.Equal(t, "P01", RoomP01.String())
	assert.Equal(t, "P10", RoomP10.String())
}

func TestRoom_ParseRoundTrip(t *testing.T) {
	for _, room := range AllRooms() {
		parsed, err := ParseRoom(room.String())
		require.NoError(t, err)
		assert.Equal(t, room, parsed)
	}

	_, err := ParseRoom("Z99")
	assert.Error(t, err)
}

func TestRoom_Valid(t *testing.T) {
	assert.True(t, Room(0).Valid())
	assert.True(t, Room(19).Valid())
	assert.False(t, Room(-1).Valid())
	assert.False(t, Room(20).Valid())
}

func TestAddress_Valid(t *testing.T) {
	assert.True(t, AddressZero.Valid())
	assert.True(t, AddressZero.IsZero())

	addr := Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	assert.True(t, addr.Valid())
	assert.False(t, addr.IsZero())

	assert.False(t, Address("").Valid())
	assert.False(t, Address("0x123").Valid())
	assert.False(t, Address("0xzzaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa").Valid())
}
