package models

import "fmt"

// Room identifies one of the twenty bookable rooms. The set is fixed at
// build time: ten Coke rooms (C01..C10) followed by ten Pepsi rooms
// (P01..P10), with ids 0..19.
type Room int

const (
	RoomC01 Room = iota
	RoomC02
	RoomC03
	RoomC04
	RoomC05
	RoomC06
	RoomC07
	RoomC08
	RoomC09
	RoomC10
	RoomP01
	RoomP02
	RoomP03
	RoomP04
	RoomP05
	RoomP06
	RoomP07
	RoomP08
	RoomP09
	RoomP10

	// RoomCount is the number of rooms in the fixed set.
	RoomCount = 20
)

// Valid reports whether the room id belongs to the fixed set.
func (r Room) Valid() bool {
	return r >= 0 && r < RoomCount
}

func (r Room) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Room(%d)", int(r))
	}
	if r < RoomP01 {
		return fmt.Sprintf("C%02d", int(r)+1)
	}
	return fmt.Sprintf("P%02d", int(r-RoomP01)+1)
}

// ParseRoom resolves a room name such as "C01" or "P10" to its id.
func ParseRoom(name string) (Room, error) {
	for r := Room(0); r < RoomCount; r++ {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown room %q", name)
}

// AllRooms returns the fixed room set in id order.
func AllRooms() []Room {
	rooms := make([]Room, RoomCount)
	for i := range rooms {
		rooms[i] = Room(i)
	}
	return rooms
}
