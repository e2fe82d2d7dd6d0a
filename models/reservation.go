package models

import "strings"

// Address is a wallet address in 0x-prefixed hex form.
type Address string

// AddressZero is the sentinel marking a free timeslot.
const AddressZero Address = "0x0000000000000000000000000000000000000000"

// Valid reports whether the address is a plausible 20-byte hex address.
func (a Address) Valid() bool {
	if len(a) != 42 || !strings.HasPrefix(string(a), "0x") {
		return false
	}
	for _, c := range a[2:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// IsZero reports whether the address is the free-slot sentinel.
func (a Address) IsZero() bool {
	return a == AddressZero
}

// Reservation is the owner record of one (room, timeslot) pair. Exactly one
// record exists per pair at all times; Owner is AddressZero when the slot is
// free.
type Reservation struct {
	Room     Room    `json:"room"`
	Timeslot int     `json:"timeslot"`
	Owner    Address `json:"owner"`
}

// Schedule is the ordered owner sequence for one room across business hours,
// indexed by timeslot - businessHourStart.
type Schedule []Address
