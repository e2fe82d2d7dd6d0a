package models

import "fmt"

// Action is the mutation kind a confirmation reports.
type Action int

const (
	ActionBook Action = iota
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionBook:
		return "booking"
	case ActionCancel:
		return "cancelling"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Confirmation is emitted by the ledger for every successful mutation.
// Position is the ledger sequence at which the mutation took effect;
// consumers use it to discard replayed history from before their
// observation checkpoint.
type Confirmation struct {
	Sender   Address `json:"sender"`
	Room     Room    `json:"room"`
	Timeslot int     `json:"timeslot"`
	Action   Action  `json:"action"`
	Position uint64  `json:"position"`
}
