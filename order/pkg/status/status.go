package status

import (
	"fmt"
)

// Status is the order lifecycle state. The sanctioned progression is
// Created -> Paid -> Delivered; Cancelled is reachable only from Created.
type Status string

const (
	Created   Status = "CREATED"
	Paid      Status = "PAID"
	Delivered Status = "DELIVERED"
	Cancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	Created:   {Paid, Cancelled},
	Paid:      {Delivered},
	Delivered: {},
	Cancelled: {},
}

func Parse(s string) (Status, error) {
	switch Status(s) {
	case Created, Paid, Delivered, Cancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown order status=%s", s)
}

func (s Status) String() string {
	return string(s)
}

// CanTransition reports whether moving from s to next is a sanctioned
// transition.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}
