package raffle

import (
	"math/rand"
	"slices"
)

func NewState(capacity int, creatorID string) (State, error) {
	if capacity < 1 {
		return State{}, ErrInvalidCapacity
	}

	available := make([]int, capacity)
	for i := range available {
		available[i] = i + 1
	}

	return State{
		CreatorID:   creatorID,
		Capacity:    capacity,
		Assignments: map[string]int{},
		Available:   available,
		Winners:     []int{},
	}, nil
}

// Undrawn returns the ticket numbers still eligible to win, in ascending order.
func Undrawn(s State) []int {
	remaining := make([]int, 0, s.Capacity-len(s.Winners))
	for n := 1; n <= s.Capacity; n++ {
		if !slices.Contains(s.Winners, n) {
			remaining = append(remaining, n)
		}
	}
	return remaining
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// Pseudo-random on purpose; swapped out in tests.
var intn = rand.Intn
