package main

import (
	"fmt"

	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/app/models/dto"
)

// chartInputs turns the current chart into a full replacement payload
func chartInputs(seats []*models.Seat) []dto.SeatInput {
	inputs := make([]dto.SeatInput, models.SeatCount)
	for i := range inputs {
		idx := i
		inputs[i] = dto.SeatInput{SeatIndex: &idx}
	}
	for _, seat := range seats {
		if seat == nil || seat.SeatIndex < 0 || seat.SeatIndex >= models.SeatCount || seat.Empty() {
			continue
		}
		id := *seat.StudentID
		inputs[seat.SeatIndex].StudentID = &id
	}
	return inputs
}

// swapSeats exchanges the occupants of two seats
func swapSeats(inputs []dto.SeatInput, a, b int) error {
	if a == b {
		return fmt.Errorf("cannot swap seat %d with itself", a)
	}
	inputs[a].StudentID, inputs[b].StudentID = inputs[b].StudentID, inputs[a].StudentID
	return nil
}

// assignSeat puts studentID at seat, vacating any seat the student held before.
// A nil studentID empties the seat.
func assignSeat(inputs []dto.SeatInput, seat int, studentID *int64) {
	if studentID != nil {
		for i := range inputs {
			if inputs[i].StudentID != nil && *inputs[i].StudentID == *studentID {
				inputs[i].StudentID = nil
			}
		}
	}
	inputs[seat].StudentID = studentID
}
