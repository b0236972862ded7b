package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/app/models/dto"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"github.com/yigit/classpoints/internal/pkg/testutil"
)

// seatInputs builds entries from (seat, student) pairs
func seatInputs(pairs ...interface{}) []dto.SeatInput {
	entries := make([]dto.SeatInput, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		seat := pairs[i].(int)
		student := pairs[i+1].(int64)
		entries = append(entries, dto.SeatInput{SeatIndex: &seat, StudentID: &student})
	}
	return entries
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func TestSeatingListIsPadded(t *testing.T) {
	env := newTestEnv(t)

	seats, err := env.seating.List(context.Background())
	require.NoError(t, err)
	require.Len(t, seats, models.SeatCount)
	for i, seat := range seats {
		assert.Equal(t, i, seat.SeatIndex)
		assert.True(t, seat.Empty())
	}
}

func TestSeatingReplace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := testutil.InsertStudent(t, env.db, "Student 1", 10)
	b := testutil.InsertStudent(t, env.db, "Student 2", 20)

	entries := append(seatInputs(3, b, 35, a), dto.SeatInput{SeatIndex: intPtr(0), StudentID: int64Ptr(0)})
	require.NoError(t, env.seating.Replace(ctx, testAdminPw, entries))
	assert.Equal(t, models.SeatCount, testutil.CountRows(t, env.db, "seating"))

	seats, err := env.seating.List(ctx)
	require.NoError(t, err)
	require.Len(t, seats, models.SeatCount)
	assert.True(t, seats[0].Empty())
	require.NotNil(t, seats[3].Name)
	assert.Equal(t, "Student 2", *seats[3].Name)
	assert.Equal(t, 20, *seats[3].Points)
	assert.Equal(t, a, *seats[35].StudentID)
}

func TestSeatingReplaceWrongPassphrase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := testutil.InsertStudent(t, env.db, "Student 1", 0)
	require.NoError(t, env.seating.Replace(ctx, testAdminPw, seatInputs(0, a)))

	err := env.seating.Replace(ctx, "adminpass ", seatInputs(5, a))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	seats, err := env.seating.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, *seats[0].StudentID)
	assert.True(t, seats[5].Empty())
}

func TestSeatingReplaceRejectsMalformedEntries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := testutil.InsertStudent(t, env.db, "Student 1", 0)
	b := testutil.InsertStudent(t, env.db, "Student 2", 0)
	require.NoError(t, env.seating.Replace(ctx, testAdminPw, seatInputs(0, a, 1, b)))

	tooMany := make([]dto.SeatInput, models.SeatCount+1)
	for i := range tooMany {
		tooMany[i] = dto.SeatInput{SeatIndex: intPtr(i % models.SeatCount)}
	}

	tests := []struct {
		name    string
		entries []dto.SeatInput
	}{
		{"missing array", nil},
		{"seat index out of range", seatInputs(36, a)},
		{"negative seat index", seatInputs(-1, a)},
		{"missing seat index", []dto.SeatInput{{StudentID: int64Ptr(a)}}},
		{"duplicate seat", seatInputs(4, a, 4, b)},
		{"student seated twice", seatInputs(4, a, 5, a)},
		{"unknown student", seatInputs(4, a, 5, int64(999))},
		{"too many entries", tooMany},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.seating.Replace(ctx, testAdminPw, tt.entries)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

			seats, err := env.seating.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, a, *seats[0].StudentID)
			assert.Equal(t, b, *seats[1].StudentID)
			assert.True(t, seats[4].Empty())
		})
	}
}

func TestPadSeatsIgnoresOutOfRange(t *testing.T) {
	seats := PadSeats([]*models.Seat{{SeatIndex: 2, StudentID: int64Ptr(9)}, {SeatIndex: 40}})
	require.Len(t, seats, models.SeatCount)
	assert.Equal(t, int64(9), *seats[2].StudentID)
	assert.True(t, seats[35].Empty())
}
