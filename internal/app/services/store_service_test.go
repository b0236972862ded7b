package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"github.com/yigit/classpoints/internal/pkg/testutil"
)

func TestBuyWithExactBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := testutil.InsertStudent(t, env.db, "Student 1", 200)
	testutil.InsertItem(t, env.db, "desk_red", "Desk: Red Skin", 200, "skin")

	res, err := env.store.Buy(ctx, id, "desk_red")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "Desk: Red Skin purchased", res.Message)
	assert.Equal(t, 0, res.Student.Points)
	assert.Equal(t, "desk_red", res.Student.Skin)
	assert.Equal(t, 1, testutil.CountRows(t, env.db, "purchases"))
}

func TestBuyOneShortLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := testutil.InsertStudent(t, env.db, "Student 1", 199)
	testutil.InsertItem(t, env.db, "desk_red", "Desk: Red Skin", 200, "skin")

	res, err := env.store.Buy(ctx, id, "desk_red")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, MessageInsufficientPoints, res.Message)

	student, err := env.students.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 199, student.Points)
	assert.Equal(t, models.DefaultSkin, student.Skin)
	assert.Zero(t, testutil.CountRows(t, env.db, "purchases"))
}

func TestBuyWithZeroPoints(t *testing.T) {
	env := newTestEnv(t)
	id := testutil.InsertStudent(t, env.db, "Student 1", 0)
	testutil.InsertItem(t, env.db, "desk_blue", "Desk: Blue Skin", 200, "skin")

	res, err := env.store.Buy(context.Background(), id, "desk_blue")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 0, testutil.Points(t, env.db, id))
	assert.Zero(t, testutil.CountRows(t, env.db, "purchases"))
}

func TestBuyTitleEquipsDisplayName(t *testing.T) {
	env := newTestEnv(t)
	id := testutil.InsertStudent(t, env.db, "Student 1", 500)
	testutil.InsertItem(t, env.db, "title_star", "Title: Attendance King", 300, "title")

	res, err := env.store.Buy(context.Background(), id, "title_star")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "Title: Attendance King", res.Student.Title)
	assert.Equal(t, models.DefaultSkin, res.Student.Skin)
	assert.Equal(t, 200, res.Student.Points)

	purchases, err := env.store.Purchases(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "title_star", purchases[0].ItemKey)
}

func TestBuyNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := testutil.InsertStudent(t, env.db, "Student 1", 500)

	_, err := env.store.Buy(ctx, id, "missing")
	assert.ErrorIs(t, err, apperrors.ErrItemNotFound)

	testutil.InsertItem(t, env.db, "desk_red", "Desk: Red Skin", 200, "skin")
	_, err = env.store.Buy(ctx, id+100, "desk_red")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestAddItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	item := &models.StoreItem{KeyName: "desk_gold", Name: "Desk: Gold Skin", Cost: 500, Type: models.ItemTypeSkin}

	err := env.store.AddItem(ctx, "wrong", item)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Zero(t, testutil.CountRows(t, env.db, "store_items"))

	require.NoError(t, env.store.AddItem(ctx, testAdminPw, item))
	assert.NotZero(t, item.ID)

	dup := &models.StoreItem{KeyName: "desk_gold", Name: "Again", Cost: 1, Type: models.ItemTypeSkin}
	assert.ErrorIs(t, env.store.AddItem(ctx, testAdminPw, dup), apperrors.ErrResourceAlreadyExists)

	bad := &models.StoreItem{KeyName: "hat", Name: "Hat", Cost: 1, Type: "hat"}
	assert.ErrorIs(t, env.store.AddItem(ctx, testAdminPw, bad), apperrors.ErrValidationFailed)

	spaced := &models.StoreItem{KeyName: "Desk Gold", Name: "Spaced", Cost: 1, Type: models.ItemTypeSkin}
	assert.ErrorIs(t, env.store.AddItem(ctx, testAdminPw, spaced), apperrors.ErrValidationFailed)

	negative := &models.StoreItem{KeyName: "desk_free", Name: "Free", Cost: -1, Type: models.ItemTypeSkin}
	assert.ErrorIs(t, env.store.AddItem(ctx, testAdminPw, negative), apperrors.ErrValidationFailed)

	items, err := env.store.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestBalanceMatchesLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	const initial = 60
	id := testutil.InsertStudent(t, env.db, "Student 1", initial)
	testutil.InsertItem(t, env.db, "title_helper", "Title: Helper", 150, "title")
	testutil.InsertItem(t, env.db, "desk_red", "Desk: Red Skin", 200, "skin")

	steps := []func(){
		func() { env.at(3, 8, 0); _, _ = env.attendance.Record(ctx, id) },
		func() { _, _ = env.store.Buy(ctx, id, "title_helper") },
		func() { env.at(3, 9, 0); _, _ = env.attendance.Record(ctx, id) },
		func() { env.at(4, 8, 30); _, _ = env.attendance.Record(ctx, id) },
		func() { _, _ = env.store.Buy(ctx, id, "desk_red") },
		func() { env.at(5, 8, 20); _, _ = env.attendance.Record(ctx, id) },
		func() { env.at(6, 10, 0); _, _ = env.attendance.Record(ctx, id) },
		func() { _, _ = env.store.Buy(ctx, id, "title_helper") },
	}

	for _, step := range steps {
		step()

		earned, err := env.repos.AttendanceRepository.SumPoints(ctx, id)
		require.NoError(t, err)
		spent, err := env.repos.StoreRepository.SumPurchaseCosts(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, initial+earned-spent, testutil.Points(t, env.db, id))
	}
}
