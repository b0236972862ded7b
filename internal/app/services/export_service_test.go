package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/config"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"github.com/yigit/classpoints/internal/pkg/testutil"
)

func TestExportEmptyMonthIsAllAbsent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.InsertStudent(t, env.db, "Student 1", 0)
	testutil.InsertStudent(t, env.db, "Student 2", 0)

	report, err := env.export.Monthly(ctx, 2024, 2)
	require.NoError(t, err)
	require.Len(t, report.Days, 29)
	assert.Equal(t, "2024-02-01", report.Days[0])
	assert.Equal(t, "2024-02-29", report.Days[28])
	require.Len(t, report.Rows, 2)
	for _, row := range report.Rows {
		for _, mark := range row.Marks {
			assert.Equal(t, MarkAbsent, mark)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, env.export.WriteCSV(&buf, report))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "name,2024-02-01,2024-02-02,"))
	assert.Equal(t, "Student 1,"+strings.Repeat("🔴,", 28)+"🔴", lines[1])
	assert.Equal(t, "2024-02_attendance.csv", report.Filename())
}

func TestExportMarksRecordedDays(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := testutil.InsertStudent(t, env.db, "Student 1", 0)

	env.at(3, 8, 0)
	_, err := env.attendance.Record(ctx, id)
	require.NoError(t, err)
	env.at(4, 8, 30)
	_, err = env.attendance.Record(ctx, id)
	require.NoError(t, err)
	env.at(5, 9, 0)
	_, err = env.attendance.Record(ctx, id)
	require.NoError(t, err)

	report, err := env.export.Monthly(ctx, 2025, 3)
	require.NoError(t, err)
	require.Len(t, report.Days, 31)
	marks := report.Rows[0].Marks
	assert.Equal(t, MarkAbsent, marks[1])
	assert.Equal(t, MarkPresent, marks[2])
	assert.Equal(t, MarkPresent, marks[3])
	assert.Equal(t, MarkLate, marks[4])
	assert.Equal(t, MarkAbsent, marks[5])

	var buf bytes.Buffer
	require.NoError(t, env.export.WriteCSV(&buf, report))
	assert.Contains(t, buf.String(), "Student 1,🔴,🔴,🟢,🟢,🟡,🔴")

	// other months are untouched
	april, err := env.export.Monthly(ctx, 2025, 4)
	require.NoError(t, err)
	assert.Equal(t, MarkAbsent, april.Rows[0].Marks[2])
}

func TestExportRejectsInvalidMonth(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.export.Monthly(context.Background(), 2025, 13)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = env.export.Monthly(context.Background(), 2025, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestMarkerRules(t *testing.T) {
	m := NewMarker(config.ExportConfig{
		PresentSymbol: "P",
		LateSymbol:    "L",
		AbsentSymbol:  "A",
		Rules: []config.ExportRule{
			{Match: "accepted", Mode: "prefix", Mark: "late"},
			{Match: "late", Mode: "exact", Mark: "late"},
		},
	})

	assert.Equal(t, MarkPresent, m.MarkFor(models.StatusOnTime))
	assert.Equal(t, MarkLate, m.MarkFor(models.StatusAcceptedLate))
	assert.Equal(t, MarkLate, m.MarkFor(models.StatusLate))
	assert.Equal(t, MarkPresent, m.MarkFor("excused"))
	assert.Equal(t, "L", m.Symbol(MarkLate))
	assert.Equal(t, "A", m.Symbol(MarkAbsent))

	assert.Equal(t, DefaultMarker().Rules, NewMarker(config.Default().Export).Rules)
}
