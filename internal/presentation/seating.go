package presentation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yigit/classpoints/internal/app/models"
)

const (
	gridColumns = 6
	seatWidth   = 16
	seatHeight  = 4
	aisle       = "   "
	// EmptyLabel marks a seat with no student
	EmptyLabel = "(empty)"
)

// grid lays cards out six per row with an aisle after every pair of columns
func grid(cards []string) string {
	rows := make([]string, 0, (len(cards)+gridColumns-1)/gridColumns)
	for start := 0; start < len(cards); start += gridColumns {
		end := start + gridColumns
		if end > len(cards) {
			end = len(cards)
		}

		parts := make([]string, 0, gridColumns+2)
		for col, card := range cards[start:end] {
			if col > 0 && col%2 == 0 {
				parts = append(parts, aisle)
			}
			parts = append(parts, card)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// RenderSeating draws the 6x6 seating chart
func RenderSeating(styles Styles, seats []*models.Seat) string {
	cards := make([]string, 0, len(seats))
	for _, seat := range seats {
		if seat == nil || seat.Empty() {
			idx := 0
			if seat != nil {
				idx = seat.SeatIndex
			}
			cards = append(cards, styles.Empty.Render(fmt.Sprintf("#%d\n%s", idx, EmptyLabel)))
			continue
		}

		lines := []string{
			fmt.Sprintf("#%d", seat.SeatIndex),
			styles.Bold.Render(truncate(deref(seat.Name), seatWidth-2)),
		}
		if seat.Points != nil {
			lines = append(lines, fmt.Sprintf("%d pts", *seat.Points))
		}
		if title := deref(seat.Title); title != "" {
			lines = append(lines, styles.Warning.Render(truncate("["+title+"]", seatWidth-2)))
		}
		cards = append(cards, styles.SeatStyle(deref(seat.Skin)).Render(strings.Join(lines, "\n")))
	}

	return styles.Title.Render("Seating") + "\n" + grid(cards) + "\n"
}

// RenderToday draws today's attendance board in seat positions
func RenderToday(styles Styles, board []*models.TodayEntry, date string) string {
	cards := make([]string, 0, len(board))
	attended := 0
	for _, entry := range board {
		switch {
		case entry.StudentID == nil:
			cards = append(cards, styles.Empty.Render(fmt.Sprintf("#%d\n%s", entry.SeatIndex, EmptyLabel)))
		case !entry.Attended:
			cards = append(cards, styles.Empty.Render(fmt.Sprintf("#%d\n%s\nnot yet", entry.SeatIndex, truncate(entry.Name, seatWidth-2))))
		default:
			attended++
			lines := []string{
				fmt.Sprintf("#%d %s", entry.SeatIndex, entry.Time),
				styles.Bold.Render(truncate(entry.Name, seatWidth-2)),
				statusStyle(styles, entry.Status).Render(string(entry.Status)),
			}
			if entry.Title != "" {
				lines = append(lines, styles.Warning.Render(truncate("["+entry.Title+"]", seatWidth-2)))
			}
			cards = append(cards, styles.SeatStyle(entry.Skin).Render(strings.Join(lines, "\n")))
		}
	}

	title := "Today's attendance"
	if date != "" {
		title += " " + date
	}
	summary := styles.Muted.Render(fmt.Sprintf("%d checked in", attended))
	return styles.Title.Render(title) + "\n" + grid(cards) + "\n" + summary + "\n"
}

func statusStyle(styles Styles, status models.AttendanceStatus) lipgloss.Style {
	switch status {
	case models.StatusOnTime:
		return styles.Success
	case models.StatusAcceptedLate:
		return styles.Warning
	default:
		return styles.Error
	}
}
