package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/app/repositories"
	"github.com/yigit/classpoints/internal/config"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
)

// Mark is the attendance state of one student on one day
type Mark string

const (
	MarkPresent Mark = "present"
	MarkLate    Mark = "late"
	MarkAbsent  Mark = "absent"
)

// StatusRule marks statuses matching Match as Mark
type StatusRule struct {
	Match  string
	Prefix bool
	Mark   Mark
}

// Matches reports whether the rule applies to status
func (r StatusRule) Matches(status string) bool {
	if r.Prefix {
		return strings.HasPrefix(status, r.Match)
	}
	return status == r.Match
}

// Marker maps attendance statuses to marks and marks to symbols.
// The first matching rule wins; a status no rule matches is present.
type Marker struct {
	Rules   []StatusRule
	Symbols map[Mark]string
}

// DefaultMarker marks exactly "late" as late and everything else as present
func DefaultMarker() Marker {
	return Marker{
		Rules: []StatusRule{{Match: string(models.StatusLate), Mark: MarkLate}},
		Symbols: map[Mark]string{
			MarkPresent: "🟢",
			MarkLate:    "🟡",
			MarkAbsent:  "🔴",
		},
	}
}

// NewMarker builds a marker from configuration
func NewMarker(cfg config.ExportConfig) Marker {
	m := Marker{
		Symbols: map[Mark]string{
			MarkPresent: cfg.PresentSymbol,
			MarkLate:    cfg.LateSymbol,
			MarkAbsent:  cfg.AbsentSymbol,
		},
	}
	for _, rule := range cfg.Rules {
		m.Rules = append(m.Rules, StatusRule{
			Match:  rule.Match,
			Prefix: rule.Mode == "prefix",
			Mark:   Mark(rule.Mark),
		})
	}
	return m
}

// MarkFor returns the mark of a recorded status
func (m Marker) MarkFor(status models.AttendanceStatus) Mark {
	for _, rule := range m.Rules {
		if rule.Matches(string(status)) {
			return rule.Mark
		}
	}
	return MarkPresent
}

// Symbol returns the rendered symbol of a mark
func (m Marker) Symbol(mark Mark) string {
	if s, ok := m.Symbols[mark]; ok {
		return s
	}
	return string(mark)
}

// ReportRow is one student's marks for every day of the month
type ReportRow struct {
	StudentID int64  `json:"student_id"`
	Name      string `json:"name"`
	Marks     []Mark `json:"marks"`
}

// MonthlyReport is the attendance grid of one month
type MonthlyReport struct {
	Year  int          `json:"year"`
	Month int          `json:"month"`
	Days  []string     `json:"days"`
	Rows  []*ReportRow `json:"rows"`
}

// Filename returns the download name of the report
func (r *MonthlyReport) Filename() string {
	return fmt.Sprintf("%04d-%02d_attendance.csv", r.Year, r.Month)
}

// ExportService defines the interface for attendance exports
type ExportService interface {
	Monthly(ctx context.Context, year, month int) (*MonthlyReport, error)
	WriteCSV(w io.Writer, report *MonthlyReport) error
}

// exportServiceImpl implements the ExportService interface
type exportServiceImpl struct {
	studentRepo    *repositories.StudentRepository
	attendanceRepo *repositories.AttendanceRepository
	marker         Marker
}

// NewExportService creates a new export service instance
func NewExportService(repos *repositories.Repositories, marker Marker) ExportService {
	return &exportServiceImpl{
		studentRepo:    repos.StudentRepository,
		attendanceRepo: repos.AttendanceRepository,
		marker:         marker,
	}
}

// monthDays lists every date of the month as YYYY-MM-DD
func monthDays(year, month int) []string {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	n := first.AddDate(0, 1, -1).Day()

	days := make([]string, n)
	for i := range days {
		days[i] = first.AddDate(0, 0, i).Format(models.DateLayout)
	}
	return days
}

// Monthly builds the grid for a month. Days without a record are absent.
func (s *exportServiceImpl) Monthly(ctx context.Context, year, month int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError("month must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return nil, apperrors.NewValidationError("year must be between 1 and 9999")
	}

	days := monthDays(year, month)
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.attendanceRepo.ListBetween(ctx, days[0], days[len(days)-1])
	if err != nil {
		return nil, err
	}

	type key struct {
		studentID int64
		date      string
	}
	recorded := make(map[key]models.AttendanceStatus, len(records))
	for _, rec := range records {
		recorded[key{rec.StudentID, rec.Date}] = rec.Status
	}

	report := &MonthlyReport{Year: year, Month: month, Days: days, Rows: make([]*ReportRow, 0, len(students))}
	for _, st := range students {
		row := &ReportRow{StudentID: st.ID, Name: st.Name, Marks: make([]Mark, len(days))}
		for i, day := range days {
			status, ok := recorded[key{st.ID, day}]
			if !ok {
				row.Marks[i] = MarkAbsent
				continue
			}
			row.Marks[i] = s.marker.MarkFor(status)
		}
		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// WriteCSV renders the report with students as rows and days as columns
func (s *exportServiceImpl) WriteCSV(w io.Writer, report *MonthlyReport) error {
	cw := csv.NewWriter(w)

	header := append([]string{"name"}, report.Days...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range report.Rows {
		line := make([]string, 0, len(row.Marks)+1)
		line = append(line, row.Name)
		for _, mark := range row.Marks {
			line = append(line, s.marker.Symbol(mark))
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
