package models

// ItemType is the category of a store item and decides which student field a purchase equips
type ItemType string

const (
	ItemTypeSkin  ItemType = "skin"
	ItemTypeTitle ItemType = "title"
)

// Valid reports whether t is a known item type
func (t ItemType) Valid() bool {
	return t == ItemTypeSkin || t == ItemTypeTitle
}

// AttendanceStatus is the label stored with an attendance record
type AttendanceStatus string

const (
	StatusOnTime       AttendanceStatus = "on-time"
	StatusAcceptedLate AttendanceStatus = "accepted-late"
	StatusLate         AttendanceStatus = "late"
)

// SeatCount is the fixed number of seat slots in the classroom
const SeatCount = 36

// DateLayout and TimeLayout are the stored formats of attendance dates and times
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DefaultSkin is the skin a student starts with
const DefaultSkin = "default"
