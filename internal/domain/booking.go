package domain

import (
	"fmt"
	"time"

	"gopkg.in/guregu/null.v4"
)

type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "upcoming"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
)

// bookingTransitions lists, per current status, the statuses an edit may move a
// booking to. Staying in place is always allowed.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingUpcoming:  {BookingUpcoming, BookingActive, BookingCompleted},
	BookingActive:    {BookingActive, BookingCompleted},
	BookingCompleted: {BookingCompleted},
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionTo reports whether the transition table allows s -> next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Label is the display text for a status.
func (s BookingStatus) Label() string {
	switch s {
	case BookingUpcoming:
		return "Upcoming"
	case BookingActive:
		return "Active"
	case BookingCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("invalid booking status: %q", s)
	}
	return status, nil
}

// DateLayout is the calendar date format stored in Booking.Date.
const DateLayout = "2006-01-02"

// Booking is a ticket as shown on the tickets screen. EndTime is absent while a
// session is still open.
type Booking struct {
	ID          ID            `json:"id,omitempty"`
	ParkingID   ID            `json:"parkingId,omitempty"`
	ParkingName string        `json:"parkingName"`
	Address     string        `json:"address"`
	Date        string        `json:"date"`
	StartTime   time.Time     `json:"startTime"`
	EndTime     null.Time     `json:"endTime"`
	Price       Money         `json:"price"`
	Status      BookingStatus `json:"status"`
	Duration    string        `json:"duration,omitempty"`
}

// ElapsedDuration renders the stored duration, or derives one from the start
// and end instants when the record has none.
func (b Booking) ElapsedDuration() string {
	if b.Duration != "" {
		return b.Duration
	}
	if b.StartTime.IsZero() || !b.EndTime.Valid || !b.EndTime.Time.After(b.StartTime) {
		return ""
	}
	return FormatDuration(b.EndTime.Time.Sub(b.StartTime))
}

// FormatDuration renders a span as "2h 15m".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// Bill is what the checkout flow shows after a successful checkout.
type Bill struct {
	ParkingName string
	Date        string
	StartTime   time.Time
	EndTime     time.Time
	Duration    string
	Amount      Money
}
