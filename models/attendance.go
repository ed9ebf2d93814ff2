package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DateLayout is the wire format of a record's calendar date.
	DateLayout = "2006-01-02"
	// ClockLayout is the wire format of a time-of-day.
	ClockLayout = "15:04:05"
)

// AttendanceRecord is one employee's clock-in/out entry for one calendar date.
// CheckOutTime is nil while the shift is open; once set the record is terminal.
type AttendanceRecord struct {
	ID           uuid.UUID `json:"id"`
	EmployeeID   int       `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Date         string    `json:"date"`
	CheckInTime  *string   `json:"check_in_time"`
	CheckOutTime *string   `json:"check_out_time"`
	TotalHours   *float64  `json:"total_hours"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsOpen reports whether the shift has started and not yet been closed.
func (r AttendanceRecord) IsOpen() bool {
	return r.CheckInTime != nil && r.CheckOutTime == nil
}

// IsClosed reports whether the record has been checked out.
func (r AttendanceRecord) IsClosed() bool {
	return r.CheckOutTime != nil
}

type RecordFilter struct {
	Date       string
	EmployeeID int
}

type AttendanceResponse struct {
	Status string           `json:"status"`
	Data   AttendanceRecord `json:"data"`
}

type AttendanceListResponse struct {
	Status string             `json:"status"`
	Data   []AttendanceRecord `json:"data"`
}

// ErrorResponse is the body of every non-2xx reply. Data carries the
// current record when the error is a conflict with stored state.
type ErrorResponse struct {
	Error string            `json:"error"`
	Code  string            `json:"code,omitempty"`
	Data  *AttendanceRecord `json:"data,omitempty"`
}

// Error codes returned by the attendance endpoints.
const (
	CodeAlreadyCheckedIn  = "already_checked_in"
	CodeAlreadyCheckedOut = "already_checked_out"
	CodeNotCheckedIn      = "not_checked_in"
	CodeInvalidDuration   = "invalid_duration"
)
