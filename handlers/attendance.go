package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"shiftclock_backend/db"
	"shiftclock_backend/middleware"
	"shiftclock_backend/models"
	"shiftclock_backend/shift"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttendanceStore is the persistence the attendance endpoints need.
type AttendanceStore interface {
	CreateCheckIn(ctx context.Context, employeeID int, date, clock string) (models.AttendanceRecord, error)
	FindRecord(ctx context.Context, employeeID int, date string) (models.AttendanceRecord, error)
	CloseShift(ctx context.Context, id uuid.UUID, clock string, totalHours float64) (models.AttendanceRecord, error)
	ListRecords(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error)
}

// AttendanceHandler serves check-in, check-out and record listing. The
// server clock is authoritative for every timestamp it writes.
type AttendanceHandler struct {
	store AttendanceStore
	now   func() time.Time
	loc   *time.Location
}

func NewAttendanceHandler(store AttendanceStore, loc *time.Location) *AttendanceHandler {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceHandler{store: store, now: time.Now, loc: loc}
}

// WithClock replaces the handler's clock. Used by tests.
func (h *AttendanceHandler) WithClock(now func() time.Time) *AttendanceHandler {
	h.now = now
	return h
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	employeeID := middleware.EmployeeID(c)
	now := h.now().In(h.loc)
	date := now.Format(models.DateLayout)

	rec, err := h.store.CreateCheckIn(c.Request.Context(), employeeID, date, now.Format(models.ClockLayout))
	if errors.Is(err, db.ErrAlreadyCheckedIn) {
		body := gin.H{"error": "Already checked in today", "code": models.CodeAlreadyCheckedIn}
		if existing, ferr := h.store.FindRecord(c.Request.Context(), employeeID, date); ferr == nil {
			body["data"] = existing
		}
		c.JSON(http.StatusConflict, body)
		return
	}
	if err != nil {
		log.Printf("Error creating check-in for employee %d: %v", employeeID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check in"})
		return
	}

	log.Printf("Employee %d checked in at %s %s", employeeID, rec.Date, *rec.CheckInTime)
	c.JSON(http.StatusCreated, models.AttendanceResponse{Status: "ok", Data: rec})
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	employeeID := middleware.EmployeeID(c)
	now := h.now().In(h.loc)
	date := now.Format(models.DateLayout)

	rec, err := h.store.FindRecord(c.Request.Context(), employeeID, date)
	if errors.Is(err, db.ErrNotFound) || (err == nil && rec.CheckInTime == nil) {
		c.JSON(http.StatusConflict, gin.H{"error": "Not checked in today", "code": models.CodeNotCheckedIn})
		return
	}
	if err != nil {
		log.Printf("Error fetching record for employee %d: %v", employeeID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check out"})
		return
	}
	if rec.IsClosed() {
		c.JSON(http.StatusConflict, gin.H{"error": "Already checked out today", "code": models.CodeAlreadyCheckedOut, "data": rec})
		return
	}

	clock := now.Format(models.ClockLayout)
	hours, err := shift.TotalHours(rec.Date, *rec.CheckInTime, clock, h.loc)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": models.CodeInvalidDuration})
		return
	}

	closed, err := h.store.CloseShift(c.Request.Context(), rec.ID, clock, hours)
	if errors.Is(err, db.ErrAlreadyCheckedOut) {
		body := gin.H{"error": "Already checked out today", "code": models.CodeAlreadyCheckedOut}
		if current, ferr := h.store.FindRecord(c.Request.Context(), employeeID, date); ferr == nil {
			body["data"] = current
		}
		c.JSON(http.StatusConflict, body)
		return
	}
	if err != nil {
		log.Printf("Error closing shift for employee %d: %v", employeeID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check out"})
		return
	}

	log.Printf("Employee %d checked out at %s %s (%.2fh)", employeeID, closed.Date, clock, hours)
	c.JSON(http.StatusOK, models.AttendanceResponse{Status: "ok", Data: closed})
}

// GetRecords lists records, optionally filtered by ?date= and ?employee_id=.
func (h *AttendanceHandler) GetRecords(c *gin.Context) {
	var filter models.RecordFilter
	if date := c.Query("date"); date != "" {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		filter.Date = date
	}
	if raw := c.Query("employee_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee_id"})
			return
		}
		filter.EmployeeID = id
	}

	records, err := h.store.ListRecords(c.Request.Context(), filter)
	if err != nil {
		log.Printf("Error listing records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
		return
	}
	c.JSON(http.StatusOK, models.AttendanceListResponse{Status: "ok", Data: records})
}
