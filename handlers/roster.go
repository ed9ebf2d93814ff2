package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"shiftclock_backend/db"
	"shiftclock_backend/middleware"
	"shiftclock_backend/models"

	"github.com/gin-gonic/gin"
)

type RosterStore interface {
	ListRoster(ctx context.Context, employeeID int, date string) ([]models.RosterEntry, error)
	CreateRosterEntry(ctx context.Context, entry models.RosterEntry) (models.RosterEntry, error)
}

type RosterHandler struct {
	store RosterStore
	now   func() time.Time
	loc   *time.Location
}

func NewRosterHandler(store RosterStore, loc *time.Location) *RosterHandler {
	if loc == nil {
		loc = time.Local
	}
	return &RosterHandler{store: store, now: time.Now, loc: loc}
}

// GetRoster returns the caller's entries followed by broadcast entries for
// ?date=, defaulting to today. An empty list is a valid answer.
func (h *RosterHandler) GetRoster(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = h.now().In(h.loc).Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	entries, err := h.store.ListRoster(c.Request.Context(), middleware.EmployeeID(c), date)
	if err != nil {
		log.Printf("Error listing roster for %s: %v", date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch roster"})
		return
	}
	c.JSON(http.StatusOK, models.RosterListResponse{Status: "ok", Data: entries})
}

func (h *RosterHandler) CreateRoster(c *gin.Context) {
	var req models.CreateRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee_id"})
		return
	}

	start, err := parseShiftTime(req.Date, req.ShiftStart, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift_start: " + err.Error()})
		return
	}
	end, err := parseShiftTime(req.Date, req.ShiftEnd, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift_end: " + err.Error()})
		return
	}

	entry, err := h.store.CreateRosterEntry(c.Request.Context(), models.RosterEntry{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		ShiftStart: start,
		ShiftEnd:   end,
		TaskNotes:  req.TaskNotes,
	})
	if errors.Is(err, db.ErrInvalidRosterEntry) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift_end must be after shift_start"})
		return
	}
	if err != nil {
		log.Printf("Error creating roster entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create roster entry"})
		return
	}
	c.JSON(http.StatusCreated, models.RosterResponse{Status: "ok", Data: entry})
}

// parseShiftTime accepts HH:MM or HH:MM:SS on date in loc.
func parseShiftTime(date, clock string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{"15:04", models.ClockLayout} {
		if t, err := time.ParseInLocation(models.DateLayout+" "+layout, date+" "+clock, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("expected YYYY-MM-DD date and HH:MM time")
}
