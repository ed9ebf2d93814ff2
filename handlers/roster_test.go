package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shiftclock_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetRoster(t *testing.T) {
	s := newTestServer(t)
	seven := 7

	w := s.do(t, 1, http.MethodPost, "/roster", models.CreateRosterRequest{
		Date: "2025-06-15", ShiftStart: "07:00", ShiftEnd: "12:00", TaskNotes: "wash bay",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	broadcast := decode[models.RosterResponse](t, w)
	assert.Nil(t, broadcast.Data.EmployeeID)
	assert.Equal(t, time.Date(2025, 6, 15, 7, 0, 0, 0, time.UTC), broadcast.Data.ShiftStart.UTC())

	w = s.do(t, 1, http.MethodPost, "/roster", models.CreateRosterRequest{
		EmployeeID: &seven, Date: "2025-06-15", ShiftStart: "09:00:00", ShiftEnd: "15:30", TaskNotes: "paint correction",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, 7, http.MethodGet, "/roster", nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[models.RosterListResponse](t, w)
	require.Len(t, mine.Data, 2)
	assert.Equal(t, "paint correction", mine.Data[0].TaskNotes)
	assert.Equal(t, "wash bay", mine.Data[1].TaskNotes)

	w = s.do(t, 8, http.MethodGet, "/roster?date=2025-06-15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	theirs := decode[models.RosterListResponse](t, w)
	require.Len(t, theirs.Data, 1)
	assert.Equal(t, "wash bay", theirs.Data[0].TaskNotes)
}

func TestGetRosterEmptyDay(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, 7, http.MethodGet, "/roster?date=2025-06-20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","data":[]}`, w.Body.String())
}

func TestCreateRosterValidation(t *testing.T) {
	s := newTestServer(t)
	zero := 0
	tests := []struct {
		name string
		body interface{}
	}{
		{"missing fields", map[string]string{"date": "2025-06-15"}},
		{"bad start", models.CreateRosterRequest{Date: "2025-06-15", ShiftStart: "7am", ShiftEnd: "12:00"}},
		{"bad date", models.CreateRosterRequest{Date: "15/06/2025", ShiftStart: "07:00", ShiftEnd: "12:00"}},
		{"end before start", models.CreateRosterRequest{Date: "2025-06-15", ShiftStart: "12:00", ShiftEnd: "07:00"}},
		{"bad employee", models.CreateRosterRequest{EmployeeID: &zero, Date: "2025-06-15", ShiftStart: "07:00", ShiftEnd: "12:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, 1, http.MethodPost, "/roster", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetRosterRejectsBadDate(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, s.do(t, 7, http.MethodGet, "/roster?date=tomorrow", nil).Code)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"healthy", nil, http.StatusOK},
		{"database down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthHandler(pingFunc(func(context.Context) error { return tt.err })).HealthCheck)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
