package cli

import (
	"bytes"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"shiftclock_backend/db"
	"shiftclock_backend/handlers"
	"shiftclock_backend/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("cli-secret")

type mockClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *mockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func at(h, m, s int) time.Time {
	return time.Date(2025, 6, 15, h, m, s, 0, time.UTC)
}

type testEnv struct {
	store *db.MemoryStore
	clock *mockClock
	url   string
}

// newTestEnv serves the attendance API from memory with a shared clock so
// the server and the controller agree on today.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := db.NewMemoryStore()
	store.AddEmployee(7, "Detailer")
	store.AddEmployee(8, "Valet Driver")
	clock := &mockClock{t: at(8, 0, 0)}

	attendance := handlers.NewAttendanceHandler(store, time.UTC).WithClock(clock.Now)
	roster := handlers.NewRosterHandler(store, time.UTC)
	employees := handlers.NewEmployeeHandler(store)

	r := gin.New()
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(testSecret))
	protected.POST("/check-in", attendance.CheckIn)
	protected.POST("/check-out", attendance.CheckOut)
	protected.GET("/records", attendance.GetRecords)
	protected.GET("/roster", roster.GetRoster)
	protected.POST("/roster", roster.CreateRoster)
	protected.GET("/employees", employees.GetEmployees)
	protected.POST("/employees", employees.CreateEmployee)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testEnv{store: store, clock: clock, url: srv.URL}
}

func (e *testEnv) session(t *testing.T, employeeID int) *session {
	t.Helper()
	token, err := middleware.GenerateToken(testSecret, employeeID, time.Hour)
	require.NoError(t, err)
	sess, err := newSession(Settings{Server: e.url, Token: token, Timezone: "UTC"}, e.clock.Now)
	require.NoError(t, err)
	t.Cleanup(sess.Close)
	return sess
}

func testCommand() (*cobra.Command, *bytes.Buffer) {
	out := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	return cmd, out
}
