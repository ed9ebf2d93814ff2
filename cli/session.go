package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"shiftclock_backend/client"
	"shiftclock_backend/shift"

	"github.com/spf13/cobra"
)

// session bundles what a command needs to act for one employee.
type session struct {
	client     *client.Client
	ctrl       *shift.Controller
	employeeID int
	loc        *time.Location
	now        func() time.Time
}

func openSession(cmd *cobra.Command, opts ...shift.Option) (*session, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	settings, err := loadSettings(cmd, homeDir, os.Getenv)
	if err != nil {
		return nil, err
	}
	return newSession(settings, time.Now, opts...)
}

func newSession(s Settings, now func() time.Time, opts ...shift.Option) (*session, error) {
	employeeID, err := s.EmployeeID()
	if err != nil {
		return nil, err
	}
	loc, err := s.Location()
	if err != nil {
		return nil, err
	}
	c := client.New(s.Server, s.Token)

	base := []shift.Option{
		shift.WithClock(now),
		shift.WithLocation(loc),
		shift.WithLogger(log.New(os.Stderr, "shiftclock: ", log.LstdFlags)),
	}
	return &session{
		client:     c,
		ctrl:       shift.NewController(c, employeeID, append(base, opts...)...),
		employeeID: employeeID,
		loc:        loc,
		now:        now,
	}, nil
}

func (s *session) Close() {
	s.ctrl.Close()
}

func (s *session) today() string {
	return s.ctrl.Today()
}

// stateLabel colors a lifecycle state for terminal output.
func stateLabel(st shift.State) string {
	switch st {
	case shift.Active:
		return Info(st.String())
	case shift.Completed:
		return Success(st.String())
	}
	return Silent(st.String())
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func formatWindow(start, end time.Time, loc *time.Location) string {
	return start.In(loc).Format("15:04") + "-" + end.In(loc).Format("15:04")
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
