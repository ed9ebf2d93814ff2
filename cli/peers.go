package cli

import (
	"fmt"
	"io"

	"shiftclock_backend/models"
	"shiftclock_backend/shift"

	"github.com/spf13/cobra"
)

var peersCmd = LeafCommand{
	Use:   "peers",
	Short: "List today's attendance across the crew",
	StrFlags: []StringFlag{
		{Name: "date", Usage: "date as YYYY-MM-DD (default today)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		date, _ := cmd.Flags().GetString("date")
		return runPeers(cmd, sess, date)
	},
}.Build()

func runPeers(cmd *cobra.Command, sess *session, date string) error {
	if date == "" {
		date = sess.today()
	}
	records, err := sess.client.Records(commandContext(cmd), models.RecordFilter{Date: date})
	if err != nil {
		return err
	}
	printPeers(cmd.OutOrStdout(), date, records)
	return nil
}

func printPeers(w io.Writer, date string, records []models.AttendanceRecord) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Silent("Attendance for"), Primary(date))
	if len(records) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", Silent("nobody has checked in"))
		return
	}
	for _, rec := range records {
		name := rec.EmployeeName
		if name == "" {
			name = fmt.Sprintf("employee %d", rec.EmployeeID)
		}
		in, out := "--:--:--", "--:--:--"
		if rec.CheckInTime != nil {
			in = *rec.CheckInTime
		}
		if rec.CheckOutTime != nil {
			out = *rec.CheckOutTime
		}
		hours := ""
		if rec.TotalHours != nil {
			hours = shift.FormatHours(*rec.TotalHours)
		}
		_, _ = fmt.Fprintf(w, "  %-20s %s  %s  %s  %s\n", name, in, out, stateLabel(shift.StateOf(&rec)), hours)
	}
}
