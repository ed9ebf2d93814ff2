package cli

import (
	"fmt"

	"shiftclock_backend/shift"

	"github.com/spf13/cobra"
)

var statusCmd = LeafCommand{
	Use:   "status",
	Short: "Show today's shift",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		return runStatus(cmd, sess)
	},
}.Build()

func runStatus(cmd *cobra.Command, sess *session) error {
	snap, err := sess.ctrl.Activate(commandContext(cmd))
	if err != nil {
		return err
	}
	printSnapshot(cmd, sess, snap)
	return nil
}

func printSnapshot(cmd *cobra.Command, sess *session, snap shift.Snapshot) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s   %s\n", Silent("Employee:"), Primary(fmt.Sprintf("%d", sess.employeeID)))
	_, _ = fmt.Fprintf(w, "%s       %s\n", Silent("Date:"), snap.Date)
	_, _ = fmt.Fprintf(w, "%s      %s\n", Silent("State:"), stateLabel(snap.State))

	roster := formatWindow(snap.Roster.ShiftStart, snap.Roster.ShiftEnd, sess.loc) + " " + snap.Roster.TaskNotes
	if snap.Roster.Synthesized {
		roster += " " + Silent("(default)")
	}
	_, _ = fmt.Fprintf(w, "%s     %s\n", Silent("Roster:"), roster)

	if snap.Record == nil {
		return
	}
	if snap.Record.CheckInTime != nil {
		_, _ = fmt.Fprintf(w, "%s %s\n", Silent("Checked in:"), *snap.Record.CheckInTime)
	}
	switch snap.State {
	case shift.Active:
		_, _ = fmt.Fprintf(w, "%s    %s (%s)\n", Silent("Elapsed:"), Primary(snap.Elapsed), formatPercent(snap.Percent))
	case shift.Completed:
		_, _ = fmt.Fprintf(w, "%s %s\n", Silent("Checked out:"), *snap.Record.CheckOutTime)
		_, _ = fmt.Fprintf(w, "%s     %s (%s)\n", Silent("Worked:"), Primary(snap.Elapsed), formatPercent(snap.Percent))
	}
}
