package cli

import (
	"fmt"

	"shiftclock_backend/models"
	"shiftclock_backend/shift"

	"github.com/spf13/cobra"
)

var rosterShowCmd = LeafCommand{
	Use:   "show",
	Short: "Show the roster entry that applies to you",
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
		return runRosterShow(cmd, sess, date)
	},
}.Build()

var rosterAddCmd = LeafCommand{
	Use:   "add",
	Short: "Add a roster entry",
	StrFlags: []StringFlag{
		{Name: "date", Usage: "date as YYYY-MM-DD (default today)"},
		{Name: "start", Usage: "shift start as HH:MM", Default: "08:00"},
		{Name: "end", Usage: "shift end as HH:MM", Default: "18:00"},
		{Name: "notes", Usage: "task notes"},
	},
	IntFlags: []IntFlag{
		{Name: "employee", Usage: "employee id (0 applies to everyone)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		date, _ := cmd.Flags().GetString("date")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		notes, _ := cmd.Flags().GetString("notes")
		employee, _ := cmd.Flags().GetInt("employee")
		return runRosterAdd(cmd, sess, date, start, end, notes, employee)
	},
}.Build()

var rosterCmd = GroupCommand{
	Use:   "roster",
	Short: "Show or plan shift windows",
	Subcommands: []*cobra.Command{
		rosterShowCmd,
		rosterAddCmd,
	},
}.Build()

func runRosterShow(cmd *cobra.Command, sess *session, date string) error {
	if date == "" {
		date = sess.today()
	}
	entries, err := sess.client.Roster(commandContext(cmd), date)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	resolved := shift.ResolveRoster(sess.employeeID, date, entries, sess.loc)
	_, _ = fmt.Fprintf(w, "%s %s\n", Silent("Roster for"), Primary(date))
	_, _ = fmt.Fprintf(w, "  %s %s", formatWindow(resolved.ShiftStart, resolved.ShiftEnd, sess.loc), resolved.TaskNotes)
	switch {
	case resolved.Synthesized:
		_, _ = fmt.Fprintf(w, " %s\n", Silent("(default)"))
	case resolved.EmployeeID == nil:
		_, _ = fmt.Fprintf(w, " %s\n", Silent("(everyone)"))
	default:
		_, _ = fmt.Fprintln(w)
	}
	return nil
}

func runRosterAdd(cmd *cobra.Command, sess *session, date, start, end, notes string, employee int) error {
	if date == "" {
		date = sess.today()
	}
	req := models.CreateRosterRequest{
		Date:       date,
		ShiftStart: start,
		ShiftEnd:   end,
		TaskNotes:  notes,
	}
	if employee > 0 {
		req.EmployeeID = &employee
	}
	entry, err := sess.client.CreateRoster(commandContext(cmd), req)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", Success("Added roster entry"),
		Primary(fmt.Sprintf("#%d", entry.ID)), formatWindow(entry.ShiftStart, entry.ShiftEnd, sess.loc))
	return nil
}
