package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var endCmd = LeafCommand{
	Use:   "end",
	Short: "Check out and close today's shift",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		return runEnd(cmd, sess)
	},
}.Build()

func runEnd(cmd *cobra.Command, sess *session) error {
	if _, err := sess.ctrl.Activate(commandContext(cmd)); err != nil {
		return err
	}
	snap, err := sess.ctrl.EndShift(commandContext(cmd))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s, %s %s (%s)\n",
		Success("Shift closed at"), Primary(*snap.Record.CheckOutTime),
		Silent("worked"), Primary(snap.Elapsed), formatPercent(snap.Percent))
	return nil
}
