package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var beginCmd = LeafCommand{
	Use:   "begin",
	Short: "Check in and start today's shift",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		return runBegin(cmd, sess)
	},
}.Build()

func runBegin(cmd *cobra.Command, sess *session) error {
	if _, err := sess.ctrl.Activate(commandContext(cmd)); err != nil {
		return err
	}
	snap, err := sess.ctrl.BeginShift(commandContext(cmd))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Success("Shift started at"), Primary(*snap.Record.CheckInTime))
	return nil
}
