package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var crewListCmd = LeafCommand{
	Use:   "list",
	Short: "List employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		return runCrewList(cmd, sess)
	},
}.Build()

var crewAddCmd = LeafCommand{
	Use:   "add <full name>",
	Short: "Register an employee",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		return runCrewAdd(cmd, sess, strings.Join(args, " "))
	},
}.Build()

var crewCmd = GroupCommand{
	Use:   "crew",
	Short: "Manage employees",
	Subcommands: []*cobra.Command{
		crewListCmd,
		crewAddCmd,
	},
}.Build()

func runCrewList(cmd *cobra.Command, sess *session) error {
	employees, err := sess.client.Employees(commandContext(cmd))
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, emp := range employees {
		marker := " "
		if emp.ID == sess.employeeID {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %s %s\n", marker, Silent(fmt.Sprintf("%4d", emp.ID)), emp.FullName)
	}
	return nil
}

func runCrewAdd(cmd *cobra.Command, sess *session, fullName string) error {
	emp, err := sess.client.CreateEmployee(commandContext(cmd), fullName)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", Success("Added"), Primary(emp.FullName), Silent(fmt.Sprintf("(id %d)", emp.ID)))
	return nil
}
