package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "shiftclock",
	Short:         "Clock in and out of your shift and watch it accrue",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "attendance server URL (env "+EnvServer+")")
	rootCmd.PersistentFlags().String("token", "", "access token (env "+EnvToken+")")
	rootCmd.PersistentFlags().String("timezone", "", "IANA timezone matching the server (env "+EnvTimezone+")")
	rootCmd.PersistentFlags().String("config", "", "config file (default ~/.config/shiftclock/config.yaml)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(beginCmd)
	rootCmd.AddCommand(endCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(peersCmd)
	rootCmd.AddCommand(crewCmd)
	rootCmd.AddCommand(tokenCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
