package cli

import (
	"fmt"
	"os"
	"time"

	"shiftclock_backend/middleware"

	"github.com/spf13/cobra"
)

var tokenCmd = LeafCommand{
	Use:   "token",
	Short: "Mint a development token for an employee",
	StrFlags: []StringFlag{
		{Name: "secret", Usage: "signing secret (default $JWT_SECRET)"},
		{Name: "ttl", Usage: "token lifetime", Default: "24h"},
	},
	IntFlags: []IntFlag{
		{Name: "employee", Usage: "employee id"},
	},
	BoolFlags: []BoolFlag{
		{Name: "save", Usage: "store the token in the config file"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, _ := cmd.Flags().GetString("secret")
		if secret == "" {
			secret = os.Getenv("JWT_SECRET")
		}
		ttl, _ := cmd.Flags().GetString("ttl")
		employee, _ := cmd.Flags().GetInt("employee")
		save, _ := cmd.Flags().GetBool("save")

		path := ""
		if save {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path = ConfigPath(homeDir)
			if flagPath, _ := cmd.Flags().GetString("config"); flagPath != "" {
				path = flagPath
			}
		}
		return runToken(cmd, secret, ttl, employee, path)
	},
}.Build()

func runToken(cmd *cobra.Command, secret, ttl string, employee int, savePath string) error {
	if secret == "" {
		return fmt.Errorf("no signing secret: pass --secret or set JWT_SECRET")
	}
	if employee <= 0 {
		return fmt.Errorf("--employee must be a positive id")
	}
	lifetime, err := time.ParseDuration(ttl)
	if err != nil || lifetime <= 0 {
		return fmt.Errorf("invalid --ttl %q", ttl)
	}

	token, err := middleware.GenerateToken([]byte(secret), employee, lifetime)
	if err != nil {
		return err
	}

	if savePath != "" {
		settings, err := readSettingsFile(savePath)
		if err != nil {
			return err
		}
		settings.Token = token
		if err := WriteSettings(savePath, settings); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Success("Token saved to"), Primary(savePath))
		return nil
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
