package cmd

import (
	"log/slog"

	"github.com/byterings/ghp/internal/keys"
	"github.com/byterings/ghp/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all configured profiles",
	Long:    `Display all configured GitHub profiles and highlight the active one.`,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	var rows []ui.ProfileRow
	for _, name := range store.Names() {
		profile := store.Profiles[name]

		fingerprint, err := keys.Fingerprint(profile.SSHKeyPath)
		if err != nil {
			slog.Debug("no fingerprint", "profile", name, "error", err)
		}

		rows = append(rows, ui.ProfileRow{
			Name:        name,
			Username:    profile.Username,
			Email:       profile.Email,
			SSHKeyPath:  profile.SSHKeyPath,
			Fingerprint: fingerprint,
			Active:      name == store.Active,
		})
	}

	return ui.PrintProfiles(cmd.OutOrStdout(), rows)
}
