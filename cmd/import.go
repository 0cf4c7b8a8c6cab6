package cmd

import (
	"fmt"
	"os"

	"github.com/byterings/ghp/internal/exchange"
	"github.com/byterings/ghp/internal/sshconfig"
	"github.com/byterings/ghp/internal/ui"
	"github.com/spf13/cobra"
)

var importFlagFormat string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import profiles from a TOML, YAML or JSON file",
	Long: `Add the profiles of a file written by 'ghp export'.

Profiles with the same name are overwritten. Each imported profile gets its
"Host github.com-<profile>" alias in the SSH config, as with 'ghp add'.`,
	Example: `  ghp import profiles.toml
  ghp import backup --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&importFlagFormat, "format", "f", "", "Input format: toml, yaml or json (default from extension)")
}

func runImport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path, err := absPath(args[0])
	if err != nil {
		return err
	}
	format, err := resolveFormat(importFlagFormat, path)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := exchange.Decode(file, format)
	if err != nil {
		return err
	}

	store, err := loadStore()
	if err != nil {
		return err
	}

	names := exchange.Import(store, doc)

	content, err := sshconfig.ReadFile(store.SSHConfigPath)
	if err != nil {
		return err
	}
	for _, name := range names {
		profile := store.Profiles[name]
		block := sshconfig.AliasHostBlock(name, profile.Username, profile.SSHKeyPath)
		content = sshconfig.ReplaceOrAppendHostBlock(content, sshconfig.AliasHost(name), block)
	}
	if len(names) > 0 {
		if err := sshconfig.WriteFile(store.SSHConfigPath, content); err != nil {
			return err
		}
	}

	if err := store.Save(); err != nil {
		return err
	}

	for _, name := range names {
		warnKeyStatus(out, store.Profiles[name].SSHKeyPath)
	}
	ui.Success(out, fmt.Sprintf("Imported %d profile(s)", len(names)))
	return nil
}
