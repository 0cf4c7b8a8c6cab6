package cmd

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/byterings/ghp/internal/exchange"
	"github.com/byterings/ghp/internal/platform"
	"github.com/byterings/ghp/internal/ui"
	"github.com/spf13/cobra"
)

var (
	exportFlagFormat string
	exportFlagOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export profiles as TOML, YAML or JSON",
	Long: `Write every profile to stdout or a file.

The format defaults to the --output extension, or toml when writing to stdout.`,
	Example: `  ghp export
  ghp export --format json
  ghp export --output profiles.yaml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFlagFormat, "format", "f", "", "Output format: toml, yaml or json")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Write to FILE instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(exportFlagFormat, exportFlagOutput)
	if err != nil {
		return err
	}

	store, err := loadStore()
	if err != nil {
		return err
	}

	if exportFlagOutput == "" {
		return exchange.Export(cmd.OutOrStdout(), format, store)
	}

	path, err := absPath(exportFlagOutput)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := exchange.Export(&buf, format, store); err != nil {
		return err
	}
	if err := platform.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	slog.Debug("exported profiles", "path", path, "format", format)

	ui.Success(cmd.OutOrStdout(), fmt.Sprintf("Exported %d profile(s) to %s", len(store.Profiles), path))
	return nil
}

// resolveFormat prefers the flag, then the file extension, then toml
func resolveFormat(flag, path string) (exchange.Format, error) {
	if flag != "" {
		return exchange.ParseFormat(flag)
	}
	if path != "" {
		return exchange.FormatFromPath(path)
	}
	return exchange.FormatTOML, nil
}
