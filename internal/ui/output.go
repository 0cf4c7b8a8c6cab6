package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// ProfileRow is one line of the profile table
type ProfileRow struct {
	Name        string
	Username    string
	Email       string
	SSHKeyPath  string
	Fingerprint string
	Active      bool
}

// PrintProfiles prints the list of profiles in a formatted way
func PrintProfiles(w io.Writer, rows []ProfileRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No profiles configured yet.")
		fmt.Fprintln(w, "\nAdd your first profile with: ghp add <profile>")
		return nil
	}

	data := [][]string{{"", "PROFILE", "USERNAME", "EMAIL", "SSH KEY", "FINGERPRINT"}}
	for _, row := range rows {
		indicator := " "
		if row.Active {
			indicator = "→"
		}
		data = append(data, []string{
			indicator,
			row.Name,
			dash(row.Username),
			dash(row.Email),
			dash(row.SSHKeyPath),
			dash(row.Fingerprint),
		})
	}
	return PrintTable(w, data)
}

// PrintTable writes tab-aligned rows
func PrintTable(w io.Writer, data [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	for _, line := range data {
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Success prints a success message with checkmark
func Success(w io.Writer, message string) {
	fmt.Fprintf(w, "✓ %s\n", message)
}

// Error prints an error message
func Error(w io.Writer, message string) {
	fmt.Fprintf(w, "✗ %s\n", message)
}

// Info prints an info message
func Info(w io.Writer, message string) {
	fmt.Fprintf(w, "ℹ %s\n", message)
}

// Warning prints a warning message
func Warning(w io.Writer, message string) {
	fmt.Fprintf(w, "⚠ %s\n", message)
}
