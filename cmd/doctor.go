package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/byterings/ghp/internal/config"
	"github.com/byterings/ghp/internal/keys"
	"github.com/byterings/ghp/internal/platform"
	"github.com/byterings/ghp/internal/sshconfig"
	"github.com/byterings/ghp/internal/ui"
	"github.com/spf13/cobra"
)

var doctorFlagFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration issues",
	Long: `Check ghp configuration health and diagnose common issues.

Runs checks on:
- Store file validity
- SSH key existence and permissions
- SSH config entries
- SSH agent status
- Git config alignment`,
	Example: `  ghp doctor        # Run diagnostics
  ghp doctor --fix  # Auto-fix key permission issues`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFlagFix, "fix", false, "Auto-fix permission issues")
}

type checkResult struct {
	passed  bool
	message string
	fix     string // suggested fix
}

type checkSection struct {
	title   string
	results []checkResult
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Checking ghp configuration...")

	path, err := storePath()
	if err != nil {
		return err
	}
	if path == "" {
		if _, path, err = config.DefaultPaths(); err != nil {
			return err
		}
	}

	storeResults, store := checkStore(path)
	sections := []checkSection{{"Store", storeResults}}

	fixed := 0
	if store != nil {
		keyResults, keyFixed := checkKeys(store, doctorFlagFix)
		fixed += keyFixed
		sections = append(sections,
			checkSection{"SSH Keys", keyResults},
			checkSection{"SSH Config", checkSSHConfig(store)},
			checkSection{"SSH Agent", checkSSHAgent()},
			checkSection{"Git Config", checkGitConfig(cmd.Context(), store)},
		)
	}

	errCount, warnCount := 0, 0
	for _, section := range sections {
		if len(section.results) == 0 {
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, section.title)
		fmt.Fprintln(out, strings.Repeat("─", len(section.title)))
		for _, r := range section.results {
			printCheckResult(out, r)
			switch {
			case r.passed:
			case r.fix == "":
				errCount++
			default:
				warnCount++
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "─────────")

	if fixed > 0 {
		ui.Success(out, fmt.Sprintf("Auto-fixed %d issue(s)", fixed))
	}

	switch {
	case errCount == 0 && warnCount == 0:
		ui.Success(out, "All checks passed!")
	case errCount == 0:
		ui.Warning(out, fmt.Sprintf("%d warning(s)", warnCount))
	default:
		ui.Error(out, fmt.Sprintf("%d error(s), %d warning(s)", errCount, warnCount))
	}

	return nil
}

func printCheckResult(w io.Writer, r checkResult) {
	switch {
	case r.passed:
		fmt.Fprintf(w, "  ✓ %s\n", r.message)
	case r.fix != "":
		fmt.Fprintf(w, "  ⚠ %s\n", r.message)
		fmt.Fprintf(w, "    → %s\n", r.fix)
	default:
		fmt.Fprintf(w, "  ✗ %s\n", r.message)
	}
}

func checkStore(path string) ([]checkResult, *config.Store) {
	var results []checkResult

	exists, err := config.Exists(path)
	if err != nil {
		return append(results, checkResult{message: fmt.Sprintf("Error checking store: %v", err)}), nil
	}
	if !exists {
		return append(results, checkResult{
			message: fmt.Sprintf("Store not found: %s", path),
			fix:     "Run: ghp setup",
		}), nil
	}
	results = append(results, checkResult{passed: true, message: fmt.Sprintf("Store exists: %s", path)})

	store, err := config.Load(path)
	if err != nil {
		return append(results, checkResult{message: fmt.Sprintf("Store unreadable: %v", err)}), nil
	}

	if runtime.GOOS != "windows" {
		if ok, err := platform.CheckFilePermissions(path); err == nil && !ok {
			results = append(results, checkResult{
				message: "Store is readable by other users",
				fix:     platform.GetPermissionFixCommand(path),
			})
		}
	}

	if len(store.Profiles) == 0 {
		results = append(results, checkResult{message: "No profiles configured", fix: "Run: ghp add <profile>"})
	} else {
		results = append(results, checkResult{passed: true, message: fmt.Sprintf("%d profile(s) configured", len(store.Profiles))})
	}

	_, activeFound := store.Profiles[store.Active]
	switch {
	case store.Active == "":
		results = append(results, checkResult{message: "No active profile", fix: "Run: ghp switch <profile>"})
	case !activeFound:
		results = append(results, checkResult{message: fmt.Sprintf("Active profile '%s' not found in store", store.Active)})
	default:
		results = append(results, checkResult{passed: true, message: fmt.Sprintf("Active profile: %s", store.Active)})
	}

	return results, store
}

func checkKeys(store *config.Store, autoFix bool) ([]checkResult, int) {
	var results []checkResult
	fixed := 0

	for _, name := range store.Names() {
		keyPath := store.Profiles[name].SSHKeyPath
		if keyPath == "" {
			results = append(results, checkResult{
				message: fmt.Sprintf("No SSH key path for '%s'", name),
				fix:     fmt.Sprintf("Run: ghp add %s --ssh-key <path>", name),
			})
			continue
		}

		status, err := keys.CheckKeyPath(keyPath)
		if err != nil {
			results = append(results, checkResult{message: fmt.Sprintf("SSH key for '%s': %v", name, err)})
			continue
		}

		switch status {
		case keys.KeyMissing:
			results = append(results, checkResult{
				message: fmt.Sprintf("SSH key missing for '%s': %s", name, keyPath),
				fix:     fmt.Sprintf("Run: ssh-keygen -t ed25519 -f %s", keyPath),
			})
		case keys.KeyIsDirectory:
			results = append(results, checkResult{message: fmt.Sprintf("SSH key path for '%s' is a directory: %s", name, keyPath)})
		case keys.KeyInsecure:
			if autoFix {
				if err := os.Chmod(keyPath, 0600); err == nil {
					results = append(results, checkResult{
						passed:  true,
						message: fmt.Sprintf("SSH key '%s' permissions fixed (600)", name),
					})
					fixed++
					continue
				}
			}
			results = append(results, checkResult{
				message: fmt.Sprintf("SSH key '%s' has insecure permissions", name),
				fix:     platform.GetPermissionFixCommand(keyPath),
			})
		default:
			message := fmt.Sprintf("SSH key '%s' OK", name)
			if fingerprint, err := keys.Fingerprint(keyPath); err == nil {
				message += " (" + fingerprint + ")"
			}
			results = append(results, checkResult{passed: true, message: message})
		}
	}

	return results, fixed
}

func checkSSHConfig(store *config.Store) []checkResult {
	var results []checkResult

	content, err := sshconfig.ReadFile(store.SSHConfigPath)
	if err != nil {
		return append(results, checkResult{message: err.Error()})
	}

	if sshconfig.HasHostBlock(content, sshconfig.GitHubHost) {
		results = append(results, checkResult{passed: true, message: fmt.Sprintf("Host %s present", sshconfig.GitHubHost)})
	} else {
		results = append(results, checkResult{
			message: fmt.Sprintf("Host %s missing from %s", sshconfig.GitHubHost, store.SSHConfigPath),
			fix:     "Run: ghp switch <profile>",
		})
	}

	for _, name := range store.Names() {
		alias := sshconfig.AliasHost(name)
		if sshconfig.HasHostBlock(content, alias) {
			results = append(results, checkResult{passed: true, message: fmt.Sprintf("Host %s present", alias)})
		} else {
			results = append(results, checkResult{
				message: fmt.Sprintf("Host %s missing", alias),
				fix:     fmt.Sprintf("Run: ghp add %s", name),
			})
		}
	}

	return results
}

func checkSSHAgent() []checkResult {
	var results []checkResult

	authSock := os.Getenv("SSH_AUTH_SOCK")
	if authSock == "" {
		return append(results, checkResult{
			message: "SSH agent not running (SSH_AUTH_SOCK not set)",
			fix:     "Run: eval $(ssh-agent)",
		})
	}
	if _, err := os.Stat(authSock); err != nil {
		return append(results, checkResult{
			message: "SSH agent socket missing",
			fix:     "Run: eval $(ssh-agent)",
		})
	}
	results = append(results, checkResult{passed: true, message: "SSH agent running"})

	if !platform.HasCommand("ssh-add") {
		return results
	}
	output, err := exec.Command("ssh-add", "-l").CombinedOutput()
	switch {
	case err == nil:
		lines := strings.Split(strings.TrimSpace(string(output)), "\n")
		results = append(results, checkResult{passed: true, message: fmt.Sprintf("%d key(s) loaded in agent", len(lines))})
	case strings.Contains(string(output), "no identities"):
		results = append(results, checkResult{message: "No keys loaded in SSH agent", fix: "Run: ssh-add <key>"})
	default:
		results = append(results, checkResult{message: "Could not list SSH agent keys"})
	}

	return results
}

func checkGitConfig(ctx context.Context, store *config.Store) []checkResult {
	var results []checkResult

	profile, ok := store.Profiles[store.Active]
	if store.Active == "" || !ok {
		return results
	}

	backend, err := newIdentityBackend()
	if err != nil {
		return append(results, checkResult{message: err.Error()})
	}
	name, email, err := backend.GlobalIdentity(ctx)
	if err != nil {
		return append(results, checkResult{message: fmt.Sprintf("Could not read git identity: %v", err)})
	}

	fix := fmt.Sprintf("Run: ghp switch %s", store.Active)
	if name == profile.Username {
		results = append(results, checkResult{passed: true, message: fmt.Sprintf("user.name = %s", name)})
	} else {
		results = append(results, checkResult{
			message: fmt.Sprintf("user.name mismatch: '%s' (expected: '%s')", name, profile.Username),
			fix:     fix,
		})
	}
	if email == profile.Email {
		results = append(results, checkResult{passed: true, message: fmt.Sprintf("user.email = %s", email)})
	} else {
		results = append(results, checkResult{
			message: fmt.Sprintf("user.email mismatch: '%s' (expected: '%s')", email, profile.Email),
			fix:     fix,
		})
	}

	return results
}
