package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"jolt/internal/config"
	"jolt/internal/inventory"
	"jolt/internal/layout"
	"jolt/internal/resolve"
	"jolt/internal/shim"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the jolt installation",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string
	Status  string // "ok", "warning", "error"
	Summary string
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	rc, err := openRunContext(cmd)
	if err != nil {
		return err
	}
	defer rc.Close()

	checks := []healthCheck{
		checkConfig(rc.config),
		checkShims(rc.layout),
		checkPath(rc.layout, os.Getenv("PATH")),
	}

	inv, invErr := rc.session.Inventory()
	checks = append(checks, checkDefaults(inv, invErr))
	if invErr == nil {
		checks = append(checks, checkProject(rc))
	}

	writeDoctorResult(cmd, rc.layout.Home, checks)
	for _, c := range checks {
		if c.Status == "error" {
			return &ExitError{Code: 1}
		}
	}
	return nil
}

func checkConfig(cfg config.Config) healthCheck {
	var warnings, errors int
	for _, v := range cfg.Validate() {
		switch v.Level {
		case "warning":
			warnings++
		case "error":
			errors++
		}
	}
	if errors > 0 {
		return healthCheck{Name: "Config", Status: "error", Summary: fmt.Sprintf("%d errors", errors)}
	}
	if warnings > 0 {
		return healthCheck{Name: "Config", Status: "warning", Summary: fmt.Sprintf("%d warnings", warnings)}
	}
	return healthCheck{Name: "Config", Status: "ok", Summary: fmt.Sprintf("version %d", cfg.Version)}
}

func checkShims(l layout.Layout) healthCheck {
	names, err := shim.Names(l.ShimDir())
	if err != nil {
		return healthCheck{Name: "Shims", Status: "error", Summary: err.Error()}
	}
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}

	var missing []string
	for _, name := range shim.CoreNames() {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return healthCheck{Name: "Shims", Status: "error", Summary: "missing " + joinComma(missing) + "; run `jolt setup`"}
	}
	return healthCheck{Name: "Shims", Status: "ok", Summary: fmt.Sprintf("%d shims", len(names))}
}

func checkPath(l layout.Layout, pathEnv string) healthCheck {
	want := filepath.Clean(l.ShimDir())
	for _, dir := range filepath.SplitList(pathEnv) {
		if filepath.Clean(dir) == want {
			return healthCheck{Name: "PATH", Status: "ok", Summary: "shim directory is on PATH"}
		}
	}
	return healthCheck{Name: "PATH", Status: "warning", Summary: want + " is not on PATH"}
}

func checkDefaults(inv *inventory.Inventory, err error) healthCheck {
	if err != nil {
		return healthCheck{Name: "Defaults", Status: "error", Summary: err.Error()}
	}
	var parts []string
	if v, ok := inv.Default(inventory.ToolNode); ok {
		parts = append(parts, "node v"+v.String())
	}
	if v, ok := inv.Default(inventory.ToolYarn); ok {
		parts = append(parts, "yarn v"+v.String())
	}
	if len(parts) == 0 {
		return healthCheck{Name: "Defaults", Status: "warning", Summary: "no default node; shims fall back to the system"}
	}
	return healthCheck{Name: "Defaults", Status: "ok", Summary: joinComma(parts)}
}

func checkProject(rc *runContext) healthCheck {
	env, err := rc.session.Env()
	if err != nil {
		return healthCheck{Name: "Project", Status: "error", Summary: err.Error()}
	}
	if env.Project == nil {
		return healthCheck{Name: "Project", Status: "ok", Summary: "no package.json here"}
	}

	manifest := env.Project.ManifestPath()
	sel := resolve.NodeSelection(env)
	if sel.Pending() {
		return healthCheck{Name: "Project", Status: "warning", Summary: fmt.Sprintf("%s: node %s is not installed", manifest, sel.Requirement)}
	}
	if yarn := resolve.YarnSelection(env); yarn.Pending() {
		return healthCheck{Name: "Project", Status: "warning", Summary: fmt.Sprintf("%s: yarn %s is not installed", manifest, yarn.Requirement)}
	}
	return healthCheck{Name: "Project", Status: "ok", Summary: manifest}
}

func writeDoctorResult(cmd *cobra.Command, home string, checks []healthCheck) {
	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("JOLT HEALTH:")+" "+home)

	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
		}
		fmt.Fprintf(out, "  %-10s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}
}

func joinComma(items []string) string {
	if len(items) == 0 {
		return ""
	}
	result := items[0]
	for _, item := range items[1:] {
		result += ", " + item
	}
	return result
}
