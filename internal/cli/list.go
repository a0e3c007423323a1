package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jolt/internal/toolchain"
	"jolt/internal/tui"
)

var (
	listFormat  string
	listCurrent bool
	listDefault bool
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [all|node|yarn|<package-or-tool>]",
		Short: "Show the tools in your toolchain",
		Long: `Show the tools in your toolchain.

With no argument, list shows what is active in the current directory.
"all" shows every installed version, "node" and "yarn" show the installed
versions of that tool, and any other name shows a package or the packages
that provide an executable of that name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runList,
	}

	cmd.Flags().StringVar(&listFormat, "format", "", "Output format: human or plain (default human for terminals, plain otherwise)")
	cmd.Flags().BoolVar(&listCurrent, "current", false, "Show only the tools currently in effect")
	cmd.Flags().BoolVar(&listDefault, "default", false, "Show only your default tools")
	cmd.MarkFlagsMutuallyExclusive("current", "default")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := toolchain.FilterFrom(listCurrent, listDefault)
	if err != nil {
		return err
	}

	rc, err := openRunContext(cmd)
	if err != nil {
		return err
	}
	defer rc.Close()

	format, err := listOutputFormat(rc)
	if err != nil {
		return err
	}

	in, err := rc.session.Input()
	if err != nil {
		return err
	}

	var target string
	if len(args) == 1 {
		target = args[0]
	}

	var report toolchain.Toolchain
	switch target {
	case "":
		report = toolchain.ActiveToolchain(in, filter)
	case "all":
		report = toolchain.AllToolchain(in)
	case "node":
		report = toolchain.NodeVersions(in, filter)
	case "yarn":
		report = toolchain.YarnVersions(in, filter)
	default:
		if report, err = toolchain.PackageOrTool(target, in, filter); err != nil {
			return err
		}
	}

	render := tui.Plain
	if tui.FormatFor(format, cmd.OutOrStdout()) == tui.FormatHuman {
		render = tui.Human
	}
	if text, ok := render(report); ok {
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}
	return nil
}

// listOutputFormat prefers --format, then list.format from the config.
func listOutputFormat(rc *runContext) (tui.Format, error) {
	if listFormat != "" {
		return tui.ParseFormat(listFormat)
	}
	format, err := tui.ParseFormat(rc.config.List.Format)
	if err != nil {
		// Already reported as a config warning.
		return tui.FormatAuto, nil
	}
	return format, nil
}
