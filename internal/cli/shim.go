package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jolt/internal/layout"
	"jolt/internal/resolve"
	"jolt/internal/shim"
	"jolt/internal/tui"
)

// LauncherName is the executable every shim links to.
const LauncherName = "jolt-shim"

var (
	shimDelete  bool
	shimVerbose bool
)

// launcherPath locates jolt-shim next to the running jolt binary. Replaced in tests.
var launcherPath = func() (string, error) {
	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate jolt executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(self); err == nil {
		self = resolved
	}
	return filepath.Join(filepath.Dir(self), layout.Executable(LauncherName)), nil
}

func newShimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shim [<name>]",
		Short: "List, create or delete shims",
		Long: `List, create or delete shims.

With no name, shim lists the shims in your jolt bin directory; --verbose
also shows what each one runs from the current directory. With a name,
shim creates that shim, or deletes it with --delete.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShim,
	}

	cmd.Flags().BoolVarP(&shimDelete, "delete", "d", false, "Delete the named shim")
	cmd.Flags().BoolVarP(&shimVerbose, "verbose", "v", false, "Show what each shim resolves to")

	return cmd
}

func runShim(cmd *cobra.Command, args []string) error {
	rc, err := openRunContext(cmd)
	if err != nil {
		return err
	}
	defer rc.Close()

	if len(args) == 1 {
		if shimDelete {
			return deleteShim(cmd, rc, args[0])
		}
		return createShim(cmd, rc, args[0])
	}
	if shimDelete {
		return errors.New("--delete requires a shim name")
	}
	return listShims(cmd, rc)
}

func createShim(cmd *cobra.Command, rc *runContext, name string) error {
	launcher, err := launcherPath()
	if err != nil {
		return err
	}
	created, err := shim.Create(rc.layout.ShimDir(), name, launcher)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Created shim %s\n", name)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Shim %s already exists\n", name)
	}
	return nil
}

func deleteShim(cmd *cobra.Command, rc *runContext, name string) error {
	deleted, err := shim.Delete(rc.layout.ShimDir(), name)
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted shim %s\n", name)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "No shim named %s\n", name)
	}
	return nil
}

func listShims(cmd *cobra.Command, rc *runContext) error {
	verboseList := shimVerbose || rc.config.Shim.Verbose

	dispatch := func(name string) (resolve.Outcome, error) {
		env, err := rc.session.Env()
		if err != nil {
			return resolve.Outcome{}, err
		}
		out, err := shim.Dispatch(name, env)
		if err == nil {
			rc.logger.Debug("resolved shim", "name", name, "outcome", out.Kind)
		}
		return out, err
	}

	listing, err := shim.List(rc.layout.ShimDir(), verboseList, dispatch)
	if err != nil {
		return err
	}

	var style shim.Styler
	if tui.IsTerminal(cmd.OutOrStdout()) {
		style = tui.ShimStyler
	}
	if err := listing.Write(cmd.OutOrStdout(), style); err != nil {
		return err
	}

	if !listing.OK() {
		rc.logger.Debug("shim listing failures", "err", listing.Err())
		return &ExitError{Code: 1}
	}
	return nil
}
