package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jolt/internal/shim"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the jolt home directory and the node, npm, npx and yarn shims",
		Args:  cobra.NoArgs,
		RunE:  runSetup,
	}
}

func runSetup(cmd *cobra.Command, _ []string) error {
	rc, err := openRunContext(cmd)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := rc.layout.EnsureDirs(); err != nil {
		return err
	}
	launcher, err := launcherPath()
	if err != nil {
		return err
	}

	var errs []error
	for _, name := range shim.CoreNames() {
		created, err := shim.Create(rc.layout.ShimDir(), name, launcher)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "Created shim %s\n", name)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "jolt home ready at %s\n", rc.layout.Home)
	fmt.Fprintf(cmd.OutOrStdout(), "Add %s to the front of your PATH to use the shims.\n", rc.layout.ShimDir())
	return nil
}
