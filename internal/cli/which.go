package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jolt/internal/shim"
)

func newWhichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "which <name>",
		Short: "Print the executable a shim would run here",
		Args:  cobra.ExactArgs(1),
		RunE:  runWhich,
	}
}

func runWhich(cmd *cobra.Command, args []string) error {
	rc, err := openRunContext(cmd)
	if err != nil {
		return err
	}
	defer rc.Close()

	name := args[0]
	env, err := rc.session.Env()
	if err != nil {
		return err
	}
	out, err := shim.Dispatch(name, env)
	if err != nil {
		return err
	}
	rc.logger.Debug("resolved", "name", name, "outcome", out.Kind, "source", out.Source)

	path, err := shim.Target(name, out, os.Getenv("PATH"), rc.layout.ShimDir())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
