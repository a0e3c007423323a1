package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jolt/internal/config"
	"jolt/internal/layout"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the jolt configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigEditCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration in YAML",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

func newConfigEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the configuration in $EDITOR",
		Args:  cobra.NoArgs,
		RunE:  runConfigEdit,
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	rc, err := openRunContext(cmd)
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := rc.config.Marshal()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	if len(data) == 0 || data[len(data)-1] != '\n' {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	l, err := layout.Resolve(homeDir)
	if err != nil {
		return err
	}
	path := l.ConfigFile()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	argv := editorCommand(os.Getenv("VISUAL"), os.Getenv("EDITOR"))
	editor := exec.CommandContext(cmd.Context(), argv[0], append(argv[1:], path)...)
	editor.Stdin = cmd.InOrStdin()
	editor.Stdout = cmd.OutOrStdout()
	editor.Stderr = cmd.ErrOrStderr()
	if err := editor.Run(); err != nil {
		return fmt.Errorf("run editor %s: %w", argv[0], err)
	}
	return nil
}

// editorCommand picks $VISUAL, then $EDITOR, then vi. Values are split on
// whitespace so "code -w" works; quoting is not supported.
func editorCommand(visual, editor string) []string {
	for _, v := range []string{visual, editor} {
		if fields := strings.Fields(v); len(fields) > 0 {
			return fields
		}
	}
	return []string{"vi"}
}

// writeDefaultConfig creates path with the default configuration unless a
// file is already there.
func writeDefaultConfig(path string) error {
	data, err := config.Default().Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write default config: %w", err)
	}
	return f.Close()
}
