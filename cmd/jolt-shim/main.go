// jolt-shim is the executable every shim links to. It resolves the tool named
// by its own invocation name and runs the selected executable in its place.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jolt/internal/config"
	"jolt/internal/layout"
	"jolt/internal/logx"
	"jolt/internal/session"
	"jolt/internal/shim"
)

func main() {
	os.Exit(run())
}

func run() int {
	name := strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
	if name == "jolt-shim" {
		fmt.Fprintln(os.Stderr, "jolt-shim: run it through a shim link, e.g. `jolt shim <name>`")
		return 1
	}

	l, err := layout.Resolve("")
	if err != nil {
		return fail(err)
	}

	level := ""
	if cfg, err := config.Load(l.ConfigFile()); err == nil && !config.HasErrors(cfg.Validate()) {
		level = cfg.Log.Level
	}
	logger, closer, err := logx.New(os.Stderr, logx.Options{Level: level})
	if err != nil {
		return fail(err)
	}
	defer closer.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return fail(fmt.Errorf("get working directory: %w", err))
	}
	env, err := session.New(l, cwd, logger).Env()
	if err != nil {
		return fail(err)
	}

	out, err := shim.Dispatch(name, env)
	if err != nil {
		return fail(err)
	}
	target, err := shim.Target(name, out, os.Getenv("PATH"), l.ShimDir())
	if err != nil {
		return fail(err)
	}
	logger.Debug("launching", "name", name, "outcome", out.Kind, "target", target)

	// The child receives terminal signals directly; the launcher only waits.
	defer shim.CatchInterrupts()()

	code, err := shim.Run(context.Background(), target, os.Args[1:], shim.Environ(os.Environ(), out, target), shim.Stdio{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	})
	if err != nil {
		return fail(err)
	}
	return code
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "jolt: %v\n", err)
	return 1
}
