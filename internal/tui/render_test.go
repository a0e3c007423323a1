package tui

import (
	"bytes"
	"strings"
	"testing"

	"jolt/internal/resolve"
	"jolt/internal/toolchain"
	"jolt/internal/version"
)

var (
	projectSrc = resolve.ProjectSource("/p/package.json")
	defaultSrc = resolve.DefaultSource
)

func sampleActive() toolchain.Active {
	return toolchain.Active{
		Runtime: &toolchain.Node{Source: projectSrc, Version: version.MustParse("14.2.0")},
		PackageManagers: []toolchain.PackageManager{
			{Kind: toolchain.Yarn, Source: defaultSrc, Version: version.MustParse("1.22.0")},
		},
		Packages: []toolchain.Package{{
			Name:    "typescript",
			Source:  defaultSrc,
			Version: version.MustParse("3.9.2"),
			Node:    version.MustParse("14.2.0"),
			Tools:   []string{"tsc", "tsserver"},
		}},
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{"": FormatAuto, "human": FormatHuman, " Plain ": FormatPlain} {
		got, err := ParseFormat(raw)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q): expected %q, got %q (%v)", raw, want, got, err)
		}
	}
	if _, err := ParseFormat("json"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFormatFor(t *testing.T) {
	var buf bytes.Buffer
	if got := FormatFor(FormatAuto, &buf); got != FormatPlain {
		t.Fatalf("expected plain for a non-terminal writer, got %q", got)
	}
	if got := FormatFor(FormatHuman, &buf); got != FormatHuman {
		t.Fatalf("expected explicit human to win, got %q", got)
	}
}

func TestPlainActive(t *testing.T) {
	got, ok := Plain(sampleActive())
	if !ok {
		t.Fatal("expected output")
	}
	want := strings.Join([]string{
		"runtime node@v14.2.0 (current @ /p/package.json)",
		"package-manager yarn@v1.22.0 (default)",
		"package typescript@3.9.2 / tsc, tsserver / node@v14.2.0 (default)",
	}, "\n")
	if got != want {
		t.Fatalf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestPlainToolAndInactive(t *testing.T) {
	tool := toolchain.Tool{Name: "tsc", Hosts: sampleActive().Packages}
	got, _ := Plain(tool)
	if got != "tool tsc / typescript@3.9.2 / tsc, tsserver / node@v14.2.0 (default)" {
		t.Fatalf("unexpected tool line %q", got)
	}

	inactive := toolchain.Packages{{Name: "left-pad", Version: version.MustParse("1.3.0")}}
	got, _ = Plain(inactive)
	if got != "package left-pad@1.3.0" {
		t.Fatalf("unexpected inactive line %q", got)
	}
}

func TestEmptyRendersNothing(t *testing.T) {
	empties := []toolchain.Toolchain{
		toolchain.Active{},
		toolchain.All{},
		toolchain.Runtimes(nil),
		toolchain.PackageManagers{Kind: toolchain.Yarn},
		toolchain.Packages(nil),
		toolchain.Tool{Name: "tsc"},
	}
	for _, tc := range empties {
		if out, ok := Plain(tc); ok || out != "" {
			t.Fatalf("plain %T: expected nothing, got %q", tc, out)
		}
		if out, ok := Human(tc); ok || out != "" {
			t.Fatalf("human %T: expected nothing, got %q", tc, out)
		}
	}
}

func TestHumanActive(t *testing.T) {
	got, ok := Human(sampleActive())
	if !ok {
		t.Fatal("expected output")
	}
	for _, want := range []string{
		"Currently active tools:",
		"Node: v14.2.0",
		"(current @ /p/package.json)",
		"Yarn: v1.22.0",
		"tsc, tsserver",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in\n%s", want, got)
		}
	}
}

func TestHumanAll(t *testing.T) {
	all := toolchain.All{
		Runtimes: []toolchain.Node{
			{Source: defaultSrc, Version: version.MustParse("12.0.0")},
			{Version: version.MustParse("14.2.0")},
		},
		PackageManagers: []toolchain.PackageManager{
			{Kind: toolchain.Npm, Source: defaultSrc, Version: version.MustParse("6.9.0")},
			{Kind: toolchain.Yarn, Version: version.MustParse("1.19.0")},
		},
		Packages: []toolchain.Package{{Name: "left-pad", Version: version.MustParse("1.3.0")}},
	}
	got, ok := Human(all)
	if !ok {
		t.Fatal("expected output")
	}
	for _, want := range []string{"Node runtimes:", "v12.0.0", "v14.2.0", "npm:", "Yarn:", "v1.19.0", "left-pad@1.3.0", "not installed"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in\n%s", want, got)
		}
	}
}

func TestShimStylerKeepsText(t *testing.T) {
	got := ShimStyler(resolve.Outcome{Kind: resolve.NotInstalled}, "[executable not installed!]")
	if !strings.Contains(got, "[executable not installed!]") {
		t.Fatalf("expected description to survive styling, got %q", got)
	}
}
