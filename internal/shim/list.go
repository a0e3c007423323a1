package shim

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"jolt/internal/resolve"
)

// Entry is one shim found on disk and, in verbose mode, what it resolves to.
type Entry struct {
	Name    string
	Outcome resolve.Outcome
	Err     error
}

// Listing accumulates every entry; a failed entry never hides the others.
type Listing struct {
	Verbose bool
	Entries []Entry
}

// DispatchFunc resolves a single shim name.
type DispatchFunc func(name string) (resolve.Outcome, error)

// List reads the shim directory and, when verbose, dispatches each entry.
func List(dir string, verbose bool, dispatch DispatchFunc) (Listing, error) {
	names, err := Names(dir)
	if err != nil {
		return Listing{}, err
	}

	listing := Listing{Verbose: verbose, Entries: make([]Entry, 0, len(names))}
	for _, name := range names {
		entry := Entry{Name: name}
		if verbose {
			entry.Outcome, entry.Err = dispatch(name)
		}
		listing.Entries = append(listing.Entries, entry)
	}
	return listing, nil
}

// Names returns the shim names in dir, sorted. A missing directory has no shims.
func Names(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read shim dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// OK reports whether every entry succeeded.
func (l Listing) OK() bool {
	for _, e := range l.Entries {
		if e.Err != nil {
			return false
		}
	}
	return true
}

// Err joins the per-entry failures, or returns nil.
func (l Listing) Err() error {
	var errs []error
	for _, e := range l.Entries {
		if e.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name, e.Err))
		}
	}
	return errors.Join(errs...)
}

// Styler decorates a description; nil leaves it untouched.
type Styler func(out resolve.Outcome, text string) string

// Write prints one line per entry: the name alone, or "<name> -> <description>"
// in verbose mode. Failed entries print their error inline.
func (l Listing) Write(w io.Writer, style Styler) error {
	for _, e := range l.Entries {
		var err error
		switch {
		case !l.Verbose:
			_, err = fmt.Fprintln(w, e.Name)
		case e.Err != nil:
			_, err = fmt.Fprintf(w, "%s -> error: %v\n", e.Name, e.Err)
		default:
			desc := Describe(e.Outcome)
			if style != nil {
				desc = style(e.Outcome, desc)
			}
			_, err = fmt.Fprintf(w, "%s -> %s\n", e.Name, desc)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
