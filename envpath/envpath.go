// Package envpath builds the search-path environment variable for the
// Python worker process.
//
// Resolution is purely textual: entries are ordered and joined, never
// deduplicated or checked for existence. The worker is responsible for
// ignoring paths that do not resolve to importable modules.
package envpath

import (
	"os"
	"path/filepath"
	"strings"
)

// Var is the environment variable the worker reads its module search
// path from.
const Var = "PYTHONPATH"

// Spec is the resolved environment for one worker process instance.
// It is computed once per start and must not be mutated afterwards.
type Spec struct {
	// Entries is the ordered search-path list.
	Entries []string

	// WorkDir is the worker's working directory. Empty means inherit
	// the host process's working directory.
	WorkDir string
}

// Resolve produces the ordered search-path list.
//
// Each configured extra path is resolved to an absolute path:
// already-absolute entries pass through unchanged, relative entries are
// joined against workspaceRoot when it is non-empty and otherwise left
// as-is. The bundled path (the directory the host ships the worker's
// helper modules in) follows, then the inherited search path. Empty
// components are omitted; an empty entry in the joined list would make
// the worker search its working directory.
func Resolve(extraPaths []string, workspaceRoot, bundledPath, inherited string) []string {
	entries := make([]string, 0, len(extraPaths)+2)
	for _, p := range extraPaths {
		if filepath.IsAbs(p) || workspaceRoot == "" {
			entries = append(entries, p)
			continue
		}
		entries = append(entries, filepath.Join(workspaceRoot, p))
	}
	if bundledPath != "" {
		entries = append(entries, bundledPath)
	}
	if inherited != "" {
		entries = append(entries, inherited)
	}
	return entries
}

// Join concatenates entries with the platform path-list separator.
func Join(entries []string) string {
	return strings.Join(entries, string(os.PathListSeparator))
}

// Environ returns the inherited environment with Var overridden to the
// joined entry list. The input slice is not modified.
func Environ(inherited []string, entries []string) []string {
	value := Var + "=" + Join(entries)
	env := make([]string, 0, len(inherited)+1)
	replaced := false
	for _, e := range inherited {
		if strings.HasPrefix(e, Var+"=") {
			env = append(env, value)
			replaced = true
			continue
		}
		env = append(env, e)
	}
	if !replaced {
		env = append(env, value)
	}
	return env
}
