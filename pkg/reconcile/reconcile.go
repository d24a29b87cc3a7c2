// Package reconcile decides which loose source files are not already packaged
// in an archive and stages their source trees for a later build.
//
// A loose file is represented in an archive when its trailing path, compared
// component by component from the right over at most [MatchDepth]
// components, equals that of some packaged entry once extensions are
// stripped. Unrepresented files under a src/main segment are staged by
// copying their nearest src ancestor; the rest are reported unresolved.
package reconcile

import (
	"path/filepath"
	"strings"
)

// MatchDepth is the number of trailing path components compared.
const MatchDepth = 3

// Group is one src directory to stage and the unique files that led to it.
type Group struct {
	Dir   string
	Files []string
}

// Plan is the outcome of comparing loose files with packaged entries.
type Plan struct {
	// Unique lists loose files with no packaged counterpart, in input order.
	Unique []string
	// Groups lists src directories to stage, in first-seen order.
	Groups []Group
	// Unresolved lists unique files outside any src/main tree.
	Unresolved []string
}

// Build compares loose source files against packaged entries and returns
// the staging plan. Both inputs may contain duplicates.
func Build(loose, packaged []string) *Plan {
	var embedded [][]string
	for _, p := range packaged {
		stripped := stripExt(memberPath(p))
		if strings.ContainsRune(lastComponent(stripped), '$') {
			continue
		}
		embedded = append(embedded, components(stripped))
	}

	plan := &Plan{}
	seen := make(map[string]bool)
	groups := make(map[string]int)
	for _, file := range loose {
		if seen[file] {
			continue
		}
		seen[file] = true

		if represented(components(stripExt(file)), embedded) {
			continue
		}
		plan.Unique = append(plan.Unique, file)

		dir, ok := srcRoot(file)
		if !ok {
			plan.Unresolved = append(plan.Unresolved, file)
			continue
		}
		i, ok := groups[dir]
		if !ok {
			i = len(plan.Groups)
			groups[dir] = i
			plan.Groups = append(plan.Groups, Group{Dir: dir})
		}
		plan.Groups[i].Files = append(plan.Groups[i].Files, file)
	}
	return plan
}

func represented(file []string, embedded [][]string) bool {
	for _, e := range embedded {
		if TrailingMatch(file, e, MatchDepth) {
			return true
		}
	}
	return false
}

// TrailingMatch reports whether the last n components of a and b are equal.
// When either side is shorter than n only the available components are
// compared. Empty inputs never match.
func TrailingMatch(a, b []string, n int) bool {
	n = min(n, len(a), len(b))
	if n <= 0 {
		return false
	}
	for i := 1; i <= n; i++ {
		if a[len(a)-i] != b[len(b)-i] {
			return false
		}
	}
	return true
}

// srcRoot returns the nearest ancestor of file named "src", provided the
// path contains a src/main segment pair.
func srcRoot(file string) (string, bool) {
	if !underSrcMain(components(file)) {
		return "", false
	}
	for dir := filepath.Dir(file); ; {
		if filepath.Base(dir) == "src" {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func underSrcMain(parts []string) bool {
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "src" && parts[i+1] == "main" {
			return true
		}
	}
	return false
}

// memberPath drops the archive prefix from an "<archive>!/<member>" entry,
// keeping only the path inside the innermost archive.
func memberPath(p string) string {
	if i := strings.LastIndex(p, "!/"); i >= 0 {
		return p[i+2:]
	}
	return p
}

func stripExt(p string) string {
	last := lastComponent(p)
	if i := strings.LastIndexByte(last, '.'); i > 0 {
		return p[:len(p)-len(last)+i]
	}
	return p
}

// components splits p on both separator styles and drops empty parts.
func components(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

func lastComponent(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}
