// Package manifest extracts coordinate candidates from a JAR manifest
// (META-INF/MANIFEST.MF).
//
// Each field has a list of header synonyms ordered from worst guess to best
// guess. Every synonym is searched for on every line, and a later synonym
// that matches replaces what an earlier one found. The best matching header
// therefore wins regardless of where it appears in the manifest.
package manifest

import (
	"strings"

	"github.com/matzehuels/jarinstall/pkg/metadata"
)

// Path is the location of the manifest inside an archive.
const Path = "META-INF/MANIFEST.MF"

// Synonyms lists, per field, the headers consulted from worst to best guess.
var Synonyms = map[metadata.Field][]string{
	metadata.FieldName: {
		"Extension-Name:",
		"Implementation-Title:",
		"Bundle-SymbolicName:",
		"Specification-Title:",
	},
	metadata.FieldGroupID: {
		"Specification-Title:",
		"Implementation-Vendor-Id:",
		"Implementation-Title:",
	},
	metadata.FieldArtifactID: {
		"Specification-Title:",
		"Extension-Name:",
		"Implementation-Title:",
		"Bundle-SymbolicName:",
	},
	metadata.FieldVersion: {
		"Bundle-Version:",
		"Specification-Version:",
		"Implementation-Version:",
	},
}

// Extract scans text for the headers in [Synonyms] and returns unvalidated
// candidates. Empty text yields no candidates.
func Extract(text string) metadata.Candidates {
	if text == "" {
		return nil
	}
	lines := splitLines(text)

	found := make(metadata.Candidates)
	for _, field := range metadata.Fields {
		for _, header := range Synonyms[field] {
			for _, line := range lines {
				if value, ok := headerValue(line, header); ok {
					found[field] = value
				}
			}
		}
	}
	return found
}

// headerValue finds header in line case-insensitively and returns the
// trimmed remainder of the line after it.
func headerValue(line, header string) (string, bool) {
	idx := strings.Index(strings.ToLower(line), strings.ToLower(header))
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(line[idx+len(header):]), true
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
