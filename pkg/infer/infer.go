// Package infer guesses a group identifier from the internal layout of an
// archive when no manifest coordinates exist.
//
// Every compiled-unit path is cut at each delimiter ('$', '/', '\') and at its
// end. The cleaned prefixes form a substring universe; each is scored by how
// many members of the universe contain it. Substrings scoring at least
// floor(max * threshold) survive, and the lexicographically greatest survivor
// wins. Lexicographic order is not length order: among "org" and "org/acme"
// the longer one wins only because it sorts after its own prefix.
package infer

import (
	"math"
	"regexp"
	"strings"

	"github.com/matzehuels/jarinstall/pkg/metadata"
)

// DefaultThreshold is the fraction of the top occurrence count a substring
// needs to stay a candidate.
const DefaultThreshold = 0.80

var (
	compiledUnit = regexp.MustCompile(`(?i)^.+\.class$`)
	unitSuffix   = regexp.MustCompile(`(?i)(\$)?[0-9]*\.class$`)
)

func isDelimiter(r rune) bool {
	return r == '$' || r == '/' || r == '\\'
}

// Inferencer derives group and artifact candidates from archive member paths.
type Inferencer struct {
	// Threshold is the commonality threshold; zero means DefaultThreshold.
	Threshold float64
}

// Candidates runs the heuristic over members and returns group-id and
// artifact-id candidates, or nil when no compiled unit is present.
func (in Inferencer) Candidates(members []string) metadata.Candidates {
	group := ToDots(in.CommonSubstring(members))
	if group == "" {
		return nil
	}
	artifact := group
	if i := strings.LastIndexByte(group, '.'); i >= 0 {
		artifact = group[i+1:]
	}
	return metadata.Candidates{
		metadata.FieldGroupID:    group,
		metadata.FieldArtifactID: artifact,
	}
}

// CommonSubstring returns the winning path substring, still using the
// archive's own delimiters.
func (in Inferencer) CommonSubstring(members []string) string {
	return in.mostCommon(Universe(members))
}

// Universe returns the deduplicated cleaned prefixes of every compiled-unit
// path in members, in discovery order.
func Universe(members []string) []string {
	seen := make(map[string]bool)
	var universe []string
	for _, p := range members {
		if !compiledUnit.MatchString(p) {
			continue
		}
		for _, end := range cutPoints(p) {
			cleaned := unitSuffix.ReplaceAllString(p[:end], "")
			if cleaned == "" || seen[cleaned] {
				continue
			}
			seen[cleaned] = true
			universe = append(universe, cleaned)
		}
	}
	return universe
}

// cutPoints returns the byte offset of each delimiter in p followed by len(p).
// An offset of zero is skipped since it would yield an empty prefix.
func cutPoints(p string) []int {
	var cuts []int
	for i, r := range p {
		if i > 0 && isDelimiter(r) {
			cuts = append(cuts, i)
		}
	}
	return append(cuts, len(p))
}

// Occurrences counts, for each member of universe, how many members contain
// it as a substring (itself included).
func Occurrences(universe []string) map[string]int {
	counts := make(map[string]int, len(universe))
	for _, s := range universe {
		for _, other := range universe {
			if strings.Contains(other, s) {
				counts[s]++
			}
		}
	}
	return counts
}

func (in Inferencer) mostCommon(universe []string) string {
	if len(universe) == 0 {
		return ""
	}
	threshold := in.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	counts := Occurrences(universe)
	maxOcc := 0
	for _, n := range counts {
		maxOcc = max(maxOcc, n)
	}
	floor := int(math.Floor(float64(maxOcc) * threshold))

	best := ""
	for _, s := range universe {
		if counts[s] >= floor && s > best {
			best = s
		}
	}
	return best
}

// ToDots replaces every structural delimiter in s with '.'.
func ToDots(s string) string {
	return strings.Map(func(r rune) rune {
		if isDelimiter(r) {
			return '.'
		}
		return r
	}, s)
}
