package metadata

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Field names one of the four coordinate slots of a [Record].
type Field string

// Canonical fields.
const (
	FieldName       Field = "name"
	FieldGroupID    Field = "group-id"
	FieldArtifactID Field = "artifact-id"
	FieldVersion    Field = "version"
)

// Fields lists the canonical fields in merge order.
var Fields = []Field{FieldName, FieldGroupID, FieldArtifactID, FieldVersion}

// Candidates maps fields to unvalidated values produced by one extraction.
type Candidates map[Field]string

var (
	hasAlpha     = regexp.MustCompile(`[A-Za-z]`)
	hasDigit     = regexp.MustCompile(`[0-9]`)
	dotDelimited = regexp.MustCompile(`^.+\..+$`)
)

// Validate reports whether value is an acceptable value for field.
//
//   - name: at least one letter
//   - group-id, artifact-id: at least one letter and no whitespace
//   - version: a dot between non-empty segments, a digit and no whitespace
//
// Empty values are never acceptable. Validate panics on a field that is not
// one of the canonical four.
func Validate(field Field, value string) bool {
	switch field {
	case FieldName:
		return hasAlpha.MatchString(value)
	case FieldGroupID, FieldArtifactID:
		return hasAlpha.MatchString(value) && !hasWhitespace(value)
	case FieldVersion:
		return dotDelimited.MatchString(value) &&
			hasDigit.MatchString(value) &&
			!hasWhitespace(value)
	default:
		panic(fmt.Sprintf("metadata: unknown field %q", string(field)))
	}
}

func hasWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
