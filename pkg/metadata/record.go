package metadata

import (
	"fmt"

	packageurl "github.com/package-url/packageurl-go"
)

// Record is the coordinate set accumulated for one archive.
type Record struct {
	Name       string `json:"name,omitempty"`
	GroupID    string `json:"group_id,omitempty"`
	ArtifactID string `json:"artifact_id,omitempty"`
	Version    string `json:"version,omitempty"`
}

// Get returns the value stored for field, or "" when absent.
func (r *Record) Get(field Field) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldGroupID:
		return r.GroupID
	case FieldArtifactID:
		return r.ArtifactID
	case FieldVersion:
		return r.Version
	default:
		panic(fmt.Sprintf("metadata: unknown field %q", string(field)))
	}
}

func (r *Record) set(field Field, value string) {
	switch field {
	case FieldName:
		r.Name = value
	case FieldGroupID:
		r.GroupID = value
	case FieldArtifactID:
		r.ArtifactID = value
	case FieldVersion:
		r.Version = value
	default:
		panic(fmt.Sprintf("metadata: unknown field %q", string(field)))
	}
}

// Has reports whether field holds a value. A nil record has no fields.
func (r *Record) Has(field Field) bool {
	return r != nil && r.Get(field) != ""
}

// ValidCount returns how many fields hold a valid value.
func (r *Record) ValidCount() int {
	n := 0
	for _, f := range Fields {
		if Validate(f, r.Get(f)) {
			n++
		}
	}
	return n
}

// Complete reports whether every field is present and valid.
func (r *Record) Complete() bool {
	return r != nil && r.ValidCount() == len(Fields)
}

// Coordinate returns the Maven coordinate "group:artifact:version".
func (r *Record) Coordinate() string {
	return r.GroupID + ":" + r.ArtifactID + ":" + r.Version
}

// PURL renders the record as a maven package URL.
func (r *Record) PURL() string {
	return packageurl.NewPackageURL(packageurl.TypeMaven, r.GroupID, r.ArtifactID, r.Version, nil, "").ToString()
}
