// Package metadata holds the identity coordinates accumulated for each
// archive while the resolution pipeline runs.
//
// A [Record] has exactly four fields (name, group-id, artifact-id, version).
// Values only enter a record through [Store.Merge], which drops any
// candidate that fails [Validate] for its field. A record is complete when
// all four fields are present and valid; anything less is partial.
//
// The [Store] is a working cache for a single run. Nothing here is written
// to disk.
//
// # Usage
//
//	store := metadata.NewStore()
//	store.Merge(jar, metadata.Candidates{
//	    metadata.FieldGroupID:    "org.acme",
//	    metadata.FieldArtifactID: "acme",
//	}, false)
//
//	if rec := store.Get(jar); rec.Complete() {
//	    fmt.Println(rec.Coordinate())
//	}
package metadata
