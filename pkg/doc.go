// Package pkg provides the libraries behind jarinstall.
//
// # Overview
//
// jarinstall takes a directory of loose JAR files, works out Maven
// coordinates for each of them and installs them into the local repository.
// The pkg directory is organized into three areas:
//
//  1. Domain: [metadata], [manifest], [infer], [reconcile]
//  2. Collaborators: [archive] (zip reading), [install] (Maven)
//  3. Orchestration and infrastructure: [pipeline], [cache], [errors], [observability]
//
// # Data Flow
//
//	Input paths
//	     ↓
//	archive.Scanner.Discover  →  archives, loose sources, packaged sources
//	     ↓
//	pipeline.Runner.Run       →  installed / unresolved archives
//	     ↓
//	reconcile.Build + Stager  →  staged src trees / unresolved sources
//
// The pipeline runs five strategies in order. Each merges validated
// candidates into a shared [metadata.Store] or installs archives whose
// coordinates are known:
//
//	direct install → path inference → manifest extraction → dummy fill → metadata install
//
// [metadata]: https://pkg.go.dev/github.com/matzehuels/jarinstall/pkg/metadata
// [manifest]: https://pkg.go.dev/github.com/matzehuels/jarinstall/pkg/manifest
// [infer]: https://pkg.go.dev/github.com/matzehuels/jarinstall/pkg/infer
// [reconcile]: https://pkg.go.dev/github.com/matzehuels/jarinstall/pkg/reconcile
// [archive]: https://pkg.go.dev/github.com/matzehuels/jarinstall/pkg/archive
// [install]: https://pkg.go.dev/github.com/matzehuels/jarinstall/pkg/install
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/jarinstall/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/jarinstall/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/jarinstall/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/jarinstall/pkg/observability
// [metadata.Store]: https://pkg.go.dev/github.com/matzehuels/jarinstall/pkg/metadata#Store
package pkg
