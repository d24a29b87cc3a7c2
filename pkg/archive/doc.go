// Package archive finds JAR archives and loose Java sources on disk and reads
// what the resolution pipeline needs from each archive.
//
// # Discovery
//
// [Scanner.Discover] walks the given roots once and returns three
// deduplicated, discovery-ordered lists: archives, loose .java files, and
// .java/.class members packaged inside archives (including archives nested
// inside archives). Loose .class files are ignored.
//
// Packaged members are named "<archive>!/<member>", so a nested member reads
// "/libs/outer.jar!/lib/inner.jar!/org/acme/Foo.class".
//
// # Inspection
//
// [Inspector] returns an archive's member list and manifest text. Results are
// cached by path, size and modification time when a [cache.Cache] is supplied.
package archive
