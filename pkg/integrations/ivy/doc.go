// Package ivy reads artifact metadata from Ivy repositories.
//
// An Ivy repository is described by a pattern rather than a fixed layout:
//
//	https://repo.example.com/ivy/[organisation]/[module]/(scala_[scalaVersion]/)[revision]/[type]s/[artifact].[ext]
//
// [ParsePattern] validates the syntax up front so a malformed repository can
// be reported and skipped before any request is made. Versions are discovered
// from the directory listing that precedes [revision]; descriptors are read
// from the ivy.xml the pattern yields for type "ivy".
package ivy
