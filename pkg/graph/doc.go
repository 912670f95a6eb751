// Package graph defines the design graph types for swarf.
// The design graph is an immutable DAG of primitives, sweeps, lofts,
// drafts, modifiers, and groups that describes what the mesh kernel
// should build. Validation lives here; the kernel never re-validates.
package graph
