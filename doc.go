// Package syncdi is a synchronous dependency injection container for Go.
//
// Services are named by typed identifiers and bound in a collection either
// to a ready instance or to a descriptor that says how to build them. The
// container resolves a descriptor the first time it is needed, injects its
// declared dependencies, caches the result and disposes it on shutdown.
// Cycles are reported with the full path. A service may be handed over as a
// lazy handle so its construction waits until first use.
//
// See subpackages:
//   - di: identifiers, collections, descriptors and the instantiation service
//   - graph: the small directed graph used for cycle detection
//   - cmd/digraph: loads a YAML service manifest and checks it with the container
//   - examples/workbench: a runnable application wired by the container
package syncdi
