// Command digraph loads a YAML service manifest into the syncdi container
// and reports what the container makes of it.
//
// Every service in the manifest becomes a descriptor bound to its own
// identifier. Its constructor takes the declared args first and then one
// parameter per dependency, which is injected eagerly, optionally or as a
// lazy handle. Targets are built with CreateInstance the way an application
// builds its entry points.
//
// Usage
//
//	digraph [--manifest services.yaml] [--env-file .env] [--strict] [--log-level debug] <command>
//
// Commands
//
//	check    resolve every service and build every target, printing ok/FAIL per entry
//	order    print the order the container constructed components in
//	leaves   print services without eager dependencies; --graph dumps the edges first;
//	         static cycles are reported and make the command fail
//
// Configuration
//
// Settings are layered. Defaults come first (manifest services.yaml, strict,
// log level info), then DIGRAPH_* entries from --env-file, then DIGRAPH_*
// variables of the process environment, then flags given on the command line:
//
//	DIGRAPH_MANIFEST=deploy/services.yaml
//	DIGRAPH_STRICT=false
//	DIGRAPH_LOG_LEVEL=debug
//
// With strict off, an unbound dependency is passed as nil and logged at debug
// level instead of failing the build.
package main
