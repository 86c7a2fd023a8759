package di

import "fmt"

// Shared fixtures for the package tests. Identifier names are process-wide, so
// every test file uses its own name prefix.

type greeter interface {
	Greet() string
}

type staticGreeter struct{ msg string }

func (g *staticGreeter) Greet() string { return g.msg }

// recordingLogger collects every line passed to it.
type recordingLogger struct {
	info  []string
	debug []string
}

func (l *recordingLogger) Info(args ...any)  { l.info = append(l.info, fmt.Sprint(args...)) }
func (l *recordingLogger) Debug(args ...any) { l.debug = append(l.debug, fmt.Sprint(args...)) }

// disposeRecorder appends its name to a shared log when disposed.
type disposeRecorder struct {
	name string
	log  *[]string
}

func (d *disposeRecorder) Dispose() { *d.log = append(*d.log, d.name) }
