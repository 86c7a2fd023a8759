// syncdi/cmd/digraph/helpers_test.go
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// runApp runs digraph in-process with the given environment and returns
// what it printed.
func runApp(t *testing.T, environ []string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(&out, func() []string { return environ })
	err := app.Run(append([]string{"digraph"}, args...))
	return out.String(), err
}

const workbenchManifest = `
services:
  - name: wb.environment
    args: ["prod"]
  - name: wb.log
    deps:
      - service: wb.environment
  - name: wb.storage
    delayed: true
    deps:
      - service: wb.environment
      - service: wb.log
targets:
  - name: wb.workbench
    args: ["main"]
    deps:
      - service: wb.storage
        lazy: true
      - service: wb.log
`

const cyclicManifest = `
services:
  - name: cyc.a
    deps: [{service: cyc.b}]
  - name: cyc.b
    deps: [{service: cyc.a}]
  - name: cyc.c
`

const lazyCycleManifest = `
services:
  - name: lzc.a
    deps: [{service: lzc.b, lazy: true}]
  - name: lzc.b
    delayed: true
    deps: [{service: lzc.a}]
`

const missingManifest = `
services:
  - name: miss.x
    deps: [{service: miss.ghost}]
`
