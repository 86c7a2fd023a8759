// syncdi/cmd/digraph/commands.go
package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jrivets/log4g"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v2"

	"github.com/sghaida/syncdi/di"
	"github.com/sghaida/syncdi/graph"
)

// session is the state every command starts from.
type session struct {
	cfg    *Config
	out    io.Writer
	log    log4g.Logger
	wiring *wiring
}

func (a *appState) session() (*session, error) {
	m, err := loadManifest(a.cfg.Manifest)
	if err != nil {
		return nil, err
	}
	w, err := newWiring(m)
	if err != nil {
		return nil, err
	}
	return &session{cfg: a.cfg, out: a.out, log: log4g.GetLogger("digraph"), wiring: w}, nil
}

func (s *session) container() (*di.InstantiationService, error) {
	opts := []di.Option{di.WithLogger(s.log)}
	if !s.cfg.Strict {
		opts = append(opts, di.NonStrict())
	}
	return s.wiring.Container(opts...)
}

// check resolves every service and builds every target, reporting each.
func (s *session) check() error {
	ctr, err := s.container()
	if err != nil {
		return err
	}
	defer ctr.Dispose()

	failed, total := 0, 0
	report := func(name string, err error) {
		total++
		if err != nil {
			failed++
			fmt.Fprintf(s.out, "FAIL %s: %v\n", name, err)
			return
		}
		fmt.Fprintf(s.out, "ok   %s\n", name)
	}

	for _, spec := range s.wiring.manifest.Services {
		_, err := s.wiring.ResolveService(ctr, spec.Name)
		report(spec.Name, err)
	}
	for _, spec := range s.wiring.manifest.Targets {
		_, err := s.wiring.BuildTarget(ctr, spec.Name)
		report(spec.Name, err)
	}

	fmt.Fprintf(s.out, "%s checked, %s failed, %s constructed\n",
		humanize.Comma(int64(total)), humanize.Comma(int64(failed)), humanize.Comma(int64(len(s.wiring.built))))
	if failed > 0 {
		return errors.Errorf("%d of %d services failed", failed, total)
	}
	return nil
}

// order builds every target (or every service when there are none) and
// prints the order the components were constructed in.
func (s *session) order() error {
	ctr, err := s.container()
	if err != nil {
		return err
	}
	defer ctr.Dispose()

	if len(s.wiring.manifest.Targets) == 0 {
		for _, spec := range s.wiring.manifest.Services {
			if _, err := s.wiring.ResolveService(ctr, spec.Name); err != nil {
				return errors.Wrapf(err, "resolving %s", spec.Name)
			}
		}
	}
	for _, spec := range s.wiring.manifest.Targets {
		if _, err := s.wiring.BuildTarget(ctr, spec.Name); err != nil {
			return errors.Wrapf(err, "building %s", spec.Name)
		}
	}

	for i, name := range s.wiring.built {
		fmt.Fprintf(s.out, "%3d. %s\n", i+1, name)
	}
	return nil
}

// staticGraph returns the eager dependency edges of the manifest: a lazy
// dependency on a delayed service is left out because it is not built with
// its consumer.
func staticGraph(m *Manifest) *graph.Graph[string] {
	delayed := map[string]bool{}
	for _, spec := range m.Services {
		delayed[spec.Name] = spec.Delayed
	}

	g := graph.New(func(s string) string { return s })
	for _, spec := range append(append([]ServiceSpec{}, m.Services...), m.Targets...) {
		g.LookupOrInsertNode(spec.Name)
		for _, d := range spec.Deps {
			if d.Lazy && delayed[d.Service] {
				g.LookupOrInsertNode(d.Service)
				continue
			}
			g.InsertEdge(spec.Name, d.Service)
		}
	}
	return g
}

// staticCycles lists each cycle of g once, rotated to start at its
// smallest name.
func staticCycles(g *graph.Graph[string], names []string) [][]string {
	seen := map[string]bool{}
	var out [][]string
	for _, from := range names {
		n := g.Lookup(from)
		if n == nil {
			continue
		}
		for _, to := range n.Outgoing() {
			path := g.FindPath(to, from)
			if path == nil {
				continue
			}
			cycle := canonicalCycle(path)
			key := strings.Join(cycle, " -> ")
			if !seen[key] {
				seen[key] = true
				out = append(out, append(cycle, cycle[0]))
			}
		}
	}
	return out
}

func canonicalCycle(path []string) []string {
	first := 0
	for i, name := range path {
		if name < path[first] {
			first = i
		}
	}
	return append(append([]string{}, path[first:]...), path[:first]...)
}

// leaves prints the services with no eager dependencies and reports static
// cycles.
func (s *session) leaves(dump bool) error {
	m := s.wiring.manifest
	g := staticGraph(m)

	if dump {
		fmt.Fprint(s.out, g.String())
	}
	for _, n := range g.Roots() {
		fmt.Fprintln(s.out, n.Key())
	}

	var names []string
	for _, spec := range append(append([]ServiceSpec{}, m.Services...), m.Targets...) {
		names = append(names, spec.Name)
	}
	cycles := staticCycles(g, names)
	for _, c := range cycles {
		fmt.Fprintf(s.out, "cycle: %s\n", strings.Join(c, " -> "))
	}
	if len(cycles) > 0 {
		return errors.Errorf("%d static cycle(s) found", len(cycles))
	}
	return nil
}

func sortedNames[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func commands(a *appState) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "check",
			Usage: "resolve every service and build every target",
			Action: func(c *cli.Context) error {
				s, err := a.session()
				if err != nil {
					return err
				}
				return s.check()
			},
		},
		{
			Name:  "order",
			Usage: "print the order components are constructed in",
			Action: func(c *cli.Context) error {
				s, err := a.session()
				if err != nil {
					return err
				}
				return s.order()
			},
		},
		{
			Name:  "leaves",
			Usage: "print services without eager dependencies and report static cycles",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  argGraph,
					Usage: "dump the dependency graph first",
				},
			},
			Action: func(c *cli.Context) error {
				s, err := a.session()
				if err != nil {
					return err
				}
				return s.leaves(c.Bool(argGraph))
			},
		},
	}
}
