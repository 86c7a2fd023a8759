// syncdi/cmd/digraph/main.go
package main

import (
	"io"
	"os"
	"sort"

	"github.com/jrivets/log4g"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v2"
)

const (
	Version = "0.1.0"

	argManifest   = "manifest"
	argEnvFile    = "env-file"
	argStrict     = "strict"
	argLogLevel   = "log-level"
	argLogCfgFile = "log-config-file"
	argGraph      = "graph"
)

// appState carries what Before prepares for the commands.
type appState struct {
	cfg     *Config
	out     io.Writer
	environ func() []string
}

func newApp(out io.Writer, environ func() []string) *cli.App {
	a := &appState{out: out, environ: environ}

	app := &cli.App{
		Name:    "digraph",
		Version: Version,
		Usage:   "check and inspect a service manifest with the syncdi container",
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  argManifest,
				Usage: "The YAML service manifest",
			},
			&cli.StringFlag{
				Name:  argEnvFile,
				Usage: "A .env file with DIGRAPH_* settings",
			},
			&cli.BoolFlag{
				Name:  argStrict,
				Usage: "Fail on unbound non-optional dependencies",
			},
			&cli.StringFlag{
				Name:  argLogLevel,
				Usage: "fatal, error, warn, info, debug, trace or all",
			},
			&cli.StringFlag{
				Name:  argLogCfgFile,
				Usage: "The log4g configuration file name",
			},
		},
		Before:   a.before,
		Commands: commands(a),
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))
	return app
}

func (a *appState) before(c *cli.Context) error {
	if logCfgFile := c.String(argLogCfgFile); logCfgFile != "" {
		if err := log4g.ConfigF(logCfgFile); err != nil {
			return errors.Wrapf(err, "could not parse %s as a log4g configuration", logCfgFile)
		}
	}

	cfg, err := loadConfig(c.String(argEnvFile), a.environ())
	if err != nil {
		return err
	}
	if c.IsSet(argManifest) {
		cfg.Manifest = c.String(argManifest)
	}
	if c.IsSet(argStrict) {
		cfg.Strict = c.Bool(argStrict)
	}
	if c.IsSet(argLogLevel) {
		cfg.LogLevel = c.String(argLogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lvl, _ := parseLogLevel(cfg.LogLevel)
	log4g.SetLogLevel("", lvl)
	a.cfg = cfg
	return nil
}

func main() {
	app := newApp(os.Stdout, os.Environ)
	err := app.Run(os.Args)
	if err != nil {
		log4g.GetLogger("digraph").Error(err)
	}
	log4g.Shutdown()
	if err != nil {
		os.Exit(1)
	}
}
