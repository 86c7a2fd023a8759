package main

import (
	"strings"

	"github.com/jrivets/log4g"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// envPrefix marks the environment variables digraph reads, e.g.
// DIGRAPH_MANIFEST or DIGRAPH_LOG_LEVEL.
const envPrefix = "DIGRAPH_"

// Config holds the settings shared by every command.
//
// Values are layered, later layers winning: defaults, the --env-file, the
// process environment, then command line flags.
type Config struct {
	Manifest string `mapstructure:"manifest"`
	Strict   bool   `mapstructure:"strict"`
	LogLevel string `mapstructure:"log_level"`
}

func defaultConfig() *Config {
	return &Config{
		Manifest: "services.yaml",
		Strict:   true,
		LogLevel: "info",
	}
}

// loadConfig builds a Config from the defaults, envFile (optional) and
// environ, which has the os.Environ format.
func loadConfig(envFile string, environ []string) (*Config, error) {
	raw := map[string]string{}

	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		if err != nil {
			return nil, errors.Wrapf(err, "reading env file %s", envFile)
		}
		collectPrefixed(raw, vals)
	}

	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	collectPrefixed(raw, env)

	cfg := defaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "decoding "+envPrefix+"* settings")
	}
	return cfg, nil
}

// collectPrefixed copies every DIGRAPH_* entry of src into dst under its
// lower-cased suffix.
func collectPrefixed(dst, src map[string]string) {
	for k, v := range src {
		if !strings.HasPrefix(k, envPrefix) {
			continue
		}
		dst[strings.ToLower(strings.TrimPrefix(k, envPrefix))] = v
	}
}

// Validate reports settings no command can work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Manifest) == "" {
		return errors.New("config: manifest path is empty")
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

var logLevels = map[string]log4g.Level{
	"fatal": log4g.FATAL,
	"error": log4g.ERROR,
	"warn":  log4g.WARN,
	"info":  log4g.INFO,
	"debug": log4g.DEBUG,
	"trace": log4g.TRACE,
	"all":   log4g.ALL,
}

func parseLogLevel(name string) (log4g.Level, error) {
	lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Errorf("config: unknown log level %q", name)
	}
	return lvl, nil
}
