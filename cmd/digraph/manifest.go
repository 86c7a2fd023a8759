package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Manifest describes a service graph in YAML:
//
//	services:
//	  - name: storageService
//	    delayed: true
//	    args: ["/var/lib/app"]
//	    deps:
//	      - service: environmentService
//	      - service: logService
//	        optional: true
//	targets:
//	  - name: workbench
//	    deps: [{service: storageService}]
//
// Every service is registered as a descriptor whose constructor takes args
// first and then one parameter per dependency. Targets are not registered;
// they are built directly, the way an application builds its entry points.
type Manifest struct {
	Services []ServiceSpec `yaml:"services"`
	Targets  []ServiceSpec `yaml:"targets"`
}

// ServiceSpec is one service or target.
type ServiceSpec struct {
	Name    string    `yaml:"name"`
	Delayed bool      `yaml:"delayed"`
	Args    []any     `yaml:"args"`
	Deps    []DepSpec `yaml:"deps"`
}

// DepSpec is one dependency of a ServiceSpec.
type DepSpec struct {
	Service  string `yaml:"service"`
	Optional bool   `yaml:"optional"`

	// Lazy injects a handle; with a delayed service this postpones its
	// construction and may break a cycle.
	Lazy bool `yaml:"lazy"`
}

func loadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}
	m, err := parseManifest(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %s", path)
	}
	return m, nil
}

func parseManifest(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}
	if err := validateManifest(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func validateManifest(m *Manifest) error {
	if len(m.Services) == 0 && len(m.Targets) == 0 {
		return errors.New("manifest declares no services and no targets")
	}

	seen := map[string]bool{}
	check := func(kind string, i int, s ServiceSpec) error {
		if strings.TrimSpace(s.Name) == "" {
			return errors.Errorf("%s #%d must have a name", kind, i+1)
		}
		if seen[s.Name] {
			return errors.Errorf("%s %q declared twice", kind, s.Name)
		}
		seen[s.Name] = true

		deps := map[string]bool{}
		for _, d := range s.Deps {
			if strings.TrimSpace(d.Service) == "" {
				return errors.Errorf("%s %q has a dependency without a service", kind, s.Name)
			}
			if deps[d.Service] {
				return errors.Errorf("%s %q depends on %q twice", kind, s.Name, d.Service)
			}
			deps[d.Service] = true
		}
		return nil
	}

	for i, s := range m.Services {
		if err := check("service", i, s); err != nil {
			return err
		}
	}
	for i, s := range m.Targets {
		if s.Delayed {
			return errors.Errorf("target %q cannot be delayed", s.Name)
		}
		if err := check("target", i, s); err != nil {
			return err
		}
	}
	return nil
}
