// Package config reads dupegen.yaml, which lists the interfaces of one
// package to generate handles for:
//
//	package: shapes
//	output: shapes_dupe.go
//	imports:
//	  geometry: example.com/geometry
//	targets:
//	  - signature: "[T any] Shape[T]"
//	    handle: ShapeBox
//	  - signature: geometry.Solid
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cottand/dupe/generate"
	"github.com/cottand/dupe/signature"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name dupegen looks for.
const DefaultFile = "dupegen.yaml"

type Config struct {
	// Package is the package name of the generated file.
	Package string `yaml:"package"`

	// Output is the generated file path, relative to the config file.
	// Defaults to <package>_dupe.go.
	Output string `yaml:"output,omitempty"`

	// Imports maps package names used in signatures to import paths.
	Imports map[string]string `yaml:"imports,omitempty"`

	Targets []Target `yaml:"targets"`

	dir string
}

type Target struct {
	Signature string `yaml:"signature"`
	Handle    string `yaml:"handle,omitempty"`
	Func      string `yaml:"func,omitempty"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open config")
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Decode reads and validates a config. Unknown fields are rejected.
func Decode(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config is empty")
		}
		return nil, errors.Wrap(err, "could not decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Package == "" {
		return errors.New("package is required")
	}
	if len(c.Targets) == 0 {
		return errors.New("at least one target is required")
	}
	for i, t := range c.Targets {
		if t.Signature == "" {
			return errors.Errorf("target %d: signature is required", i)
		}
		if _, err := signature.Parse(t.Signature); err != nil {
			return errors.Wrapf(err, "target %d", i)
		}
	}
	return nil
}

// GenerateTargets parses the signature of every target.
func (c *Config) GenerateTargets() ([]generate.Target, error) {
	targets := make([]generate.Target, len(c.Targets))
	for i, t := range c.Targets {
		sig, err := signature.Parse(t.Signature)
		if err != nil {
			return nil, errors.Wrapf(err, "target %d", i)
		}
		targets[i] = generate.Target{Signature: sig, Handle: t.Handle, Func: t.Func}
	}
	return targets, nil
}

// Options returns the generator options for the file c describes.
func (c *Config) Options() generate.Options {
	return generate.Options{
		Package:  c.Package,
		Imports:  c.Imports,
		Filename: c.OutputPath(),
	}
}

// OutputPath returns the path of the generated file.
func (c *Config) OutputPath() string {
	out := c.Output
	if out == "" {
		out = c.Package + "_dupe.go"
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(c.dir, out)
}
