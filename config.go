package main

import (
	"os"
	"sort"

	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/pontaoski/monkey/environment"
	"github.com/pontaoski/monkey/lexer"
	"github.com/pontaoski/monkey/object"
	"github.com/pontaoski/monkey/types"
)

const configFile = "monkey.yaml"

type projectConfig struct {
	Name string `yaml:"name"`
	// Prelude values are bound in the top-level scope before a program runs.
	Prelude map[string]interface{} `yaml:"prelude,omitempty"`
	// Dump prints the canonical form of the program before running it.
	Dump bool `yaml:"dump,omitempty"`
}

// loadConfig reads the configuration at path. A missing file is not an
// error; it yields the zero configuration.
func loadConfig(path string) (projectConfig, error) {
	var cfg projectConfig

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, tracerr.Wrap(err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, tracerr.Errorf("error reading %s: %v", path, err)
	}
	return cfg, nil
}

func writeConfig(path string, cfg projectConfig) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return tracerr.Wrap(err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

func isIdentifier(name string) bool {
	l := lexer.NewLexer(name, "")
	tok := l.NextToken()
	return tok.Kind == types.IDENT && tok.Literal == name && l.NextToken().Kind == types.EOF
}

// bind sets every prelude value in env.
func (cfg projectConfig) bind(env *environment.Environment) error {
	names := make([]string, 0, len(cfg.Prelude))
	for name := range cfg.Prelude {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !isIdentifier(name) {
			return tracerr.Errorf("prelude: %q is not an identifier", name)
		}
		v, err := object.FromNative(cfg.Prelude[name])
		if err != nil {
			return tracerr.Errorf("prelude: %s: %v", name, err)
		}
		env.Set(name, v)
	}
	return nil
}
