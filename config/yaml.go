package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAML is a kong.ConfigurationLoader for flat YAML files. Keys match flag
// names, with dashes or underscores, e.g. "max-output: 3" or "max_output: 3".
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: failed to decode YAML: %w", err)
	}
	var f kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			raw, ok := values[name]
			if !ok {
				continue
			}
			switch raw.(type) {
			case map[string]any, []any:
				return nil, fmt.Errorf("config: %q must be a single value", name)
			}
			return fmt.Sprint(raw), nil
		}
		return nil, nil
	}
	return f, nil
}
