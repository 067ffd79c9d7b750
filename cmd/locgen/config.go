package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML document of flag values and returns a kong
// resolver for it. Keys are flag names; dashes and underscores are
// interchangeable. Command flags may be nested under the command name:
//
//	db: ~/work/locgen.db
//	timeout: 30s
//	extract:
//	  concurrency: 8
//	  format: json
func LoadConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return kong.ResolverFunc(func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if nested, ok := lookup(values, parent.Command.Name).(map[string]any); ok {
				if v := lookup(nested, flag.Name); v != nil {
					return scalar(v)
				}
			}
		}
		v := lookup(values, flag.Name)
		if v == nil {
			return nil, nil
		}
		if _, ok := v.(map[string]any); ok {
			return nil, nil
		}
		return scalar(v)
	}), nil
}

func lookup(values map[string]any, name string) any {
	if v, ok := values[name]; ok {
		return v
	}
	return values[strings.ReplaceAll(name, "-", "_")]
}

func scalar(v any) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		return nil, fmt.Errorf("config value must be a scalar or list")
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(item)
		}
		return strings.Join(items, ","), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "locgen", "config.yaml")
	}
	return ""
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "locgen.db"
	}
	dir := filepath.Join(home, ".locgen")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "locgen.db")
}
