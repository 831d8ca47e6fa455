package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix starts every environment variable read by Load. A double
// underscore separates nesting levels: DATADICT_DATABASE__HOST sets
// database.host.
const EnvPrefix = "DATADICT_"

// Defaults are the values in effect before any file, variable or flag.
var Defaults = map[string]any{
	"server.port":        8080,
	"server.session_ttl": "30m",
	"storage.timeout":    "30s",
	"storage.batch_size": 200,
	"log.level":          "info",
	"log.format":         "text",
	"editor.page_size":   20,
	"demo":               false,
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"driver":     "database.type",
	"dsn":        "database.dsn",
	"log-level":  "log.level",
	"log-format": "log.format",
	"port":       "server.port",
	"web-dir":    "server.web_dir",
	"page-size":  "editor.page_size",
	"timeout":    "storage.timeout",
	"demo":       "demo",
}

// Load builds the configuration. Precedence (highest to lowest):
// flags > environment > config file > defaults. An empty path skips the
// file; nil flags skips flags.
func Load(path string, flags *pflag.FlagSet) (AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults, "."), nil); err != nil {
		return AppConfig{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return AppConfig{}, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return AppConfig{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return AppConfig{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("unable to decode config: %w", err)
	}
	return cfg, nil
}

// envKey transforms DATADICT_DATABASE__DATABASE_NAME into database.database_name.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
