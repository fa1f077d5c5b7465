// This file contains environment variable and configuration file overrides.

package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/bigmul/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Layered resolution
// ─────────────────────────────────────────────────────────────────────────────

// Resolve applies environment variables and then the configuration file to
// every flag of fs that was not set on the command line. Each applied value
// marks its flag as set, so the priority is:
//
//  1. CLI flags
//  2. BIGMUL_* environment variables (and NO_COLOR)
//  3. The YAML file named by --config
//  4. Defaults
//
// Invalid environment values are ignored; invalid file values are reported.
func Resolve(fs *pflag.FlagSet, c *AppConfig) error {
	applyEnvOverrides(fs)
	if _, ok := os.LookupEnv("NO_COLOR"); ok && !isFlagSet(fs, "no-color") {
		c.NoColor = true
	}
	if c.ConfigFile == "" {
		return nil
	}
	return applyConfigFile(fs, c.ConfigFile)
}

// envKey returns the environment variable consulted for a flag, e.g.
// BIGMUL_RECURSION_THRESHOLD for --recursion-threshold.
func envKey(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// applyEnvOverrides sets every unset flag whose environment variable is
// present and parses. A value that does not parse leaves the flag as it was.
func applyEnvOverrides(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "help" {
			return
		}
		val := os.Getenv(envKey(f.Name))
		if val == "" {
			return
		}
		if f.Value.Type() == "bool" {
			val = normalizeBool(val)
		}
		prev := f.Value.String()
		if err := fs.Set(f.Name, val); err != nil {
			// pflag may have stored the zero value before failing.
			_ = f.Value.Set(prev)
		}
	})
}

// normalizeBool maps the accepted spellings of a boolean onto the values
// strconv.ParseBool understands. "true", "1", "yes" are true and "false",
// "0", "no" are false, case-insensitively.
func normalizeBool(val string) string {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return "true"
	case "false", "0", "no":
		return "false"
	}
	return val
}

// applyConfigFile reads a flat YAML mapping whose keys are flag names, with
// either dashes or underscores (recursion_threshold: 48). Keys for flags the
// current command does not define are skipped.
func applyConfigFile(fs *pflag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewConfigError("cannot read config file: %v", err)
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return apperrors.NewConfigError("invalid config file %s: %v", path, err)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name := strings.ReplaceAll(key, "_", "-")
		if _, known := flagBinders[name]; !known || name == "config" {
			return apperrors.NewConfigError("config file %s: unknown key %q", path, key)
		}
		f := fs.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		raw := fmt.Sprint(values[key])
		if f.Value.Type() == "bool" {
			raw = normalizeBool(raw)
		}
		if err := fs.Set(name, raw); err != nil {
			return apperrors.NewConfigError("config file %s: %s: %v", path, key, err)
		}
	}
	return nil
}

// isFlagSet reports whether a flag exists on fs and was set by any layer.
func isFlagSet(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}
