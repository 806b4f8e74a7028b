package config

import (
	"fmt"
	"slices"
	"strconv"
)

type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringField(ptr func(c *Config) *string) field {
	return field{
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error {
			*ptr(c) = v
			return nil
		},
	}
}

func boolField(ptr func(c *Config) *bool) field {
	return field{
		get: func(c *Config) string { return strconv.FormatBool(*ptr(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
			}
			*ptr(c) = b
			return nil
		},
	}
}

// fields maps dotted keys to config fields.
//
//nolint:gochecknoglobals // Constant lookup table.
var fields = map[string]field{
	"version":               stringField(func(c *Config) *string { return &c.Version }),
	"output.default_format": stringField(func(c *Config) *string { return &c.Output.DefaultFormat }),
	"output.precision": {
		get: func(c *Config) string { return strconv.Itoa(c.Output.Precision) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, v)
			}
			c.Output.Precision = n
			return nil
		},
	},
	"logging.level":               stringField(func(c *Config) *string { return &c.Logging.Level }),
	"logging.format":              stringField(func(c *Config) *string { return &c.Logging.Format }),
	"logging.file":                stringField(func(c *Config) *string { return &c.Logging.File }),
	"logging.caller":              boolField(func(c *Config) *bool { return &c.Logging.Caller }),
	"cache.enabled":               boolField(func(c *Config) *bool { return &c.Cache.Enabled }),
	"cache.ttl":                   stringField(func(c *Config) *string { return &c.Cache.TTL }),
	"cache.dir":                   stringField(func(c *Config) *string { return &c.Cache.Dir }),
	"scoring.framework_alignment": stringField(func(c *Config) *string { return &c.Scoring.FrameworkAlignment }),
	"narrative.model":             stringField(func(c *Config) *string { return &c.Narrative.Model }),
	"narrative.timeout":           stringField(func(c *Config) *string { return &c.Narrative.Timeout }),
	"server.addr":                 stringField(func(c *Config) *string { return &c.Server.Addr }),
}

// Keys returns every settable dotted key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the value of a dotted key such as "logging.level".
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set assigns a dotted key from its string form. The result is not
// validated; call Validate before saving.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.set(c, value)
}
