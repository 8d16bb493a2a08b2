package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet reports whether any of names was given on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// envOverride binds one environment variable (without EnvPrefix) to the
// flags it stands in for.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

var envOverrides = []envOverride{
	{"A", []string{"a"}, func(c *AppConfig, v string) { c.A = v }},
	{"B", []string{"b"}, func(c *AppConfig, v string) { c.B = v }},
	{"OP", []string{"op"}, func(c *AppConfig, v string) { c.Op = v }},
	{"ALGO", []string{"algo"}, func(c *AppConfig, v string) { c.Algo = v }},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}},
	{"MEMORY_LIMIT", []string{"memory-limit"}, func(c *AppConfig, v string) { c.MemoryLimit = v }},
	{"GC_MODE", []string{"gc"}, func(c *AppConfig, v string) { c.GCMode = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) { c.LogLevel = v }},
	{"PORT", []string{"port"}, func(c *AppConfig, v string) { c.Port = v }},
	{"TRUSTED_PROXIES", []string{"trusted-proxies"}, func(c *AppConfig, v string) { c.TrustedProxies = v }},
	{"MAX_DIGITS", []string{"max-digits"}, func(c *AppConfig, v string) {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxDigits = n
		}
	}},

	{"VERBOSE", []string{"v"}, func(c *AppConfig, v string) { c.Verbose = parseBoolEnv(v, c.Verbose) }},
	{"DETAILS", []string{"d", "details"}, func(c *AppConfig, v string) { c.Details = parseBoolEnv(v, c.Details) }},
	{"CALCULATE", []string{"calculate", "c"}, func(c *AppConfig, v string) { c.ShowValue = parseBoolEnv(v, c.ShowValue) }},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) { c.Quiet = parseBoolEnv(v, c.Quiet) }},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) { c.NoColor = parseBoolEnv(v, c.NoColor) }},
	{"INTERACTIVE", []string{"interactive"}, func(c *AppConfig, v string) { c.Interactive = parseBoolEnv(v, c.Interactive) }},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) { c.TUI = parseBoolEnv(v, c.TUI) }},
	{"SERVER", []string{"server"}, func(c *AppConfig, v string) { c.ServerMode = parseBoolEnv(v, c.ServerMode) }},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively, and
// keeps current for anything else.
func parseBoolEnv(val string, current bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return current
}

// applyEnvOverrides fills every setting whose flag was not given from its
// DIGITCALC_* variable, if set.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSet(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
