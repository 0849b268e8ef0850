// Package config resolves run-time settings from a `.svcheck.env` file,
// the process environment, and command-line flags, in that precedence
// order (flags win). Grounded on the teacher's internal/config/config.go
// (LoadConfig's env-var-with-fallback-default shape) and checks.go
// (pflag.FlagSet-driven option resolution), restructured around the
// checker's own settings rather than fileman's.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/oxhq/svcheck/internal/reporter"
)

// Config holds the resolved run-time settings for one svcheck invocation.
type Config struct {
	AbortThreshold  int
	DefaultSeverity reporter.Severity
	hasDefault      bool
	UVMSeed         bool

	// SeverityOverrides maps a MsgID name (e.g. "ErrNotFound") to the
	// severity it should report at instead of its built-in default.
	SeverityOverrides map[string]reporter.Severity
}

// Load reads envFile (if present — a missing file is not an error, the
// same tolerance godotenv.Load itself has for an absent .env) and layers
// the process environment over its defaults.
func Load(envFile string) *Config {
	_ = godotenv.Load(envFile)

	cfg := &Config{
		AbortThreshold:    0,
		DefaultSeverity:   reporter.Info,
		UVMSeed:           false,
		SeverityOverrides: map[string]reporter.Severity{},
	}

	if v := os.Getenv("SVCHECK_ABORT_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.AbortThreshold = n
		}
	}
	if v := os.Getenv("SVCHECK_DEFAULT_SEVERITY"); v != "" {
		if sev, ok := parseSeverity(v); ok {
			cfg.DefaultSeverity = sev
			cfg.hasDefault = true
		}
	}
	if v := os.Getenv("SVCHECK_UVM_SEED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UVMSeed = b
		}
	}
	cfg.loadSeverityOverrides()

	return cfg
}

// loadSeverityOverrides scans the environment for SVCHECK_SEVERITY_<Name>
// entries (e.g. SVCHECK_SEVERITY_ErrNotFound=warning, Name matching a
// MsgID's own String() spelling), letting a single diagnostic kind be
// dialed down without changing the run's overall default severity.
func (c *Config) loadSeverityOverrides() {
	const prefix = "SVCHECK_SEVERITY_"
	for _, kv := range os.Environ() {
		k, v, found := strings.Cut(kv, "=")
		if !found || !strings.HasPrefix(k, prefix) {
			continue
		}
		sev, ok := parseSeverity(v)
		if !ok {
			continue
		}
		c.SeverityOverrides[strings.TrimPrefix(k, prefix)] = sev
	}
}

// msgIDByName maps the exported MsgID names back to their constants, for
// SVCHECK_SEVERITY_<NAME> env-var overrides — reporter's own name table
// is internal to its String() method, so this is config's own reverse
// lookup rather than reaching into reporter's private map.
var msgIDByName = map[string]reporter.MsgID{
	"ErrFile": reporter.ErrFile, "ErrToken": reporter.ErrToken,
	"ErrSyntax": reporter.ErrSyntax, "ErrNotFound": reporter.ErrNotFound,
	"ErrImplicit": reporter.ErrImplicit, "ErrArgMiss": reporter.ErrArgMiss,
	"ErrArgExtra": reporter.ErrArgExtra, "WarnUnused": reporter.WarnUnused,
	"InfoStatus": reporter.InfoStatus, "DbgSkip": reporter.DbgSkip,
	"DbgStatus": reporter.DbgStatus,
}

func parseSeverity(s string) (reporter.Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return reporter.Debug, true
	case "info":
		return reporter.Info, true
	case "warning", "warn":
		return reporter.Warning, true
	case "error":
		return reporter.Error, true
	default:
		return 0, false
	}
}

// Apply pushes the resolved abort threshold and severity settings into rep,
// the same "configuration resolves into the live object, not read back out
// of it" shape checks.go uses for *model.Config. When SVCHECK_DEFAULT_SEVERITY
// was set, it overrides every MsgID's severity as a blanket floor before the
// per-name SeverityOverrides are layered on top, so a single dialed-down
// diagnostic still wins over the blanket default.
func (c *Config) Apply(rep *reporter.Reporter) {
	rep.SetAbortThreshold(c.AbortThreshold)
	if c.hasDefault {
		for _, id := range msgIDByName {
			rep.SetSeverity(id, c.DefaultSeverity)
		}
	}
	for name, sev := range c.SeverityOverrides {
		if id, ok := msgIDByName[name]; ok {
			rep.SetSeverity(id, sev)
		}
	}
}
