// Package config reads the bbgen build environment.
package config

import (
	"os"
	"runtime"

	"github.com/aztecprotocol/barretenberg-go/internal/builderr"
	"github.com/aztecprotocol/barretenberg-go/internal/logging"
)

// Environment variables bbgen reads.
const (
	EnvOutDir    = "OUT_DIR"
	EnvPkgConfig = "PKG_CONFIG"
	EnvCC        = "CC"
	EnvClang     = "CLANG"
	EnvBrew      = "HOMEBREW_BREW_FILE"
	EnvLogLevel  = "BBGEN_LOG_LEVEL"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Config is the per-run configuration. It is built once and never mutated.
type Config struct {
	// OutDir receives the generated bindings. It may be empty until the
	// bindings are written; see OutputDir.
	OutDir string

	// PkgConfig, CC, Clang and Brew name the host tools bbgen invokes.
	PkgConfig string
	CC        string
	Clang     string
	Brew      string
	LogLevel  string

	// HostOS is the GOOS-style identifier classified by the platform package.
	HostOS string

	// Lookup answers environment queries made after loading, such as the
	// pkg-config disable switches.
	Lookup LookupFunc
}

// FromEnv builds a Config from lookup. A nil lookup reads the process
// environment. OUT_DIR is only checked by OutputDir, when the bindings are
// written.
func FromEnv(lookup LookupFunc) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		OutDir:    get(EnvOutDir, ""),
		PkgConfig: get(EnvPkgConfig, "pkg-config"),
		CC:        get(EnvCC, "cc"),
		Clang:     get(EnvClang, "clang"),
		Brew:      get(EnvBrew, "brew"),
		LogLevel:  get(EnvLogLevel, "info"),
		HostOS:    runtime.GOOS,
		Lookup:    lookup,
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, builderr.Wrap(builderr.KindEnvironment, EnvLogLevel+": "+err.Error(), err)
	}
	return cfg, nil
}

// OutputDir returns the directory that receives generated files.
func (c *Config) OutputDir() (string, error) {
	if c.OutDir == "" {
		return "", builderr.Newf(builderr.KindEnvironment, "%s is not set", EnvOutDir)
	}
	return c.OutDir, nil
}

// MapLookup adapts a map to a LookupFunc.
func MapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}
