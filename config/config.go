// Package config resolves the engine's process-wide settings: functional
// options mutating an immutable Config, plus FromEnv for the deployed
// service entrypoint. Modeled on the teacher's builder package's
// options-resolve-into-a-config shape (BuilderOption -> builderConfig),
// generalized from graph construction to engine bootstrap.
package config

import (
	"os"
	"strconv"
)

// KernelMode selects which zone.Kernel implementation the engine installs
// at startup (spec.md §6.1 names the kernel as an abstract operation
// set; a deployment picks one concrete implementation).
type KernelMode int

const (
	// KernelDBM is the pure-Go reference DBM/federation kernel
	// (zone/refimpl). The only mode currently shipped.
	KernelDBM KernelMode = iota
)

// Config is the engine's resolved, read-only configuration: a single
// value built once at startup and never mutated afterward, shared by
// every query-handling goroutine (spec.md §5).
type Config struct {
	CacheSize  int
	LogLevel   string
	KernelMode KernelMode
}

// defaults mirrors the teacher's builderConfig zero-value-is-usable
// convention: a Config built from no options at all is still valid.
func defaults() Config {
	return Config{CacheSize: 100, LogLevel: "info", KernelMode: KernelDBM}
}

// Option customizes a Config before it is frozen. Option constructors
// validate and panic on inputs that can never be meaningful (the
// teacher's builder.Option convention); runtime-dependent invalidity
// (a malformed environment variable) is instead reported as an error by
// FromEnv, never panicked.
type Option func(*Config)

// WithCacheSize overrides the component-map cache's maximum entry count.
// Panics on a non-positive size.
func WithCacheSize(n int) Option {
	if n <= 0 {
		panic("config: WithCacheSize requires a positive size")
	}

	return func(c *Config) { c.CacheSize = n }
}

// WithLogLevel overrides the zerolog level name ("debug", "info", "warn",
// "error"). Panics on an empty level.
func WithLogLevel(level string) Option {
	if level == "" {
		panic("config: WithLogLevel requires a non-empty level")
	}

	return func(c *Config) { c.LogLevel = level }
}

// WithKernelMode overrides which zone.Kernel implementation to install.
func WithKernelMode(m KernelMode) Option {
	return func(c *Config) { c.KernelMode = m }
}

// New resolves a Config from defaults plus opts, in order.
func New(opts ...Option) Config {
	c := defaults()
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// FromEnv resolves a Config from the process environment, falling back
// to defaults for any variable left unset:
//   - RVL_CACHE_SIZE: positive integer, component-map cache capacity.
//   - RVL_LOG_LEVEL: zerolog level name.
//   - RVL_KERNEL_MODE: "dbm" (the only mode currently shipped).
//
// Unlike the Option constructors, a malformed value here is a runtime
// condition, not a programmer error, so FromEnv returns an error rather
// than panicking.
func FromEnv() (Config, error) {
	c := defaults()

	if v := os.Getenv("RVL_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, &EnvError{Var: "RVL_CACHE_SIZE", Value: v}
		}
		c.CacheSize = n
	}

	if v := os.Getenv("RVL_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	if v := os.Getenv("RVL_KERNEL_MODE"); v != "" {
		switch v {
		case "dbm":
			c.KernelMode = KernelDBM
		default:
			return Config{}, &EnvError{Var: "RVL_KERNEL_MODE", Value: v}
		}
	}

	return c, nil
}

// EnvError reports that an environment variable held a value FromEnv
// could not interpret.
type EnvError struct {
	Var   string
	Value string
}

func (e *EnvError) Error() string {
	return "config: invalid " + e.Var + "=" + e.Value
}
