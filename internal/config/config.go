// Package config is the entry point the browser suite uses to find out which
// storefront to drive and as whom.
//
// A Config holds the current environment/market/persona selection, seeded
// from NODE_ENV/TEST_ENV, TEST_MARKET and TEST_PERSONA. Accessors accept
// per-call overrides; an empty argument falls back to the current selection.
// Setters only normalize case. Validation happens when a value is read, so
// SetEnvironment("bogus") succeeds and the next BaseURL call fails.
//
// Create one Config per test worker when selections differ between workers.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/horecastore/storefront-e2e/internal/credentials"
	"github.com/horecastore/storefront-e2e/internal/environments"
	"github.com/horecastore/storefront-e2e/internal/obs"
)

const (
	defaultMarket  = "USA"
	defaultPersona = "private"
)

// Options customizes where a Config reads its inputs from.
type Options struct {
	// Lookup reads process environment variables. Defaults to os.LookupEnv.
	Lookup environments.LookupFunc
	// Secrets supplies passwords. Defaults to the process environment.
	Secrets credentials.SecretSource
	// Registry overrides the storefront environment registry.
	Registry *environments.Registry
}

// Selection is the current environment, market and persona.
type Selection struct {
	Environment string
	Market      string
	Persona     string
}

// Snapshot is the current selection with its derived base URL and credentials.
type Snapshot struct {
	Selection
	BaseURL     string
	Credentials credentials.Credential
}

// Config composes the environment registry and the credential resolver
// around a mutable selection.
type Config struct {
	registry *environments.Registry
	resolver *credentials.Resolver

	mu  sync.RWMutex
	sel Selection
}

// New creates a Config seeded from the process environment.
func New() *Config {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a Config using opts for environment reads, secrets
// and the registry.
func NewWithOptions(opts Options) *Config {
	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	registry := opts.Registry
	if registry == nil {
		registry = environments.Default()
	}

	c := &Config{
		registry: registry,
		resolver: credentials.New(opts.Secrets),
	}
	c.sel = Selection{
		Environment: normalizeEnv(environments.CurrentFrom(lookup)),
		Market:      normalizeMarket(getEnvOrDefault(lookup, "TEST_MARKET", defaultMarket)),
		Persona:     normalizePersona(getEnvOrDefault(lookup, "TEST_PERSONA", defaultPersona)),
	}
	return c
}

// Environment returns the current environment.
func (c *Config) Environment() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sel.Environment
}

// Market returns the current market.
func (c *Config) Market() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sel.Market
}

// Persona returns the current persona.
func (c *Config) Persona() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sel.Persona
}

// Selection returns a copy of the current selection.
func (c *Config) Selection() Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sel
}

func (c *Config) SetEnvironment(env string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.Environment = normalizeEnv(env)
}

func (c *Config) SetMarket(market string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.Market = normalizeMarket(market)
}

func (c *Config) SetPersona(persona string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.Persona = normalizePersona(persona)
}

// SetConfig replaces the whole selection.
func (c *Config) SetConfig(env, market, persona string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel = Selection{
		Environment: normalizeEnv(env),
		Market:      normalizeMarket(market),
		Persona:     normalizePersona(persona),
	}
}

// effective fills empty arguments from the current selection. An empty
// selection stays empty, and the registry reports it as not found.
func (c *Config) effective(env, market, persona string) Selection {
	cur := c.Selection()
	return Selection{
		Environment: orCurrent(env, cur.Environment),
		Market:      orCurrent(market, cur.Market),
		Persona:     orCurrent(persona, cur.Persona),
	}
}

// BaseURL returns the storefront base URL.
func (c *Config) BaseURL(env, market string) (string, error) {
	resolved, err := c.EnvironmentConfig(env, market)
	if err != nil {
		return "", err
	}
	return resolved.BaseURL, nil
}

// EnvironmentConfig returns the merged environment/market record.
func (c *Config) EnvironmentConfig(env, market string) (environments.Resolved, error) {
	s := c.effective(env, market, "")
	return c.registry.Resolve(s.Environment, s.Market)
}

// Credentials returns the login credentials including the password.
func (c *Config) Credentials(env, market, persona string) (credentials.Credential, error) {
	s := c.effective(env, market, persona)
	return c.resolver.Credentials(s.Environment, s.Market, s.Persona)
}

func (c *Config) Username(env, market, persona string) (string, error) {
	s := c.effective(env, market, persona)
	return c.resolver.Username(s.Environment, s.Market, s.Persona)
}

func (c *Config) Password(env, market, persona string) (string, error) {
	s := c.effective(env, market, persona)
	return c.resolver.Password(s.Environment, s.Market, s.Persona)
}

// AvailableEnvironments lists every declared environment.
func (c *Config) AvailableEnvironments() []string {
	return c.registry.Available()
}

func (c *Config) AvailableMarkets(env string) ([]string, error) {
	s := c.effective(env, "", "")
	return c.registry.Markets(s.Environment)
}

func (c *Config) AvailablePersonas(env, market string) ([]string, error) {
	s := c.effective(env, market, "")
	return c.resolver.AvailablePersonas(s.Environment, s.Market)
}

// CurrentConfig resolves the current selection into a Snapshot. The
// selection is read once, so a concurrent setter cannot mix two selections.
func (c *Config) CurrentConfig() (Snapshot, error) {
	sel := c.Selection()
	resolved, err := c.registry.Resolve(sel.Environment, sel.Market)
	if err != nil {
		return Snapshot{}, err
	}
	cred, err := c.resolver.Credentials(sel.Environment, sel.Market, sel.Persona)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Selection: sel, BaseURL: resolved.BaseURL, Credentials: cred}, nil
}

// Validate checks the registry, then resolves the base URL and credentials of
// the current selection, and returns the first failure.
func (c *Config) Validate() error {
	if err := c.registry.Validate(); err != nil {
		return err
	}
	_, err := c.CurrentConfig()
	return err
}

// IsValid reports whether the current selection resolves. Failures are logged,
// never returned.
func (c *Config) IsValid() bool {
	if err := c.Validate(); err != nil {
		sel := c.Selection()
		obs.Pkg("config").Warn("invalid configuration",
			"environment", sel.Environment,
			"market", sel.Market,
			"persona", sel.Persona,
			"error", err.Error(),
		)
		return false
	}
	return true
}

// PrintSummary writes a human-readable description of the current selection
// and the available options. Passwords are never printed.
func (c *Config) PrintSummary(w io.Writer) {
	sel := c.Selection()

	fmt.Fprintln(w, "=== Current Configuration ===")
	fmt.Fprintf(w, "  Environment: %s\n", sel.Environment)
	fmt.Fprintf(w, "  Market:      %s\n", sel.Market)
	fmt.Fprintf(w, "  Persona:     %s\n", sel.Persona)
	fmt.Fprintf(w, "  Base URL:    %s\n", valueOrError(c.BaseURL("", "")))
	fmt.Fprintf(w, "  Username:    %s\n", valueOrError(c.Username("", "", "")))

	fmt.Fprintln(w, "--- Available Options ---")
	fmt.Fprintf(w, "  Environments: %s\n", strings.Join(c.AvailableEnvironments(), ", "))
	fmt.Fprintf(w, "  Markets:      %s\n", listOrError(c.AvailableMarkets("")))
	fmt.Fprintf(w, "  Personas:     %s\n", listOrError(c.AvailablePersonas("", "")))
}

func valueOrError(v string, err error) string {
	if err != nil {
		return "<error: " + err.Error() + ">"
	}
	return v
}

func listOrError(v []string, err error) string {
	if err != nil {
		return "<error: " + err.Error() + ">"
	}
	return strings.Join(v, ", ")
}

func orCurrent(override, current string) string {
	if strings.TrimSpace(override) == "" {
		return current
	}
	return override
}

func normalizeEnv(raw string) string {
	return string(environments.NormalizeName(raw))
}

func normalizeMarket(raw string) string {
	return string(environments.NormalizeMarket(raw))
}

func normalizePersona(raw string) string {
	return string(credentials.NormalizePersona(raw))
}

func getEnvOrDefault(lookup environments.LookupFunc, key, defaultValue string) string {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return strings.TrimSpace(value)
}
