// Package environments holds the storefront deployment registry: which base
// URL, currency and region serve a given environment and market.
//
// Keys are matched case-insensitively. Environment keys normalize to lower
// case, market keys to upper case.
package environments

import (
	"fmt"
	"os"
	"strings"

	"github.com/horecastore/storefront-e2e/internal/errs"
	"github.com/horecastore/storefront-e2e/internal/urlutil"
)

// Name identifies a deployment tier.
type Name string

const (
	Dev  Name = "dev"
	Test Name = "test"
	Prod Name = "prod"
)

// Market identifies a localized storefront.
type Market string

const (
	USA Market = "USA"
	UAE Market = "UAE"
)

const (
	// DefaultName and DefaultMarket apply when Get is called without arguments.
	DefaultName   = Test
	DefaultMarket = USA

	// CurrentFallback is returned by Current when no override is set.
	CurrentFallback = "test"
)

// Variables consulted by Current, in priority order.
var currentEnvVars = []string{"NODE_ENV", "TEST_ENV"}

// NormalizeName lower-cases a raw environment key.
func NormalizeName(raw string) Name {
	return Name(strings.ToLower(strings.TrimSpace(raw)))
}

// NormalizeMarket upper-cases a raw market key.
func NormalizeMarket(raw string) Market {
	return Market(strings.ToUpper(strings.TrimSpace(raw)))
}

// MarketConfig is the deployment of one market within an environment.
type MarketConfig struct {
	BaseURL  string
	Currency string
	Region   string
}

type marketEntry struct {
	market Market
	config MarketConfig
}

// Environment is a deployment tier with its per-market configuration.
type Environment struct {
	Key     Name
	Name    string
	markets []marketEntry
}

// Markets returns the environment's market keys in declaration order.
func (e Environment) Markets() []Market {
	out := make([]Market, len(e.markets))
	for i, m := range e.markets {
		out[i] = m.market
	}
	return out
}

func (e Environment) market(m Market) (MarketConfig, bool) {
	for _, entry := range e.markets {
		if entry.market == m {
			return entry.config, true
		}
	}
	return MarketConfig{}, false
}

// Resolved merges environment metadata with one market's configuration.
type Resolved struct {
	Key      Name
	Name     string
	Market   Market
	BaseURL  string
	Currency string
	Region   string
}

// Registry is an immutable set of environments.
type Registry struct {
	envs []Environment
}

// NewEnvironment declares an environment without markets.
func NewEnvironment(key Name, name string) Environment {
	return Environment{Key: key, Name: name}
}

// WithMarket returns a copy of e with market m appended.
func (e Environment) WithMarket(m Market, cfg MarketConfig) Environment {
	markets := make([]marketEntry, len(e.markets), len(e.markets)+1)
	copy(markets, e.markets)
	e.markets = append(markets, marketEntry{m, cfg})
	return e
}

// NewRegistry builds a registry from envs in declaration order. Call Validate
// to check it.
func NewRegistry(envs ...Environment) *Registry {
	return &Registry{envs: append([]Environment(nil), envs...)}
}

// Get resolves the configuration for env and market. Empty arguments fall back
// to DefaultName and DefaultMarket.
func (r *Registry) Get(env, market string) (Resolved, error) {
	if strings.TrimSpace(env) == "" {
		env = string(DefaultName)
	}
	if strings.TrimSpace(market) == "" {
		market = string(DefaultMarket)
	}
	return r.Resolve(env, market)
}

// Resolve is Get without defaults: an empty env or market is not found.
func (r *Registry) Resolve(env, market string) (Resolved, error) {
	e, err := r.lookup(env)
	if err != nil {
		return Resolved{}, err
	}
	m := NormalizeMarket(market)
	cfg, ok := e.market(m)
	if !ok {
		return Resolved{}, marketNotFound(market, env, e.Markets())
	}
	return Resolved{
		Key:      e.Key,
		Name:     e.Name,
		Market:   m,
		BaseURL:  cfg.BaseURL,
		Currency: cfg.Currency,
		Region:   cfg.Region,
	}, nil
}

// BaseURL returns only the base URL for env and market.
func (r *Registry) BaseURL(env, market string) (string, error) {
	resolved, err := r.Get(env, market)
	if err != nil {
		return "", err
	}
	return resolved.BaseURL, nil
}

// Available returns the declared environment keys in declaration order.
func (r *Registry) Available() []string {
	out := make([]string, len(r.envs))
	for i, e := range r.envs {
		out[i] = string(e.Key)
	}
	return out
}

// AvailableMarkets returns the market keys declared for env. An empty env
// falls back to DefaultName.
func (r *Registry) AvailableMarkets(env string) ([]string, error) {
	if strings.TrimSpace(env) == "" {
		env = string(DefaultName)
	}
	return r.Markets(env)
}

// Markets is AvailableMarkets without the default environment.
func (r *Registry) Markets(env string) ([]string, error) {
	e, err := r.lookup(env)
	if err != nil {
		return nil, err
	}
	markets := e.Markets()
	out := make([]string, len(markets))
	for i, m := range markets {
		out[i] = string(m)
	}
	return out, nil
}

// Validate checks the dataset invariants: every environment declares the same
// market keys, and every base URL is absolute.
func (r *Registry) Validate() error {
	if len(r.envs) == 0 {
		return errs.New(errs.Internal, "environment registry is empty")
	}
	var problems []string
	reference := joinMarkets(r.envs[0].Markets())
	for _, e := range r.envs {
		if got := joinMarkets(e.Markets()); got != reference {
			problems = append(problems, fmt.Sprintf("environment %q declares markets [%s], want [%s]", e.Key, got, reference))
		}
		for _, m := range e.markets {
			if !urlutil.IsAbsolute(m.config.BaseURL) {
				problems = append(problems, fmt.Sprintf("environment %q market %q has non-absolute base URL %q", e.Key, m.market, m.config.BaseURL))
			}
		}
	}
	if len(problems) > 0 {
		return errs.New(errs.Internal, "environment registry invalid:\n  - "+strings.Join(problems, "\n  - "))
	}
	return nil
}

func (r *Registry) lookup(env string) (Environment, error) {
	key := NormalizeName(env)
	for _, e := range r.envs {
		if e.Key == key {
			return e, nil
		}
	}
	return Environment{}, envNotFound(env, r.Available())
}

func envNotFound(env string, available []string) error {
	return errs.New(errs.NotFound, fmt.Sprintf(
		"environment %q not found; available environments: %s",
		env, strings.Join(available, ", "),
	))
}

func marketNotFound(market, env string, available []Market) error {
	return errs.New(errs.NotFound, fmt.Sprintf(
		"market %q not found for environment %q; available markets: %s",
		market, env, joinMarkets(available),
	))
}

func joinMarkets(markets []Market) string {
	parts := make([]string, len(markets))
	for i, m := range markets {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

// LookupFunc reads one process environment variable.
type LookupFunc func(key string) (string, bool)

// CurrentFrom resolves the active environment name using lookup. NODE_ENV wins
// over TEST_ENV; blank values count as unset and the result is trimmed.
func CurrentFrom(lookup LookupFunc) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range currentEnvVars {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return CurrentFallback
}

// Current resolves the active environment name from the process environment.
func Current() string {
	return CurrentFrom(os.LookupEnv)
}
