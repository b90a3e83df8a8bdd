// Package credentials resolves login credentials for storefront test
// personas.
//
// Persona records are static. Passwords are never stored with them: they are
// resolved at access time from a SecretSource, probing keys from the most to
// the least specific (see SecretKeys). Resolution fails closed when no key is
// set.
//
// Every entry point requires all of its arguments. Defaulting to the current
// selection is the job of the config package.
package credentials

import (
	"fmt"
	"strings"

	"github.com/horecastore/storefront-e2e/internal/environments"
	"github.com/horecastore/storefront-e2e/internal/errs"
)

// DefaultSecretPrefix prefixes every password key.
const DefaultSecretPrefix = "HORECA_PWD"

// PersonaKey names a test-user archetype.
type PersonaKey string

const (
	Private  PersonaKey = "private"
	Business PersonaKey = "business"
	Gmail    PersonaKey = "gmail"
)

// NormalizePersona lower-cases a raw persona key.
func NormalizePersona(raw string) PersonaKey {
	return PersonaKey(strings.ToLower(strings.TrimSpace(raw)))
}

// Persona holds the display identity of a test user. CompanyName is set only
// for business personas.
type Persona struct {
	Username    string
	Role        string
	FirstName   string
	LastName    string
	CompanyName string
}

// Credential is a persona plus its resolved password.
type Credential struct {
	Persona
	Password string
}

// HasCompany reports whether the credential belongs to a business persona.
func (c Credential) HasCompany() bool {
	return c.CompanyName != ""
}

type personaEntry struct {
	key     PersonaKey
	persona Persona
}

type marketPersonas struct {
	market   environments.Market
	personas []personaEntry
}

type envPersonas struct {
	env     environments.Name
	markets []marketPersonas
}

// Resolver looks up personas and resolves their passwords.
type Resolver struct {
	secrets SecretSource
	prefix  string
	data    []envPersonas
}

// New creates a Resolver over the storefront personas reading passwords from
// secrets. A nil source reads the process environment.
func New(secrets SecretSource) *Resolver {
	if secrets == nil {
		secrets = EnvSource{}
	}
	return &Resolver{
		secrets: secrets,
		prefix:  DefaultSecretPrefix,
		data:    seed,
	}
}

// Default returns a Resolver reading passwords from the process environment.
func Default() *Resolver {
	return New(EnvSource{})
}

// WithPrefix returns a copy of r that probes keys under prefix.
func (r *Resolver) WithPrefix(prefix string) *Resolver {
	cp := *r
	cp.prefix = strings.ToUpper(strings.TrimSpace(prefix))
	return &cp
}

// Credentials returns the persona for env/market/persona merged with its
// password. The result is a copy; mutating it does not affect the dataset.
func (r *Resolver) Credentials(env, market, persona string) (Credential, error) {
	if err := validateArgs("Credentials", personaArgs{
		Env:     strings.TrimSpace(env),
		Market:  strings.TrimSpace(market),
		Persona: strings.TrimSpace(persona),
	}); err != nil {
		return Credential{}, err
	}
	p, err := r.lookupPersona(env, market, persona)
	if err != nil {
		return Credential{}, err
	}
	password, err := r.resolvePassword(env, market, persona)
	if err != nil {
		return Credential{}, err
	}
	return Credential{Persona: p, Password: password}, nil
}

// Username returns the username for env/market/persona. It fails the same way
// Credentials does, including when no password is configured.
func (r *Resolver) Username(env, market, persona string) (string, error) {
	if err := validateArgs("Username", personaArgs{
		Env:     strings.TrimSpace(env),
		Market:  strings.TrimSpace(market),
		Persona: strings.TrimSpace(persona),
	}); err != nil {
		return "", err
	}
	cred, err := r.Credentials(env, market, persona)
	if err != nil {
		return "", err
	}
	return cred.Username, nil
}

// Password resolves the password for env/market/persona from the secret
// source.
func (r *Resolver) Password(env, market, persona string) (string, error) {
	if err := validateArgs("Password", personaArgs{
		Env:     strings.TrimSpace(env),
		Market:  strings.TrimSpace(market),
		Persona: strings.TrimSpace(persona),
	}); err != nil {
		return "", err
	}
	return r.resolvePassword(env, market, persona)
}

// SecretKeys returns the password keys probed for env/market/persona, most
// specific first. Persona-specific keys outrank market-specific ones.
func (r *Resolver) SecretKeys(env, market, persona string) []string {
	e := strings.ToUpper(strings.TrimSpace(env))
	m := strings.ToUpper(strings.TrimSpace(market))
	p := strings.ToUpper(strings.TrimSpace(persona))
	return []string{
		r.prefix + "_" + e + "_" + m + "_" + p,
		r.prefix + "_" + e + "_" + p,
		r.prefix + "_" + e + "_" + m,
		r.prefix + "_" + e,
		r.prefix + "_DEFAULT",
	}
}

func (r *Resolver) resolvePassword(env, market, persona string) (string, error) {
	candidates := r.SecretKeys(env, market, persona)
	for _, key := range candidates {
		if v, ok := r.secrets.Lookup(key); ok && v != "" {
			return v, nil
		}
	}
	return "", errs.New(errs.MissingSecret, "password not provided; set one of: "+strings.Join(candidates, ", "))
}

// AvailablePersonas lists the personas declared for env and market.
func (r *Resolver) AvailablePersonas(env, market string) ([]string, error) {
	if err := validateArgs("AvailablePersonas", marketArgs{
		Env:    strings.TrimSpace(env),
		Market: strings.TrimSpace(market),
	}); err != nil {
		return nil, err
	}
	mp, err := r.lookupMarket(env, market)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(mp.personas))
	for i, p := range mp.personas {
		out[i] = string(p.key)
	}
	return out, nil
}

// AvailableEnvironments lists the environments that declare personas.
func (r *Resolver) AvailableEnvironments() []string {
	out := make([]string, len(r.data))
	for i, e := range r.data {
		out[i] = string(e.env)
	}
	return out
}

// AvailableMarkets lists the markets that declare personas for env.
func (r *Resolver) AvailableMarkets(env string) ([]string, error) {
	if err := validateArgs("AvailableMarkets", envArgs{Env: strings.TrimSpace(env)}); err != nil {
		return nil, err
	}
	ep, err := r.lookupEnv(env)
	if err != nil {
		return nil, err
	}
	return marketKeys(ep), nil
}

func (r *Resolver) lookupEnv(env string) (envPersonas, error) {
	key := environments.NormalizeName(env)
	for _, e := range r.data {
		if e.env == key {
			return e, nil
		}
	}
	return envPersonas{}, errs.New(errs.NotFound, fmt.Sprintf(
		"environment %q not found; available environments: %s",
		env, strings.Join(r.AvailableEnvironments(), ", "),
	))
}

func (r *Resolver) lookupMarket(env, market string) (marketPersonas, error) {
	ep, err := r.lookupEnv(env)
	if err != nil {
		return marketPersonas{}, err
	}
	key := environments.NormalizeMarket(market)
	for _, m := range ep.markets {
		if m.market == key {
			return m, nil
		}
	}
	return marketPersonas{}, errs.New(errs.NotFound, fmt.Sprintf(
		"market %q not found for environment %q; available markets: %s",
		market, env, strings.Join(marketKeys(ep), ", "),
	))
}

func (r *Resolver) lookupPersona(env, market, persona string) (Persona, error) {
	mp, err := r.lookupMarket(env, market)
	if err != nil {
		return Persona{}, err
	}
	key := NormalizePersona(persona)
	names := make([]string, len(mp.personas))
	for i, p := range mp.personas {
		if p.key == key {
			return p.persona, nil
		}
		names[i] = string(p.key)
	}
	return Persona{}, errs.New(errs.NotFound, fmt.Sprintf(
		"persona %q not found for environment %q and market %q; available personas: %s",
		persona, env, market, strings.Join(names, ", "),
	))
}

func marketKeys(ep envPersonas) []string {
	out := make([]string, len(ep.markets))
	for i, m := range ep.markets {
		out[i] = string(m.market)
	}
	return out
}
