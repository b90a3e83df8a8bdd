package credentials

import "os"

// SecretSource supplies password values by key.
type SecretSource interface {
	Lookup(key string) (string, bool)
}

// EnvSource reads secrets from the process environment.
type EnvSource struct{}

func (EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapSource serves secrets from a fixed map.
type MapSource map[string]string

func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ChainSource consults each source in order and returns the first non-empty
// value.
type ChainSource []SecretSource

func (c ChainSource) Lookup(key string) (string, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
