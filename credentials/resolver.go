// Package credentials resolves secrets from an ordered list of sources:
// deployment environment first, then the value supplied in the request body.
package credentials

import (
	"os"
	"strings"
)

type Resolver struct {
	options Options
}

type Option func(*Options)

type Options struct {
	Lookup func(key string) (string, bool)
}

// WithLookup overrides the environment lookup, mainly for tests.
func WithLookup(lookup func(key string) (string, bool)) Option {
	return func(o *Options) {
		o.Lookup = lookup
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Lookup: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func NewResolver(opts ...Option) *Resolver {
	return &Resolver{
		options: NewOptions(opts...),
	}
}

// Resolve returns the secret for envKey, preferring the environment over the
// request-supplied value. The second return is false when neither source has
// a non-empty value.
func (r *Resolver) Resolve(envKey string, requestValue string) (string, bool) {
	if v, ok := r.options.Lookup(envKey); ok && len(strings.TrimSpace(v)) > 0 {
		return v, true
	}

	if len(strings.TrimSpace(requestValue)) > 0 {
		return requestValue, true
	}

	return "", false
}
