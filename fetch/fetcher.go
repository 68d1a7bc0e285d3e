// Package fetch runs one request against many connectors at once and merges what they find.
package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/source"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds the policy knobs of a fetcher.
type Config struct {
	// MaxConcurrency bounds the connector tasks running at once across all sessions of a fetcher.
	MaxConcurrency int `validate:"min=1"`
	// DedupKey names the key function used to merge items, see source.KeyFuncs.
	// It is ignored when WithKeyFunc is given.
	DedupKey string
}

// DefaultConfig is used when no configuration is given.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 8,
		DedupKey:       "url",
	}
}

// Option customizes a fetcher.
type Option func(*Fetcher)

// WithKeyFunc replaces the configured dedup key with a custom function.
func WithKeyFunc(key source.KeyFunc) Option {
	return func(f *Fetcher) {
		f.key = key
	}
}

// Fetcher creates sessions for requests against a fixed set of connector instances.
type Fetcher struct {
	config    Config
	instances []source.Instance
	key       source.KeyFunc
	pool      pond.Pool
}

// New validates the configuration and instances and starts the task pool.
func New(config Config, instances []source.Instance, opts ...Option) (*Fetcher, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid fetch config: %w", err)
	}

	var errs []error
	for _, instance := range instances {
		if err := instance.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, id := range lo.FindDuplicates(lo.Map(instances, func(i source.Instance, _ int) string { return i.ID })) {
		errs = append(errs, fmt.Errorf("duplicate instance id %q", id))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	f := &Fetcher{
		config:    config,
		instances: instances,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.key == nil {
		key, err := source.KeyFuncFor(config.DedupKey)
		if err != nil {
			return nil, err
		}
		f.key = key
	}

	f.pool = pond.NewPool(config.MaxConcurrency)

	log.WithFields(log.Fields{
		"instances":       len(instances),
		"max_concurrency": config.MaxConcurrency,
		"dedup_key":       config.DedupKey,
	}).Debug("fetcher created")

	return f, nil
}

// Instances returns the connector instances sessions are created for.
func (f *Fetcher) Instances() []source.Instance {
	return f.instances
}

// NewSession creates a session for the request. No connector runs until a source is observed.
// Cancelling ctx cancels every fetch of the session.
func (f *Fetcher) NewSession(ctx context.Context, request source.Request) (*Session, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	return newSession(ctx, f.pool, f.key, request, f.instances), nil
}

// Close waits for running fetches and stops the pool.
// Sources triggered afterwards fail with pond.ErrPoolStopped.
func (f *Fetcher) Close() {
	f.pool.StopAndWait()
}
