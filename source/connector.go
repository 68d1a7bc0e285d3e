package source

import (
	"context"
	"fmt"
)

// Emit hands one item to the consumer.
// It returns false once the consumer no longer wants items; the connector should return then.
type Emit func(MatchMedia) bool

// Connector fetches candidate media for a request.
//
// Fetch pushes items through emit in the order they are produced, page by page,
// and returns when the sequence is exhausted. A non-nil error marks the fetch as failed;
// items emitted before it are kept.
type Connector interface {
	Fetch(ctx context.Context, request Request, emit Emit) error
}

// ConnectorFunc adapts a plain function to the Connector interface.
type ConnectorFunc func(ctx context.Context, request Request, emit Emit) error

func (f ConnectorFunc) Fetch(ctx context.Context, request Request, emit Emit) error {
	return f(ctx, request, emit)
}

// Instance is a configured connector taking part in fetch sessions.
type Instance struct {
	// ID is stable across runs and unique among instances.
	ID string `validate:"required"`
	// Name is shown to the user.
	Name string
	// Enabled is the default-enabled flag. Sources of disabled instances start Disabled.
	Enabled bool
	// Connector performs the actual fetch.
	Connector Connector
}

// Validate checks that the instance can be used by a fetcher.
func (i Instance) Validate() error {
	if err := validate.Struct(i); err != nil {
		return fmt.Errorf("invalid instance %q: %w", i.ID, err)
	}
	if i.Connector == nil {
		return fmt.Errorf("invalid instance %q: connector is nil", i.ID)
	}
	return nil
}

func (i Instance) String() string {
	if i.Name != "" {
		return i.Name
	}
	return i.ID
}
