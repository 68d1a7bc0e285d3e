package fetch

import "fmt"

// State is the lifecycle state of one source within a session.
// It is one of Disabled, Idle, Fetching, Succeed or Failed.
type State interface {
	fmt.Stringer
	state()
}

// Disabled sources never invoke their connector and contribute no items.
type Disabled struct{}

// Idle sources are enabled but have not been observed in the current epoch.
type Idle struct{}

// Fetching sources have a connector task running for the current epoch.
type Fetching struct{}

// Succeed is terminal: the connector returned normally.
type Succeed struct{}

// Failed is terminal: the connector returned an error or panicked.
type Failed struct {
	Err error
}

func (Disabled) state() {}
func (Idle) state()     {}
func (Fetching) state() {}
func (Succeed) state()  {}
func (Failed) state()   {}

func (Disabled) String() string { return "disabled" }
func (Idle) String() string     { return "idle" }
func (Fetching) String() string { return "fetching" }
func (Succeed) String() string  { return "succeed" }
func (f Failed) String() string { return fmt.Sprintf("failed: %v", f.Err) }

// Completed reports whether the state is terminal.
func Completed(s State) bool {
	switch s.(type) {
	case Succeed, Failed:
		return true
	default:
		return false
	}
}

// Settled reports whether the state counts as done for session completion.
func Settled(s State) bool {
	_, disabled := s.(Disabled)
	return disabled || Completed(s)
}

// FetchError is a connector failure, attributed to the source that raised it.
type FetchError struct {
	SourceID string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("source %s: %v", e.SourceID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
