// Package outcome defines the uniform result type every remote operation
// returns, and the single classification policy that maps raw transport
// results onto it. UI code branches on the failure category only, never on
// raw status codes or error types.
package outcome

import "fmt"

// Category is the closed failure taxonomy.
type Category string

const (
	// Unreachable: the host could not be resolved or connected.
	Unreachable Category = "unreachable"
	// Timeout: connect, read or write exceeded the configured bound.
	Timeout Category = "timeout"
	// RemoteRejected: an HTTP response arrived with a non-2xx status.
	RemoteRejected Category = "remote_rejected"
	// InvalidResponse: 2xx received but the body could not be decoded.
	InvalidResponse Category = "invalid_response"
	// Unknown: any other transport or runtime fault.
	Unknown Category = "unknown"
)

// Failure describes why an operation did not produce a value. Status and
// ServerDetail are only set for RemoteRejected and are preserved for
// logging; Message is what the UI surfaces.
type Failure struct {
	Category     Category
	Message      string
	Status       int
	ServerDetail string
}

func (f *Failure) Error() string {
	if f.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", f.Category, f.Status, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Category, f.Message)
}

// Outcome holds exactly one of a success value or a failure.
type Outcome[T any] struct {
	value   T
	failure *Failure
}

// Success wraps a value in a successful outcome.
func Success[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Fail builds a failed outcome from a category and message.
func Fail[T any](cat Category, msg string) Outcome[T] {
	return Outcome[T]{failure: &Failure{Category: cat, Message: msg}}
}

// FailWith builds a failed outcome carrying a fully populated Failure,
// used to re-type a failure across operation boundaries.
func FailWith[T any](f Failure) Outcome[T] {
	return Outcome[T]{failure: &f}
}

// OK reports whether the outcome holds a value.
func (o Outcome[T]) OK() bool { return o.failure == nil }

// Value returns the success value; the zero value when the outcome failed.
func (o Outcome[T]) Value() T { return o.value }

// Failure returns the failure, or nil on success.
func (o Outcome[T]) Failure() *Failure { return o.failure }

// Get unpacks the outcome into its two possible halves.
func (o Outcome[T]) Get() (T, *Failure) { return o.value, o.failure }
