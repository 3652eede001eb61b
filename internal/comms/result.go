package comms

import (
	"fmt"
	"strings"
)

// Status is the outcome tag a Handler reports.
type Status int

const (
	StatusOK    Status = iota // value accepted
	StatusError               // recoverable validation failure
	StatusExit                // terminate the run
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	case StatusExit:
		return "exit"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// FailurePolicy decides what Ask does when a handler reports StatusError.
type FailurePolicy int

const (
	// Reenter prints the handler's message and prompts again.
	Reenter FailurePolicy = iota
	// Ignore returns the handler's value despite the error.
	Ignore
)

func (p FailurePolicy) String() string {
	switch p {
	case Reenter:
		return "reenter"
	case Ignore:
		return "ignore"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// ParseFailurePolicy parses "reenter" or "ignore", case-insensitively.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reenter":
		return Reenter, nil
	case "ignore":
		return Ignore, nil
	default:
		return Reenter, fmt.Errorf("unknown failure policy %q (want reenter or ignore)", s)
	}
}

// Result is what a Handler makes of one line of input.
type Result[T any] struct {
	Status  Status
	Value   T
	Message string
}

// OK accepts v.
func OK[T any](v T) Result[T] {
	return Result[T]{Status: StatusOK, Value: v}
}

// Fail rejects the input with msg and no value.
func Fail[T any](msg string) Result[T] {
	return Result[T]{Status: StatusError, Message: msg}
}

// FailValue rejects the input with msg but carries v for the Ignore policy.
func FailValue[T any](v T, msg string) Result[T] {
	return Result[T]{Status: StatusError, Value: v, Message: msg}
}

// Exit asks for the run to end.
func Exit[T any](v T) Result[T] {
	return Result[T]{Status: StatusExit, Value: v}
}

// Handler validates and converts one line of raw input.
type Handler[T any] func(raw string) Result[T]
