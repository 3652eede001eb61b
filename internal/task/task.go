// Package task generates arithmetic problems from a level and evaluates them.
package task

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/mathdrill/internal/level"
)

// ErrInvalidOperation indicates an unknown operation or an operand count
// outside the operation's arity.
var ErrInvalidOperation = errors.New("invalid operation")

// Task is a single generated problem.
type Task struct {
	Operands  []int
	Operation string

	// Level is the tier the task was drawn from. It is read-only.
	Level level.Level
}

type options struct {
	operandRange *level.Range
	operation    string
	forced       bool
}

// Option customizes Random.
type Option func(*options)

// WithOperandRange draws operands from r instead of the level's range.
func WithOperandRange(r level.Range) Option {
	return func(o *options) { o.operandRange = &r }
}

// WithOperation forces the operation symbol instead of choosing one.
func WithOperation(symbol string) Option {
	return func(o *options) {
		o.operation = symbol
		o.forced = true
	}
}

// Random builds a task from lvl. The operation is picked uniformly and as many
// operands as the operation's arity allows are drawn uniformly from the range.
func Random(rng *rand.Rand, lvl level.Level, opts ...Option) (Task, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := lvl.Range
	if o.operandRange != nil {
		r = *o.operandRange
	}
	if !r.Valid() {
		return Task{}, fmt.Errorf("operand range %d-%d is empty", r.Min, r.Max)
	}
	span := uint64(r.Max) - uint64(r.Min) + 1
	if span == 0 {
		return Task{}, fmt.Errorf("operand range %d-%d is too wide", r.Min, r.Max)
	}

	symbol := o.operation
	if !o.forced {
		syms := lvl.Symbols()
		if len(syms) == 0 {
			return Task{}, fmt.Errorf("%w: level %d has no operations", ErrInvalidOperation, lvl.ID)
		}
		symbol = syms[rng.IntN(len(syms))]
	}

	op, ok := lvl.Operation(symbol)
	if !ok {
		return Task{}, fmt.Errorf("%w: level %d has no operation %q", ErrInvalidOperation, lvl.ID, symbol)
	}
	if op.Arity.Empty() {
		return Task{}, fmt.Errorf("%w: operation %q has empty arity", ErrInvalidOperation, symbol)
	}

	operands := make([]int, op.Arity.Max)
	for i := range operands {
		operands[i] = r.Min + int(rng.Uint64N(span))
	}

	return Task{
		Operands:  operands,
		Operation: symbol,
		Level:     lvl,
	}, nil
}

// Solution evaluates the task. The operand count is checked against the
// operation's arity before evaluating.
func (t Task) Solution() (int, error) {
	op, ok := t.Level.Operation(t.Operation)
	if !ok {
		return 0, fmt.Errorf("%w: level %d has no operation %q", ErrInvalidOperation, t.Level.ID, t.Operation)
	}
	if !op.Arity.Allows(len(t.Operands)) {
		return 0, fmt.Errorf("%w: number of operands out of range (got %d, want %s)",
			ErrInvalidOperation, len(t.Operands), op.Arity)
	}
	return op.Eval(slices.Clone(t.Operands)...), nil
}

// String renders the problem as shown to the user, e.g. "3 + 4" or "17".
func (t Task) String() string {
	parts := make([]string, len(t.Operands))
	for i, v := range t.Operands {
		parts[i] = strconv.Itoa(v)
	}
	sep := " "
	if t.Operation != "" {
		sep = " " + t.Operation + " "
	}
	return strings.Join(parts, sep)
}
