package level

import (
	"fmt"
	"slices"
	"strconv"
)

// Arity is the allowed number of operands for an operation, inclusive on both ends.
type Arity struct {
	Min int
	Max int
}

// Exactly returns an Arity that permits exactly n operands.
func Exactly(n int) Arity {
	return Arity{Min: n, Max: n}
}

// Empty reports whether the window admits no operand count at all.
func (a Arity) Empty() bool {
	return a.Max < 1 || a.Min > a.Max || a.Min < 0
}

// Allows reports whether n operands fit the window.
func (a Arity) Allows(n int) bool {
	return !a.Empty() && n >= a.Min && n <= a.Max
}

func (a Arity) String() string {
	if a.Min == a.Max {
		return strconv.Itoa(a.Min)
	}
	return fmt.Sprintf("%d-%d", a.Min, a.Max)
}

// Evaluator computes the result of an operation. Callers check arity first.
type Evaluator func(operands ...int) int

// Unary adapts a one-operand function.
func Unary(f func(x int) int) Evaluator {
	return func(operands ...int) int { return f(operands[0]) }
}

// Binary adapts a two-operand function.
func Binary(f func(x, y int) int) Evaluator {
	return func(operands ...int) int { return f(operands[0], operands[1]) }
}

// OperationSchema pairs an evaluator with the operand counts it accepts.
type OperationSchema struct {
	Eval  Evaluator
	Arity Arity
}

// Range is an inclusive operand range.
type Range struct {
	Min int
	Max int
}

// Valid reports whether the range contains at least one value.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Level is a difficulty tier: an operand range and the operations drawn from it.
type Level struct {
	ID   int
	Name string

	// Template takes the range bounds as two %d verbs.
	Template string

	Range      Range
	Operations map[string]OperationSchema
}

// Description renders the template with the level's range,
// e.g. "simple operations with numbers 2-9".
func (l Level) Description() string {
	if l.Template == "" {
		return ""
	}
	return fmt.Sprintf(l.Template, l.Range.Min, l.Range.Max)
}

// Symbols returns the operation symbols in sorted order.
func (l Level) Symbols() []string {
	syms := make([]string, 0, len(l.Operations))
	for s := range l.Operations {
		syms = append(syms, s)
	}
	slices.Sort(syms)
	return syms
}

// Operation returns the schema registered under symbol.
func (l Level) Operation(symbol string) (OperationSchema, bool) {
	op, ok := l.Operations[symbol]
	return op, ok
}

func (l Level) String() string {
	return strconv.Itoa(l.ID)
}
