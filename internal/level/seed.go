package level

// Built-in level ids.
const (
	SimpleID          = 1
	IntegralSquaresID = 2
)

// builtin is the closed set of levels shipped with the binary.
var builtin = []Level{
	{
		ID:       SimpleID,
		Name:     "Simple",
		Template: "simple operations with numbers %d-%d",
		Range:    Range{Min: 2, Max: 9},
		Operations: map[string]OperationSchema{
			"+": {Eval: Binary(func(x, y int) int { return x + y }), Arity: Exactly(2)},
			"-": {Eval: Binary(func(x, y int) int { return x - y }), Arity: Exactly(2)},
			"*": {Eval: Binary(func(x, y int) int { return x * y }), Arity: Exactly(2)},
		},
	},
	{
		ID:       IntegralSquaresID,
		Name:     "IntegralSquares",
		Template: "integral squares of %d-%d",
		Range:    Range{Min: 11, Max: 29},
		Operations: map[string]OperationSchema{
			"": {Eval: Unary(func(x int) int { return x * x }), Arity: Exactly(1)},
		},
	},
}

// defaultRegistry is built once at startup; an invalid table aborts the process.
var defaultRegistry = MustRegistry(builtin...)

// Default returns the registry of built-in levels.
func Default() *Registry {
	return defaultRegistry
}
