package level

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrDuplicateLevel is returned when two levels share an id.
var ErrDuplicateLevel = errors.New("duplicate level id")

// Registry is an immutable table of levels keyed by id.
type Registry struct {
	byID map[int]Level
	ids  []int
}

// NewRegistry validates levels and builds a registry from them.
// On a duplicate id the first definition is kept and ErrDuplicateLevel is
// returned alongside any other problems found.
func NewRegistry(levels ...Level) (*Registry, error) {
	r := &Registry{byID: make(map[int]Level, len(levels))}
	var errs []string
	dup := false

	for _, l := range levels {
		if _, exists := r.byID[l.ID]; exists {
			dup = true
			errs = append(errs, fmt.Sprintf("level %d has already been registered and cannot be overridden", l.ID))
			continue
		}
		if err := validateLevel(l); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		r.byID[l.ID] = l.clone()
		r.ids = append(r.ids, l.ID)
	}
	slices.Sort(r.ids)

	if len(errs) == 0 {
		return r, nil
	}
	err := errors.New(strings.Join(errs, "; "))
	if dup {
		err = fmt.Errorf("%w: %v", ErrDuplicateLevel, err)
	}
	return r, err
}

// MustRegistry is like NewRegistry but panics on an invalid table.
func MustRegistry(levels ...Level) *Registry {
	r, err := NewRegistry(levels...)
	if err != nil {
		panic(fmt.Sprintf("level registry: %v", err))
	}
	return r
}

func validateLevel(l Level) error {
	if l.ID <= 0 {
		return fmt.Errorf("level %d: id must be positive", l.ID)
	}
	if !l.Range.Valid() {
		return fmt.Errorf("level %d: invalid operand range %d-%d", l.ID, l.Range.Min, l.Range.Max)
	}
	if len(l.Operations) == 0 {
		return fmt.Errorf("level %d: no operations", l.ID)
	}
	for sym, op := range l.Operations {
		if op.Eval == nil {
			return fmt.Errorf("level %d: operation %q has no evaluator", l.ID, sym)
		}
		if op.Arity.Empty() {
			return fmt.Errorf("level %d: operation %q has empty arity %d-%d", l.ID, sym, op.Arity.Min, op.Arity.Max)
		}
	}
	return nil
}

// Get returns the level with the given id.
func (r *Registry) Get(id int) (Level, bool) {
	l, ok := r.byID[id]
	if !ok {
		return Level{}, false
	}
	return l.clone(), true
}

// All returns every level ordered by id. The slice is a copy.
func (r *Registry) All() []Level {
	out := make([]Level, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id].clone())
	}
	return out
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []int {
	return slices.Clone(r.ids)
}

// Len returns the number of registered levels.
func (r *Registry) Len() int {
	return len(r.ids)
}

// clone copies the operation map so callers cannot alter the registry.
func (l Level) clone() Level {
	l.Operations = maps.Clone(l.Operations)
	return l
}
