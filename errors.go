package framegraph

import (
	"errors"
	"fmt"

	"github.com/gogpu/framegraph/graph"
)

// Frame graph errors.
var (
	// ErrCycle is returned by Bake when the pass dependencies cannot be
	// linearized. It is the same value as graph.ErrCycle.
	ErrCycle = graph.ErrCycle

	// ErrUnknownAlias is returned when a pass or lookup names an alias that
	// is not declared or not registered with the frame graph.
	ErrUnknownAlias = errors.New("framegraph: unknown alias")

	// ErrUnknownPass is returned when a pass id has no registered pass.
	ErrUnknownPass = errors.New("framegraph: unknown pass")

	// ErrDuplicatePass is returned by AddPass when the id is already taken.
	ErrDuplicatePass = errors.New("framegraph: duplicate pass id")

	// ErrNilPass is returned by AddPass when the pass is nil.
	ErrNilPass = errors.New("framegraph: pass is nil")

	// ErrNotBaked is returned by Execute before a successful Bake.
	ErrNotBaked = errors.New("framegraph: frame graph is not baked")

	// ErrDependencyOrder is returned by Bake under StrategyDeclarationOrder
	// when an explicit dependency points backwards in declaration order.
	ErrDependencyOrder = errors.New("framegraph: dependency contradicts declaration order")

	// ErrInvalidStrategy is returned by Bake when the configured Strategy is
	// not one of the declared constants.
	ErrInvalidStrategy = errors.New("framegraph: invalid strategy")
)

// ErrorKind classifies frame graph errors so callers can branch on the
// failure without matching individual sentinels.
type ErrorKind int

const (
	// KindNone is returned for nil errors.
	KindNone ErrorKind = iota

	// KindCycle means the pass dependencies form a cycle.
	KindCycle

	// KindUnknownAlias means an alias lookup failed.
	KindUnknownAlias

	// KindUnknownPass means a pass lookup failed.
	KindUnknownPass

	// KindInvalid covers contract violations such as duplicate or nil
	// passes and executing before baking.
	KindInvalid

	// KindOther is any error not produced by this package.
	KindOther
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindCycle:
		return "Cycle"
	case KindUnknownAlias:
		return "UnknownAlias"
	case KindUnknownPass:
		return "UnknownPass"
	case KindInvalid:
		return "Invalid"
	case KindOther:
		return "Other"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// KindOf returns the kind of err.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrCycle):
		return KindCycle
	case errors.Is(err, ErrUnknownAlias):
		return KindUnknownAlias
	case errors.Is(err, ErrUnknownPass):
		return KindUnknownPass
	case errors.Is(err, ErrDuplicatePass), errors.Is(err, ErrNilPass), errors.Is(err, ErrNotBaked),
		errors.Is(err, ErrDependencyOrder), errors.Is(err, ErrInvalidStrategy):
		return KindInvalid
	default:
		return KindOther
	}
}
