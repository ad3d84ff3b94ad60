package framegraph

import "fmt"

// Strategy selects how a frame graph orders passes and derives barriers.
type Strategy int

const (
	// StrategyTopological sorts passes by their resource dependencies and
	// resolves barriers against the sorted order. Reads of the same alias
	// in the same state are not synchronized against each other.
	StrategyTopological Strategy = iota

	// StrategyDeclarationOrder runs passes in the order they were added and
	// inserts a barrier for every reuse of an alias, reads included. The
	// final present transition is elided the same way under both strategies.
	StrategyDeclarationOrder
)

// String returns the strategy name used by configuration files.
func (s Strategy) String() string {
	switch s {
	case StrategyTopological:
		return "topological"
	case StrategyDeclarationOrder:
		return "declaration"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Valid reports whether s is a declared strategy.
func (s Strategy) Valid() bool {
	return s == StrategyTopological || s == StrategyDeclarationOrder
}

// ParseStrategy parses "topological" or "declaration". The empty string
// selects StrategyTopological.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "topological":
		return StrategyTopological, nil
	case "declaration":
		return StrategyDeclarationOrder, nil
	default:
		return 0, fmt.Errorf("framegraph: unknown strategy %q", s)
	}
}

// Option configures a FrameGraph during creation.
//
// Example:
//
//	fg := framegraph.New(
//	    framegraph.WithPresentImage(framegraph.ImageSwapchain),
//	    framegraph.WithStrategy(framegraph.StrategyTopological),
//	)
type Option func(*options)

// options holds optional configuration for FrameGraph creation.
type options struct {
	strategy   Strategy
	present    ImageAlias
	hasPresent bool
	aliases    *AliasRegistry
}

// defaultOptions returns the default frame graph options.
func defaultOptions() options {
	return options{
		strategy: StrategyTopological,
		aliases:  nil, // Will be set to DefaultAliasRegistry if nil
	}
}

// WithStrategy selects the scheduling strategy. The default is
// StrategyTopological. Bake fails with ErrInvalidStrategy for any other
// value.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithPresentImage makes Execute end every frame with a transition of
// alias into LayoutPresentSrc.
func WithPresentImage(alias ImageAlias) Option {
	return func(o *options) {
		o.present = alias
		o.hasPresent = true
	}
}

// WithAliasRegistry restricts the aliases passes may use. Bake fails with
// ErrUnknownAlias when a pass declares an alias outside r.
func WithAliasRegistry(r *AliasRegistry) Option {
	return func(o *options) {
		o.aliases = r
	}
}
