package errors

import (
	"reflect"
)

// DefaultMaxDepth is the default bound on the number of cause links a
// traversal follows. Chains longer than the bound are silently
// truncated; truncation is not an error.
const DefaultMaxDepth = 100

// WalkOption configures a chain traversal. Options apply per call;
// there is no global traversal configuration.
type WalkOption func(*walkConfig)

type walkConfig struct {
	maxDepth int
}

// WithMaxDepth overrides the traversal depth bound. The bound counts
// cause-following steps, so a bound of k yields at most k+1 nodes
// (the starting value plus k causes). A bound of zero or less yields
// only the starting value.
func WithMaxDepth(maxDepth int) WalkOption {
	return func(cfg *walkConfig) {
		cfg.maxDepth = maxDepth
	}
}

func newWalkConfig(opts []WalkOption) walkConfig {
	cfg := walkConfig{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxDepth < 0 {
		cfg.maxDepth = 0
	}
	return cfg
}

// Walker is a lazy, non-restartable cursor over a cause chain. It
// yields each reachable node exactly once, outermost first, starting
// with the value the walk began at (even if that value is nil or a
// primitive). The walk ends when a node exposes no cause, when the
// depth bound is reached (silent truncation), or when a cause link
// points back to an already-visited node, in which case Err reports
// a CodeInternalCircularCause error.
//
// Cycle detection compares nodes by reference identity, never by
// value: two structurally identical errors are distinct nodes, and a
// real chain of look-alike failures (e.g., two unrelated timeouts
// with the same message) must not be mistaken for a loop. Detection
// is lazy — a cycle is only noticed at the step that would revisit a
// node, so a caller that stops consuming earlier (see FindInChain)
// never observes it.
//
// A Walker is single-use and not safe for concurrent use. The visited
// set is local to the walk and discarded with it.
type Walker struct {
	current any
	depth   int
	cfg     walkConfig
	visited map[any]struct{}
	started bool
	done    bool
	err     *Error
}

// NewWalker creates a Walker positioned before the starting value.
// The first call to Next yields start itself.
func NewWalker(start any, opts ...WalkOption) *Walker {
	return &Walker{
		current: start,
		cfg:     newWalkConfig(opts),
		visited: make(map[any]struct{}),
	}
}

// Next advances the walk and returns the next node in the chain.
// It returns false when the chain is exhausted, truncated at the
// depth bound, or aborted by a circular-chain failure; check Err to
// distinguish the last case.
func (w *Walker) Next() (any, bool) {
	if w.done || w.err != nil {
		return nil, false
	}
	if !w.started {
		w.started = true
		return w.current, true
	}

	next, ok := causeOf(w.current)
	if !ok {
		w.done = true
		return nil, false
	}
	if w.depth >= w.cfg.maxDepth {
		// Normal truncation, not a failure.
		w.done = true
		return nil, false
	}

	if key, identifiable := identityKey(w.current); identifiable {
		w.visited[key] = struct{}{}
	}
	if key, identifiable := identityKey(next); identifiable {
		if _, seen := w.visited[key]; seen {
			w.err = Newf(CodeInternalCircularCause,
				"circular cause chain detected at depth %d", w.depth+1).
				WithDetail("depth", w.depth+1)
			return nil, false
		}
	}

	w.depth++
	w.current = next
	return next, true
}

// Err returns the circular-chain error that aborted the walk, or nil
// if the walk ended normally (including depth-bound truncation).
func (w *Walker) Err() error {
	if w.err == nil {
		return nil
	}
	return w.err
}

// refKey identifies a reference-kind node by its dynamic type and
// address. Including the type keeps a pointer and the map or struct
// it points into from colliding at the same address.
type refKey struct {
	typ reflect.Type
	ptr uintptr
}

// identityKey derives a reference-identity key for the visited set.
// Reference kinds (pointers, maps, slices, channels, functions) are
// keyed by address; other comparable values fall back to value
// identity, which is sound because a value that is copied on every
// access cannot close a cause loop. Non-comparable, non-reference
// values are not identifiable and are skipped by cycle detection.
func identityKey(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return refKey{typ: rv.Type(), ptr: rv.Pointer()}, true
	}
	if rv.Comparable() {
		return v, true
	}
	return nil, false
}

// RootCause returns the deepest node reachable by following cause
// links from start. If start has no cause, start itself is returned
// (including nil and primitive starts). If the chain is longer than
// the depth bound, the last node within the bound is returned.
// A circular chain yields a CodeInternalCircularCause error.
//
// Example:
//
//	root, err := errors.RootCause(failure)
//	if err != nil {
//	    // malformed error graph
//	}
func RootCause(start any, opts ...WalkOption) (any, error) {
	w := NewWalker(start, opts...)
	var last any
	for node, ok := w.Next(); ok; node, ok = w.Next() {
		last = node
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return last, nil
}

// FindInChain returns the first node, outermost first, for which the
// predicate returns true. The boolean reports whether a match was
// found. Traversal stops at the match, so a cycle that lies beyond
// the matching node is never observed; a cycle encountered before
// any match yields a CodeInternalCircularCause error.
//
// The predicate is called as-is: a panicking predicate aborts the
// traversal and propagates unchanged.
func FindInChain(start any, predicate func(any) bool, opts ...WalkOption) (any, bool, error) {
	w := NewWalker(start, opts...)
	for node, ok := w.Next(); ok; node, ok = w.Next() {
		if predicate(node) {
			return node, true, nil
		}
	}
	if err := w.Err(); err != nil {
		return nil, false, err
	}
	return nil, false, nil
}

// FilterChain returns all nodes for which the predicate returns true,
// in chain order (outermost first). The result is empty, never nil,
// when nothing matches. The whole bounded chain is consumed, so a
// cycle anywhere within the bound yields a CodeInternalCircularCause
// error.
func FilterChain(start any, predicate func(any) bool, opts ...WalkOption) ([]any, error) {
	w := NewWalker(start, opts...)
	matches := []any{}
	for node, ok := w.Next(); ok; node, ok = w.Next() {
		if predicate(node) {
			matches = append(matches, node)
		}
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// SomeInChain reports whether any node in the chain satisfies the
// predicate. Equivalent to FindInChain discarding the node.
func SomeInChain(start any, predicate func(any) bool, opts ...WalkOption) (bool, error) {
	_, found, err := FindInChain(start, predicate, opts...)
	return found, err
}

// EveryInChain reports whether every node in the bounded chain
// satisfies the predicate. The chain always contains at least the
// starting value, so for a causeless start this is simply
// predicate(start). A non-matching node short-circuits the walk, so
// cycles beyond it are never observed.
func EveryInChain(start any, predicate func(any) bool, opts ...WalkOption) (bool, error) {
	w := NewWalker(start, opts...)
	for node, ok := w.Next(); ok; node, ok = w.Next() {
		if !predicate(node) {
			return false, nil
		}
	}
	if err := w.Err(); err != nil {
		return false, err
	}
	return true, nil
}
