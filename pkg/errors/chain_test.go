package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearChain builds a chain of n errors where nodes[0] is the
// outermost and nodes[n-1] the root.
func linearChain(n int) []*Error {
	nodes := make([]*Error, n)
	for i := n - 1; i >= 0; i-- {
		nodes[i] = &Error{
			Code:    CodeInternal,
			Message: fmt.Sprintf("node %d", i),
		}
		if i < n-1 {
			nodes[i].Cause = nodes[i+1]
		}
	}
	return nodes
}

func TestWalker_StartAlwaysYieldedFirst(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		start any
	}{
		{"nil", nil},
		{"string", "boom"},
		{"int", 42},
		{"bool", true},
		{"standard error", errors.New("boom")},
		{"structured error", New(CodeInternal, "boom")},
		{"plain map", map[string]any{"message": "boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := NewWalker(tt.start)
			first, ok := w.Next()
			require.True(t, ok, "walker must yield the starting value")
			assert.Equal(t, tt.start, first)
		})
	}
}

func TestWalker_SingleUse(t *testing.T) {
	t.Parallel()
	w := NewWalker(New(CodeInternal, "boom"))
	for _, ok := w.Next(); ok; _, ok = w.Next() {
	}
	_, ok := w.Next()
	assert.False(t, ok, "exhausted walker must stay exhausted")
	assert.NoError(t, w.Err())
}

func TestRootCause_NoCauseReturnsStart(t *testing.T) {
	t.Parallel()
	stdErr := errors.New("x")

	root, err := RootCause(stdErr)
	require.NoError(t, err)
	assert.Same(t, stdErr, root, "causeless error is its own root")
}

func TestRootCause_NilAndPrimitives(t *testing.T) {
	t.Parallel()
	for _, start := range []any{nil, "boom", 7, false} {
		root, err := RootCause(start)
		require.NoError(t, err)
		assert.Equal(t, start, root)
	}
}

func TestRootCause_LinearChain(t *testing.T) {
	t.Parallel()
	nodes := linearChain(4)

	root, err := RootCause(nodes[0])
	require.NoError(t, err)
	assert.Same(t, nodes[3], root)
}

func TestRootCause_MixedChain(t *testing.T) {
	t.Parallel()
	// structured -> fmt-wrapped -> sentinel
	sentinel := errors.New("connection refused")
	wrapped := fmt.Errorf("dial failed: %w", sentinel)
	top := Wrap(wrapped, CodeUnavailableDependency, "redis unreachable")

	root, err := RootCause(top)
	require.NoError(t, err)
	assert.Same(t, sentinel, root)
}

func TestRootCause_DepthBound(t *testing.T) {
	t.Parallel()
	nodes := linearChain(10)

	root, err := RootCause(nodes[0], WithMaxDepth(3))
	require.NoError(t, err)
	assert.Same(t, nodes[3], root, "truncation must stop at the bound, not the true root")
}

func TestRootCause_DepthZeroYieldsStart(t *testing.T) {
	t.Parallel()
	nodes := linearChain(3)

	for _, depth := range []int{0, -5} {
		root, err := RootCause(nodes[0], WithMaxDepth(depth))
		require.NoError(t, err)
		assert.Same(t, nodes[0], root)
	}
}

func TestRootCause_PrimitiveCauseTerminates(t *testing.T) {
	t.Parallel()
	node := map[string]any{"message": "outer", "cause": "plain string"}

	root, err := RootCause(node)
	require.NoError(t, err)
	assert.Equal(t, "plain string", root)
}

func TestRootCause_PresentNilCauseIsTerminalNode(t *testing.T) {
	t.Parallel()
	withNilCause := map[string]any{"message": "outer", "cause": nil}
	withoutCause := map[string]any{"message": "outer"}

	root, err := RootCause(withNilCause)
	require.NoError(t, err)
	assert.Nil(t, root, "a present-but-nil cause is the terminal node")

	root, err = RootCause(withoutCause)
	require.NoError(t, err)
	assert.Equal(t, withoutCause, root, "an absent cause key terminates at the node itself")
}

func TestRootCause_CircularChainBothDirections(t *testing.T) {
	t.Parallel()
	a := map[string]any{"name": "a"}
	b := map[string]any{"name": "b"}
	a["cause"] = b
	b["cause"] = a

	for name, start := range map[string]any{"from a": a, "from b": b} {
		t.Run(name, func(t *testing.T) {
			root, err := RootCause(start)
			require.Error(t, err)
			assert.True(t, IsCircularChain(err), "expected INT_004, got %v", err)
			assert.Contains(t, err.Error(), "circular cause chain")
			assert.Nil(t, root)
		})
	}
}

func TestRootCause_SelfCycle(t *testing.T) {
	t.Parallel()
	m := map[string]any{"name": "self"}
	m["cause"] = m

	_, err := RootCause(m)
	require.Error(t, err)
	assert.True(t, IsCircularChain(err))
}

func TestRootCause_StructuredErrorCycle(t *testing.T) {
	t.Parallel()
	x := &Error{Code: CodeInternal, Message: "x"}
	y := &Error{Code: CodeInternal, Message: "y"}
	x.Cause = y
	y.Cause = x

	_, err := RootCause(x)
	require.Error(t, err)
	assert.True(t, IsCircularChain(err))
}

func TestRootCause_EqualContentIsNotACycle(t *testing.T) {
	t.Parallel()
	// Two unrelated timeouts with identical content form a valid,
	// acyclic chain. Identity-based detection must not conflate them.
	inner := &Error{Code: CodeTimeout, Message: "deadline exceeded"}
	outer := &Error{Code: CodeTimeout, Message: "deadline exceeded", Cause: inner}

	root, err := RootCause(outer)
	require.NoError(t, err)
	assert.Same(t, inner, root)
}

func TestRootCause_Termination(t *testing.T) {
	t.Parallel()
	// A cyclic graph walked with a generous bound must still return
	// promptly via cycle detection, never hang.
	nodes := linearChain(5)
	nodes[4].Cause = nodes[1]

	_, err := RootCause(nodes[0], WithMaxDepth(1_000_000))
	require.Error(t, err)
	assert.True(t, IsCircularChain(err))
}

func TestFindInChain_OutermostFirst(t *testing.T) {
	t.Parallel()
	nodes := linearChain(3)
	isInternal := func(v any) bool {
		e, ok := v.(*Error)
		return ok && e.Code == CodeInternal
	}

	got, found, err := FindInChain(nodes[0], isInternal)
	require.NoError(t, err)
	require.True(t, found)
	assert.Same(t, nodes[0], got, "first match wins, not the deepest")
}

func TestFindInChain_NoMatch(t *testing.T) {
	t.Parallel()
	got, found, err := FindInChain(linearChain(3)[0], func(any) bool { return false })
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestFindInChain_MatchShortCircuitsCycleDetection(t *testing.T) {
	t.Parallel()
	a := map[string]any{"name": "a"}
	b := map[string]any{"name": "b"}
	a["cause"] = b
	b["cause"] = a

	// The cycle lies beyond the match and must never be observed.
	got, found, err := FindInChain(a, func(any) bool { return true })
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, a, got)
}

func TestFindInChain_CycleBeforeMatchFails(t *testing.T) {
	t.Parallel()
	a := map[string]any{"name": "a"}
	b := map[string]any{"name": "b"}
	a["cause"] = b
	b["cause"] = a

	_, found, err := FindInChain(a, func(any) bool { return false })
	require.Error(t, err)
	assert.True(t, IsCircularChain(err))
	assert.False(t, found)
}

func TestFindInChain_PredicatePanicPropagates(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		_, _, _ = FindInChain(linearChain(2)[0], func(any) bool {
			panic("predicate exploded")
		})
	})
}

func TestFilterChain_OrderedAndIdempotent(t *testing.T) {
	t.Parallel()
	nodes := linearChain(5)
	oddMessage := func(v any) bool {
		e, ok := v.(*Error)
		return ok && (e.Message == "node 1" || e.Message == "node 3")
	}

	first, err := FilterChain(nodes[0], oddMessage)
	require.NoError(t, err)
	second, err := FilterChain(nodes[0], oddMessage)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Same(t, nodes[1], first[0])
	assert.Same(t, nodes[3], first[1])
	assert.Equal(t, first, second, "traversal of an immutable graph is idempotent")
}

func TestFilterChain_NoMatchIsEmptyNotNil(t *testing.T) {
	t.Parallel()
	got, err := FilterChain(linearChain(3)[0], func(any) bool { return false })
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterChain_CircularFails(t *testing.T) {
	t.Parallel()
	x := &Error{Code: CodeInternal, Message: "x"}
	y := &Error{Code: CodeInternal, Message: "y", Cause: x}
	x.Cause = y

	_, err := FilterChain(x, func(any) bool { return true })
	require.Error(t, err)
	assert.True(t, IsCircularChain(err))
}

func TestSomeInChain(t *testing.T) {
	t.Parallel()
	nodes := linearChain(3)

	found, err := SomeInChain(nodes[0], func(v any) bool { return v == any(nodes[2]) })
	require.NoError(t, err)
	assert.True(t, found)

	found, err = SomeInChain(nodes[0], func(any) bool { return false })
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEveryInChain(t *testing.T) {
	t.Parallel()
	nodes := linearChain(3)
	isStructured := func(v any) bool { return IsStructuredShape(v) }

	all, err := EveryInChain(nodes[0], isStructured)
	require.NoError(t, err)
	assert.True(t, all)

	// A foreign root breaks universality.
	mixed := Wrap(errors.New("raw"), CodeInternal, "wrapper")
	all, err = EveryInChain(mixed, isStructured)
	require.NoError(t, err)
	assert.False(t, all)
}

func TestEveryInChain_SingleNode(t *testing.T) {
	t.Parallel()
	// The chain always contains at least the start, so the minimum
	// chain length is one: the result is just predicate(start).
	all, err := EveryInChain("solo", func(v any) bool { return v == "solo" })
	require.NoError(t, err)
	assert.True(t, all)

	all, err = EveryInChain("solo", func(any) bool { return false })
	require.NoError(t, err)
	assert.False(t, all)
}

func TestEveryInChain_NonMatchShortCircuitsBeforeCycle(t *testing.T) {
	t.Parallel()
	a := map[string]any{"name": "a"}
	b := map[string]any{"name": "b"}
	a["cause"] = b
	b["cause"] = a

	all, err := EveryInChain(a, func(any) bool { return false })
	require.NoError(t, err, "a non-match on the first node must win over the later cycle")
	assert.False(t, all)
}

func TestChain_JoinedErrorsFollowFirstChild(t *testing.T) {
	t.Parallel()
	first := New(CodeTimeout, "slow")
	second := errors.New("other")
	joined := errors.Join(first, second)

	root, err := RootCause(joined)
	require.NoError(t, err)
	assert.Same(t, first, root)
}

func TestChain_DecodedJSONNodes(t *testing.T) {
	t.Parallel()
	// The generic map form a JSON decode produces.
	leaf := map[string]any{"code": "UNAVAIL_001", "category": "UNAVAIL", "retryable": true}
	top := map[string]any{"code": "INT_001", "category": "INT", "retryable": false, "cause": leaf}

	root, err := RootCause(top)
	require.NoError(t, err)
	assert.Equal(t, leaf, root)

	matches, err := FilterChain(top, IsStructuredShape)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}
