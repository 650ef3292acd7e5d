package algorithm_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
	"github.com/cordisvictor/easycsp-lib/pkg/easycsp/algorithm"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// queensProblem builds the n-queens CSP: one variable per column with the
// row as value, all rows distinct and no two queens on a diagonal.
func queensProblem(n int) *easycsp.Problem[string, int] {
	b := easycsp.Of[string, int]("queens", n, easycsp.NewIntRangeDomain(1, n))
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			i, j := i, j
			b.Constrain(func(a easycsp.Assignments[string, int]) bool {
				return a.Value(0) != a.Value(1) && abs(i-j) != abs(a.Value(0)-a.Value(1))
			}, i, j)
		}
	}
	return b.Build()
}

func values(s *easycsp.Solution[string, int]) []int {
	vs := make([]int, s.Size())
	for i := range vs {
		vs[i] = s.Value(i)
	}
	return vs
}

func drain[A interface {
	Run()
	IsSuccessful() bool
}](t *testing.T, a A, solution func() *easycsp.Solution[string, int], p *easycsp.Problem[string, int]) [][]int {
	t.Helper()
	var all [][]int
	for {
		a.Run()
		if !a.IsSuccessful() {
			return all
		}
		s := solution()
		require.True(t, p.IsSatisfied(s))
		require.True(t, s.IsComplete())
		all = append(all, values(s))
	}
}

func sortSolutions(all [][]int) {
	sort.Slice(all, func(i, j int) bool {
		for k := range all[i] {
			if all[i][k] != all[j][k] {
				return all[i][k] < all[j][k]
			}
		}
		return false
	})
}

func TestBacktrackingEnumeratesInDeclarationOrder(t *testing.T) {
	p := queensProblem(4)
	a := algorithm.NewBacktracking(p)

	a.Run()
	require.True(t, a.IsSuccessful())
	first, err := a.Solution()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 1, 3}, values(first))

	a.Run()
	require.True(t, a.IsSuccessful())
	second, err := a.Solution()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 4, 2}, values(second))

	a.Run()
	assert.False(t, a.IsSuccessful())
	assert.True(t, a.InFinalState())
	_, err = a.Solution()
	assert.ErrorIs(t, err, easycsp.ErrNoSolution)
}

func TestBacktrackingResumption(t *testing.T) {
	p := easycsp.Of[string, int]("all", 2, easycsp.NewIntRangeDomain(1, 2)).Build()
	a := algorithm.NewBacktracking(p)

	var all [][]int
	for {
		a.Run()
		if !a.IsSuccessful() {
			break
		}
		s, err := a.Solution()
		require.NoError(t, err)
		all = append(all, values(s))
	}

	assert.Equal(t, [][]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}, all, "each step resumes after the last emitted solution")
	assert.True(t, a.InFinalState())
}

func TestBacktrackingReset(t *testing.T) {
	p := queensProblem(4)
	a := algorithm.NewBacktracking(p)

	a.Run()
	require.True(t, a.IsSuccessful())
	a.Reset()

	assert.False(t, a.IsSuccessful())
	assert.False(t, a.InFinalState())
	a.Run()
	require.True(t, a.IsSuccessful())
	s, err := a.Solution()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 1, 3}, values(s), "reset restarts the enumeration")
}

func TestBacktrackingInfeasible(t *testing.T) {
	p := easycsp.Of[string, int]("none", 2, easycsp.NewIntRangeDomain(1, 2)).
		ConstrainEach(easycsp.EqualTo[string](9)).
		Build()
	a := algorithm.NewBacktracking(p)

	a.Run()

	assert.False(t, a.IsSuccessful())
	assert.True(t, a.InFinalState())
}

func TestBacktrackingAndForwardCheckingAgree(t *testing.T) {
	bt := drainBacktracking(t, queensProblem(6))
	fc := drainForwardChecking(t, queensProblem(6))

	sortSolutions(bt)
	sortSolutions(fc)

	assert.Empty(t, cmp.Diff(bt, fc), "both exhaustive searches must emit the same solution set")
	assert.Len(t, bt, 4)
}

func drainBacktracking(t *testing.T, p *easycsp.Problem[string, int]) [][]int {
	a := algorithm.NewBacktracking(p)
	return drain(t, a, func() *easycsp.Solution[string, int] {
		s, err := a.Solution()
		require.NoError(t, err)
		return s
	}, p)
}

func drainForwardChecking(t *testing.T, p *easycsp.Problem[string, int]) [][]int {
	a := algorithm.NewForwardChecking(p)
	return drain(t, a, func() *easycsp.Solution[string, int] {
		s, err := a.Solution()
		require.NoError(t, err)
		return s
	}, p)
}
